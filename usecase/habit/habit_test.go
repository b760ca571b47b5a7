package habit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository/memory"
)

func intPtr(v int) *int { return &v }

func setup(t *testing.T) (*UseCase, *memory.Store, *domain.Habit) {
	t.Helper()
	store := memory.NewStore()
	uc := New(store.Habits(), nil)

	habit, err := uc.CreateHabit(context.Background(), "u1", domain.HabitInput{
		Name:          "Read",
		Frequency:     domain.FrequencyDaily,
		TargetPerWeek: intPtr(5),
	})
	require.NoError(t, err)
	return uc, store, habit
}

func TestLogOccurrenceOverwritesSameDay(t *testing.T) {
	uc, store, habit := setup(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	_, err := uc.LogOccurrence(ctx, "u1", habit.ID, domain.HabitLogInput{Date: day, Count: intPtr(2)})
	require.NoError(t, err)
	logged, err := uc.LogOccurrence(ctx, "u1", habit.ID, domain.HabitLogInput{Date: day.Add(15 * time.Hour), Count: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, logged.Count)

	logs := store.HabitLogs(habit.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, 5, logs[0].Count)
	assert.Equal(t, day, logs[0].Date)
}

func TestLogOccurrenceDefaultsCountToOne(t *testing.T) {
	uc, _, habit := setup(t)

	logged, err := uc.LogOccurrence(context.Background(), "u1", habit.ID, domain.HabitLogInput{
		Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logged.Count)
}

func TestLogOccurrenceRequiresOwnership(t *testing.T) {
	uc, store, habit := setup(t)

	_, err := uc.LogOccurrence(context.Background(), "u2", habit.ID, domain.HabitLogInput{
		Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	assert.Empty(t, store.HabitLogs(habit.ID))
}

func TestDeleteHabitCascadesLogs(t *testing.T) {
	uc, store, habit := setup(t)
	ctx := context.Background()

	_, err := uc.LogOccurrence(ctx, "u1", habit.ID, domain.HabitLogInput{Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.DeleteHabit(ctx, "u2", habit.ID), domain.ErrHabitNotFound)
	require.NoError(t, uc.DeleteHabit(ctx, "u1", habit.ID))
	assert.Empty(t, store.HabitLogs(habit.ID))

	_, err = uc.GetHabit(ctx, "u1", habit.ID)
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}

func TestUpdateHabitValidates(t *testing.T) {
	uc, _, habit := setup(t)
	ctx := context.Background()

	_, err := uc.UpdateHabit(ctx, "u1", habit.ID, domain.HabitInput{Name: "Read", Frequency: "HOURLY"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	updated, err := uc.UpdateHabit(ctx, "u1", habit.ID, domain.HabitInput{Name: "Read more", Frequency: domain.FrequencyWeekly})
	require.NoError(t, err)
	assert.Equal(t, "Read more", updated.Name)
	assert.Nil(t, updated.TargetPerWeek)

	page, err := uc.ListHabits(ctx, "u1", domain.HabitFilter{Search: "more"}, domain.NewPageRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}
