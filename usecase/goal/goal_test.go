package goal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository/memory"
)

func goalInput(title string, weekStart time.Time) domain.GoalInput {
	return domain.GoalInput{
		Title:       title,
		TargetValue: 10,
		Unit:        "km",
		WeekStart:   weekStart,
		Status:      domain.GoalActive,
	}
}

func TestListGoalsOrdersByWeekStartDescending(t *testing.T) {
	uc := New(memory.NewStore().Goals(), nil)
	ctx := context.Background()

	weeks := []struct {
		title string
		day   int
	}{
		{"week one", 2},
		{"week three", 16},
		{"week two", 9},
	}
	for _, w := range weeks {
		_, err := uc.CreateGoal(ctx, "u1", goalInput(w.title, time.Date(2026, 3, w.day, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
	}

	page, err := uc.ListGoals(ctx, "u1", domain.GoalFilter{}, domain.NewPageRequest(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "week three", page.Items[0].Title)
	assert.Equal(t, "week two", page.Items[1].Title)
	assert.Equal(t, "week one", page.Items[2].Title)
}

func TestGoalStatusIsCallerDriven(t *testing.T) {
	uc := New(memory.NewStore().Goals(), nil)
	ctx := context.Background()
	week := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	created, err := uc.CreateGoal(ctx, "u1", goalInput("Run", week))
	require.NoError(t, err)

	in := goalInput("Run", week)
	in.CurrentValue = 12
	updated, err := uc.UpdateGoal(ctx, "u1", created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalActive, updated.Status)

	in.Status = domain.GoalCompleted
	updated, err = uc.UpdateGoal(ctx, "u1", created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalCompleted, updated.Status)
}

func TestGoalOwnershipAndValidation(t *testing.T) {
	uc := New(memory.NewStore().Goals(), nil)
	ctx := context.Background()
	week := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	created, err := uc.CreateGoal(ctx, "u1", goalInput("Run", week))
	require.NoError(t, err)

	_, err = uc.GetGoal(ctx, "u2", created.ID)
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	assert.ErrorIs(t, uc.DeleteGoal(ctx, "u2", created.ID), domain.ErrGoalNotFound)

	bad := goalInput("Run", week)
	bad.TargetValue = 0
	_, err = uc.UpdateGoal(ctx, "u1", created.ID, bad)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	require.NoError(t, uc.DeleteGoal(ctx, "u1", created.ID))
}
