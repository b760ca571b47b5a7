package habit

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository"
)

type UseCase struct {
	habits repository.HabitRepository
	logger *zap.Logger
}

func New(habits repository.HabitRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		habits: habits,
		logger: logger,
	}
}

func (uc *UseCase) ListHabits(ctx context.Context, userID string, filter domain.HabitFilter, page domain.PageRequest) (*domain.Page[domain.Habit], error) {
	items, total, err := uc.habits.List(ctx, userID, filter, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, total, page), nil
}

func (uc *UseCase) GetHabit(ctx context.Context, userID, id string) (*domain.Habit, error) {
	return uc.habits.GetByID(ctx, userID, id)
}

func (uc *UseCase) CreateHabit(ctx context.Context, userID string, in domain.HabitInput) (*domain.Habit, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	habit := &domain.Habit{UserID: userID}
	habit.Apply(in)
	if err := uc.habits.Create(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (uc *UseCase) UpdateHabit(ctx context.Context, userID, id string, in domain.HabitInput) (*domain.Habit, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	habit, err := uc.habits.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	habit.Apply(in)
	if err := uc.habits.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (uc *UseCase) DeleteHabit(ctx context.Context, userID, id string) error {
	if _, err := uc.habits.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return uc.habits.Delete(ctx, userID, id)
}

// LogOccurrence records count occurrences of the habit on the given day. Logging
// the same day again overwrites the count rather than adding to it.
func (uc *UseCase) LogOccurrence(ctx context.Context, userID, habitID string, in domain.HabitLogInput) (*domain.HabitLog, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.habits.GetByID(ctx, userID, habitID); err != nil {
		return nil, err
	}

	log := &domain.HabitLog{
		HabitID: habitID,
		UserID:  userID,
		Date:    domain.CalendarDay(in.Date),
		Count:   in.CountOrDefault(),
	}
	if err := uc.habits.UpsertLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}
