package repository

import (
	"context"

	"github.com/fastygo/dashboard/domain"
)

// HabitRepository scopes every call by the owning user id.
type HabitRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Habit, error)
	List(ctx context.Context, userID string, filter domain.HabitFilter, page domain.PageRequest) ([]domain.Habit, int, error)
	Create(ctx context.Context, habit *domain.Habit) error
	Update(ctx context.Context, habit *domain.Habit) error
	// Delete removes the habit together with its logs.
	Delete(ctx context.Context, userID, id string) error
	// UpsertLog atomically creates the (HabitID, Date) log or overwrites its count.
	UpsertLog(ctx context.Context, log *domain.HabitLog) error
}
