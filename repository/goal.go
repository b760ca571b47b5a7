package repository

import (
	"context"

	"github.com/fastygo/dashboard/domain"
)

// GoalRepository scopes every call by the owning user id.
type GoalRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Goal, error)
	List(ctx context.Context, userID string, filter domain.GoalFilter, page domain.PageRequest) ([]domain.Goal, int, error)
	Create(ctx context.Context, goal *domain.Goal) error
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, userID, id string) error
}
