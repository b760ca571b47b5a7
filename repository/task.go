package repository

import (
	"context"

	"github.com/fastygo/dashboard/domain"
)

// TaskRepository scopes every call by the owning user id.
type TaskRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	List(ctx context.Context, userID string, filter domain.TaskFilter, page domain.PageRequest) ([]domain.Task, int, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID, id string) error
}
