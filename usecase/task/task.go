package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/pkg/logger"
	"github.com/fastygo/dashboard/repository"
	"github.com/fastygo/dashboard/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	clock  usecase.Clock
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, clock usecase.Clock, logger *zap.Logger) *UseCase {
	if clock == nil {
		clock = usecase.SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter, page domain.PageRequest) (*domain.Page[domain.Task], error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	items, total, err := uc.tasks.List(ctx, userID, filter, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, total, page), nil
}

func (uc *UseCase) GetTask(ctx context.Context, userID, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, userID, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, userID string, in domain.TaskInput) (*domain.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	task := &domain.Task{UserID: userID}
	task.Apply(in, uc.clock())
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask replaces the writable fields of a task the caller owns. A task owned
// by someone else is reported as not found.
func (uc *UseCase) UpdateTask(ctx context.Context, userID, id string, in domain.TaskInput) (*domain.Task, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	task, err := uc.tasks.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	wasDone := task.IsCompleted()
	task.Apply(in, uc.clock())
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if !wasDone && task.IsCompleted() {
		logger.WithRequestID(ctx, uc.logger).Debug("task completed", zap.String("task_id", task.ID))
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, userID, id string) error {
	if _, err := uc.tasks.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, userID, id)
}
