package goal

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository"
)

type UseCase struct {
	goals  repository.GoalRepository
	logger *zap.Logger
}

func New(goals repository.GoalRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		goals:  goals,
		logger: logger,
	}
}

func (uc *UseCase) ListGoals(ctx context.Context, userID string, filter domain.GoalFilter, page domain.PageRequest) (*domain.Page[domain.Goal], error) {
	items, total, err := uc.goals.List(ctx, userID, filter, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, total, page), nil
}

func (uc *UseCase) GetGoal(ctx context.Context, userID, id string) (*domain.Goal, error) {
	return uc.goals.GetByID(ctx, userID, id)
}

// CreateGoal stores the goal with the caller-supplied status; reaching the target
// does not complete a goal on its own.
func (uc *UseCase) CreateGoal(ctx context.Context, userID string, in domain.GoalInput) (*domain.Goal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	goal := &domain.Goal{UserID: userID}
	goal.Apply(in)
	if err := uc.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (uc *UseCase) UpdateGoal(ctx context.Context, userID, id string, in domain.GoalInput) (*domain.Goal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	goal, err := uc.goals.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	goal.Apply(in)
	if err := uc.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (uc *UseCase) DeleteGoal(ctx context.Context, userID, id string) error {
	if _, err := uc.goals.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return uc.goals.Delete(ctx, userID, id)
}
