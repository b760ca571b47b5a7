package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/dashboard/domain"
)

type goalRepository struct {
	s *Store
}

func (r *goalRepository) GetByID(_ context.Context, userID, id string) (*domain.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.goals[id]
	if !ok || rec.value.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	goal := rec.value
	return &goal, nil
}

func (r *goalRepository) List(_ context.Context, userID string, filter domain.GoalFilter, page domain.PageRequest) ([]domain.Goal, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []record[domain.Goal]
	for _, rec := range r.s.goals {
		if rec.value.UserID != userID {
			continue
		}
		if filter.Search != "" && !containsFold(rec.value.Title, filter.Search) {
			continue
		}
		matched = append(matched, rec)
	}

	items, total := paginate(matched, func(g domain.Goal) time.Time { return g.WeekStart }, page)
	return items, total, nil
}

func (r *goalRepository) Create(_ context.Context, goal *domain.Goal) error {
	if goal == nil {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	goal.WeekStart = domain.CalendarDay(goal.WeekStart)
	goal.CreatedAt = r.s.stamp()
	goal.UpdatedAt = goal.CreatedAt
	r.s.goals[goal.ID] = record[domain.Goal]{value: *goal, seq: r.s.nextSeq()}
	return nil
}

func (r *goalRepository) Update(_ context.Context, goal *domain.Goal) error {
	if goal == nil {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.goals[goal.ID]
	if !ok || rec.value.UserID != goal.UserID {
		return domain.ErrGoalNotFound
	}
	goal.WeekStart = domain.CalendarDay(goal.WeekStart)
	goal.CreatedAt = rec.value.CreatedAt
	goal.UpdatedAt = r.s.stamp()
	rec.value = *goal
	r.s.goals[goal.ID] = rec
	return nil
}

func (r *goalRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.goals[id]
	if !ok || rec.value.UserID != userID {
		return domain.ErrGoalNotFound
	}
	delete(r.s.goals, id)
	return nil
}
