package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/dashboard/domain"
)

type taskRepository struct {
	s *Store
}

func (r *taskRepository) GetByID(_ context.Context, userID, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.tasks[id]
	if !ok || rec.value.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	task := rec.value
	return &task, nil
}

func (r *taskRepository) List(_ context.Context, userID string, filter domain.TaskFilter, page domain.PageRequest) ([]domain.Task, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []record[domain.Task]
	for _, rec := range r.s.tasks {
		task := rec.value
		if task.UserID != userID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			inDescription := task.Description != nil && containsFold(*task.Description, filter.Search)
			if !containsFold(task.Title, filter.Search) && !inDescription {
				continue
			}
		}
		matched = append(matched, rec)
	}

	items, total := paginate(matched, func(t domain.Task) time.Time { return t.CreatedAt }, page)
	return items, total, nil
}

func (r *taskRepository) Create(_ context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.CreatedAt = r.s.stamp()
	task.UpdatedAt = task.CreatedAt
	r.s.tasks[task.ID] = record[domain.Task]{value: *task, seq: r.s.nextSeq()}
	return nil
}

func (r *taskRepository) Update(_ context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.tasks[task.ID]
	if !ok || rec.value.UserID != task.UserID {
		return domain.ErrTaskNotFound
	}
	task.CreatedAt = rec.value.CreatedAt
	task.UpdatedAt = r.s.stamp()
	rec.value = *task
	r.s.tasks[task.ID] = rec
	return nil
}

func (r *taskRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.tasks[id]
	if !ok || rec.value.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	return nil
}
