package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/dashboard/domain"
)

type habitRepository struct {
	s *Store
}

func (r *habitRepository) GetByID(_ context.Context, userID, id string) (*domain.Habit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.habits[id]
	if !ok || rec.value.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	habit := rec.value
	return &habit, nil
}

func (r *habitRepository) List(_ context.Context, userID string, filter domain.HabitFilter, page domain.PageRequest) ([]domain.Habit, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []record[domain.Habit]
	for _, rec := range r.s.habits {
		if rec.value.UserID != userID {
			continue
		}
		if filter.Search != "" && !containsFold(rec.value.Name, filter.Search) {
			continue
		}
		matched = append(matched, rec)
	}

	items, total := paginate(matched, func(h domain.Habit) time.Time { return h.CreatedAt }, page)
	return items, total, nil
}

func (r *habitRepository) Create(_ context.Context, habit *domain.Habit) error {
	if habit == nil {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}
	habit.CreatedAt = r.s.stamp()
	habit.UpdatedAt = habit.CreatedAt
	r.s.habits[habit.ID] = record[domain.Habit]{value: *habit, seq: r.s.nextSeq()}
	return nil
}

func (r *habitRepository) Update(_ context.Context, habit *domain.Habit) error {
	if habit == nil {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.habits[habit.ID]
	if !ok || rec.value.UserID != habit.UserID {
		return domain.ErrHabitNotFound
	}
	habit.CreatedAt = rec.value.CreatedAt
	habit.UpdatedAt = r.s.stamp()
	rec.value = *habit
	r.s.habits[habit.ID] = rec
	return nil
}

func (r *habitRepository) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.habits[id]
	if !ok || rec.value.UserID != userID {
		return domain.ErrHabitNotFound
	}
	delete(r.s.habits, id)
	for key, log := range r.s.logs {
		if log.HabitID == id {
			delete(r.s.logs, key)
		}
	}
	return nil
}

func (r *habitRepository) UpsertLog(_ context.Context, log *domain.HabitLog) error {
	if log == nil {
		return domain.ErrInvalidPayload
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log.Date = domain.CalendarDay(log.Date)
	key := log.HabitID + "|" + log.Date.Format(time.DateOnly)
	if existing, ok := r.s.logs[key]; ok {
		existing.Count = log.Count
		r.s.logs[key] = existing
		*log = existing
		return nil
	}
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	r.s.logs[key] = *log
	return nil
}

// HabitLogs returns the stored logs of one habit, oldest day first.
func (s *Store) HabitLogs(habitID string) []domain.HabitLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var logs []domain.HabitLog
	for _, log := range s.logs {
		if log.HabitID == habitID {
			logs = append(logs, log)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.Before(logs[j].Date) })
	return logs
}
