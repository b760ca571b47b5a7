package memory

import (
	"context"

	"github.com/fastygo/dashboard/domain"
)

type analyticsRepository struct {
	s *Store
}

// Snapshot holds the read lock across both collections.
func (r *analyticsRepository) Snapshot(_ context.Context, userID string, window domain.ActivityWindow) (*domain.ActivitySnapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	snapshot := &domain.ActivitySnapshot{}
	for _, rec := range r.s.tasks {
		task := rec.value
		if task.UserID != userID || task.CompletedAt == nil {
			continue
		}
		at := *task.CompletedAt
		if at.Before(window.Start) || !at.Before(window.End) {
			continue
		}
		snapshot.Completions = append(snapshot.Completions, at)
	}

	for _, log := range r.s.logs {
		if log.UserID != userID {
			continue
		}
		if log.Date.Before(window.FirstDay) || log.Date.After(window.LastDay) {
			continue
		}
		snapshot.HabitLogs = append(snapshot.HabitLogs, domain.HabitLogCount{Date: log.Date, Count: log.Count})
	}
	return snapshot, nil
}
