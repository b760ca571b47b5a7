package memory

import (
	"context"

	"github.com/fastygo/dashboard/domain"
)

type layoutRepository struct {
	s *Store
}

func (r *layoutRepository) Get(_ context.Context, userID string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	document, ok := r.s.layouts[userID]
	if !ok {
		return "", domain.ErrLayoutNotFound
	}
	return document, nil
}

func (r *layoutRepository) Upsert(_ context.Context, userID, document string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.layouts[userID] = document
	return nil
}
