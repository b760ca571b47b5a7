package repository

import (
	"context"

	"github.com/fastygo/dashboard/domain"
)

type AnalyticsRepository interface {
	// Snapshot reads completed tasks and habit logs inside the window from a single
	// consistent view of the store.
	Snapshot(ctx context.Context, userID string, window domain.ActivityWindow) (*domain.ActivitySnapshot, error)
}
