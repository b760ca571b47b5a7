package repository

import "context"

// LayoutRepository stores the raw layout document per user. Decoding and
// validation belong to the caller so corrupt rows can degrade to a default.
type LayoutRepository interface {
	Get(ctx context.Context, userID string) (string, error)
	Upsert(ctx context.Context, userID, document string) error
}
