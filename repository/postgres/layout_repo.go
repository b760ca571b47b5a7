package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository"
)

type layoutRepository struct {
	pool *pgxpool.Pool
}

// NewLayoutRepository returns a Postgres-backed implementation of LayoutRepository.
func NewLayoutRepository(pool *pgxpool.Pool) repository.LayoutRepository {
	return &layoutRepository{pool: pool}
}

func (r *layoutRepository) Get(ctx context.Context, userID string) (string, error) {
	const query = `SELECT layout_json FROM dashboard_layouts WHERE user_id = $1`

	var document string
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&document); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrLayoutNotFound
		}
		return "", err
	}
	return document, nil
}

func (r *layoutRepository) Upsert(ctx context.Context, userID, document string) error {
	const query = `
	INSERT INTO dashboard_layouts (user_id, layout_json, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (user_id) DO UPDATE
	SET layout_json = EXCLUDED.layout_json,
		updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, userID, document)
	return err
}
