package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository"
)

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository returns a Postgres-backed AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool) repository.AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) Snapshot(ctx context.Context, userID string, window domain.ActivityWindow) (*domain.ActivitySnapshot, error) {
	const completionsQuery = `
	SELECT completed_at
	FROM tasks
	WHERE user_id = $1
	  AND completed_at >= $2
	  AND completed_at < $3
	`
	const logsQuery = `
	SELECT log_date, count
	FROM habit_logs
	WHERE user_id = $1
	  AND log_date BETWEEN $2 AND $3
	`

	snapshot := &domain.ActivitySnapshot{}
	err := withReadTx(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, completionsQuery, userID, window.Start, window.End)
		if err != nil {
			return err
		}
		for rows.Next() {
			var completedAt time.Time
			if err := rows.Scan(&completedAt); err != nil {
				rows.Close()
				return err
			}
			snapshot.Completions = append(snapshot.Completions, completedAt)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		rows, err = tx.Query(ctx, logsQuery, userID, window.FirstDay, window.LastDay)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var entry domain.HabitLogCount
			if err := rows.Scan(&entry.Date, &entry.Count); err != nil {
				return err
			}
			snapshot.HabitLogs = append(snapshot.HabitLogs, entry)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
