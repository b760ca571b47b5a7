package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/repository"
)

type goalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository returns a Postgres-backed implementation of GoalRepository.
func NewGoalRepository(pool *pgxpool.Pool) repository.GoalRepository {
	return &goalRepository{pool: pool}
}

func (r *goalRepository) GetByID(ctx context.Context, userID, id string) (*domain.Goal, error) {
	const query = `
	SELECT id, user_id, title, target_value, current_value, unit, week_start, status, created_at, updated_at
	FROM goals
	WHERE id = $1 AND user_id = $2
	`
	return scanGoal(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *goalRepository) List(ctx context.Context, userID string, filter domain.GoalFilter, page domain.PageRequest) ([]domain.Goal, int, error) {
	const where = `
	WHERE user_id = $1
	  AND ($2 = '' OR title ILIKE $2 ESCAPE '\')
	`
	const countQuery = `SELECT COUNT(*) FROM goals` + where
	const listQuery = `
	SELECT id, user_id, title, target_value, current_value, unit, week_start, status, created_at, updated_at
	FROM goals` + where + `
	ORDER BY week_start DESC, created_at DESC, id
	LIMIT $3 OFFSET $4
	`

	search := likePattern(filter.Search)

	var (
		goals []domain.Goal
		total int
	)
	err := withReadTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQuery, userID, search).Scan(&total); err != nil {
			return err
		}
		rows, err := tx.Query(ctx, listQuery, userID, search, page.Limit(), page.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			goal, err := scanGoal(rows)
			if err != nil {
				return err
			}
			goals = append(goals, *goal)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return goals, total, nil
}

func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if goal == nil {
		return domain.ErrInvalidPayload
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO goals (id, user_id, title, target_value, current_value, unit, week_start, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		domain.CalendarDay(goal.WeekStart),
		string(goal.Status),
	).Scan(&goal.CreatedAt, &goal.UpdatedAt)
}

func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	if goal == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE goals
	SET title = $3,
		target_value = $4,
		current_value = $5,
		unit = $6,
		week_start = $7,
		status = $8,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		domain.CalendarDay(goal.WeekStart),
		string(goal.Status),
	).Scan(&goal.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrGoalNotFound
		}
		return err
	}
	return nil
}

func (r *goalRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func scanGoal(row scanner) (*domain.Goal, error) {
	var (
		goal   domain.Goal
		status string
	)
	if err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.TargetValue,
		&goal.CurrentValue,
		&goal.Unit,
		&goal.WeekStart,
		&status,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	goal.Status = domain.GoalStatus(status)
	return &goal, nil
}
