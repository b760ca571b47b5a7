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

type habitRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRepository returns a Postgres-backed implementation of HabitRepository.
func NewHabitRepository(pool *pgxpool.Pool) repository.HabitRepository {
	return &habitRepository{pool: pool}
}

func (r *habitRepository) GetByID(ctx context.Context, userID, id string) (*domain.Habit, error) {
	const query = `
	SELECT id, user_id, name, frequency, target_per_week, created_at, updated_at
	FROM habits
	WHERE id = $1 AND user_id = $2
	`
	return scanHabit(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *habitRepository) List(ctx context.Context, userID string, filter domain.HabitFilter, page domain.PageRequest) ([]domain.Habit, int, error) {
	const where = `
	WHERE user_id = $1
	  AND ($2 = '' OR name ILIKE $2 ESCAPE '\')
	`
	const countQuery = `SELECT COUNT(*) FROM habits` + where
	const listQuery = `
	SELECT id, user_id, name, frequency, target_per_week, created_at, updated_at
	FROM habits` + where + `
	ORDER BY created_at DESC, id
	LIMIT $3 OFFSET $4
	`

	search := likePattern(filter.Search)

	var (
		habits []domain.Habit
		total  int
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
			habit, err := scanHabit(rows)
			if err != nil {
				return err
			}
			habits = append(habits, *habit)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, err
	}
	return habits, total, nil
}

func (r *habitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	if habit == nil {
		return domain.ErrInvalidPayload
	}
	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO habits (id, user_id, name, frequency, target_per_week)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		habit.ID,
		habit.UserID,
		habit.Name,
		string(habit.Frequency),
		habit.TargetPerWeek,
	).Scan(&habit.CreatedAt, &habit.UpdatedAt)
}

func (r *habitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	if habit == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE habits
	SET name = $3,
		frequency = $4,
		target_per_week = $5,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		habit.ID,
		habit.UserID,
		habit.Name,
		string(habit.Frequency),
		habit.TargetPerWeek,
	).Scan(&habit.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrHabitNotFound
		}
		return err
	}
	return nil
}

func (r *habitRepository) Delete(ctx context.Context, userID, id string) error {
	// habit_logs.habit_id cascades.
	const query = `DELETE FROM habits WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *habitRepository) UpsertLog(ctx context.Context, log *domain.HabitLog) error {
	if log == nil {
		return domain.ErrInvalidPayload
	}
	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO habit_logs (id, habit_id, user_id, log_date, count)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (habit_id, log_date) DO UPDATE
	SET count = EXCLUDED.count
	RETURNING id, log_date, count
	`
	return r.pool.QueryRow(ctx, query,
		log.ID,
		log.HabitID,
		log.UserID,
		domain.CalendarDay(log.Date),
		log.Count,
	).Scan(&log.ID, &log.Date, &log.Count)
}

func scanHabit(row scanner) (*domain.Habit, error) {
	var (
		habit     domain.Habit
		frequency string
	)
	if err := row.Scan(
		&habit.ID,
		&habit.UserID,
		&habit.Name,
		&frequency,
		&habit.TargetPerWeek,
		&habit.CreatedAt,
		&habit.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, err
	}
	habit.Frequency = domain.HabitFrequency(frequency)
	return &habit, nil
}
