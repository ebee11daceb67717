package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/db"
	"github.com/mumvest/mumvest/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, goalID string) (*model.Goal, error)
	Goals(ctx context.Context, includeArchived bool) ([]*model.Goal, error)
	CountActive(ctx context.Context) (int, error)
	Update(ctx context.Context, goal *model.Goal) error
	Archive(ctx context.Context, goalID string) error
	// MarkCompleted flips is_completed once and reports whether this call did it.
	MarkCompleted(ctx context.Context, goalID string, at time.Time) (bool, error)
	Delete(ctx context.Context, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, name, emoji, goal_type, target_amount, target_date,
	              reminder_frequency, reminder_day, is_archived, is_completed, completed_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.Name,
		goal.Emoji,
		goal.Type,
		goal.TargetAmount,
		goal.TargetDate,
		goal.ReminderFrequency,
		goal.ReminderDay,
		goal.IsArchived,
		goal.IsCompleted,
		goal.CompletedAt,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(ctx context.Context, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.GetContext(ctx, goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Goals(ctx context.Context, includeArchived bool) ([]*model.Goal, error) {
	goals := []*model.Goal{}

	query := `SELECT * FROM goals WHERE is_archived = FALSE ORDER BY created_at DESC`
	if includeArchived {
		query = `SELECT * FROM goals ORDER BY created_at DESC`
	}

	err := r.db.SelectContext(ctx, &goals, query)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE is_archived = FALSE AND is_completed = FALSE`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	query := `UPDATE goals
	          SET name = $1, emoji = $2, goal_type = $3, target_amount = $4, target_date = $5,
	              reminder_frequency = $6, reminder_day = $7, updated_at = $8
	          WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		goal.Name,
		goal.Emoji,
		goal.Type,
		goal.TargetAmount,
		goal.TargetDate,
		goal.ReminderFrequency,
		goal.ReminderDay,
		goal.UpdatedAt,
		goal.ID,
	)
	if err != nil {
		return err
	}

	return expectRow(result, ErrGoalNotFound)
}

func (r *goalRepository) Archive(ctx context.Context, goalID string) error {
	query := `UPDATE goals SET is_archived = TRUE, updated_at = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), goalID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrGoalNotFound)
}

func (r *goalRepository) MarkCompleted(ctx context.Context, goalID string, at time.Time) (bool, error) {
	query := `UPDATE goals SET is_completed = TRUE, completed_at = $1, updated_at = $1
	          WHERE id = $2 AND is_completed = FALSE`

	result, err := r.db.ExecContext(ctx, query, at, goalID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

// Delete removes the goal and its savings entries in one transaction.
func (r *goalRepository) Delete(ctx context.Context, goalID string) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM savings_entries WHERE goal_id = $1`, goalID)
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, goalID)
		if err != nil {
			return err
		}

		return expectRow(result, ErrGoalNotFound)
	})
}

// expectRow maps zero affected rows to notFound.
func expectRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
