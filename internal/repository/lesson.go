package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/model"
)

type LessonProgressRepository interface {
	// Complete records completion and reports whether the lesson was not already complete.
	Complete(ctx context.Context, lessonID string, level, xp int, at time.Time) (bool, error)
	All(ctx context.Context) ([]*model.LessonProgress, error)
	CountCompleted(ctx context.Context) (int, error)
}

type lessonProgressRepository struct {
	db *sqlx.DB
}

func NewLessonProgressRepository(db *sqlx.DB) LessonProgressRepository {
	return &lessonProgressRepository{db: db}
}

func (r *lessonProgressRepository) Complete(ctx context.Context, lessonID string, level, xp int, at time.Time) (bool, error) {
	query := `INSERT INTO lesson_progress (lesson_id, level, is_completed, xp_earned, completed_at, started_at)
	          VALUES ($1, $2, TRUE, $3, $4, $4)
	          ON CONFLICT (lesson_id) DO UPDATE SET
	              is_completed = TRUE, xp_earned = excluded.xp_earned, completed_at = excluded.completed_at
	          WHERE lesson_progress.is_completed = FALSE`

	result, err := r.db.ExecContext(ctx, query, lessonID, level, xp, at)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *lessonProgressRepository) All(ctx context.Context) ([]*model.LessonProgress, error) {
	progress := []*model.LessonProgress{}
	err := r.db.SelectContext(ctx, &progress, `SELECT * FROM lesson_progress ORDER BY started_at ASC`)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *lessonProgressRepository) CountCompleted(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM lesson_progress WHERE is_completed = TRUE`)
	return count, err
}
