package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/model"
)

type MomentStateRepository interface {
	// ByID returns the zero state for a moment that has never been touched.
	ByID(ctx context.Context, momentID string) (*model.MomentState, error)
	All(ctx context.Context) ([]*model.MomentState, error)
	// MarkRead reports whether the moment was unread before this call.
	MarkRead(ctx context.Context, momentID string, at time.Time) (bool, error)
	SetSaved(ctx context.Context, momentID string, saved bool) error
	SetHelpful(ctx context.Context, momentID string, helpful bool) error
	CountRead(ctx context.Context) (int, error)
}

type momentStateRepository struct {
	db *sqlx.DB
}

func NewMomentStateRepository(db *sqlx.DB) MomentStateRepository {
	return &momentStateRepository{db: db}
}

func (r *momentStateRepository) ByID(ctx context.Context, momentID string) (*model.MomentState, error) {
	state := &model.MomentState{}
	err := r.db.GetContext(ctx, state, `SELECT * FROM money_moment_state WHERE moment_id = $1`, momentID)
	if err == sql.ErrNoRows {
		return &model.MomentState{MomentID: momentID}, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (r *momentStateRepository) All(ctx context.Context) ([]*model.MomentState, error) {
	states := []*model.MomentState{}
	err := r.db.SelectContext(ctx, &states, `SELECT * FROM money_moment_state`)
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *momentStateRepository) MarkRead(ctx context.Context, momentID string, at time.Time) (bool, error) {
	query := `INSERT INTO money_moment_state (moment_id, is_read, read_at) VALUES ($1, TRUE, $2)
	          ON CONFLICT (moment_id) DO UPDATE SET is_read = TRUE, read_at = excluded.read_at
	          WHERE money_moment_state.is_read = FALSE`

	result, err := r.db.ExecContext(ctx, query, momentID, at)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *momentStateRepository) SetSaved(ctx context.Context, momentID string, saved bool) error {
	query := `INSERT INTO money_moment_state (moment_id, is_saved) VALUES ($1, $2)
	          ON CONFLICT (moment_id) DO UPDATE SET is_saved = excluded.is_saved`

	_, err := r.db.ExecContext(ctx, query, momentID, saved)
	return err
}

func (r *momentStateRepository) SetHelpful(ctx context.Context, momentID string, helpful bool) error {
	query := `INSERT INTO money_moment_state (moment_id, is_helpful) VALUES ($1, $2)
	          ON CONFLICT (moment_id) DO UPDATE SET is_helpful = excluded.is_helpful`

	_, err := r.db.ExecContext(ctx, query, momentID, helpful)
	return err
}

func (r *momentStateRepository) CountRead(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM money_moment_state WHERE is_read = TRUE`)
	return count, err
}
