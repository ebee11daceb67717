package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/model"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
)

type ChallengeRepository interface {
	Create(ctx context.Context, state *model.ChallengeState) error
	ByID(ctx context.Context, id string) (*model.ChallengeState, error)
	// Active returns ErrChallengeNotFound when no challenge is running.
	Active(ctx context.Context) (*model.ChallengeState, error)
	All(ctx context.Context) ([]*model.ChallengeState, error)
	Update(ctx context.Context, state *model.ChallengeState) error
}

type challengeRepository struct {
	db *sqlx.DB
}

func NewChallengeRepository(db *sqlx.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(ctx context.Context, state *model.ChallengeState) error {
	query := `INSERT INTO challenge_state (id, challenge_id, status, check_ins, started_at, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		state.ID,
		state.ChallengeID,
		state.Status,
		state.CheckIns,
		state.StartedAt,
		state.CompletedAt,
	)

	return err
}

func (r *challengeRepository) ByID(ctx context.Context, id string) (*model.ChallengeState, error) {
	state := &model.ChallengeState{}
	err := r.db.GetContext(ctx, state, `SELECT * FROM challenge_state WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (r *challengeRepository) Active(ctx context.Context) (*model.ChallengeState, error) {
	state := &model.ChallengeState{}
	query := `SELECT * FROM challenge_state WHERE status = $1 ORDER BY started_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, state, query, model.ChallengeStatusActive)
	if err == sql.ErrNoRows {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (r *challengeRepository) All(ctx context.Context) ([]*model.ChallengeState, error) {
	states := []*model.ChallengeState{}
	err := r.db.SelectContext(ctx, &states, `SELECT * FROM challenge_state ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *challengeRepository) Update(ctx context.Context, state *model.ChallengeState) error {
	query := `UPDATE challenge_state SET status = $1, check_ins = $2, completed_at = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, state.Status, state.CheckIns, state.CompletedAt, state.ID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrChallengeNotFound)
}
