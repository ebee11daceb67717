package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/model"
)

type SwapStateRepository interface {
	// Adopt reports whether the swap was not already adopted.
	Adopt(ctx context.Context, swapID string, at time.Time) (bool, error)
	All(ctx context.Context) ([]*model.SwapState, error)
	CountAdopted(ctx context.Context) (int, error)
}

type swapStateRepository struct {
	db *sqlx.DB
}

func NewSwapStateRepository(db *sqlx.DB) SwapStateRepository {
	return &swapStateRepository{db: db}
}

func (r *swapStateRepository) Adopt(ctx context.Context, swapID string, at time.Time) (bool, error) {
	query := `INSERT INTO smart_swap_state (swap_id, is_adopted, adopted_at) VALUES ($1, TRUE, $2)
	          ON CONFLICT (swap_id) DO UPDATE SET is_adopted = TRUE, adopted_at = excluded.adopted_at
	          WHERE smart_swap_state.is_adopted = FALSE`

	result, err := r.db.ExecContext(ctx, query, swapID, at)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *swapStateRepository) All(ctx context.Context) ([]*model.SwapState, error) {
	states := []*model.SwapState{}
	err := r.db.SelectContext(ctx, &states, `SELECT * FROM smart_swap_state`)
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *swapStateRepository) CountAdopted(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM smart_swap_state WHERE is_adopted = TRUE`)
	return count, err
}
