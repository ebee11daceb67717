package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/model"
)

// BadgeRepository is append-only: a badge row is never updated or removed
// outside a full reset.
type BadgeRepository interface {
	Earned(ctx context.Context) ([]model.EarnedBadge, error)
	// Award reports false when the badge was already earned.
	Award(ctx context.Context, badgeID string, at time.Time) (bool, error)
}

type badgeRepository struct {
	db *sqlx.DB
}

func NewBadgeRepository(db *sqlx.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func (r *badgeRepository) Earned(ctx context.Context) ([]model.EarnedBadge, error) {
	badges := []model.EarnedBadge{}
	err := r.db.SelectContext(ctx, &badges, `SELECT badge_id, earned_at FROM badges ORDER BY earned_at ASC, badge_id ASC`)
	if err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *badgeRepository) Award(ctx context.Context, badgeID string, at time.Time) (bool, error) {
	query := `INSERT INTO badges (badge_id, earned_at) VALUES ($1, $2) ON CONFLICT (badge_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, badgeID, at)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}
