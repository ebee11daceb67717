package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/db"
)

// wipeOrder deletes children before parents.
var wipeOrder = []string{
	"savings_entries",
	"goals",
	"lesson_progress",
	"money_moment_state",
	"smart_swap_state",
	"challenge_state",
	"badges",
	"user_profile",
}

type MaintenanceRepository interface {
	// Wipe deletes every user row in one transaction. The scalar store is separate.
	Wipe(ctx context.Context) error
	Counts(ctx context.Context) (map[string]int, error)
}

type maintenanceRepository struct {
	db *sqlx.DB
}

func NewMaintenanceRepository(db *sqlx.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Wipe(ctx context.Context) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, table := range wipeOrder {
			_, err := tx.ExecContext(ctx, "DELETE FROM "+table)
			if err != nil {
				return fmt.Errorf("failed to wipe %s: %w", table, err)
			}
		}
		return nil
	})
}

func (r *maintenanceRepository) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(wipeOrder))
	for _, table := range wipeOrder {
		var n int
		err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
