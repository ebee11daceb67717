package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/shopspring/decimal"
)

var (
	ErrSavingsEntryNotFound = errors.New("savings entry not found")
)

type SavingsEntryRepository interface {
	Create(ctx context.Context, entry *model.SavingsEntry) error
	ByID(ctx context.Context, entryID string) (*model.SavingsEntry, error)
	// ByGoal returns the goal's entries, newest first.
	ByGoal(ctx context.Context, goalID string) ([]*model.SavingsEntry, error)
	// All returns every entry, newest first.
	All(ctx context.Context) ([]*model.SavingsEntry, error)
	UpdateAmount(ctx context.Context, entryID string, amount decimal.Decimal) error
	Delete(ctx context.Context, entryID string) error
}

type savingsEntryRepository struct {
	db *sqlx.DB
}

func NewSavingsEntryRepository(db *sqlx.DB) SavingsEntryRepository {
	return &savingsEntryRepository{db: db}
}

func (r *savingsEntryRepository) Create(ctx context.Context, entry *model.SavingsEntry) error {
	query := `INSERT INTO savings_entries (id, goal_id, amount, method, note, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.GoalID,
		entry.Amount,
		entry.Method,
		entry.Note,
		entry.CreatedAt,
	)

	return err
}

func (r *savingsEntryRepository) ByID(ctx context.Context, entryID string) (*model.SavingsEntry, error) {
	entry := &model.SavingsEntry{}
	query := `SELECT * FROM savings_entries WHERE id = $1`

	err := r.db.GetContext(ctx, entry, query, entryID)
	if err == sql.ErrNoRows {
		return nil, ErrSavingsEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *savingsEntryRepository) ByGoal(ctx context.Context, goalID string) ([]*model.SavingsEntry, error) {
	entries := []*model.SavingsEntry{}
	query := `SELECT * FROM savings_entries WHERE goal_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &entries, query, goalID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *savingsEntryRepository) All(ctx context.Context) ([]*model.SavingsEntry, error) {
	entries := []*model.SavingsEntry{}
	query := `SELECT * FROM savings_entries ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &entries, query)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *savingsEntryRepository) UpdateAmount(ctx context.Context, entryID string, amount decimal.Decimal) error {
	query := `UPDATE savings_entries SET amount = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, amount, entryID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrSavingsEntryNotFound)
}

func (r *savingsEntryRepository) Delete(ctx context.Context, entryID string) error {
	query := `DELETE FROM savings_entries WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, entryID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrSavingsEntryNotFound)
}
