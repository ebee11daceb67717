package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileRepository interface {
	Get(ctx context.Context) (*model.Profile, error)
	Upsert(ctx context.Context, profile *model.Profile) error
	UpdateCurrency(ctx context.Context, currency model.Currency) error
	UpdateNotifications(ctx context.Context, notificationTime string, enabled bool) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM user_profile WHERE id = $1`, model.ProfileID)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	profile.ID = model.ProfileID
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profile (id, name, currency, financial_situation, notification_time,
			notification_enabled, onboarding_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			currency = excluded.currency,
			financial_situation = excluded.financial_situation,
			notification_time = excluded.notification_time,
			notification_enabled = excluded.notification_enabled,
			onboarding_completed = excluded.onboarding_completed,
			updated_at = excluded.updated_at
	`, profile.ID, profile.Name, profile.Currency, profile.FinancialSituation, profile.NotificationTime,
		profile.NotificationEnabled, profile.OnboardingCompleted, profile.CreatedAt, profile.UpdatedAt)

	return err
}

func (r *profileRepository) UpdateCurrency(ctx context.Context, currency model.Currency) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_profile
		SET currency = $1, updated_at = $2
		WHERE id = $3
	`, currency, time.Now().UTC(), model.ProfileID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrProfileNotFound)
}

func (r *profileRepository) UpdateNotifications(ctx context.Context, notificationTime string, enabled bool) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_profile
		SET notification_time = $1, notification_enabled = $2, updated_at = $3
		WHERE id = $4
	`, notificationTime, enabled, time.Now().UTC(), model.ProfileID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrProfileNotFound)
}
