// Package kv is the scalar key/value store behind streaks, XP, settings and
// other single-value state. Missing keys read as zero values.
package kv

import (
	"context"
	"fmt"
	"strconv"
)

const (
	KeyStreakCurrent       = "streak.current"
	KeyStreakLongest       = "streak.longest"
	KeyStreakLastActive    = "streak.lastActiveDate"
	KeyXPTotal             = "xp.total"
	KeyIndependenceScore   = "independence.score"
	KeyOnboardingCompleted = "onboarding.completed"
	KeyOnboardingSelection = "onboarding.selections"
	KeyMomentStartDate     = "content.momentStartDate"
	KeyFirstLaunchDate     = "app.firstLaunchDate"
	KeyCurrency            = "settings.currency"
	KeyNotificationTime    = "settings.notificationTime"
	KeyHasShared           = "has_shared"
	KeyCategoryPreferences = "personalization.categoryPreferences"
	KeySubscriptionPlan    = "subscription.plan"
)

type Store interface {
	// Get reports ok=false for a missing key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all values or none.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

func GetString(ctx context.Context, s Store, key string) (string, error) {
	v, _, err := s.Get(ctx, key)
	return v, err
}

func GetInt(ctx context.Context, s Store, key string) (int, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("kv %s: %w", key, err)
	}
	return n, nil
}

func GetFloat(ctx context.Context, s Store, key string) (float64, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("kv %s: %w", key, err)
	}
	return f, nil
}

func GetBool(ctx context.Context, s Store, key string) (bool, error) {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("kv %s: %w", key, err)
	}
	return b, nil
}

func Int(n int) string { return strconv.Itoa(n) }

func Bool(b bool) string { return strconv.FormatBool(b) }
