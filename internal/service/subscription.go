package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mumvest/mumvest/internal/kv"
	"github.com/mumvest/mumvest/internal/model"
)

var ErrPremiumRequired = errors.New("premium plan required")

const keySubscriptionActivatedAt = "subscription.activatedAt"

// SubscriptionService keeps the single local plan in the scalar store.
type SubscriptionService struct {
	store     kv.Store
	freeLimit int
	clock     Clock
}

func NewSubscriptionService(store kv.Store, freeLimit int, clock Clock) *SubscriptionService {
	if freeLimit <= 0 {
		freeLimit = model.DefaultFreeGoalLimit
	}
	return &SubscriptionService{store: store, freeLimit: freeLimit, clock: clock}
}

func (s *SubscriptionService) Subscription(ctx context.Context) (*model.Subscription, error) {
	plan, err := kv.GetString(ctx, s.store, kv.KeySubscriptionPlan)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if plan == "" {
		plan = model.SubscriptionPlanFree
	}

	sub := &model.Subscription{
		PlanID:        plan,
		Status:        model.SubscriptionStatusActive,
		FreeGoalLimit: s.freeLimit,
	}

	activated, err := kv.GetString(ctx, s.store, keySubscriptionActivatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if activated != "" {
		if t, err := time.Parse(time.RFC3339, activated); err == nil {
			sub.ActivatedAt = &t
		}
	}

	return sub, nil
}

// Unlock switches to the pro plan.
func (s *SubscriptionService) Unlock(ctx context.Context) (*model.Subscription, error) {
	err := s.store.SetMany(ctx, map[string]string{
		kv.KeySubscriptionPlan:     model.SubscriptionPlanPro,
		keySubscriptionActivatedAt: s.clock.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unlock subscription: %w", err)
	}
	return s.Subscription(ctx)
}

func (s *SubscriptionService) DowngradeToFree(ctx context.Context) error {
	err := s.store.SetMany(ctx, map[string]string{
		kv.KeySubscriptionPlan:     model.SubscriptionPlanFree,
		keySubscriptionActivatedAt: "",
	})
	if err != nil {
		return fmt.Errorf("failed to downgrade subscription: %w", err)
	}
	return nil
}

func (s *SubscriptionService) IsPremium(ctx context.Context) (bool, error) {
	sub, err := s.Subscription(ctx)
	if err != nil {
		return false, err
	}
	return sub.IsPaid(), nil
}

// RequireFeature returns ErrPremiumRequired when the plan lacks feature.
func (s *SubscriptionService) RequireFeature(ctx context.Context, feature string) error {
	sub, err := s.Subscription(ctx)
	if err != nil {
		return err
	}
	if !sub.HasFeature(feature) {
		return fmt.Errorf("%w: %s", ErrPremiumRequired, feature)
	}
	return nil
}
