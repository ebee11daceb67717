package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mumvest/mumvest/internal/dates"
	"github.com/mumvest/mumvest/internal/kv"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/repository"
	"github.com/mumvest/mumvest/internal/validation"
)

var ErrAlreadyOnboarded = errors.New("onboarding already completed")

const defaultNotificationTime = "08:00"

// UserService handles onboarding and the single local profile.
type UserService struct {
	profileRepo  repository.ProfileRepository
	store        kv.Store
	gamification *GamificationService
	clock        Clock
}

func NewUserService(
	profileRepo repository.ProfileRepository,
	store kv.Store,
	gamification *GamificationService,
	clock Clock,
) *UserService {
	return &UserService{
		profileRepo:  profileRepo,
		store:        store,
		gamification: gamification,
		clock:        clock,
	}
}

func (s *UserService) IsOnboarded(ctx context.Context) (bool, error) {
	return kv.GetBool(ctx, s.store, kv.KeyOnboardingCompleted)
}

// CompleteOnboarding stores the profile and starts the program: the moment
// rotation begins today and the streak starts at one.
func (s *UserService) CompleteOnboarding(ctx context.Context, sel model.OnboardingSelections) (*model.Profile, error) {
	done, err := s.IsOnboarded(ctx)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrAlreadyOnboarded
	}

	sel.Name = strings.TrimSpace(sel.Name)
	if sel.NotificationTime == "" {
		sel.NotificationTime = defaultNotificationTime
	}
	for _, err := range []error{
		validation.ValidateName(sel.Name),
		validation.ValidateSituation(sel.Situation),
		validation.ValidateNotificationTime(sel.NotificationTime),
	} {
		if err != nil {
			return nil, err
		}
	}
	if sel.GoalType != "" {
		if err := validation.ValidateGoalType(sel.GoalType); err != nil {
			return nil, err
		}
	}

	currency := model.CurrencyUSD
	if stored, err := kv.GetString(ctx, s.store, kv.KeyCurrency); err == nil && stored != "" {
		currency = model.Currency(stored)
	}

	profile := &model.Profile{
		Name:                sel.Name,
		Currency:            currency,
		FinancialSituation:  sel.Situation,
		NotificationTime:    sel.NotificationTime,
		NotificationEnabled: sel.NotificationsEnabled,
		OnboardingCompleted: true,
	}
	err = s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	raw, err := json.Marshal(sel)
	if err != nil {
		return nil, err
	}

	today := dates.Format(s.clock.Today())
	err = s.store.SetMany(ctx, map[string]string{
		kv.KeyOnboardingCompleted: kv.Bool(true),
		kv.KeyOnboardingSelection: string(raw),
		kv.KeyFirstLaunchDate:     today,
		kv.KeyMomentStartDate:     today,
		kv.KeyCurrency:            string(currency),
		kv.KeyNotificationTime:    sel.NotificationTime,
		kv.KeyStreakCurrent:       kv.Int(1),
		kv.KeyStreakLongest:       kv.Int(1),
		kv.KeyStreakLastActive:    today,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	if err := s.gamification.Load(ctx); err != nil {
		return nil, err
	}

	slog.Info("onboarding completed", "situation", sel.Situation)
	return profile, nil
}

func (s *UserService) Selections(ctx context.Context) (*model.OnboardingSelections, error) {
	raw, err := kv.GetString(ctx, s.store, kv.KeyOnboardingSelection)
	if err != nil || raw == "" {
		return nil, err
	}

	var sel model.OnboardingSelections
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		return nil, fmt.Errorf("kv %s: %w", kv.KeyOnboardingSelection, err)
	}
	return &sel, nil
}

func (s *UserService) Profile(ctx context.Context) (*model.Profile, error) {
	return s.profileRepo.Get(ctx)
}

func (s *UserService) UpdateName(ctx context.Context, name string) (*model.Profile, error) {
	name = strings.TrimSpace(name)

	err := validation.ValidateName(name)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	profile.Name = name
	err = s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update name: %w", err)
	}
	return profile, nil
}

func (s *UserService) UpdateCurrency(ctx context.Context, code string) (model.Currency, error) {
	currency, err := validation.ParseCurrency(code)
	if err != nil {
		return "", err
	}

	err = s.profileRepo.UpdateCurrency(ctx, currency)
	if err != nil {
		return "", err
	}

	err = s.store.Set(ctx, kv.KeyCurrency, string(currency))
	if err != nil {
		return "", fmt.Errorf("failed to save currency: %w", err)
	}
	return currency, nil
}

// Currency falls back to USD before onboarding.
func (s *UserService) Currency(ctx context.Context) (model.Currency, error) {
	code, err := kv.GetString(ctx, s.store, kv.KeyCurrency)
	if err != nil {
		return "", err
	}
	if c := model.Currency(code); c.Supported() {
		return c, nil
	}
	return model.CurrencyUSD, nil
}

func (s *UserService) UpdateNotificationTime(ctx context.Context, notificationTime string) error {
	err := validation.ValidateNotificationTime(notificationTime)
	if err != nil {
		return err
	}

	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return err
	}

	err = s.profileRepo.UpdateNotifications(ctx, notificationTime, profile.NotificationEnabled)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, kv.KeyNotificationTime, notificationTime)
}

// ToggleNotifications flips reminders on or off and returns the new value.
func (s *UserService) ToggleNotifications(ctx context.Context) (bool, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return false, err
	}

	enabled := !profile.NotificationEnabled
	err = s.profileRepo.UpdateNotifications(ctx, profile.NotificationTime, enabled)
	if err != nil {
		return profile.NotificationEnabled, err
	}
	return enabled, nil
}
