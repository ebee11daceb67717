package model

import (
	"slices"
	"time"
)

type Subscription struct {
	PlanID      string     `json:"planId"`
	Status      string     `json:"status"`
	ActivatedAt *time.Time `json:"activatedAt"`
	// FreeGoalLimit overrides DefaultFreeGoalLimit when positive.
	FreeGoalLimit int `json:"-"`
}

const DefaultFreeGoalLimit = 2

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

const (
	SubscriptionPlanFree = "free"
	SubscriptionPlanPro  = "pro"
)

const (
	FeatureInsights       = "insights"
	FeatureExport         = "export"
	FeaturePremiumContent = "premium_content"
)

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

func (s *Subscription) IsPaid() bool {
	return s.PlanID != SubscriptionPlanFree && s.IsActive()
}

// GetGoalLimit returns the maximum number of active goals allowed for this plan
// Returns -1 for unlimited
func (s *Subscription) GetGoalLimit() int {
	if s.IsPaid() {
		return -1
	}
	if s.FreeGoalLimit > 0 {
		return s.FreeGoalLimit
	}
	return DefaultFreeGoalLimit
}

// HasFeature checks if the subscription has access to a specific feature
func (s *Subscription) HasFeature(feature string) bool {
	if !s.IsPaid() {
		return false
	}

	features := map[string][]string{
		SubscriptionPlanPro: {
			FeatureInsights,
			FeatureExport,
			FeaturePremiumContent,
		},
	}

	return slices.Contains(features[s.PlanID], feature)
}
