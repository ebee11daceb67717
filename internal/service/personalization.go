package service

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/mumvest/mumvest/internal/kv"
)

type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// PersonalizationService keeps per-category interest scores as one JSON
// value in the scalar store.
type PersonalizationService struct {
	store kv.Store
	mu    sync.Mutex
}

func NewPersonalizationService(store kv.Store) *PersonalizationService {
	return &PersonalizationService{store: store}
}

func (s *PersonalizationService) Scores(ctx context.Context) (map[string]float64, error) {
	raw, err := kv.GetString(ctx, s.store, kv.KeyCategoryPreferences)
	if err != nil {
		return nil, err
	}

	scores := map[string]float64{}
	if raw == "" {
		return scores, nil
	}
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		return nil, fmt.Errorf("kv %s: %w", kv.KeyCategoryPreferences, err)
	}
	return scores, nil
}

func (s *PersonalizationService) Boost(ctx context.Context, category string, amount float64) error {
	return s.adjust(ctx, category, amount)
}

// Penalize lowers a category score, never below zero.
func (s *PersonalizationService) Penalize(ctx context.Context, category string, amount float64) error {
	return s.adjust(ctx, category, -amount)
}

func (s *PersonalizationService) adjust(ctx context.Context, category string, delta float64) error {
	if category == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.Scores(ctx)
	if err != nil {
		return err
	}
	scores[category] = max(0, scores[category]+delta)

	raw, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, kv.KeyCategoryPreferences, string(raw))
}

// Preferred lists categories from highest to lowest score.
func (s *PersonalizationService) Preferred(ctx context.Context) ([]CategoryScore, error) {
	scores, err := s.Scores(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]CategoryScore, 0, len(scores))
	for c, v := range scores {
		list = append(list, CategoryScore{Category: c, Score: v})
	}
	slices.SortFunc(list, func(a, b CategoryScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return list, nil
}

// SortByPreference orders items by their category score, highest first,
// keeping the original order among equal scores.
func SortByPreference[T any](items []T, scores map[string]float64, category func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(scores[category(b)], scores[category(a)])
	})
}
