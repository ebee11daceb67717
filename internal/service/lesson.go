package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mumvest/mumvest/internal/content"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/repository"
)

type LessonView struct {
	content.Lesson
	IsCompleted bool `json:"isCompleted"`
	IsLocked    bool `json:"isLocked"`
}

type LevelProgress struct {
	Level     int `json:"level"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type CompleteLessonResult struct {
	Lesson        content.Lesson `json:"lesson"`
	Newly         bool           `json:"newly"`
	XPAwarded     int            `json:"xpAwarded"`
	LevelComplete bool           `json:"levelComplete"`
}

type LessonService struct {
	catalog             *content.Catalog
	repo                repository.LessonProgressRepository
	subscriptionService *SubscriptionService
	clock               Clock
}

func NewLessonService(
	catalog *content.Catalog,
	repo repository.LessonProgressRepository,
	subscriptionService *SubscriptionService,
	clock Clock,
) *LessonService {
	return &LessonService{
		catalog:             catalog,
		repo:                repo,
		subscriptionService: subscriptionService,
		clock:               clock,
	}
}

func (s *LessonService) completed(ctx context.Context) (map[string]bool, error) {
	progress, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(progress))
	for _, p := range progress {
		if p.IsCompleted {
			done[p.LessonID] = true
		}
	}
	return done, nil
}

// Lessons lists the catalog in level order with completion and lock flags.
func (s *LessonService) Lessons(ctx context.Context) ([]LessonView, error) {
	done, err := s.completed(ctx)
	if err != nil {
		return nil, err
	}
	premium, err := s.subscriptionService.IsPremium(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]LessonView, 0, len(s.catalog.Lessons))
	for _, l := range s.catalog.Lessons {
		views = append(views, LessonView{
			Lesson:      l,
			IsCompleted: done[l.ID],
			IsLocked:    l.IsPremium && !premium,
		})
	}
	return views, nil
}

// Lesson returns ErrPremiumRequired for locked premium lessons.
func (s *LessonService) Lesson(ctx context.Context, lessonID string) (content.Lesson, error) {
	l, ok := s.catalog.Lesson(lessonID)
	if !ok {
		return content.Lesson{}, fmt.Errorf("%w: lesson %s", ErrContentNotFound, lessonID)
	}
	if l.IsPremium {
		if err := s.subscriptionService.RequireFeature(ctx, model.FeaturePremiumContent); err != nil {
			return content.Lesson{}, err
		}
	}
	return l, nil
}

// Complete records the lesson once. XP is only reported for the first
// completion.
func (s *LessonService) Complete(ctx context.Context, lessonID string) (*CompleteLessonResult, error) {
	l, err := s.Lesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	newly, err := s.repo.Complete(ctx, l.ID, l.Level, l.XPReward, s.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to complete lesson: %w", err)
	}

	result := &CompleteLessonResult{Lesson: l, Newly: newly}
	if newly {
		result.XPAwarded = l.XPReward
	}

	done, err := s.completed(ctx)
	if err != nil {
		return nil, err
	}
	level := s.catalog.LessonsInLevel(l.Level)
	result.LevelComplete = len(level) > 0
	for _, other := range level {
		if !done[other.ID] {
			result.LevelComplete = false
			break
		}
	}

	return result, nil
}

// CompletedCount feeds badge and score aggregates, so a read failure counts
// as zero.
func (s *LessonService) CompletedCount(ctx context.Context) int {
	n, err := s.repo.CountCompleted(ctx)
	if err != nil {
		slog.Warn("failed to count completed lessons", "error", err)
		return 0
	}
	return n
}

func (s *LessonService) LevelProgress(ctx context.Context) ([]LevelProgress, error) {
	done, err := s.completed(ctx)
	if err != nil {
		return nil, err
	}

	levels := []LevelProgress{}
	for _, l := range s.catalog.Lessons {
		if len(levels) == 0 || levels[len(levels)-1].Level != l.Level {
			levels = append(levels, LevelProgress{Level: l.Level})
		}
		lp := &levels[len(levels)-1]
		lp.Total++
		if done[l.ID] {
			lp.Completed++
		}
	}
	return levels, nil
}
