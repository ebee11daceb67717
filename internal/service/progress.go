package service

import (
	"context"
	"fmt"

	"github.com/mumvest/mumvest/internal/kv"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/shopspring/decimal"
)

const (
	XPSavingsLogged     = 15
	XPMomentRead        = 10
	XPSwapAdopted       = 20
	XPChallengeCheckIn  = 10
	XPChallengeComplete = 100
)

// Reward is what a qualifying action earned.
type Reward struct {
	XPAwarded int          `json:"xpAwarded"`
	Streak    int          `json:"streak"`
	TotalXP   int          `json:"totalXp"`
	Badge     *model.Badge `json:"badge,omitempty"`
}

type GoalReward struct {
	*model.GoalWithProgress
	Reward Reward `json:"reward"`
}

type SavingsReward struct {
	*LogSavingsResult
	Reward Reward `json:"reward"`
}

type LessonReward struct {
	*CompleteLessonResult
	Reward Reward `json:"reward"`
}

type MomentReward struct {
	FirstRead bool   `json:"firstRead"`
	Reward    Reward `json:"reward"`
}

type SwapReward struct {
	Adopted bool   `json:"adopted"`
	Reward  Reward `json:"reward"`
}

type CheckInReward struct {
	*CheckInResult
	Reward Reward `json:"reward"`
}

type Dashboard struct {
	Gamification    model.GamificationState   `json:"gamification"`
	TotalSaved      decimal.Decimal           `json:"totalSaved"`
	Goals           []*model.GoalWithProgress `json:"goals"`
	CanCreateGoal   bool                      `json:"canCreateGoal"`
	Weekly          *model.WeeklySummary      `json:"weekly"`
	TodaysMoment    *TodaysMoments            `json:"todaysMoment"`
	ActiveChallenge *model.ChallengeState     `json:"activeChallenge"`
}

// ProgressService runs the side effects of every qualifying action in a
// fixed order: the action itself, XP, streak, then one badge check.
type ProgressService struct {
	goals        *GoalService
	lessons      *LessonService
	content      *ContentService
	gamification *GamificationService
	store        kv.Store
}

func NewProgressService(
	goals *GoalService,
	lessons *LessonService,
	content *ContentService,
	gamification *GamificationService,
	store kv.Store,
) *ProgressService {
	return &ProgressService{
		goals:        goals,
		lessons:      lessons,
		content:      content,
		gamification: gamification,
		store:        store,
	}
}

func (s *ProgressService) reward(ctx context.Context, xp int, touchStreak, checkBadges bool) (Reward, error) {
	r := Reward{XPAwarded: xp}

	if xp > 0 {
		if _, err := s.gamification.AddXP(ctx, xp); err != nil {
			return r, err
		}
	}

	if touchStreak {
		if _, err := s.gamification.RecordActivity(ctx); err != nil {
			return r, err
		}
	}

	if checkBadges {
		bc, err := s.BadgeContext(ctx)
		if err != nil {
			return r, err
		}
		badge, err := s.gamification.CheckAndAwardBadges(ctx, bc)
		if err != nil {
			return r, err
		}
		r.Badge = badge
	}

	st := s.gamification.State()
	r.Streak = st.CurrentStreak
	r.TotalXP = st.TotalXP
	return r, nil
}

// CreateGoal earns the same XP as logging savings.
func (s *ProgressService) CreateGoal(ctx context.Context, input CreateGoalInput) (*GoalReward, error) {
	goal, err := s.goals.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	reward, err := s.reward(ctx, XPSavingsLogged, true, true)
	if err != nil {
		return nil, fmt.Errorf("goal created but reward failed: %w", err)
	}

	return &GoalReward{GoalWithProgress: goal, Reward: reward}, nil
}

func (s *ProgressService) LogSavings(ctx context.Context, input LogSavingsInput) (*SavingsReward, error) {
	result, err := s.goals.LogSavings(ctx, input)
	if err != nil {
		return nil, err
	}

	reward, err := s.reward(ctx, XPSavingsLogged, true, true)
	if err != nil {
		return nil, fmt.Errorf("savings logged but reward failed: %w", err)
	}

	return &SavingsReward{LogSavingsResult: result, Reward: reward}, nil
}

func (s *ProgressService) CompleteLesson(ctx context.Context, lessonID string) (*LessonReward, error) {
	result, err := s.lessons.Complete(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	reward, err := s.reward(ctx, result.XPAwarded, true, true)
	if err != nil {
		return nil, fmt.Errorf("lesson completed but reward failed: %w", err)
	}

	return &LessonReward{CompleteLessonResult: result, Reward: reward}, nil
}

// ReadMoment only rewards the first read of a moment.
func (s *ProgressService) ReadMoment(ctx context.Context, momentID string) (*MomentReward, error) {
	newly, err := s.content.MarkMomentRead(ctx, momentID)
	if err != nil {
		return nil, err
	}

	reward := Reward{}
	if newly {
		reward, err = s.reward(ctx, XPMomentRead, true, true)
		if err != nil {
			return nil, fmt.Errorf("moment read but reward failed: %w", err)
		}
	} else {
		st := s.gamification.State()
		reward.Streak, reward.TotalXP = st.CurrentStreak, st.TotalXP
	}

	return &MomentReward{FirstRead: newly, Reward: reward}, nil
}

func (s *ProgressService) AdoptSwap(ctx context.Context, swapID string) (*SwapReward, error) {
	newly, err := s.content.AdoptSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}

	reward := Reward{}
	if newly {
		reward, err = s.reward(ctx, XPSwapAdopted, true, true)
		if err != nil {
			return nil, fmt.Errorf("swap adopted but reward failed: %w", err)
		}
	} else {
		st := s.gamification.State()
		reward.Streak, reward.TotalXP = st.CurrentStreak, st.TotalXP
	}

	return &SwapReward{Adopted: newly, Reward: reward}, nil
}

// CheckIn adds the completion bonus and checks badges when the last
// check-in completes the challenge.
func (s *ProgressService) CheckIn(ctx context.Context, index int) (*CheckInReward, error) {
	result, err := s.content.CheckInChallenge(ctx, index)
	if err != nil {
		return nil, err
	}

	xp := XPChallengeCheckIn
	if result.Completed {
		xp += XPChallengeComplete
	}

	reward, err := s.reward(ctx, xp, true, result.Completed)
	if err != nil {
		return nil, fmt.Errorf("check-in recorded but reward failed: %w", err)
	}

	return &CheckInReward{CheckInResult: result, Reward: reward}, nil
}

// MarkShared records that progress was shared. It earns no XP and does not
// touch the streak.
func (s *ProgressService) MarkShared(ctx context.Context) (*Reward, error) {
	err := s.store.Set(ctx, kv.KeyHasShared, kv.Bool(true))
	if err != nil {
		return nil, fmt.Errorf("failed to mark shared: %w", err)
	}

	reward, err := s.reward(ctx, 0, false, true)
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

// BadgeContext gathers the aggregates badge rules read. Engagement counts
// degrade to zero on read failure.
func (s *ProgressService) BadgeContext(ctx context.Context) (model.BadgeContext, error) {
	total, err := s.goals.TotalSaved(ctx)
	if err != nil {
		return model.BadgeContext{}, err
	}

	goals, err := s.goals.Goals(ctx, false)
	if err != nil {
		return model.BadgeContext{}, err
	}

	shared, err := kv.GetBool(ctx, s.store, kv.KeyHasShared)
	if err != nil {
		return model.BadgeContext{}, err
	}

	st := s.gamification.State()
	return model.BadgeContext{
		TotalSaved:       total,
		GoalsCount:       len(goals),
		CompletedLessons: s.lessons.CompletedCount(ctx),
		AdoptedSwaps:     s.content.AdoptedCount(ctx),
		ReadMoments:      s.content.ReadCount(ctx),
		HasShared:        shared,
		CurrentStreak:    st.CurrentStreak,
		LongestStreak:    st.LongestStreak,
	}, nil
}

func (s *ProgressService) RecalculateScore(ctx context.Context) (int, error) {
	total, err := s.goals.TotalSaved(ctx)
	if err != nil {
		return 0, err
	}

	withSavings, err := s.goals.GoalsWithSavings(ctx)
	if err != nil {
		return 0, err
	}

	return s.gamification.CalculateIndependenceScore(ctx, model.ScoreInput{
		CompletedLessons:         s.lessons.CompletedCount(ctx),
		GoalsWithPositiveSavings: withSavings,
		TotalSaved:               total,
		AdoptedSwaps:             s.content.AdoptedCount(ctx),
		EarnedBadges:             len(s.gamification.State().EarnedBadges),
	})
}

func (s *ProgressService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if _, err := s.RecalculateScore(ctx); err != nil {
		return nil, err
	}

	d := &Dashboard{Gamification: s.gamification.State()}
	var err error

	if d.TotalSaved, err = s.goals.TotalSaved(ctx); err != nil {
		return nil, err
	}
	if d.Goals, err = s.goals.Goals(ctx, false); err != nil {
		return nil, err
	}
	if d.CanCreateGoal, err = s.goals.CanCreateGoal(ctx); err != nil {
		return nil, err
	}
	if d.Weekly, err = s.goals.WeeklySummary(ctx); err != nil {
		return nil, err
	}
	if d.TodaysMoment, err = s.content.TodaysMoment(ctx); err != nil {
		return nil, err
	}
	if d.ActiveChallenge, err = s.content.ActiveChallenge(ctx); err != nil {
		return nil, err
	}

	return d, nil
}
