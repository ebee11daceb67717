package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mumvest/mumvest/internal/dates"
	"github.com/mumvest/mumvest/internal/kv"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/repository"
	"github.com/mumvest/mumvest/internal/validation"
	"github.com/shopspring/decimal"
)

type badgeRule struct {
	badge model.Badge
	check func(c model.BadgeContext) bool
}

var (
	hundredSaved  = decimal.NewFromInt(100)
	thousandSaved = decimal.NewFromInt(1000)
)

// Evaluated in order; the first unearned match wins.
var badgeRules = []badgeRule{
	{model.Badge{ID: "first-step", Name: "First Step", Icon: "👣", Description: "Logged your first saving"},
		func(c model.BadgeContext) bool { return c.TotalSaved.IsPositive() }},
	{model.Badge{ID: "money-aware", Name: "Money Aware", Icon: "💡", Description: "Completed 5 lessons"},
		func(c model.BadgeContext) bool { return c.CompletedLessons >= 5 }},
	{model.Badge{ID: "smart-saver", Name: "Smart Saver", Icon: "🎓", Description: "Completed 10 lessons"},
		func(c model.BadgeContext) bool { return c.CompletedLessons >= 10 }},
	{model.Badge{ID: "7-day-streak", Name: "Week Warrior", Icon: "🔥", Description: "Kept a 7 day streak"},
		func(c model.BadgeContext) bool { return c.CurrentStreak >= 7 }},
	{model.Badge{ID: "30-day-streak", Name: "Habit Builder", Icon: "🏆", Description: "Kept a 30 day streak"},
		func(c model.BadgeContext) bool { return c.CurrentStreak >= 30 }},
	{model.Badge{ID: "century-saver", Name: "Century Saver", Icon: "💯", Description: "Saved 100 in total"},
		func(c model.BadgeContext) bool { return c.TotalSaved.GreaterThanOrEqual(hundredSaved) }},
	{model.Badge{ID: "grand-saver", Name: "Grand Saver", Icon: "💰", Description: "Saved 1,000 in total"},
		func(c model.BadgeContext) bool { return c.TotalSaved.GreaterThanOrEqual(thousandSaved) }},
	{model.Badge{ID: "iron-will", Name: "Iron Will", Icon: "🛡️", Description: "Reached a 14 day streak"},
		func(c model.BadgeContext) bool { return c.LongestStreak >= 14 }},
	{model.Badge{ID: "meal-master", Name: "Meal Master", Icon: "🍳", Description: "Adopted 5 smart swaps"},
		func(c model.BadgeContext) bool { return c.AdoptedSwaps >= 5 }},
	{model.Badge{ID: "smart-swapper", Name: "Smart Swapper", Icon: "🔄", Description: "Adopted 10 smart swaps"},
		func(c model.BadgeContext) bool { return c.AdoptedSwaps >= 10 }},
	{model.Badge{ID: "moment-reader", Name: "Moment Reader", Icon: "📖", Description: "Read 15 money moments"},
		func(c model.BadgeContext) bool { return c.ReadMoments >= 15 }},
	{model.Badge{ID: "goal-getter", Name: "Goal Getter", Icon: "🎯", Description: "Set up 3 goals"},
		func(c model.BadgeContext) bool { return c.GoalsCount >= 3 }},
	{model.Badge{ID: "sharing-is-caring", Name: "Sharing is Caring", Icon: "💌", Description: "Shared your progress"},
		func(c model.BadgeContext) bool { return c.HasShared }},
}

// BadgeCatalog lists every badge in award order.
func BadgeCatalog() []model.Badge {
	catalog := make([]model.Badge, len(badgeRules))
	for i, r := range badgeRules {
		catalog[i] = r.badge
	}
	return catalog
}

func LookupBadge(id string) (model.Badge, bool) {
	for _, r := range badgeRules {
		if r.badge.ID == id {
			return r.badge, true
		}
	}
	return model.Badge{}, false
}

var scoreThresholds = []decimal.Decimal{
	decimal.NewFromInt(100),
	decimal.NewFromInt(500),
	decimal.NewFromInt(1000),
	decimal.NewFromInt(2500),
}

// IndependenceScore is always within [0, 100].
func IndependenceScore(in model.ScoreInput) int {
	score := clamp(in.CurrentStreak, 15) +
		clamp(in.CompletedLessons, 26) +
		clamp(in.GoalsWithPositiveSavings*5, 20) +
		clamp(in.AdoptedSwaps, 10) +
		clamp(in.EarnedBadges, 9)

	for _, t := range scoreThresholds {
		if in.TotalSaved.GreaterThanOrEqual(t) {
			score += 5
		}
	}

	return min(100, score)
}

func clamp(n, limit int) int {
	return max(0, min(limit, n))
}

// GamificationService owns streak, XP, score and badge state. Every mutation
// persists first and only then updates the in-memory view.
type GamificationService struct {
	store  kv.Store
	badges repository.BadgeRepository
	clock  Clock

	mu    sync.Mutex
	state model.GamificationState
}

func NewGamificationService(store kv.Store, badges repository.BadgeRepository, clock Clock) *GamificationService {
	return &GamificationService{
		store:  store,
		badges: badges,
		clock:  clock,
		state:  model.GamificationState{EarnedBadges: []model.EarnedBadge{}},
	}
}

// Load replaces the in-memory state with what is persisted.
func (s *GamificationService) Load(ctx context.Context) error {
	var (
		st  model.GamificationState
		err error
	)

	if st.CurrentStreak, err = kv.GetInt(ctx, s.store, kv.KeyStreakCurrent); err != nil {
		return fmt.Errorf("failed to load gamification state: %w", err)
	}
	if st.LongestStreak, err = kv.GetInt(ctx, s.store, kv.KeyStreakLongest); err != nil {
		return fmt.Errorf("failed to load gamification state: %w", err)
	}
	if st.LastActiveDate, err = kv.GetString(ctx, s.store, kv.KeyStreakLastActive); err != nil {
		return fmt.Errorf("failed to load gamification state: %w", err)
	}
	if st.TotalXP, err = kv.GetInt(ctx, s.store, kv.KeyXPTotal); err != nil {
		return fmt.Errorf("failed to load gamification state: %w", err)
	}
	if st.IndependenceScore, err = kv.GetInt(ctx, s.store, kv.KeyIndependenceScore); err != nil {
		return fmt.Errorf("failed to load gamification state: %w", err)
	}
	if st.EarnedBadges, err = s.badges.Earned(ctx); err != nil {
		return fmt.Errorf("failed to load badges: %w", err)
	}

	st.LongestStreak = max(st.LongestStreak, st.CurrentStreak)

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// State returns a copy safe to hand to callers.
func (s *GamificationService) State() model.GamificationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *GamificationService) snapshot() model.GamificationState {
	st := s.state
	st.EarnedBadges = slices.Clone(s.state.EarnedBadges)
	if st.EarnedBadges == nil {
		st.EarnedBadges = []model.EarnedBadge{}
	}
	return st
}

// RecordActivity touches the streak for today. A second call on the same
// calendar day changes nothing.
func (s *GamificationService) RecordActivity(ctx context.Context) (model.GamificationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.clock.Today()
	todayKey := dates.Format(today)
	if s.state.LastActiveDate == todayKey {
		return s.snapshot(), nil
	}

	current := 1
	if s.state.LastActiveDate != "" {
		last, err := dates.Parse(s.state.LastActiveDate, s.clock.Loc)
		if err != nil {
			slog.Warn("unreadable last active date, restarting streak", "value", s.state.LastActiveDate, "error", err)
		} else if dates.DaysBetween(last, today) == 1 {
			current = s.state.CurrentStreak + 1
		}
	}
	longest := max(s.state.LongestStreak, current)

	err := s.store.SetMany(ctx, map[string]string{
		kv.KeyStreakCurrent:    kv.Int(current),
		kv.KeyStreakLongest:    kv.Int(longest),
		kv.KeyStreakLastActive: todayKey,
	})
	if err != nil {
		return s.snapshot(), fmt.Errorf("failed to record activity: %w", err)
	}

	s.state.CurrentStreak = current
	s.state.LongestStreak = longest
	s.state.LastActiveDate = todayKey

	slog.Debug("streak touched", "current", current, "longest", longest)
	return s.snapshot(), nil
}

func (s *GamificationService) AddXP(ctx context.Context, amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: xp amount must not be negative", validation.ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.state.TotalXP + amount
	err := s.store.Set(ctx, kv.KeyXPTotal, kv.Int(total))
	if err != nil {
		return s.state.TotalXP, fmt.Errorf("failed to add xp: %w", err)
	}

	s.state.TotalXP = total
	return total, nil
}

// CheckAndAwardBadges awards at most one badge per call: the first rule in
// catalog order that matches and is not yet earned. Streak fields of bc are
// taken from the engine state. Returns nil when nothing new was earned.
func (s *GamificationService) CheckAndAwardBadges(ctx context.Context, bc model.BadgeContext) (*model.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bc.CurrentStreak = s.state.CurrentStreak
	bc.LongestStreak = s.state.LongestStreak

	for _, rule := range badgeRules {
		if s.state.HasBadge(rule.badge.ID) || !rule.check(bc) {
			continue
		}

		now := s.clock.Now().UTC()
		newly, err := s.badges.Award(ctx, rule.badge.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to award badge %s: %w", rule.badge.ID, err)
		}
		if !newly {
			// Already persisted by another path; resync and keep looking.
			earned, err := s.badges.Earned(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to load badges: %w", err)
			}
			s.state.EarnedBadges = earned
			continue
		}

		s.state.EarnedBadges = append(s.state.EarnedBadges, model.EarnedBadge{BadgeID: rule.badge.ID, EarnedAt: now})
		slog.Info("badge earned", "badge_id", rule.badge.ID)

		badge := rule.badge
		return &badge, nil
	}

	return nil, nil
}

// CalculateIndependenceScore scores in against the current streak and
// persists the result.
func (s *GamificationService) CalculateIndependenceScore(ctx context.Context, in model.ScoreInput) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.CurrentStreak = s.state.CurrentStreak
	score := IndependenceScore(in)

	err := s.store.Set(ctx, kv.KeyIndependenceScore, kv.Int(score))
	if err != nil {
		return s.state.IndependenceScore, fmt.Errorf("failed to save independence score: %w", err)
	}

	s.state.IndependenceScore = score
	return score, nil
}

// Reset zeroes the in-memory view. Callers clear the persisted state first.
func (s *GamificationService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = model.GamificationState{EarnedBadges: []model.EarnedBadge{}}
}
