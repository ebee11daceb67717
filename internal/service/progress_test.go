package service

import (
	"testing"

	"github.com/mumvest/mumvest/internal/kv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProgressService_LogSavings(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 1000)

	r, err := env.progress.LogSavings(env.ctx, LogSavingsInput{GoalID: g.ID, Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)
	require.Equal(t, XPSavingsLogged, r.Reward.XPAwarded)
	require.Equal(t, 1, r.Reward.Streak)
	require.NotNil(t, r.Reward.Badge)
	require.Equal(t, "first-step", r.Reward.Badge.ID)

	// century-saver is due but only one badge per action.
	r, err = env.progress.LogSavings(env.ctx, LogSavingsInput{GoalID: g.ID, Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)
	require.Equal(t, "century-saver", r.Reward.Badge.ID)
	require.Equal(t, 30, r.Reward.TotalXP)

	r, err = env.progress.LogSavings(env.ctx, LogSavingsInput{GoalID: g.ID, Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	require.True(t, r.GoalCompleted)
	require.Equal(t, 100.0, r.Progress.Percentage)
	require.Equal(t, "grand-saver", r.Reward.Badge.ID)
	require.Equal(t, 45, r.Reward.TotalXP)
	require.Equal(t, 1, r.Reward.Streak)
}

func TestProgressService_CreateGoal(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	_, err := env.subscription.Unlock(env.ctx)
	require.NoError(t, err)

	create := func(name string) *GoalReward {
		t.Helper()
		r, err := env.progress.CreateGoal(env.ctx, CreateGoalInput{
			Name:         name,
			TargetAmount: decimal.NewFromInt(500),
		})
		require.NoError(t, err)
		return r
	}

	r := create("Holiday")
	require.Equal(t, "Holiday", r.Name)
	require.Equal(t, XPSavingsLogged, r.Reward.XPAwarded)
	require.Equal(t, 1, r.Reward.Streak)
	require.Nil(t, r.Reward.Badge)

	r = create("Car")
	require.Nil(t, r.Reward.Badge)

	r = create("Rainy day")
	require.NotNil(t, r.Reward.Badge)
	require.Equal(t, "goal-getter", r.Reward.Badge.ID)
	require.Equal(t, 3*XPSavingsLogged, r.Reward.TotalXP)
	require.Equal(t, 1, r.Reward.Streak)

	st := env.gamification.State()
	require.True(t, st.HasBadge("goal-getter"))
	require.Equal(t, 45, st.TotalXP)

	// A rejected goal earns nothing.
	_, err = env.progress.CreateGoal(env.ctx, CreateGoalInput{Name: ""})
	require.Error(t, err)
	require.Equal(t, 45, env.gamification.State().TotalXP)
}

func TestProgressService_ValidationFailureAwardsNothing(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 1000)

	_, err := env.progress.LogSavings(env.ctx, LogSavingsInput{GoalID: g.ID, Amount: decimal.NewFromInt(-1)})
	require.Error(t, err)

	st := env.gamification.State()
	require.Zero(t, st.TotalXP)
	require.Zero(t, st.CurrentStreak)
	require.Empty(t, st.EarnedBadges)
}

func TestProgressService_ContentActions(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	lesson, err := env.progress.CompleteLesson(env.ctx, "lesson-1-1")
	require.NoError(t, err)
	require.Equal(t, 50, lesson.Reward.XPAwarded)

	lesson, err = env.progress.CompleteLesson(env.ctx, "lesson-1-1")
	require.NoError(t, err)
	require.Zero(t, lesson.Reward.XPAwarded)

	moment, err := env.progress.ReadMoment(env.ctx, "moment-01")
	require.NoError(t, err)
	require.True(t, moment.FirstRead)
	require.Equal(t, XPMomentRead, moment.Reward.XPAwarded)

	moment, err = env.progress.ReadMoment(env.ctx, "moment-01")
	require.NoError(t, err)
	require.False(t, moment.FirstRead)
	require.Zero(t, moment.Reward.XPAwarded)

	swap, err := env.progress.AdoptSwap(env.ctx, "swap-03")
	require.NoError(t, err)
	require.True(t, swap.Adopted)
	require.Equal(t, XPSwapAdopted, swap.Reward.XPAwarded)

	st := env.gamification.State()
	require.Equal(t, 50+10+20, st.TotalXP)
	require.Equal(t, 1, st.CurrentStreak)
}

func TestProgressService_ChallengeCheckIns(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.content.StartChallenge(env.ctx, "no-spend-weekend")
	require.NoError(t, err)

	for i := range 3 {
		r, err := env.progress.CheckIn(env.ctx, i)
		require.NoError(t, err)
		require.False(t, r.Completed)
		require.Equal(t, XPChallengeCheckIn, r.Reward.XPAwarded)
		require.Nil(t, r.Reward.Badge)
	}

	r, err := env.progress.CheckIn(env.ctx, 3)
	require.NoError(t, err)
	require.True(t, r.Completed)
	require.Equal(t, XPChallengeCheckIn+XPChallengeComplete, r.Reward.XPAwarded)
	require.Equal(t, 140, r.Reward.TotalXP)
}

func TestProgressService_MarkShared(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	r, err := env.progress.MarkShared(env.ctx)
	require.NoError(t, err)
	require.Equal(t, "sharing-is-caring", r.Badge.ID)
	require.Zero(t, r.XPAwarded)
	require.Zero(t, r.Streak)

	shared, err := kv.GetBool(env.ctx, env.store, kv.KeyHasShared)
	require.NoError(t, err)
	require.True(t, shared)
}

func TestProgressService_BadgeContext(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	a := env.createGoal(t, "A", 1000)
	b := env.createGoal(t, "B", 1000)
	env.logSavings(t, a.ID, "40")
	env.logSavings(t, a.ID, "60")
	require.NoError(t, env.goals.Archive(env.ctx, b.ID))

	_, err := env.content.MarkMomentRead(env.ctx, "moment-01")
	require.NoError(t, err)

	bc, err := env.progress.BadgeContext(env.ctx)
	require.NoError(t, err)
	require.True(t, bc.TotalSaved.Equal(decimal.NewFromInt(100)))
	require.Equal(t, 1, bc.GoalsCount)
	require.Equal(t, 1, bc.ReadMoments)
	require.Zero(t, bc.CompletedLessons)
	require.False(t, bc.HasShared)
}

func TestProgressService_RecalculateScore(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.subscription.Unlock(env.ctx)
	require.NoError(t, err)

	require.NoError(t, env.store.SetMany(env.ctx, map[string]string{
		kv.KeyStreakCurrent:    "15",
		kv.KeyStreakLongest:    "15",
		kv.KeyStreakLastActive: "2026-10-14",
	}))
	require.NoError(t, env.gamification.Load(env.ctx))

	for i := range 4 {
		g := env.createGoal(t, string(rune('A'+i)), 10_000)
		env.logSavings(t, g.ID, "625")
	}
	for _, l := range env.content.Catalog().Lessons {
		_, err := env.lessons.Complete(env.ctx, l.ID)
		require.NoError(t, err)
	}
	for _, sw := range env.content.Catalog().Swaps {
		_, err := env.content.AdoptSwap(env.ctx, sw.ID)
		require.NoError(t, err)
	}
	for {
		bc, err := env.progress.BadgeContext(env.ctx)
		require.NoError(t, err)
		badge, err := env.gamification.CheckAndAwardBadges(env.ctx, bc)
		require.NoError(t, err)
		if badge == nil {
			break
		}
	}
	require.Len(t, env.gamification.State().EarnedBadges, 9)

	// streak 15 + lessons 12 + goals 20 + savings 20 + swaps 8 + badges 9
	score, err := env.progress.RecalculateScore(env.ctx)
	require.NoError(t, err)
	require.Equal(t, 84, score)

	stored, err := kv.GetInt(env.ctx, env.store, kv.KeyIndependenceScore)
	require.NoError(t, err)
	require.Equal(t, 84, stored)
}

func TestProgressService_Dashboard(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 1000)

	_, err := env.progress.LogSavings(env.ctx, LogSavingsInput{GoalID: g.ID, Amount: decimal.NewFromInt(120)})
	require.NoError(t, err)

	d, err := env.progress.Dashboard(env.ctx)
	require.NoError(t, err)
	require.True(t, d.TotalSaved.Equal(decimal.NewFromInt(120)))
	require.Len(t, d.Goals, 1)
	require.True(t, d.CanCreateGoal)
	require.Equal(t, 1, d.Weekly.EntryCount)
	require.Equal(t, "moment-01", d.TodaysMoment.Today.ID)
	require.Nil(t, d.ActiveChallenge)
	require.Equal(t, 15, d.Gamification.TotalXP)
	// streak 1 + one goal 5 + 100 threshold 5 + one badge 1
	require.Equal(t, 12, d.Gamification.IndependenceScore)
}
