package service

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/mumvest/mumvest"
	"github.com/mumvest/mumvest/internal/content"
	"github.com/mumvest/mumvest/internal/db/dbtest"
	"github.com/mumvest/mumvest/internal/kv"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Wednesday; the week starts Monday 2026-10-12.
var testNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Clock() Clock {
	return Clock{Now: func() time.Time { return c.now }, Loc: time.UTC}
}

func (c *testClock) Advance(days int) {
	c.now = c.now.AddDate(0, 0, days)
}

type testEnv struct {
	ctx   context.Context
	clock *testClock
	store *kv.MemoryStore

	goalRepo  repository.GoalRepository
	entryRepo repository.SavingsEntryRepository

	subscription    *SubscriptionService
	goals           *GoalService
	gamification    *GamificationService
	personalization *PersonalizationService
	content         *ContentService
	lessons         *LessonService
	progress        *ProgressService
	users           *UserService
	insights        *InsightsService
	export          *ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := dbtest.New(t)
	tc := &testClock{now: testNow}
	clock := tc.Clock()
	store := kv.NewMemoryStore()

	sub, err := fs.Sub(mumvest.ContentFS, "content")
	require.NoError(t, err)
	catalog, err := content.Load(sub)
	require.NoError(t, err)

	env := &testEnv{
		ctx:       context.Background(),
		clock:     tc,
		store:     store,
		goalRepo:  repository.NewGoalRepository(database),
		entryRepo: repository.NewSavingsEntryRepository(database),
	}

	lessonRepo := repository.NewLessonProgressRepository(database)
	challengeRepo := repository.NewChallengeRepository(database)
	profileRepo := repository.NewProfileRepository(database)

	env.subscription = NewSubscriptionService(store, model.DefaultFreeGoalLimit, clock)
	env.goals = NewGoalService(env.goalRepo, env.entryRepo, env.subscription, clock)
	env.gamification = NewGamificationService(store, repository.NewBadgeRepository(database), clock)
	env.personalization = NewPersonalizationService(store)
	env.content = NewContentService(
		catalog,
		store,
		repository.NewMomentStateRepository(database),
		repository.NewSwapStateRepository(database),
		challengeRepo,
		env.subscription,
		env.personalization,
		clock,
	)
	env.lessons = NewLessonService(catalog, lessonRepo, env.subscription, clock)
	env.progress = NewProgressService(env.goals, env.lessons, env.content, env.gamification, store)
	env.users = NewUserService(profileRepo, store, env.gamification, clock)
	env.insights = NewInsightsService(env.goals, env.content, env.subscription, clock)
	env.export = NewExportService(
		env.goals,
		profileRepo,
		lessonRepo,
		challengeRepo,
		repository.NewMaintenanceRepository(database),
		store,
		env.gamification,
		env.subscription,
		nil,
		clock,
	)

	require.NoError(t, env.gamification.Load(env.ctx))
	return env
}

func (e *testEnv) createGoal(t *testing.T, name string, target int64) *model.GoalWithProgress {
	t.Helper()
	g, err := e.goals.Create(e.ctx, CreateGoalInput{
		Name:         name,
		Type:         model.GoalTypeHoliday,
		TargetAmount: decimal.NewFromInt(target),
	})
	require.NoError(t, err)
	return g
}

func (e *testEnv) logSavings(t *testing.T, goalID, amount string) *LogSavingsResult {
	t.Helper()
	r, err := e.goals.LogSavings(e.ctx, LogSavingsInput{
		GoalID: goalID,
		Amount: decimal.RequireFromString(amount),
		Method: "cooked_at_home",
	})
	require.NoError(t, err)
	return r
}
