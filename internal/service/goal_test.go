package service

import (
	"context"
	"testing"
	"time"

	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/repository"
	"github.com/mumvest/mumvest/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGoalService_CreateValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name  string
		input CreateGoalInput
	}{
		{"blank name", CreateGoalInput{Name: "  ", TargetAmount: decimal.NewFromInt(100)}},
		{"zero target", CreateGoalInput{Name: "Trip", TargetAmount: decimal.Zero}},
		{"negative target", CreateGoalInput{Name: "Trip", TargetAmount: decimal.NewFromInt(-5)}},
		{"unknown type", CreateGoalInput{Name: "Trip", Type: "yacht", TargetAmount: decimal.NewFromInt(100)}},
		{"bad reminder day", CreateGoalInput{Name: "Trip", TargetAmount: decimal.NewFromInt(100), ReminderFrequency: model.ReminderWeekly, ReminderDay: ptr(9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.goals.Create(env.ctx, tt.input)
			require.ErrorIs(t, err, validation.ErrInvalid)
		})
	}

	goals, err := env.goals.Goals(env.ctx, true)
	require.NoError(t, err)
	require.Empty(t, goals)
}

func TestGoalService_CreateDefaults(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	g, err := env.goals.Create(env.ctx, CreateGoalInput{
		Name:         " Rainy day ",
		Type:         model.GoalTypeEmergency,
		TargetAmount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	require.Equal(t, "Rainy day", g.Name)
	require.Equal(t, model.GoalTypeEmergency.Emoji(), g.Emoji)
	require.Equal(t, model.ReminderWeekly, g.ReminderFrequency)
	require.Zero(t, g.Progress.Percentage)
	require.True(t, g.Progress.Saved.IsZero())
}

func TestGoalService_FreeLimit(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	first := env.createGoal(t, "One", 100)
	env.createGoal(t, "Two", 100)

	_, err := env.goals.Create(env.ctx, CreateGoalInput{Name: "Three", TargetAmount: decimal.NewFromInt(100)})
	require.ErrorIs(t, err, ErrGoalLimitReached)

	// Archived goals free a slot.
	require.NoError(t, env.goals.Archive(env.ctx, first.ID))
	env.createGoal(t, "Three", 100)

	_, err = env.goals.Create(env.ctx, CreateGoalInput{Name: "Four", TargetAmount: decimal.NewFromInt(100)})
	require.ErrorIs(t, err, ErrGoalLimitReached)

	_, err = env.subscription.Unlock(env.ctx)
	require.NoError(t, err)
	env.createGoal(t, "Four", 100)
	env.createGoal(t, "Five", 100)

	ok, err := env.goals.CanCreateGoal(env.ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGoalService_CompletedGoalsFreeASlot(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	g := env.createGoal(t, "Small", 50)
	env.createGoal(t, "Other", 100)
	env.logSavings(t, g.ID, "50")

	ok, err := env.goals.CanCreateGoal(env.ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGoalService_LogSavingsToCompletion(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	g := env.createGoal(t, "Holiday", 1000)

	r := env.logSavings(t, g.ID, "300")
	require.Equal(t, 30.0, r.Progress.Percentage)
	require.False(t, r.GoalCompleted)

	r = env.logSavings(t, g.ID, "300")
	require.Equal(t, 60.0, r.Progress.Percentage)
	require.False(t, r.GoalCompleted)

	r = env.logSavings(t, g.ID, "500")
	require.Equal(t, 100.0, r.Progress.Percentage)
	require.True(t, r.Progress.Saved.Equal(decimal.NewFromInt(1100)))
	require.True(t, r.GoalCompleted)

	goal, err := env.goals.Goal(env.ctx, g.ID)
	require.NoError(t, err)
	require.True(t, goal.IsCompleted)
	require.NotNil(t, goal.CompletedAt)
	completedAt := *goal.CompletedAt

	// Completion is recorded once.
	env.clock.Advance(1)
	r = env.logSavings(t, g.ID, "10")
	require.False(t, r.GoalCompleted)

	goal, err = env.goals.Goal(env.ctx, g.ID)
	require.NoError(t, err)
	require.True(t, goal.CompletedAt.Equal(completedAt))
}

func TestGoalService_LogSavingsValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 1000)

	_, err := env.goals.LogSavings(env.ctx, LogSavingsInput{GoalID: g.ID, Amount: decimal.Zero})
	require.ErrorIs(t, err, validation.ErrInvalid)

	_, err = env.goals.LogSavings(env.ctx, LogSavingsInput{GoalID: g.ID, Amount: decimal.NewFromInt(5), Method: "lottery"})
	require.ErrorIs(t, err, validation.ErrInvalid)

	_, err = env.goals.LogSavings(env.ctx, LogSavingsInput{GoalID: "missing", Amount: decimal.NewFromInt(5)})
	require.ErrorIs(t, err, repository.ErrGoalNotFound)

	total, err := env.goals.TotalSaved(env.ctx)
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestGoalService_EntryEditsKeepCompletion(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 100)
	r := env.logSavings(t, g.ID, "100")
	require.True(t, r.GoalCompleted)

	var hooked []model.GoalProgress
	env.goals.SetEntryChangeHook(func(_ context.Context, goal *model.Goal, p model.GoalProgress) {
		require.Equal(t, g.ID, goal.ID)
		hooked = append(hooked, p)
	})

	entry, err := env.goals.UpdateSavingsEntry(env.ctx, r.Entry.ID, decimal.NewFromInt(40))
	require.NoError(t, err)
	require.True(t, entry.Amount.Equal(decimal.NewFromInt(40)))

	goal, err := env.goals.Goal(env.ctx, g.ID)
	require.NoError(t, err)
	require.True(t, goal.IsCompleted)

	require.NoError(t, env.goals.DeleteSavingsEntry(env.ctx, r.Entry.ID))

	require.Len(t, hooked, 2)
	require.Equal(t, 40.0, hooked[0].Percentage)
	require.Zero(t, hooked[1].Percentage)

	err = env.goals.DeleteSavingsEntry(env.ctx, r.Entry.ID)
	require.ErrorIs(t, err, repository.ErrSavingsEntryNotFound)
}

func TestGoalService_DeleteCascades(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 1000)
	env.logSavings(t, g.ID, "25")
	env.logSavings(t, g.ID, "30")

	require.NoError(t, env.goals.Delete(env.ctx, g.ID))

	entries, err := env.goals.AllEntries(env.ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	_, err = env.goals.Goal(env.ctx, g.ID)
	require.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalService_UpdateTarget(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 1000)
	env.logSavings(t, g.ID, "400")

	name := "Lisbon"
	goal, err := env.goals.Update(env.ctx, g.ID, GoalUpdate{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Lisbon", goal.Name)
	require.False(t, goal.IsCompleted)

	zero := decimal.Zero
	_, err = env.goals.Update(env.ctx, g.ID, GoalUpdate{TargetAmount: &zero})
	require.ErrorIs(t, err, validation.ErrInvalid)

	lower := decimal.NewFromInt(400)
	goal, err = env.goals.Update(env.ctx, g.ID, GoalUpdate{TargetAmount: &lower})
	require.NoError(t, err)
	require.True(t, goal.IsCompleted)

	stored, err := env.goals.Goal(env.ctx, g.ID)
	require.NoError(t, err)
	require.True(t, stored.IsCompleted)
	require.Equal(t, "Lisbon", stored.Name)
}

func TestGoalService_UpdateReminderFrequency(t *testing.T) {
	t.Parallel()

	day := func(d int) *int { return &d }

	tests := []struct {
		name    string
		from    model.ReminderFrequency
		fromDay *int
		to      model.ReminderFrequency
		toDay   *int
		wantDay *int
	}{
		{"weekly to daily drops the day", model.ReminderWeekly, day(3), model.ReminderDaily, nil, nil},
		{"weekly sunday to monthly drops the day", model.ReminderWeekly, day(0), model.ReminderMonthly, nil, nil},
		{"weekly to monthly keeps a valid day", model.ReminderWeekly, day(3), model.ReminderMonthly, nil, day(3)},
		{"daily to weekly with a new day", model.ReminderDaily, nil, model.ReminderWeekly, day(5), day(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			g, err := env.goals.Create(env.ctx, CreateGoalInput{
				Name:              "Holiday",
				Type:              model.GoalTypeHoliday,
				TargetAmount:      decimal.NewFromInt(1000),
				ReminderFrequency: tt.from,
				ReminderDay:       tt.fromDay,
			})
			require.NoError(t, err)

			to := tt.to
			goal, err := env.goals.Update(env.ctx, g.ID, GoalUpdate{ReminderFrequency: &to, ReminderDay: tt.toDay})
			require.NoError(t, err)
			require.Equal(t, tt.to, goal.ReminderFrequency)
			require.Equal(t, tt.wantDay, goal.ReminderDay)

			stored, err := env.goals.Goal(env.ctx, g.ID)
			require.NoError(t, err)
			require.Equal(t, tt.wantDay, stored.ReminderDay)
		})
	}

	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 1000)
	daily := model.ReminderDaily
	_, err := env.goals.Update(env.ctx, g.ID, GoalUpdate{ReminderFrequency: &daily, ReminderDay: day(2)})
	require.ErrorIs(t, err, validation.ErrInvalid)
}

func TestGoalService_ClearTargetDate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 1000)

	date := testNow.AddDate(0, 3, 0)
	goal, err := env.goals.Update(env.ctx, g.ID, GoalUpdate{TargetDate: &date})
	require.NoError(t, err)
	require.NotNil(t, goal.TargetDate)

	name := "Lisbon"
	goal, err = env.goals.Update(env.ctx, g.ID, GoalUpdate{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, goal.TargetDate, "unrelated updates keep the date")

	goal, err = env.goals.Update(env.ctx, g.ID, GoalUpdate{ClearTargetDate: true})
	require.NoError(t, err)
	require.Nil(t, goal.TargetDate)

	stored, err := env.goals.Goal(env.ctx, g.ID)
	require.NoError(t, err)
	require.Nil(t, stored.TargetDate)
}

func TestGoalService_WeeklySummary(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	holiday := env.createGoal(t, "Holiday", 1000)
	car := env.createGoal(t, "Car", 1000)

	summary, err := env.goals.WeeklySummary(env.ctx)
	require.NoError(t, err)
	require.True(t, summary.TotalSaved.IsZero())
	require.Zero(t, summary.ComparedToLastWeek)
	require.Empty(t, summary.TopGoal)

	// Thursday of the previous week.
	env.clock.now = time.Date(2026, 10, 8, 9, 0, 0, 0, time.UTC)
	env.logSavings(t, holiday.ID, "100")

	// Monday 00:30 belongs to the current week.
	env.clock.now = time.Date(2026, 10, 12, 0, 30, 0, 0, time.UTC)
	env.logSavings(t, holiday.ID, "50")

	env.clock.now = testNow
	env.logSavings(t, car.ID, "150")

	summary, err = env.goals.WeeklySummary(env.ctx)
	require.NoError(t, err)
	require.True(t, summary.TotalSaved.Equal(decimal.NewFromInt(200)))
	require.Equal(t, 2, summary.EntryCount)
	require.Equal(t, 100.0, summary.ComparedToLastWeek)
	require.Equal(t, "Car", summary.TopGoal)
}

func TestGoalService_WeeklySummaryNoPriorWeek(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	g := env.createGoal(t, "Holiday", 1000)
	env.logSavings(t, g.ID, "80")

	summary, err := env.goals.WeeklySummary(env.ctx)
	require.NoError(t, err)
	require.True(t, summary.TotalSaved.Equal(decimal.NewFromInt(80)))
	require.Zero(t, summary.ComparedToLastWeek)
}

func TestGoalService_ProjectedCompletion(t *testing.T) {
	t.Parallel()

	t.Run("rate from oldest entry", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.createGoal(t, "Holiday", 1000)

		env.clock.now = testNow.AddDate(0, 0, -10)
		env.logSavings(t, g.ID, "100")
		env.clock.now = testNow
		env.logSavings(t, g.ID, "100")

		// 200 over 10 days is 20/day; 800 remaining needs 40 days.
		projected, err := env.goals.ProjectedCompletion(env.ctx, g.ID)
		require.NoError(t, err)
		require.NotNil(t, projected)
		require.True(t, projected.Equal(testNow.AddDate(0, 0, 40)), "got %s", projected)
	})

	t.Run("rounds days up", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.createGoal(t, "Holiday", 100)

		env.clock.now = testNow.AddDate(0, 0, -3)
		env.logSavings(t, g.ID, "10")
		env.clock.now = testNow
		env.logSavings(t, g.ID, "10")

		// 20/3 per day, 80 remaining: 12 days exactly.
		projected, err := env.goals.ProjectedCompletion(env.ctx, g.ID)
		require.NoError(t, err)
		require.True(t, projected.Equal(testNow.AddDate(0, 0, 12)), "got %s", projected)
	})

	t.Run("single entry", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.createGoal(t, "Holiday", 1000)
		env.logSavings(t, g.ID, "100")

		projected, err := env.goals.ProjectedCompletion(env.ctx, g.ID)
		require.NoError(t, err)
		require.Nil(t, projected)
	})

	t.Run("same day entries", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.createGoal(t, "Holiday", 1000)
		env.logSavings(t, g.ID, "100")
		env.logSavings(t, g.ID, "100")

		projected, err := env.goals.ProjectedCompletion(env.ctx, g.ID)
		require.NoError(t, err)
		require.Nil(t, projected)
	})

	t.Run("already reached", func(t *testing.T) {
		env := newTestEnv(t)
		g := env.createGoal(t, "Holiday", 100)
		env.clock.now = testNow.AddDate(0, 0, -2)
		env.logSavings(t, g.ID, "60")
		env.clock.now = testNow
		env.logSavings(t, g.ID, "60")

		projected, err := env.goals.ProjectedCompletion(env.ctx, g.ID)
		require.NoError(t, err)
		require.Nil(t, projected)
	})
}

func TestGoalService_GoalsWithSavings(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	a := env.createGoal(t, "A", 1000)
	env.createGoal(t, "B", 1000)
	env.logSavings(t, a.ID, "5")

	n, err := env.goals.GoalsWithSavings(env.ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func ptr[T any](v T) *T {
	return &v
}
