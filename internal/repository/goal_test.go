package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mumvest/mumvest/internal/db/dbtest"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupGoalTest(t *testing.T) (GoalRepository, SavingsEntryRepository, context.Context) {
	t.Helper()

	database := dbtest.New(t)
	return NewGoalRepository(database), NewSavingsEntryRepository(database), context.Background()
}

func newGoal(name string, target int64) *model.Goal {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.Goal{
		ID:                uuid.New().String(),
		Name:              name,
		Emoji:             model.GoalTypeHoliday.Emoji(),
		Type:              model.GoalTypeHoliday,
		TargetAmount:      decimal.NewFromInt(target),
		ReminderFrequency: model.ReminderWeekly,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func newEntry(goalID, amount string, at time.Time) *model.SavingsEntry {
	return &model.SavingsEntry{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Amount:    decimal.RequireFromString(amount),
		Method:    "cooked_at_home",
		CreatedAt: at,
	}
}

func TestGoalRepository_CreateAndGet(t *testing.T) {
	goals, _, ctx := setupGoalTest(t)

	day := 15
	targetDate := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	goal := newGoal("Spain", 1200)
	goal.TargetAmount = decimal.RequireFromString("1200.50")
	goal.TargetDate = &targetDate
	goal.ReminderDay = &day

	require.NoError(t, goals.Create(ctx, goal))

	got, err := goals.ByID(ctx, goal.ID)
	require.NoError(t, err)
	require.Equal(t, "Spain", got.Name)
	require.Equal(t, model.GoalTypeHoliday, got.Type)
	require.True(t, got.TargetAmount.Equal(decimal.RequireFromString("1200.50")))
	require.NotNil(t, got.TargetDate)
	require.True(t, got.TargetDate.Equal(targetDate))
	require.Equal(t, 15, *got.ReminderDay)
	require.False(t, got.IsArchived)
	require.False(t, got.IsCompleted)
	require.Nil(t, got.CompletedAt)

	t.Run("missing goal", func(t *testing.T) {
		_, err := goals.ByID(ctx, "nope")
		require.ErrorIs(t, err, ErrGoalNotFound)
	})
}

func TestGoalRepository_ListAndCount(t *testing.T) {
	goals, _, ctx := setupGoalTest(t)

	a, b, c := newGoal("A", 100), newGoal("B", 200), newGoal("C", 300)
	for _, g := range []*model.Goal{a, b, c} {
		require.NoError(t, goals.Create(ctx, g))
	}

	require.NoError(t, goals.Archive(ctx, b.ID))
	done, err := goals.MarkCompleted(ctx, c.ID, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, done)

	active, err := goals.CountActive(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, active)

	visible, err := goals.Goals(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 2)

	all, err := goals.Goals(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 3)

	require.ErrorIs(t, goals.Archive(ctx, "nope"), ErrGoalNotFound)
}

func TestGoalRepository_MarkCompletedOnce(t *testing.T) {
	goals, _, ctx := setupGoalTest(t)

	goal := newGoal("Car", 500)
	require.NoError(t, goals.Create(ctx, goal))

	first := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	done, err := goals.MarkCompleted(ctx, goal.ID, first)
	require.NoError(t, err)
	require.True(t, done)

	done, err = goals.MarkCompleted(ctx, goal.ID, first.Add(24*time.Hour))
	require.NoError(t, err)
	require.False(t, done)

	got, err := goals.ByID(ctx, goal.ID)
	require.NoError(t, err)
	require.True(t, got.IsCompleted)
	require.True(t, got.CompletedAt.Equal(first))
}

func TestGoalRepository_Update(t *testing.T) {
	goals, _, ctx := setupGoalTest(t)

	goal := newGoal("Old", 100)
	require.NoError(t, goals.Create(ctx, goal))

	goal.Name = "New"
	goal.TargetAmount = decimal.NewFromInt(250)
	goal.ReminderFrequency = model.ReminderMonthly
	goal.UpdatedAt = time.Now().UTC()
	require.NoError(t, goals.Update(ctx, goal))

	got, err := goals.ByID(ctx, goal.ID)
	require.NoError(t, err)
	require.Equal(t, "New", got.Name)
	require.True(t, got.TargetAmount.Equal(decimal.NewFromInt(250)))
	require.Equal(t, model.ReminderMonthly, got.ReminderFrequency)

	missing := newGoal("Ghost", 1)
	require.ErrorIs(t, goals.Update(ctx, missing), ErrGoalNotFound)
}

func TestGoalRepository_DeleteCascades(t *testing.T) {
	goals, entries, ctx := setupGoalTest(t)

	keep, drop := newGoal("Keep", 100), newGoal("Drop", 100)
	require.NoError(t, goals.Create(ctx, keep))
	require.NoError(t, goals.Create(ctx, drop))

	now := time.Now().UTC()
	require.NoError(t, entries.Create(ctx, newEntry(keep.ID, "10", now)))
	require.NoError(t, entries.Create(ctx, newEntry(drop.ID, "20", now)))
	require.NoError(t, entries.Create(ctx, newEntry(drop.ID, "30", now)))

	require.NoError(t, goals.Delete(ctx, drop.ID))

	_, err := goals.ByID(ctx, drop.ID)
	require.ErrorIs(t, err, ErrGoalNotFound)

	remaining, err := entries.All(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, keep.ID, remaining[0].GoalID)

	require.ErrorIs(t, goals.Delete(ctx, drop.ID), ErrGoalNotFound)
}
