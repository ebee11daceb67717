package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestStartOfWeek(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday", time.Date(2026, 10, 12, 15, 30, 0, 0, time.UTC), time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC), time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
		{"sunday", time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC), time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
		{"across month", time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC), time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, StartOfWeek(tt.in))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	t.Run("same day different hours", func(t *testing.T) {
		a := time.Date(2026, 3, 1, 0, 5, 0, 0, time.UTC)
		b := time.Date(2026, 3, 1, 23, 55, 0, 0, time.UTC)
		require.Equal(t, 0, DaysBetween(a, b))
		require.True(t, SameDay(a, b))
	})

	t.Run("late night to early morning is one day", func(t *testing.T) {
		a := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
		b := time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC)
		require.Equal(t, 1, DaysBetween(a, b))
	})

	t.Run("across DST change", func(t *testing.T) {
		loc, err := time.LoadLocation("Europe/London")
		require.NoError(t, err)
		a := time.Date(2026, 3, 28, 12, 0, 0, 0, loc)
		b := time.Date(2026, 3, 30, 12, 0, 0, 0, loc)
		require.Equal(t, 2, DaysBetween(a, b))
	})

	t.Run("negative when reversed", func(t *testing.T) {
		a := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
		b := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		require.Equal(t, -4, DaysBetween(a, b))
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	day, err := Parse("2026-01-31", loc)
	require.NoError(t, err)
	require.Equal(t, "2026-01-31", Format(day))
	require.Equal(t, loc, day.Location())
	require.Equal(t, "2026-01", MonthKey(day))

	_, err = Parse("31/01/2026", loc)
	require.Error(t, err)
}

func TestDaysBetween_AddDaysProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := time.Date(
			rapid.IntRange(2000, 2100).Draw(t, "year"),
			time.Month(rapid.IntRange(1, 12).Draw(t, "month")),
			rapid.IntRange(1, 28).Draw(t, "day"),
			rapid.IntRange(0, 23).Draw(t, "hour"),
			0, 0, 0, time.UTC,
		)
		n := rapid.IntRange(-1000, 1000).Draw(t, "n")

		if got := DaysBetween(start, AddDays(start, n)); got != n {
			t.Fatalf("DaysBetween(start, start+%d) = %d", n, got)
		}
	})
}
