package content

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Index(0, 30))
	require.Equal(t, 29, Index(29, 30))
	require.Equal(t, 0, Index(30, 30))
	require.Equal(t, 5, Index(65, 30))
	require.Equal(t, 0, Index(-3, 30))

	require.Panics(t, func() { Index(1, 0) })
}

func TestIndex_Periodic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := rapid.IntRange(0, 100_000).Draw(t, "d")
		l := rapid.IntRange(1, 500).Draw(t, "l")

		i := Index(d, l)
		if i < 0 || i >= l {
			t.Fatalf("Index(%d, %d) = %d out of range", d, l, i)
		}
		if j := Index(d+l, l); j != i {
			t.Fatalf("Index(%d, %d) = %d, Index(%d, %d) = %d", d, l, i, d+l, l, j)
		}
	})
}

func TestRotate(t *testing.T) {
	t.Parallel()

	t.Run("first day has no yesterday", func(t *testing.T) {
		r := Rotate(0, 30)
		require.Equal(t, 0, r.Today)
		require.False(t, r.HasYesterday)
	})

	t.Run("wraps around", func(t *testing.T) {
		r := Rotate(30, 30)
		require.Equal(t, 0, r.Today)
		require.True(t, r.HasYesterday)
		require.Equal(t, 29, r.Yesterday)
	})

	t.Run("clock skew", func(t *testing.T) {
		r := Rotate(-2, 30)
		require.Equal(t, 0, r.Day)
		require.False(t, r.HasYesterday)
	})
}
