package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLessonService_Lessons(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	lessons, err := env.lessons.Lessons(env.ctx)
	require.NoError(t, err)
	require.Len(t, lessons, 12)
	require.Equal(t, "lesson-1-1", lessons[0].ID)
	require.False(t, lessons[0].IsLocked)
	require.True(t, lessons[len(lessons)-1].IsLocked)

	_, err = env.lessons.Lesson(env.ctx, "lesson-3-1")
	require.ErrorIs(t, err, ErrPremiumRequired)

	_, err = env.lessons.Lesson(env.ctx, "lesson-9-9")
	require.ErrorIs(t, err, ErrContentNotFound)

	_, err = env.subscription.Unlock(env.ctx)
	require.NoError(t, err)

	lessons, err = env.lessons.Lessons(env.ctx)
	require.NoError(t, err)
	require.False(t, lessons[len(lessons)-1].IsLocked)
}

func TestLessonService_Complete(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	result, err := env.lessons.Complete(env.ctx, "lesson-1-1")
	require.NoError(t, err)
	require.True(t, result.Newly)
	require.Equal(t, 50, result.XPAwarded)
	require.False(t, result.LevelComplete)

	result, err = env.lessons.Complete(env.ctx, "lesson-1-1")
	require.NoError(t, err)
	require.False(t, result.Newly)
	require.Zero(t, result.XPAwarded)

	for _, id := range []string{"lesson-1-2", "lesson-1-3", "lesson-1-4"} {
		result, err = env.lessons.Complete(env.ctx, id)
		require.NoError(t, err)
		require.False(t, result.LevelComplete)
	}

	result, err = env.lessons.Complete(env.ctx, "lesson-1-5")
	require.NoError(t, err)
	require.True(t, result.LevelComplete)
	require.Equal(t, 5, env.lessons.CompletedCount(env.ctx))

	levels, err := env.lessons.LevelProgress(env.ctx)
	require.NoError(t, err)
	require.Equal(t, []LevelProgress{
		{Level: 1, Completed: 5, Total: 5},
		{Level: 2, Completed: 0, Total: 5},
		{Level: 3, Completed: 0, Total: 2},
	}, levels)

	_, err = env.lessons.Complete(env.ctx, "lesson-3-2")
	require.ErrorIs(t, err, ErrPremiumRequired)
}
