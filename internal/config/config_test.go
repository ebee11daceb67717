package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "PORT", "DB_DRIVER", "KV_DRIVER", "TIMEZONE", "FREE_GOAL_LIMIT", "S3_BUCKET"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, "development", cfg.AppEnv)
	require.True(t, cfg.IsDevelopment())
	require.Equal(t, "8090", cfg.Port)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "sql", cfg.KVDriver)
	require.Equal(t, 2, cfg.FreeGoalLimit)
	require.Equal(t, time.UTC, cfg.Location())
	require.False(t, cfg.BackupsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("FREE_GOAL_LIMIT", "5")
	t.Setenv("TIMEZONE", "Europe/London")
	t.Setenv("S3_BUCKET", "backups")
	t.Setenv("S3_REGION", "eu-west-2")

	cfg := Load()

	require.True(t, cfg.IsProduction())
	require.Equal(t, 5, cfg.FreeGoalLimit)
	require.Equal(t, "Europe/London", cfg.Location().String())
	require.True(t, cfg.BackupsEnabled())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("FREE_GOAL_LIMIT", "many")
	t.Setenv("S3_TIMEOUT", "soon")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	cfg := Load()

	require.Equal(t, 2, cfg.FreeGoalLimit)
	require.Equal(t, 30*time.Second, cfg.S3Timeout)
	require.Equal(t, time.UTC, cfg.Location())
}
