package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	Port        string
	ContentPath string // empty = embedded catalog

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Scalar store: "sql" keeps keys in the main database, "redis" uses REDIS_ADDR
	KVDriver    string
	RedisAddr   string
	RedisPrefix string

	// Calendar days (streaks, weeks, rotation) are computed in this location
	Timezone string

	// Free tier
	FreeGoalLimit int

	// Observability (optional)
	SentryDSN string

	// Backups (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Timeout   time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Config{
		AppName:     envString("APP_NAME", "MumVest"),
		AppEnv:      envString("APP_ENV", "development"),
		Port:        envString("PORT", "8090"),
		ContentPath: envString("CONTENT_PATH", ""),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/mumvest.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),

		KVDriver:    envString("KV_DRIVER", "sql"),
		RedisAddr:   envString("REDIS_ADDR", "localhost:6379"),
		RedisPrefix: envString("REDIS_PREFIX", "mumvest:"),

		Timezone: envString("TIMEZONE", "UTC"),

		FreeGoalLimit: envInt("FREE_GOAL_LIMIT", 2),

		SentryDSN: envString("SENTRY_DSN", ""),

		S3Region:    envString("S3_REGION", ""),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
		S3Timeout:   envDuration("S3_TIMEOUT", 30*time.Second),
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves Timezone, falling back to UTC when the name is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// BackupsEnabled reports whether an S3 bucket is configured.
func (c *Config) BackupsEnabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}
