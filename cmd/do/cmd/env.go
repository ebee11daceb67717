package cmd

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/app"
	"github.com/mumvest/mumvest/internal/config"
	"github.com/mumvest/mumvest/internal/db"
	"github.com/mumvest/mumvest/internal/logger"
)

func loadConfig() *config.Config {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	return cfg
}

// withDB opens the database without migrating so migrate can control it.
func withDB(fn func(cfg *config.Config, conn *sqlx.DB) error) error {
	cfg := loadConfig()

	conn, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(cfg, conn)
}

// withApp builds the full service graph, migrations included.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	a, err := app.New(ctx, loadConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}
