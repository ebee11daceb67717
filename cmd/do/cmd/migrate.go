package cmd

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest/internal/config"
	"github.com/mumvest/mumvest/internal/db"
	"github.com/spf13/cobra"
)

type migrateFunc func(db *sql.DB, driver string) error

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(
		migrateStep("up", "Apply all pending migrations", db.RunMigrations),
		migrateStep("down", "Roll back the most recent migration", db.MigrateDown),
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(func(cfg *config.Config, conn *sqlx.DB) error {
					version, err := db.Version(conn.DB, cfg.DBDriver)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", version, cfg.DBDriver)
					return nil
				})
			},
		},
	)
	return cmd
}

func migrateStep(use, short string, fn migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, conn *sqlx.DB) error {
				err := fn(conn.DB, cfg.DBDriver)
				if err != nil {
					return fmt.Errorf("migrate %s: %w", use, err)
				}

				version, err := db.Version(conn.DB, cfg.DBDriver)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrate %s done, schema version %d\n", use, version)
				return nil
			})
		},
	}
}
