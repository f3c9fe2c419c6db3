package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/saloonbook/saloon-server/database"
	"github.com/saloonbook/saloon-server/internal/config"
)

// migration runs against the database at dsn.
type migration func(ctx context.Context, dsn string) error

func newMigrateCmd(load func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		migrateSubCmd(load, "up", "Apply every pending migration", database.Migrate),
		migrateSubCmd(load, "down", "Roll back the most recent migration", database.Rollback),
		migrateSubCmd(load, "status", "Show the state of every migration", database.Status),
	)

	return cmd
}

func migrateSubCmd(load func() (*config.Config, error), use, short string, run migration) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return errors.New("migrations need DATABASE_DRIVER=postgres")
			}

			if err := run(cmd.Context(), cfg.Database.DSN); err != nil {
				return err
			}

			version, err := database.Version(cmd.Context(), cfg.Database.DSN)
			if err != nil {
				return err
			}
			cmd.Printf("schema version: %d\n", version)
			return nil
		},
	}
}
