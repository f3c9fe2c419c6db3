package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/saloonbook/saloon-server/internal/app"
	"github.com/saloonbook/saloon-server/internal/config"
	"github.com/saloonbook/saloon-server/internal/logger"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the saloon-server command tree.
func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:          "saloon-server",
		Short:        "Saloon accounts and salon listings API",
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate),
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional file with environment variables")

	load := func() (*config.Config, error) {
		cfg, err := config.NewConfig(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		return cfg, nil
	}

	cmd.AddCommand(newServeCmd(load))
	cmd.AddCommand(newMigrateCmd(load))

	return cmd
}

func newServeCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel)
			logAppVersion(cmd.OutOrStdout())

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("failed to initialize application", "error", err.Error())
				return err
			}

			return a.Run(cmd.Context())
		},
	}
}

func logAppVersion(w io.Writer) {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Fprintf(w, tmpl, buildVersion, buildDate, buildCommit)
}
