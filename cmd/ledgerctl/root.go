package main

import (
	"fmt"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

// cli carries what every subcommand needs once the root has run
type cli struct {
	logLevel string
	cfg      *config.Config
	log      *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate the GST ledger database",
		Long: `ledgerctl manages the GST ledger outside the HTTP server.

Configuration is read the same way the server reads it: an optional .env,
config.toml and LEDGER_* environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			log, err := logger.New(&logger.Config{
				Level:      c.logLevel,
				Format:     "console",
				Output:     "stderr",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.cfg = cfg
			c.log = log.With(zap.String("command", cmd.Name()))
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.log != nil {
				_ = logger.Sync(c.log)
			}
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(
		newMigrateCmd(c),
		newReportCmd(c),
		newTokenCmd(c),
	)
	return root
}
