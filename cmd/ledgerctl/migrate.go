package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/migration"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func newMigrateCmd(c *cli) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect schema migrations",
		Example: `  # Apply all pending migrations
  ledgerctl migrate up

  # Roll back the last migration
  ledgerctl migrate down 1

  # Create a new migration pair
  ledgerctl migrate create add_ledger_groups`,
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "Path to migrations directory (default: ./migrations)")

	// open resolves the directory and connects; callers close the migrator
	open := func() (*migration.Migrator, error) {
		dir, err := resolveMigrationsPath(path)
		if err != nil {
			return nil, err
		}
		c.log.Info("Using migrations", zap.String("path", dir))
		return migration.Open(&c.cfg.Database, dir, c.log)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				return m.Up()
			},
		},
		&cobra.Command{
			Use:   "down [n]",
			Short: "Roll back n migrations, or all of them",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				n := 0
				if len(args) == 1 {
					var err error
					if n, err = strconv.Atoi(args[0]); err != nil || n <= 0 {
						return fmt.Errorf("invalid step count %q", args[0])
					}
				}
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				return m.Down(n)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
				return nil
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Record a version without running it (clears a dirty state)",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				return m.Force(v)
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create an empty up/down migration pair",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := resolveMigrationsPath(path)
				if err != nil {
					return err
				}
				mf, err := migration.CreateMigration(dir, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mf.UpPath)
				fmt.Fprintln(cmd.OutOrStdout(), mf.DownPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List migrations found on disk",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := resolveMigrationsPath(path)
				if err != nil {
					return err
				}
				entries, err := migration.ListMigrations(dir)
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%06d %s\n", e.Version, e.Name)
				}
				return nil
			},
		},
	)
	return cmd
}

// resolveMigrationsPath picks the flag value, then ./migrations, then the
// directory two levels above the executable
func resolveMigrationsPath(flagValue string) (string, error) {
	path := flagValue
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve migrations path: %w", err)
	}
	return abs, nil
}
