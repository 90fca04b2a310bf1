// Package migration applies the SQL files under migrations/ with golang-migrate.
package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Migrator runs schema migrations against one database
type Migrator struct {
	migrate *migrate.Migrate
	db      *sql.DB
	logger  *zap.Logger
}

// Open connects with lib/pq using the database config and prepares a migrator
// for the files in migrationsPath
func Open(cfg *config.DatabaseConfig, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	m, err := New(db, migrationsPath, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	m.db = db
	return m, nil
}

// New creates a Migrator on an existing connection. The caller keeps
// ownership of db.
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, logger: logger}, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	m.logger.Info("Running migrations up")

	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Migrations completed",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back n migrations, or all of them when n <= 0
func (m *Migrator) Down(n int) error {
	m.logger.Info("Running migrations down", zap.Int("steps", n))

	var err error
	if n > 0 {
		err = m.migrate.Steps(-n)
	} else {
		err = m.migrate.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("No migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return err
	}
	m.logger.Info("Rollback completed", zap.Uint("version", version))
	return nil
}

// Version returns the applied version. An empty database reports version 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force sets the recorded version without running anything. It is the way
// out of a dirty state after a failed migration was fixed by hand.
func (m *Migrator) Force(version int) error {
	m.logger.Warn("Forcing migration version", zap.Int("version", version))

	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the source and database handles
func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database: %w", dbErr)
	}
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
