// Package integration runs the services against a real PostgreSQL started
// with testcontainers and migrated with the files under migrations/.
package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/migration"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm/logger"
)

var (
	// Shared container for all tests in the package
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB is a migrated database for one test
type TestDB struct {
	*persistence.Database
	DSN string
	t   *testing.T
}

// NewSharedTestDB returns a connection to the package's PostgreSQL container,
// starting and migrating it on first use. Tests isolate themselves by tenant,
// so the tables are not truncated between them.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	ctx := context.Background()
	if sharedContainer == nil {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("gst_ledger_test"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("ledger-test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		require.NoError(t, err, "Failed to start PostgreSQL container")

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err, "Failed to get connection string")

		sharedContainer = container
		sharedContainerDSN = dsn

		db := connect(t, dsn)
		sqlDB, err := db.DB.DB()
		require.NoError(t, err)
		m, err := migration.New(sqlDB, findMigrationsPath(t), nil)
		require.NoError(t, err, "Failed to create migrator")
		require.NoError(t, m.Up(), "Failed to run migrations")
		require.NoError(t, db.Close())
	}

	testDB := &TestDB{
		Database: connect(t, sharedContainerDSN),
		DSN:      sharedContainerDSN,
		t:        t,
	}
	t.Cleanup(func() {
		_ = testDB.Close()
	})
	return testDB
}

// Count returns the number of rows in table matching where
func (tdb *TestDB) Count(table, where string, args ...any) int64 {
	tdb.t.Helper()
	var n int64
	err := tdb.DB.Table(table).Where(where, args...).Count(&n).Error
	require.NoError(tdb.t, err, "Failed to count %s", table)
	return n
}

func connect(t *testing.T, dsn string) *persistence.Database {
	t.Helper()

	level := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = logger.Info
	}
	db, err := persistence.Open(gormpostgres.Open(dsn), logger.Default.LogMode(level))
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return db
}

// findMigrationsPath walks up from this file to the repository's migrations/
func findMigrationsPath(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "Could not locate test source")

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, "migrations")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	require.FailNow(t, fmt.Sprintf("Could not find migrations directory above %s", filename))
	return ""
}

// TerminateSharedContainer stops the shared container if one was started
func TerminateSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
	}
}
