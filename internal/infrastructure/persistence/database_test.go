package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	// gorm pings the pool once while opening
	mock.ExpectPing()

	db, err := Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), nil)
	require.NoError(t, err)

	return db, mock, mockDB
}

func TestOpen(t *testing.T) {
	t.Run("applies repository settings", func(t *testing.T) {
		db, _, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		assert.True(t, db.DB.Config.SkipDefaultTransaction)
		assert.True(t, db.DB.Config.TranslateError)
		assert.Equal(t, time.UTC, db.DB.Config.NowFunc().Location())
	})
}

func TestDatabase_Stats(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
	assert.Equal(t, stats.OpenConnections, stats.InUse+stats.Idle)
	assert.GreaterOrEqual(t, stats.WaitDuration, time.Duration(0))
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing()

		assert.NoError(t, db.Ping())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping failure is returned", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(assert.AnError)

		assert.ErrorIs(t, db.Ping(), assert.AnError)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()

	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_TransactionRollback(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
