package telemetry

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultPoolStatsInterval = 15 * time.Second

// DBMetrics records query counts, latencies, slow queries and pool usage
type DBMetrics struct {
	poolConnections    *Gauge
	poolConnectionsMax *Gauge
	queryTotal         *Counter
	queryErrors        *Counter
	queryDuration      *Histogram
	slowQueryTotal     *Counter

	slowThreshold time.Duration
	logger        *zap.Logger
	stopCh        chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
}

// NewDBMetrics creates the instruments on meter
func NewDBMetrics(meter metric.Meter, slowThreshold time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if slowThreshold <= 0 {
		slowThreshold = defaultSlowQueryThreshold
	}
	m := &DBMetrics{slowThreshold: slowThreshold, logger: logger, stopCh: make(chan struct{})}

	var err error
	if m.poolConnections, err = NewGauge(meter, "db_pool_connections", "Connections in the pool by state", "{connection}"); err != nil {
		return nil, err
	}
	if m.poolConnectionsMax, err = NewGauge(meter, "db_pool_connections_max", "Maximum open connections", "{connection}"); err != nil {
		return nil, err
	}
	if m.queryTotal, err = NewCounter(meter, "db_query_total", "Database queries by operation", "{query}"); err != nil {
		return nil, err
	}
	if m.queryErrors, err = NewCounter(meter, "db_query_errors_total", "Failed database queries by operation", "{query}"); err != nil {
		return nil, err
	}
	if m.slowQueryTotal, err = NewCounter(meter, "db_slow_query_total", "Queries slower than the slow query threshold", "{query}"); err != nil {
		return nil, err
	}
	m.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordQuery records one finished statement. Record-not-found is not an error.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, d time.Duration, failed bool) {
	if operation == "" {
		operation = "OTHER"
	}
	op := AttrDBOperation.String(operation)
	m.queryTotal.Inc(ctx, op)
	m.queryDuration.RecordDuration(ctx, d, op)
	if failed {
		m.queryErrors.Inc(ctx, op)
	}
	if d > m.slowThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	}
}

// Initialize registers the query callbacks; DBMetrics is a gorm.Plugin
func (m *DBMetrics) Initialize(db *gorm.DB) error {
	return registerAround(db, "db_metrics", func(db *gorm.DB, operation string) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		elapsed, _ := queryElapsed(db)
		failed := db.Error != nil && db.Error != gorm.ErrRecordNotFound
		m.RecordQuery(ctx, operation, db.Statement.Table, elapsed, failed)
	})
}

// Name implements gorm.Plugin
func (m *DBMetrics) Name() string {
	return "db_metrics"
}

// StartPoolStatsCollection samples sqlDB.Stats every interval until Stop
func (m *DBMetrics) StartPoolStatsCollection(ctx context.Context, sqlDB *sql.DB, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPoolStatsInterval
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		m.collectPoolStats(ctx, sqlDB)
		for {
			select {
			case <-ticker.C:
				m.collectPoolStats(ctx, sqlDB)
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *DBMetrics) collectPoolStats(ctx context.Context, sqlDB *sql.DB) {
	stats := sqlDB.Stats()
	m.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections))
	m.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	m.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	m.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
}

// Stop ends pool stats collection. Safe to call more than once.
func (m *DBMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
	})
}

// RegisterDBMetrics installs DBMetrics on db when metrics are exported and
// starts pool sampling. It returns nil metrics when disabled.
func RegisterDBMetrics(ctx context.Context, db *gorm.DB, mp *MeterProvider, cfg *config.TelemetryConfig, logger *zap.Logger) (*DBMetrics, error) {
	if mp == nil || !mp.IsEnabled() {
		logger.Debug("Metrics disabled, skipping database metrics")
		return nil, nil
	}
	m, err := NewDBMetrics(mp.Meter("db.client"), cfg.DBSlowQueryThresh, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Use(m); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	m.StartPoolStatsCollection(ctx, sqlDB, defaultPoolStatsInterval)
	logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", m.slowThreshold))
	return m, nil
}
