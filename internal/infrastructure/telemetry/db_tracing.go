package telemetry

import (
	"errors"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// RegisterDBTracing installs otelgorm and annotates its spans with row counts,
// table names, errors and a slow_query flag. Query variables are left out of
// spans unless DBLogFullSQL is set.
func RegisterDBTracing(db *gorm.DB, cfg *config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = defaultSlowQueryThreshold
	}
	if err := registerAround(db, "otel_span", func(db *gorm.DB, _ string) {
		annotateSpan(db, thresh)
	}); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", thresh),
	)
	return nil
}

func annotateSpan(db *gorm.DB, slowThreshold time.Duration) {
	if db.Statement.Context == nil {
		return
	}
	span := trace.SpanFromContext(db.Statement.Context)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
	if elapsed, ok := queryElapsed(db); ok && elapsed > slowThreshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("threshold_ms", slowThreshold.Milliseconds()),
		))
	}
}
