package logger

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	tenantIDKey  contextKey = "tenant_id"
)

// WithContext returns a new context carrying logger
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the request logger with trace ids attached, or a no-op
// logger when none was stored
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	return l
}

// WithRequestID stores the request id and a logger carrying it
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithTenant stores the tenant and adds a tenant_id field to the stored logger
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, tenantIDKey, tenantID)
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		ctx = WithContext(ctx, l.With(zap.String("tenant_id", tenantID.String())))
	}
	return ctx
}

// GetRequestID returns the request id stored in ctx
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// GetTenantID returns the tenant stored in ctx, or uuid.Nil
func GetTenantID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(tenantIDKey).(uuid.UUID)
	return id
}
