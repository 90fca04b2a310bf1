package telemetry

import (
	"context"
	"fmt"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerProvider wraps the SDK log provider used by the zap bridge
type LoggerProvider struct {
	provider    *sdklog.LoggerProvider
	serviceName string
	logger      *zap.Logger
}

// NewLoggerProvider creates the OTLP/gRPC log provider and installs it globally
func NewLoggerProvider(ctx context.Context, cfg *config.TelemetryConfig, logger *zap.Logger) (*LoggerProvider, error) {
	lp := &LoggerProvider{serviceName: cfg.ServiceName, logger: logger}
	if !cfg.Enabled || !cfg.LogsEnabled {
		logger.Info("OTLP logs disabled")
		return lp, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}
	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	lp.provider = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(lp.provider)
	logger.Info("OpenTelemetry LoggerProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
	)
	return lp, nil
}

// NewLoggerProviderWithProcessor builds a provider around an explicit
// processor. Tests use it with an in-memory exporter.
func NewLoggerProviderWithProcessor(serviceName string, processor sdklog.Processor) *LoggerProvider {
	return &LoggerProvider{
		provider:    sdklog.NewLoggerProvider(sdklog.WithProcessor(processor)),
		serviceName: serviceName,
		logger:      zap.NewNop(),
	}
}

// IsEnabled returns whether logs are exported
func (lp *LoggerProvider) IsEnabled() bool {
	return lp != nil && lp.provider != nil
}

// Core returns a zap core that forwards entries at or above minLevel to
// OpenTelemetry. It is a no-op core when logs are disabled. Pass it to
// logger.New as an extra core.
func (lp *LoggerProvider) Core(minLevel zapcore.Level) zapcore.Core {
	if !lp.IsEnabled() {
		return zapcore.NewNopCore()
	}
	core := otelzap.NewCore(lp.serviceName, otelzap.WithLoggerProvider(lp.provider))
	return &levelFilterCore{Core: core, minLevel: minLevel}
}

// Shutdown flushes pending log records
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if !lp.IsEnabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := lp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown logger provider: %w", err)
	}
	return nil
}

// levelFilterCore drops entries below minLevel; otelzap has no level of its own
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

func (c *levelFilterCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{Core: c.Core.With(fields), minLevel: c.minLevel}
}
