package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// MeterProvider wraps the SDK meter provider. Disabled metrics fall back to
// the global no-op meter.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider creates the OTLP/gRPC meter provider and installs it globally
func NewMeterProvider(ctx context.Context, cfg *config.TelemetryConfig, logger *zap.Logger) (*MeterProvider, error) {
	if !cfg.Enabled || !cfg.MetricsEnabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return &MeterProvider{logger: logger}, nil
	}

	interval := cfg.MetricsInterval
	if interval <= 0 {
		interval = 60 * time.Second
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	mp, err := NewMeterProviderWithReader(cfg.ServiceName,
		sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)), logger)
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.Duration("export_interval", interval),
	)
	return mp, nil
}

// NewMeterProviderWithReader builds a provider around an explicit reader.
// Tests pass a sdkmetric.ManualReader.
func NewMeterProviderWithReader(serviceName string, reader sdkmetric.Reader, logger *zap.Logger) (*MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeterProvider{
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader)),
		logger:   logger,
	}, nil
}

// Meter returns a named meter
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// IsEnabled returns whether metrics are exported
func (mp *MeterProvider) IsEnabled() bool {
	return mp.provider != nil
}

// Shutdown flushes pending metrics
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := mp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	mp.logger.Info("OpenTelemetry MeterProvider shutdown complete")
	return nil
}

// Counter is a monotonically increasing int64 instrument
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a Counter
func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return &Counter{counter: c}, nil
}

// Add increments the counter by value
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Inc increments the counter by one
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

// Histogram records a float64 distribution
type Histogram struct {
	histogram metric.Float64Histogram
}

// HistogramOpts configures a Histogram
type HistogramOpts struct {
	Name        string
	Description string
	Unit        string
	Boundaries  []float64
}

// NewHistogram creates a Histogram
func NewHistogram(meter metric.Meter, opts HistogramOpts) (*Histogram, error) {
	hopts := []metric.Float64HistogramOption{
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	}
	if len(opts.Boundaries) > 0 {
		hopts = append(hopts, metric.WithExplicitBucketBoundaries(opts.Boundaries...))
	}
	h, err := meter.Float64Histogram(opts.Name, hopts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram %s: %w", opts.Name, err)
	}
	return &Histogram{histogram: h}, nil
}

// Record records a value
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// RecordDuration records d in seconds
func (h *Histogram) RecordDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.Record(ctx, d.Seconds(), attrs...)
}

// Gauge records point-in-time int64 values
type Gauge struct {
	gauge metric.Int64Gauge
}

// NewGauge creates a Gauge
func NewGauge(meter metric.Meter, name, description, unit string) (*Gauge, error) {
	g, err := meter.Int64Gauge(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge %s: %w", name, err)
	}
	return &Gauge{gauge: g}, nil
}

// Record records the current value
func (g *Gauge) Record(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	g.gauge.Record(ctx, value, metric.WithAttributes(attrs...))
}

// Attribute keys shared by every instrument
var (
	AttrTenantID = attribute.Key("tenant_id")

	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrHTTPRoute      = attribute.Key("http.route")

	AttrDBOperation = attribute.Key("db.operation")
	AttrDBTable     = attribute.Key("db.table")
	AttrDBState     = attribute.Key("db.pool.state")

	AttrInvoiceType   = attribute.Key("invoice_type")
	AttrPaymentMethod = attribute.Key("payment_method")
	AttrPaymentStatus = attribute.Key("payment_status")
	AttrStockOutcome  = attribute.Key("stock_outcome")
	AttrOrderStatus   = attribute.Key("order_status")
	AttrReportType    = attribute.Key("report_type")
	AttrDegraded      = attribute.Key("degraded")
)

// Histogram bucket boundaries in seconds
var (
	HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	DBDurationBuckets   = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
)
