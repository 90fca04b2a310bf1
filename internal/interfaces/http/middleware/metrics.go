package middleware

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// httpMetrics holds all HTTP-related metrics instruments.
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter,
		"http_server_request_total",
		"Total number of HTTP requests",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
	})
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics collects request counts, latency, response size and in-flight
// requests. Routes are labelled by pattern, not by path. It is a pass-through
// when the meter provider is not exporting.
func HTTPMetrics(mp *telemetry.MeterProvider) (gin.HandlerFunc, error) {
	if mp == nil || !mp.IsEnabled() {
		return func(c *gin.Context) { c.Next() }, nil
	}
	return HTTPMetricsWithMeter(mp.Meter("http.server"))
}

// HTTPMetricsWithMeter builds the middleware on an explicit meter
func HTTPMetricsWithMeter(meter metric.Meter) (gin.HandlerFunc, error) {
	m, err := newHTTPMetrics(meter)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.activeRequests.Add(ctx, 1)

		c.Next()

		m.activeRequests.Add(ctx, -1)
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		base := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(route),
		}

		requestAttrs := append([]attribute.KeyValue{telemetry.AttrHTTPStatusCode.Int(c.Writer.Status())}, base...)
		if tenantID := GetTenantID(c); tenantID != uuid.Nil {
			requestAttrs = append(requestAttrs, telemetry.AttrTenantID.String(tenantID.String()))
		}
		m.requestTotal.Inc(ctx, requestAttrs...)
		m.requestDuration.RecordDuration(ctx, time.Since(start), base...)
		if size := c.Writer.Size(); size > 0 {
			m.responseSize.Record(ctx, float64(size), base...)
		}
	}, nil
}
