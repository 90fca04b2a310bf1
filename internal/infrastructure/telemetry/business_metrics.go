// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics records invoice, payment, stock, receiving and reporting activity.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	invoiceCreatedTotal *Counter
	invoiceAmountTotal  *Counter
	paymentTotal        *Counter
	stockWarningTotal   *Counter
	receiptTotal        *Counter
	reportTotal         *Counter

	reportDuration *Histogram

	// Gauge metrics (point-in-time values)
	outOfStockCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	stockProvider StockMetricsProvider
}

// StockMetricsProvider provides stock data for periodic metrics collection
// without the telemetry layer depending on the inventory domain.
type StockMetricsProvider interface {
	// GetOutOfStockCount returns the number of products with no stock left
	GetOutOfStockCount(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StockProvider   StockMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		stockProvider: cfg.StockProvider,
	}

	var err error
	counters := []struct {
		target      **Counter
		name        string
		description string
		unit        string
	}{
		{&bm.invoiceCreatedTotal, "ledger_invoice_created_total", "Total number of invoices created", "{invoices}"},
		{&bm.invoiceAmountTotal, "ledger_invoice_amount_total", "Total invoiced amount in paise", "{paise}"},
		{&bm.paymentTotal, "ledger_payment_total", "Total number of invoice payments recorded", "{payments}"},
		{&bm.stockWarningTotal, "ledger_stock_warning_total", "Stock updates skipped during invoice creation", "{items}"},
		{&bm.receiptTotal, "ledger_po_receipt_total", "Purchase order receipts processed", "{receipts}"},
		{&bm.reportTotal, "ledger_report_generated_total", "Reports generated", "{reports}"},
	}
	for _, c := range counters {
		*c.target, err = NewCounter(cfg.Meter, c.name, c.description, c.unit)
		if err != nil {
			return nil, err
		}
	}

	bm.reportDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "ledger_report_duration_seconds",
		Description: "Time to load and build a report",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	bm.outOfStockCount, err = NewGauge(
		cfg.Meter,
		"ledger_inventory_out_of_stock_count",
		"Number of products with zero stock",
		"{products}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Invoice Metrics
// =============================================================================

// RecordInvoiceCreated records an invoice and its total amount.
func (bm *BusinessMetrics) RecordInvoiceCreated(ctx context.Context, tenantID uuid.UUID, invoiceType string, total decimal.Decimal) {
	attrs := []attribute.KeyValue{
		AttrTenantID.String(tenantID.String()),
		AttrInvoiceType.String(invoiceType),
	}
	bm.invoiceCreatedTotal.Inc(ctx, attrs...)
	bm.invoiceAmountTotal.Add(ctx, ToPaise(total), attrs...)
}

// ToPaise converts a rupee amount to paise, truncating fractions of a paisa.
func ToPaise(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// PaymentStatus represents the resulting invoice status for metrics labeling.
type PaymentStatus string

const (
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// RecordPayment records a payment against an invoice.
func (bm *BusinessMetrics) RecordPayment(ctx context.Context, tenantID uuid.UUID, paymentMethod string, status PaymentStatus) {
	bm.paymentTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrPaymentMethod.String(paymentMethod),
		AttrPaymentStatus.String(string(status)),
	)
}

// =============================================================================
// Inventory Metrics
// =============================================================================

// RecordStockWarnings records stock updates skipped during invoice creation.
func (bm *BusinessMetrics) RecordStockWarnings(ctx context.Context, tenantID uuid.UUID, outcome string, count int) {
	if count <= 0 {
		return
	}
	bm.stockWarningTotal.Add(ctx, int64(count),
		AttrTenantID.String(tenantID.String()),
		AttrStockOutcome.String(outcome),
	)
}

// RecordReceipt records a purchase order receipt.
func (bm *BusinessMetrics) RecordReceipt(ctx context.Context, tenantID uuid.UUID, status string) {
	bm.receiptTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrOrderStatus.String(status),
	)
}

// RecordOutOfStockCount records the number of products with zero stock.
func (bm *BusinessMetrics) RecordOutOfStockCount(ctx context.Context, tenantID uuid.UUID, count int64) {
	bm.outOfStockCount.Record(ctx, count,
		AttrTenantID.String(tenantID.String()),
	)
}

// =============================================================================
// Report Metrics
// =============================================================================

// RecordReport records a generated report, its build time and whether it
// carried warnings.
func (bm *BusinessMetrics) RecordReport(ctx context.Context, tenantID uuid.UUID, reportType string, d time.Duration, degraded bool) {
	attrs := []attribute.KeyValue{
		AttrTenantID.String(tenantID.String()),
		AttrReportType.String(reportType),
		AttrDegraded.Bool(degraded),
	}
	bm.reportTotal.Inc(ctx, attrs...)
	bm.reportDuration.RecordDuration(ctx, d, attrs[:2]...)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// TenantProvider provides tenant IDs for periodic metrics collection.
type TenantProvider interface {
	GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, tenantProvider, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bm.collectStockMetrics(ctx, tenantProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectStockMetrics(ctx, tenantProvider)
		}
	}
}

func (bm *BusinessMetrics) collectStockMetrics(ctx context.Context, tenantProvider TenantProvider) {
	if bm.stockProvider == nil {
		bm.logger.Debug("No stock provider configured, skipping stock metrics collection")
		return
	}

	tenantIDs, err := tenantProvider.GetActiveTenantIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get tenant IDs for metrics collection", zap.Error(err))
		return
	}

	for _, tenantID := range tenantIDs {
		count, err := bm.stockProvider.GetOutOfStockCount(ctx, tenantID)
		if err != nil {
			bm.logger.Warn("Failed to get out-of-stock count for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}
		bm.RecordOutOfStockCount(ctx, tenantID, count)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
