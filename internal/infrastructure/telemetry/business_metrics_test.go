package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func newTestBusinessMetrics(t *testing.T, provider StockMetricsProvider) (*BusinessMetrics, func() map[string]metricdata.Metrics) {
	t.Helper()
	mp, reader := newTestMeterProvider(t)
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{
		Meter:         mp.Meter("business"),
		Logger:        zaptest.NewLogger(t),
		StockProvider: provider,
	})
	require.NoError(t, err)
	t.Cleanup(bm.Stop)
	return bm, func() map[string]metricdata.Metrics { return collect(t, reader) }
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{})
	assert.Nil(t, bm)
	assert.ErrorIs(t, err, ErrMeterNil)
	assert.Equal(t, "NewBusinessMetrics: meter cannot be nil", err.Error())
}

func TestToPaise(t *testing.T) {
	assert.Equal(t, int64(118000), ToPaise(decimal.NewFromInt(1180)))
	assert.Equal(t, int64(1050), ToPaise(decimal.RequireFromString("10.505")))
	assert.Equal(t, int64(0), ToPaise(decimal.Zero))
}

func TestBusinessMetrics_Invoices(t *testing.T) {
	bm, read := newTestBusinessMetrics(t, nil)
	ctx := context.Background()
	tenant := uuid.New()

	bm.RecordInvoiceCreated(ctx, tenant, "sales", decimal.RequireFromString("1180.50"))
	bm.RecordInvoiceCreated(ctx, tenant, "purchase", decimal.NewFromInt(100))

	metrics := read()
	assert.Equal(t, int64(2), sumValue(t, metrics["ledger_invoice_created_total"]))
	assert.Equal(t, int64(128050), sumValue(t, metrics["ledger_invoice_amount_total"]))
}

func TestBusinessMetrics_PaymentsReceiptsAndWarnings(t *testing.T) {
	bm, read := newTestBusinessMetrics(t, nil)
	ctx := context.Background()
	tenant := uuid.New()

	bm.RecordPayment(ctx, tenant, "upi", PaymentStatusPartial)
	bm.RecordPayment(ctx, tenant, "upi", PaymentStatusPaid)
	bm.RecordPayment(ctx, tenant, "cash", PaymentStatusFailed)
	bm.RecordStockWarnings(ctx, tenant, "skipped_insufficient", 2)
	bm.RecordStockWarnings(ctx, tenant, "skipped_unmatched", 0)
	bm.RecordReceipt(ctx, tenant, "partial")

	metrics := read()
	payments := metrics["ledger_payment_total"]
	assert.Equal(t, int64(3), sumValue(t, payments))
	assert.Len(t, payments.Data.(metricdata.Sum[int64]).DataPoints, 3)
	assert.Equal(t, int64(2), sumValue(t, metrics["ledger_stock_warning_total"]))
	assert.Len(t, metrics["ledger_stock_warning_total"].Data.(metricdata.Sum[int64]).DataPoints, 1)
	assert.Equal(t, int64(1), sumValue(t, metrics["ledger_po_receipt_total"]))
}

func TestBusinessMetrics_Reports(t *testing.T) {
	bm, read := newTestBusinessMetrics(t, nil)
	ctx := context.Background()
	tenant := uuid.New()

	bm.RecordReport(ctx, tenant, "gst", 40*time.Millisecond, false)
	bm.RecordReport(ctx, tenant, "gst", 60*time.Millisecond, true)

	metrics := read()
	reports := metrics["ledger_report_generated_total"]
	assert.Equal(t, int64(2), sumValue(t, reports))
	// degraded and healthy runs are separate series
	assert.Len(t, reports.Data.(metricdata.Sum[int64]).DataPoints, 2)

	hist := metrics["ledger_report_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.InDelta(t, 0.1, hist.DataPoints[0].Sum, 1e-9)
}

type stubStockProvider struct {
	counts map[uuid.UUID]int64
	errFor uuid.UUID
}

func (s stubStockProvider) GetOutOfStockCount(_ context.Context, tenantID uuid.UUID) (int64, error) {
	if tenantID == s.errFor {
		return 0, errors.New("query failed")
	}
	return s.counts[tenantID], nil
}

type stubTenantProvider struct {
	mu    sync.Mutex
	ids   []uuid.UUID
	err   error
	calls int
}

func (s *stubTenantProvider) GetActiveTenantIDs(context.Context) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.ids, s.err
}

func (s *stubTenantProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestBusinessMetrics_CollectStockMetrics(t *testing.T) {
	good, bad := uuid.New(), uuid.New()
	bm, read := newTestBusinessMetrics(t, stubStockProvider{
		counts: map[uuid.UUID]int64{good: 7},
		errFor: bad,
	})

	bm.collectStockMetrics(context.Background(), &stubTenantProvider{ids: []uuid.UUID{good, bad}})

	gauge := read()["ledger_inventory_out_of_stock_count"].Data.(metricdata.Gauge[int64])
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(7), gauge.DataPoints[0].Value)
	tenant, _ := gauge.DataPoints[0].Attributes.Value(AttrTenantID)
	assert.Equal(t, good.String(), tenant.AsString())
}

func TestBusinessMetrics_CollectWithoutProvider(t *testing.T) {
	bm, read := newTestBusinessMetrics(t, nil)
	tenants := &stubTenantProvider{ids: []uuid.UUID{uuid.New()}}

	bm.collectStockMetrics(context.Background(), tenants)

	assert.Zero(t, tenants.Calls())
	_, ok := read()["ledger_inventory_out_of_stock_count"]
	assert.False(t, ok)
}

func TestBusinessMetrics_PeriodicCollection(t *testing.T) {
	tenant := uuid.New()
	bm, read := newTestBusinessMetrics(t, stubStockProvider{counts: map[uuid.UUID]int64{tenant: 2}})
	tenants := &stubTenantProvider{ids: []uuid.UUID{tenant}}

	bm.StartPeriodicCollection(context.Background(), tenants, time.Hour)
	// a second start is ignored
	bm.StartPeriodicCollection(context.Background(), tenants, time.Hour)

	require.Eventually(t, func() bool { return tenants.Calls() >= 1 }, time.Second, 5*time.Millisecond)
	bm.Stop()
	bm.Stop()

	assert.Equal(t, 1, tenants.Calls())
	gauge := read()["ledger_inventory_out_of_stock_count"].Data.(metricdata.Gauge[int64])
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(2), gauge.DataPoints[0].Value)
}
