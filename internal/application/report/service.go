package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/report"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// SnapshotStore keeps the latest complete report per tenant and type
type SnapshotStore interface {
	// Put replaces the stored snapshot for the report's tenant and type
	Put(ctx context.Context, rep *report.Report) error
	// GetLatest returns shared.ErrNotFound when nothing was stored yet
	GetLatest(ctx context.Context, tenantID uuid.UUID, reportType report.Type) (*report.Report, error)
}

// ReportService loads report datasets and builds reports
type ReportService struct {
	source          report.Source
	snapshots       SnapshotStore
	fetchTimeout    time.Duration
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewReportService creates a new ReportService. snapshots may be nil.
func NewReportService(source report.Source, snapshots SnapshotStore, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		source:    source,
		snapshots: snapshots,
		logger:    logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *ReportService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// SetFetchTimeout bounds how long dataset loading may take. Zero disables it.
func (s *ReportService) SetFetchTimeout(d time.Duration) {
	s.fetchTimeout = d
}

// Generate computes a report from live data. A part of the dataset that
// cannot be loaded contributes zero and is listed in the warnings; only a
// complete report replaces the stored snapshot.
func (s *ReportService) Generate(ctx context.Context, tenantID uuid.UUID, reportType string, q ReportQuery) (*ReportResponse, error) {
	req, err := toRequest(tenantID, reportType, q)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "report", "generate",
		telemetry.SpanAttrTenantID, tenantID.String(),
		telemetry.SpanAttrReportType, req.Type.String(),
	)
	defer span.End()

	started := time.Now()
	var (
		rep *report.Report
		ds  *report.Dataset
	)
	telemetry.WithProfilingLabels(ctx, telemetry.ReportLabels(req.Type.String(), tenantID.String()), func(ctx context.Context) {
		loadCtx := ctx
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
		}
		ds = s.load(loadCtx, req)
		rep, err = report.Build(ds, req)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	degraded := len(ds.Failures) > 0
	telemetry.SetAttributes(span, "degraded", degraded, "rows", len(rep.Rows))
	if s.businessMetrics != nil {
		s.businessMetrics.RecordReport(ctx, tenantID, req.Type.String(), time.Since(started), degraded)
	}

	if !degraded && s.snapshots != nil {
		if err := s.snapshots.Put(ctx, rep); err != nil {
			s.logger.Warn("Failed to store report snapshot",
				zap.String("tenant_id", tenantID.String()),
				zap.String("report_type", req.Type.String()),
				zap.Error(err),
			)
		}
	}

	response := ToReportResponse(rep)
	response.Degraded = degraded
	return &response, nil
}

// Latest returns the most recently stored complete report of the given type
func (s *ReportService) Latest(ctx context.Context, tenantID uuid.UUID, reportType string) (*ReportResponse, error) {
	t := report.Type(reportType)
	if !t.IsValid() {
		return nil, shared.NewValidationError("Unknown report type: " + reportType)
	}
	if s.snapshots == nil {
		return nil, shared.ErrNotFound
	}
	rep, err := s.snapshots.GetLatest(ctx, tenantID, t)
	if err != nil {
		if shared.CodeOf(err) != "" {
			return nil, err
		}
		return nil, shared.WrapDomainError(shared.CodeDependencyFailure, "Report snapshot unavailable", err)
	}
	response := ToReportResponse(rep)
	return &response, nil
}

// load fetches every part the report needs in parallel. Failed parts are
// logged and recorded on the dataset.
func (s *ReportService) load(ctx context.Context, req report.Request) *report.Dataset {
	ds := report.NewDataset()
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, part := range report.Needs(req.Type) {
		wg.Add(1)
		go func(part report.Part) {
			defer wg.Done()
			err := s.loadPart(ctx, req, part, ds, &mu)
			if err == nil {
				return
			}
			s.logger.Warn("Report data unavailable",
				zap.String("tenant_id", req.TenantID.String()),
				zap.String("report_type", req.Type.String()),
				zap.String("part", string(part)),
				zap.Error(err),
			)
			mu.Lock()
			ds.Failures[part] = err
			mu.Unlock()
		}(part)
	}

	wg.Wait()
	return ds
}

func (s *ReportService) loadPart(ctx context.Context, req report.Request, part report.Part, ds *report.Dataset, mu *sync.Mutex) error {
	switch part {
	case report.PartInvoices:
		invoices, err := s.source.LoadInvoices(ctx, req.TenantID)
		if err != nil {
			return err
		}
		mu.Lock()
		ds.Invoices = invoices
		mu.Unlock()
	case report.PartGSTEntries:
		entries, err := s.source.LoadGSTEntries(ctx, req)
		if err != nil {
			return err
		}
		mu.Lock()
		ds.GSTEntries = entries
		mu.Unlock()
	case report.PartProducts:
		products, err := s.source.LoadProducts(ctx, req.TenantID)
		if err != nil {
			return err
		}
		mu.Lock()
		ds.Products = products
		mu.Unlock()
	case report.PartLedgers:
		ledgers, entries, err := s.source.LoadLedgers(ctx, req)
		if err != nil {
			return err
		}
		mu.Lock()
		ds.Ledgers = ledgers
		ds.LedgerEntries = entries
		mu.Unlock()
	default:
		return fmt.Errorf("unknown dataset part %q", part)
	}
	return nil
}

func toRequest(tenantID uuid.UUID, reportType string, q ReportQuery) (report.Request, error) {
	req := report.Request{Type: report.Type(reportType), TenantID: tenantID}
	var err error
	if req.From, err = parseDate(q.From, "from"); err != nil {
		return req, err
	}
	if req.To, err = parseDate(q.To, "to"); err != nil {
		return req, err
	}
	if q.AsOf != "" {
		asOf, err := parseDate(q.AsOf, "as_of")
		if err != nil {
			return req, err
		}
		req.AsOf = &asOf
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, shared.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return t, nil
}
