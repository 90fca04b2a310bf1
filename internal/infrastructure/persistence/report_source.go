package persistence

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/report"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReportSource loads report datasets straight from the tables. Each
// method is one independent read so the report service can fetch parts
// concurrently.
type GormReportSource struct {
	db *gorm.DB
}

// NewGormReportSource creates a new GormReportSource
func NewGormReportSource(db *gorm.DB) *GormReportSource {
	return &GormReportSource{db: db}
}

// LoadInvoices returns every invoice of the tenant with items and payments
func (s *GormReportSource) LoadInvoices(ctx context.Context, tenantID uuid.UUID) ([]invoice.Invoice, error) {
	var rows []models.InvoiceModel
	if err := s.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID), preloadLines).
		Order("invoice_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// LoadGSTEntries returns the GST entries dated inside the request period
func (s *GormReportSource) LoadGSTEntries(ctx context.Context, req report.Request) ([]invoice.GSTEntry, error) {
	return NewGormGSTEntryRepository(s.db).FindInPeriod(ctx, req.TenantID, req.From, req.To)
}

// LoadProducts returns every product of the tenant
func (s *GormReportSource) LoadProducts(ctx context.Context, tenantID uuid.UUID) ([]inventory.Product, error) {
	filter := shared.Filter{OrderBy: "name", OrderDir: "asc"}
	return NewGormProductRepository(s.db).FindAllForTenant(ctx, tenantID, filter)
}

// LoadLedgers returns every ledger and the entries dated up to the end of the
// request period
func (s *GormReportSource) LoadLedgers(ctx context.Context, req report.Request) ([]ledger.Ledger, []ledger.LedgerEntry, error) {
	repo := NewGormLedgerRepository(s.db)
	ledgers, err := repo.FindAllForTenant(ctx, req.TenantID, shared.Filter{OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return nil, nil, err
	}
	to := req.To
	entries, err := repo.FindEntriesForTenant(ctx, req.TenantID, ledger.Period{To: &to})
	if err != nil {
		return nil, nil, err
	}
	return ledgers, entries, nil
}

// Ensure GormReportSource implements report.Source
var _ report.Source = (*GormReportSource)(nil)
