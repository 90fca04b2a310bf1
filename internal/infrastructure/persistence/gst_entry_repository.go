package persistence

import (
	"context"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormGSTEntryRepository implements GSTEntryRepository using GORM
type GormGSTEntryRepository struct {
	db *gorm.DB
}

// NewGormGSTEntryRepository creates a new GormGSTEntryRepository
func NewGormGSTEntryRepository(db *gorm.DB) *GormGSTEntryRepository {
	return &GormGSTEntryRepository{db: db}
}

// Create appends a GST entry
func (r *GormGSTEntryRepository) Create(ctx context.Context, entry *invoice.GSTEntry) error {
	return r.db.WithContext(ctx).Create(models.GSTEntryModelFromDomain(entry)).Error
}

// MarkPaid stamps the payment time on the entry of an invoice. Invoices
// without an entry (returns) are silently skipped.
func (r *GormGSTEntryRepository) MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID, paidAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.GSTEntryModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("invoice_id = ?", invoiceID).
		Update("paid_at", paidAt).Error
}

// FindByInvoice returns the entry derived from an invoice
func (r *GormGSTEntryRepository) FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) (*invoice.GSTEntry, error) {
	var model models.GSTEntryModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("invoice_id = ?", invoiceID).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	entry := model.ToDomain()
	return &entry, nil
}

// FindInPeriod returns the tenant's entries dated within [from, to]
func (r *GormGSTEntryRepository) FindInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]invoice.GSTEntry, error) {
	var rows []models.GSTEntryModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("entry_date >= ? AND entry_date <= ?", from, to).
		Order("entry_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]invoice.GSTEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// Ensure GormGSTEntryRepository implements GSTEntryRepository
var _ invoice.GSTEntryRepository = (*GormGSTEntryRepository)(nil)
