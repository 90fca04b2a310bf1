package persistence

import (
	"context"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date ASC, created_at ASC") })
}

// FindByIDForTenant loads the invoice with its items and payments
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID), preloadLines).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists invoice headers matching the filter
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]invoice.Invoice, error) {
	var rows []models.InvoiceModel
	query := applyOrderAndPage(r.filtered(ctx, tenantID, filter), filter, InvoiceSortFields, "invoice_date")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// CountForTenant counts invoices matching the filter
func (r *GormInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInvoiceRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Scopes(tenant.Scope(tenantID))
	for key, value := range filter.Filters {
		switch key {
		case "invoice_type", "entity_type", "payment_status", "entity_id":
			query = query.Where(key+" = ?", value)
		}
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(invoice_number) LIKE ? OR LOWER(custom_number) LIKE ? OR LOWER(entity_name) LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.DateFrom != nil {
		query = query.Where("invoice_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("invoice_date <= ?", *filter.DateTo)
	}
	return query
}

// FindPaymentsForInvoice returns payments in payment-date order
func (r *GormInvoiceRepository) FindPaymentsForInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]invoice.InvoicePayment, error) {
	var rows []models.InvoicePaymentModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("invoice_id = ?", invoiceID).
		Order("payment_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	payments := make([]invoice.InvoicePayment, len(rows))
	for i := range rows {
		payments[i] = rows[i].ToDomain()
	}
	return payments, nil
}

// FindOverdueCandidates returns unpaid invoices dated on or before asOf. The
// caller decides which of them are past due.
func (r *GormInvoiceRepository) FindOverdueCandidates(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]invoice.Invoice, error) {
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("payment_status IN ?", []string{string(invoice.PaymentStatusDue), string(invoice.PaymentStatusPartial)}).
		Where("invoice_type IN ?", []string{string(invoice.InvoiceTypeSales), string(invoice.InvoiceTypePurchase)}).
		Where("invoice_date <= ?", asOf).
		Order("invoice_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// NumberExists checks whether number is taken as a system or custom number
// by the owner
func (r *GormInvoiceRepository) NumberExists(ctx context.Context, tenantID, ownerID uuid.UUID, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceNumberModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("owner_id = ? AND number = ?", ownerID, number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the header and items and reserves the invoice's system and
// custom numbers. A number already reserved by any invoice of the owner fails
// with ErrDuplicateNumber.
func (r *GormInvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Payments").Create(model).Error; err != nil {
			return err
		}
		numbers := models.InvoiceNumberModelsFromDomain(inv)
		return tx.Create(&numbers).Error
	})
	return duplicateNumber(err)
}

// SaveWithLock writes status and paid fields if nobody else changed the
// invoice since it was loaded
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, inv *invoice.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Scopes(tenant.Scope(inv.TenantID)).
		Where("id = ? AND version = ?", inv.ID, inv.Version-1).
		Updates(map[string]interface{}{
			"payment_status": string(inv.PaymentStatus),
			"amount_paid":    inv.AmountPaid,
			"paid_at":        inv.PaidAt,
			"version":        inv.Version,
			"updated_at":     inv.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// AddPayment inserts one payment row
func (r *GormInvoiceRepository) AddPayment(ctx context.Context, payment *invoice.InvoicePayment) error {
	return r.db.WithContext(ctx).Create(models.InvoicePaymentModelFromDomain(payment)).Error
}

func toInvoices(rows []models.InvoiceModel) []invoice.Invoice {
	out := make([]invoice.Invoice, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ invoice.InvoiceRepository = (*GormInvoiceRepository)(nil)
