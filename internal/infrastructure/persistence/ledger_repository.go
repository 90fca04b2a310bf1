package persistence

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindByIDForTenant finds a ledger by ID within a tenant
func (r *GormLedgerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Ledger, error) {
	var model models.LedgerModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists the tenant's ledgers
func (r *GormLedgerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledger.Ledger, error) {
	query := r.db.WithContext(ctx).Model(&models.LedgerModel{}).Scopes(tenant.Scope(tenantID))
	if v, ok := filter.Filters["ledger_type"]; ok {
		query = query.Where("ledger_type = ?", v)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}

	var rows []models.LedgerModel
	if err := applyOrderAndPage(query, filter, LedgerSortFields, "name").Find(&rows).Error; err != nil {
		return nil, err
	}
	ledgers := make([]ledger.Ledger, len(rows))
	for i := range rows {
		ledgers[i] = *rows[i].ToDomain()
	}
	return ledgers, nil
}

// Save inserts a new ledger or updates an existing one with a version check
func (r *GormLedgerRepository) Save(ctx context.Context, l *ledger.Ledger) error {
	model := models.LedgerModelFromDomain(l)
	if l.Version <= 1 {
		return r.db.WithContext(ctx).Create(model).Error
	}
	result := r.db.WithContext(ctx).
		Model(&models.LedgerModel{}).
		Scopes(tenant.Scope(l.TenantID)).
		Where("id = ? AND version = ?", l.ID, l.Version-1).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// AppendEntries inserts entries in one statement
func (r *GormLedgerRepository) AppendEntries(ctx context.Context, entries []ledger.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]models.LedgerEntryModel, len(entries))
	for i := range entries {
		rows[i] = models.LedgerEntryModelFromDomain(&entries[i])
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// FindEntriesForTenant returns entries dated on or before p.To, in entry-date order
func (r *GormLedgerRepository) FindEntriesForTenant(ctx context.Context, tenantID uuid.UUID, p ledger.Period) ([]ledger.LedgerEntry, error) {
	query := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if p.To != nil {
		query = query.Where("entry_date <= ?", *p.To)
	}

	var rows []models.LedgerEntryModel
	if err := query.Order("entry_date ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]ledger.LedgerEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

// Ensure GormLedgerRepository implements LedgerRepository
var _ ledger.LedgerRepository = (*GormLedgerRepository)(nil)
