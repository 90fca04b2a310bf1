package persistence

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBusinessEntityRepository implements BusinessEntityRepository using GORM
type GormBusinessEntityRepository struct {
	db *gorm.DB
}

// NewGormBusinessEntityRepository creates a new GormBusinessEntityRepository
func NewGormBusinessEntityRepository(db *gorm.DB) *GormBusinessEntityRepository {
	return &GormBusinessEntityRepository{db: db}
}

// FindByIDForTenant finds a counterparty by ID within a tenant
func (r *GormBusinessEntityRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.BusinessEntity, error) {
	var model models.BusinessEntityModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists counterparties, optionally of one type. An empty
// entityType matches every type.
func (r *GormBusinessEntityRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, entityType partner.EntityType, filter shared.Filter) ([]partner.BusinessEntity, error) {
	query := r.db.WithContext(ctx).Model(&models.BusinessEntityModel{}).Scopes(tenant.Scope(tenantID))
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(gstin) LIKE ?", pattern, pattern)
	}

	var rows []models.BusinessEntityModel
	if err := applyOrderAndPage(query, filter, EntitySortFields, "name").Find(&rows).Error; err != nil {
		return nil, err
	}
	entities := make([]partner.BusinessEntity, len(rows))
	for i := range rows {
		entities[i] = *rows[i].ToDomain()
	}
	return entities, nil
}

// Save inserts a new counterparty or updates an existing one with a version check
func (r *GormBusinessEntityRepository) Save(ctx context.Context, entity *partner.BusinessEntity) error {
	model := models.BusinessEntityModelFromDomain(entity)
	if entity.Version <= 1 {
		return r.db.WithContext(ctx).Create(model).Error
	}

	result := r.db.WithContext(ctx).
		Model(&models.BusinessEntityModel{}).
		Scopes(tenant.Scope(entity.TenantID)).
		Where("id = ? AND version = ?", entity.ID, entity.Version-1).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"entity_type": model.EntityType,
			"state_code":  model.StateCode,
			"gstin":       model.GSTIN,
			"phone":       model.Phone,
			"email":       model.Email,
			"address":     model.Address,
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

// Ensure GormBusinessEntityRepository implements BusinessEntityRepository
var _ partner.BusinessEntityRepository = (*GormBusinessEntityRepository)(nil)
