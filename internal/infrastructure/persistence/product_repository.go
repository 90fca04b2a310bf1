package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindByNameForTenant resolves a product by case-insensitive exact name. When
// several products share the name the oldest wins.
func (r *GormProductRepository) FindByNameForTenant(ctx context.Context, tenantID uuid.UUID, name string) (*inventory.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists products. Supported filter keys: out_of_stock.
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Product, error) {
	var rows []models.ProductModel
	query := applyOrderAndPage(r.filtered(ctx, tenantID, filter), filter, ProductSortFields, "name")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]inventory.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

// CountForTenant counts products matching the filter
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProductRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Scopes(tenant.Scope(tenantID))
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if v, ok := filter.Filters["out_of_stock"].(bool); ok {
		if v {
			query = query.Where("current_stock <= 0")
		} else {
			query = query.Where("current_stock > 0")
		}
	}
	return query
}

// Save inserts a new product or updates the descriptive fields of an existing
// one. Updates are guarded by the version the caller loaded.
func (r *GormProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	model := models.ProductModelFromDomain(product)
	if product.Version <= 1 {
		return r.db.WithContext(ctx).Create(model).Error
	}

	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Scopes(tenant.Scope(product.TenantID)).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"name":           model.Name,
			"sku":            model.SKU,
			"hsn_code":       model.HSNCode,
			"unit":           model.Unit,
			"purchase_price": model.PurchasePrice,
			"selling_price":  model.SellingPrice,
			"gst_rate":       model.GSTRate,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// ApplyStockDelta changes current_stock in one conditional UPDATE so that
// concurrent writers cannot both pass a read-then-write check. When the guard
// refuses the update the row is read back to tell a missing product apart from
// insufficient stock.
func (r *GormProductRepository) ApplyStockDelta(ctx context.Context, tenantID, productID uuid.UUID, delta decimal.Decimal, guardNonNegative bool) error {
	if delta.IsZero() {
		return nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", productID)
	if guardNonNegative {
		query = query.Where("current_stock + ? >= 0", delta)
	}

	result := query.Updates(map[string]interface{}{
		"current_stock": gorm.Expr("current_stock + ?", delta),
		"updated_at":    time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", productID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrInsufficientStock
}

// Ensure GormProductRepository implements ProductRepository
var _ inventory.ProductRepository = (*GormProductRepository)(nil)
