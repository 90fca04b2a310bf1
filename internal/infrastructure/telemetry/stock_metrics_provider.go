package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMetricsProvider implements StockMetricsProvider by querying the
// products table directly.
type GormStockMetricsProvider struct {
	db *gorm.DB
}

// NewGormStockMetricsProvider creates a new GormStockMetricsProvider.
func NewGormStockMetricsProvider(db *gorm.DB) *GormStockMetricsProvider {
	return &GormStockMetricsProvider{db: db}
}

// GetOutOfStockCount returns the number of products with no stock left.
func (p *GormStockMetricsProvider) GetOutOfStockCount(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("tenant_id = ? AND current_stock <= 0", tenantID).
		Count(&count).Error
	return count, err
}

// GormTenantProvider implements TenantProvider using GORM.
type GormTenantProvider struct {
	db *gorm.DB
}

// NewGormTenantProvider creates a new GormTenantProvider.
func NewGormTenantProvider(db *gorm.DB) *GormTenantProvider {
	return &GormTenantProvider{db: db}
}

// GetActiveTenantIDs returns every tenant that owns at least one product.
func (p *GormTenantProvider) GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("products").
		Distinct("tenant_id").
		Pluck("tenant_id", &ids).Error
	return ids, err
}

var (
	_ StockMetricsProvider = (*GormStockMetricsProvider)(nil)
	_ TenantProvider       = (*GormTenantProvider)(nil)
)
