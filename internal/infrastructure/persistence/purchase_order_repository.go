package persistence

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/trade"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/models"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByIDForTenant loads the order with its items
func (r *GormPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists order headers matching the filter
func (r *GormPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var rows []models.PurchaseOrderModel
	query := applyOrderAndPage(r.filtered(ctx, tenantID, filter), filter, PurchaseOrderSortFields, "created_at")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]trade.PurchaseOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// CountForTenant counts orders matching the filter
func (r *GormPurchaseOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(ctx, tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPurchaseOrderRepository) filtered(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).Scopes(tenant.Scope(tenantID))
	if v, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", v)
	}
	if v, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", v)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(order_number) LIKE ? OR LOWER(supplier_name) LIKE ?", pattern, pattern)
	}
	return query
}

// Create inserts the header and items
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, order *trade.PurchaseOrder) error {
	return duplicateNumber(r.db.WithContext(ctx).Create(models.PurchaseOrderModelFromDomain(order)).Error)
}

// SaveWithLock updates the header and every item's received quantity. The
// version check on the header guards the whole order.
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PurchaseOrderModel{}).
			Scopes(tenant.Scope(order.TenantID)).
			Where("id = ? AND version = ?", order.ID, order.Version-1).
			Updates(map[string]interface{}{
				"status":        string(order.Status),
				"sent_at":       order.SentAt,
				"received_at":   order.ReceivedAt,
				"cancelled_at":  order.CancelledAt,
				"cancel_reason": order.CancelReason,
				"version":       order.Version,
				"updated_at":    order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.PurchaseOrderItemModel{}).
				Where("id = ? AND order_id = ?", item.ID, order.ID).
				Update("received_quantity", item.ReceivedQuantity).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
