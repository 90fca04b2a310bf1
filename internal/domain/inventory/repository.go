package inventory

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindByNameForTenant resolves a product by case-insensitive exact name.
	// Returns shared.ErrNotFound when no product matches.
	FindByNameForTenant(ctx context.Context, tenantID uuid.UUID, name string) (*Product, error)

	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save inserts a new product or updates descriptive fields of an existing
	// one with an optimistic version check. It never writes current_stock on update.
	Save(ctx context.Context, product *Product) error

	// ApplyStockDelta changes current_stock by delta in a single conditional
	// UPDATE. With guardNonNegative the update only happens when the result
	// stays >= 0; a refused update returns shared.ErrInsufficientStock.
	ApplyStockDelta(ctx context.Context, tenantID, productID uuid.UUID, delta decimal.Decimal, guardNonNegative bool) error
}
