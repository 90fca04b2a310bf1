package trade

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByIDForTenant loads the order with its items
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)

	// FindAllForTenant lists order headers. Supported filter keys: status, supplier_id.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Create inserts the header and items. A unique-number violation is
	// reported as shared.ErrDuplicateNumber.
	Create(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLock updates the header and item received quantities, guarded
	// by the version column
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error
}
