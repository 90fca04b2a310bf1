package partner

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// BusinessEntityRepository persists counterparties
type BusinessEntityRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BusinessEntity, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, entityType EntityType, filter shared.Filter) ([]BusinessEntity, error)
	Save(ctx context.Context, entity *BusinessEntity) error
}
