package models

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TenantAggregateModel carries the columns shared by tenant-owned aggregates.
// Version backs optimistic locking.
type TenantAggregateModel struct {
	BaseModel
	Version  int       `gorm:"not null;default:1"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID  uuid.UUID `gorm:"type:uuid;not null"`
}

// FromDomainTenantAggregateRoot populates the model from the domain root
func (m *TenantAggregateModel) FromDomainTenantAggregateRoot(t shared.TenantAggregateRoot) {
	m.ID = t.ID
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
	m.Version = t.Version
	m.TenantID = t.TenantID
	m.OwnerID = t.OwnerID
}

// ToDomainTenantAggregateRoot rebuilds the domain root. Loaded aggregates
// start with no pending events.
func (m *TenantAggregateModel) ToDomainTenantAggregateRoot() shared.TenantAggregateRoot {
	return shared.TenantAggregateRoot{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		TenantID: m.TenantID,
		OwnerID:  m.OwnerID,
	}
}

// All returns every model, in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&ProductModel{},
		&BusinessEntityModel{},
		&InvoiceModel{},
		&InvoiceNumberModel{},
		&InvoiceItemModel{},
		&InvoicePaymentModel{},
		&GSTEntryModel{},
		&PurchaseOrderModel{},
		&PurchaseOrderItemModel{},
		&LedgerModel{},
		&LedgerEntryModel{},
	}
}
