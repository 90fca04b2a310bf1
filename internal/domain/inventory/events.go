package inventory

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeStockSkipped   = "StockAdjustmentSkipped"
)

// AggregateTypeProduct is the aggregate type name for products
const AggregateTypeProduct = "Product"

// ProductCreatedEvent is raised when a product is registered
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Name         string          `json:"name"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
}

// NewProductCreatedEvent creates a ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID, p.TenantID),
		Name:            p.Name,
		OpeningStock:    p.CurrentStock,
	}
}

// StockSkippedEvent is raised when a stock change was refused because it
// would have driven the product below zero
type StockSkippedEvent struct {
	shared.BaseDomainEvent
	Movement  Movement        `json:"movement"`
	Requested decimal.Decimal `json:"requested"`
	SourceID  uuid.UUID       `json:"source_id"`
}

// NewStockSkippedEvent creates a StockSkippedEvent
func NewStockSkippedEvent(tenantID, productID, sourceID uuid.UUID, movement Movement, requested decimal.Decimal) *StockSkippedEvent {
	return &StockSkippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockSkipped, AggregateTypeProduct, productID, tenantID),
		Movement:        movement,
		Requested:       requested,
		SourceID:        sourceID,
	}
}
