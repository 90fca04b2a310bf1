package trade

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypePurchaseOrder is the aggregate type name for purchase orders
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants
const (
	EventTypePurchaseOrderCreated   = "PurchaseOrderCreated"
	EventTypePurchaseOrderReceived  = "PurchaseOrderReceived"
	EventTypePurchaseOrderCancelled = "PurchaseOrderCancelled"
)

// PurchaseOrderCreatedEvent is raised when a new purchase order is saved
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string          `json:"order_number"`
	SupplierName string          `json:"supplier_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		SupplierName:    order.SupplierName,
		TotalAmount:     order.TotalAmount,
	}
}

// ReceivedItemInfo describes one item of a receipt
type ReceivedItemInfo struct {
	ItemID    uuid.UUID       `json:"item_id"`
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Delta     decimal.Decimal `json:"delta"`
	Current   decimal.Decimal `json:"current"`
	Clamped   bool            `json:"clamped,omitempty"`
}

// PurchaseOrderReceivedEvent is raised when goods are received against an order
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string              `json:"order_number"`
	Status      PurchaseOrderStatus `json:"status"`
	Items       []ReceivedItemInfo  `json:"items"`
}

// NewPurchaseOrderReceivedEvent creates a new PurchaseOrderReceivedEvent
func NewPurchaseOrderReceivedEvent(order *PurchaseOrder, deltas []ReceivedDelta) *PurchaseOrderReceivedEvent {
	items := make([]ReceivedItemInfo, len(deltas))
	for i, d := range deltas {
		items[i] = ReceivedItemInfo{
			ItemID:    d.ItemID,
			ProductID: d.ProductID,
			Delta:     d.Delta,
			Current:   d.Current,
			Clamped:   d.Clamped,
		}
	}
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, AggregateTypePurchaseOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		Items:           items,
	}
}

// PurchaseOrderCancelledEvent is raised when an order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string `json:"order_number"`
	CancelReason string `json:"cancel_reason,omitempty"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(order *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, AggregateTypePurchaseOrder, order.ID, order.TenantID),
		OrderNumber:     order.OrderNumber,
		CancelReason:    order.CancelReason,
	}
}
