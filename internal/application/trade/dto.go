package trade

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared/valueobject"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   *uuid.UUID                     `json:"supplier_id"`
	OrderDate    string                         `json:"order_date" binding:"omitempty,datetime=2006-01-02"`
	ExpectedDate string                         `json:"expected_date" binding:"omitempty,datetime=2006-01-02"`
	Notes        string                         `json:"notes" binding:"omitempty,max=1000"`
	Items        []CreatePurchaseOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreatePurchaseOrderItemInput represents an item in the create order request
type CreatePurchaseOrderItemInput struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
}

// ReceiveItemInput carries the new cumulative received quantity of one item
type ReceiveItemInput struct {
	ItemID           uuid.UUID       `json:"item_id" binding:"required"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
}

// ReceivePurchaseOrderRequest represents a request to receive goods for a purchase order
type ReceivePurchaseOrderRequest struct {
	Items []ReceiveItemInput `json:"items" binding:"required,min=1,dive"`
}

// CancelPurchaseOrderRequest represents a request to cancel a purchase order
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// PurchaseOrderListFilter represents filter options for purchase order list
type PurchaseOrderListFilter struct {
	Search     string     `form:"search"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft sent partial received cancelled"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseOrderItemResponse represents a purchase order item in API responses
type PurchaseOrderItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         *uuid.UUID      `json:"product_id,omitempty"`
	Description       string          `json:"description"`
	OrderedQuantity   decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	GSTRate           decimal.Decimal `json:"gst_rate"`
	LineTotal         decimal.Decimal `json:"line_total"`
	GSTAmount         decimal.Decimal `json:"gst_amount"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID            uuid.UUID                   `json:"id"`
	TenantID      uuid.UUID                   `json:"tenant_id"`
	OrderNumber   string                      `json:"order_number"`
	SupplierID    *uuid.UUID                  `json:"supplier_id,omitempty"`
	SupplierName  string                      `json:"supplier_name,omitempty"`
	Status        string                      `json:"status"`
	OrderDate     string                      `json:"order_date"`
	ExpectedDate  string                      `json:"expected_date,omitempty"`
	Subtotal      decimal.Decimal             `json:"subtotal"`
	TaxAmount     decimal.Decimal             `json:"tax_amount"`
	TotalAmount   decimal.Decimal             `json:"total_amount"`
	TotalOrdered  decimal.Decimal             `json:"total_ordered"`
	TotalReceived decimal.Decimal             `json:"total_received"`
	Notes         string                      `json:"notes,omitempty"`
	Items         []PurchaseOrderItemResponse `json:"items,omitempty"`
	SentAt        *time.Time                  `json:"sent_at,omitempty"`
	ReceivedAt    *time.Time                  `json:"received_at,omitempty"`
	CancelledAt   *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason  string                      `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	Version       int                         `json:"version"`
}

// ReceivedDeltaResponse reports what one receipt changed for an item
type ReceivedDeltaResponse struct {
	ItemID      uuid.UUID       `json:"item_id"`
	Description string          `json:"description"`
	Previous    decimal.Decimal `json:"previous"`
	Current     decimal.Decimal `json:"current"`
	Delta       decimal.Decimal `json:"delta"`
	Clamped     bool            `json:"clamped"`
}

// ReceivePurchaseOrderResponse carries the updated order and the stock result
type ReceivePurchaseOrderResponse struct {
	Order            PurchaseOrderResponse       `json:"order"`
	Received         []ReceivedDeltaResponse     `json:"received"`
	StockAdjustments []inventory.StockAdjustment `json:"stock_adjustments,omitempty"`
}

// ToPurchaseOrderResponse converts a domain PurchaseOrder to PurchaseOrderResponse
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	round := valueobject.RoundForDisplay
	subtotal, taxAmount, total := o.RoundedTotals()
	resp := PurchaseOrderResponse{
		ID:            o.ID,
		TenantID:      o.TenantID,
		OrderNumber:   o.OrderNumber,
		SupplierID:    o.SupplierID,
		SupplierName:  o.SupplierName,
		Status:        string(o.Status),
		OrderDate:     o.OrderDate.Format(dateLayout),
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		TotalAmount:   total,
		TotalOrdered:  o.TotalOrdered(),
		TotalReceived: o.TotalReceived(),
		Notes:         o.Notes,
		SentAt:        o.SentAt,
		ReceivedAt:    o.ReceivedAt,
		CancelledAt:   o.CancelledAt,
		CancelReason:  o.CancelReason,
		CreatedAt:     o.CreatedAt,
		Version:       o.Version,
	}
	if o.ExpectedDate != nil {
		resp.ExpectedDate = o.ExpectedDate.Format(dateLayout)
	}
	resp.Items = make([]PurchaseOrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		resp.Items[i] = PurchaseOrderItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			Description:       item.Description,
			OrderedQuantity:   item.OrderedQuantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			RemainingQuantity: item.RemainingQuantity(),
			UnitPrice:         item.UnitPrice,
			GSTRate:           item.GSTRate,
			LineTotal:         round(item.LineTotal),
			GSTAmount:         round(item.GSTAmount),
		}
	}
	return resp
}

// ToPurchaseOrderResponses converts a slice of orders to responses
func ToPurchaseOrderResponses(orders []trade.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToPurchaseOrderResponse(&orders[i])
	}
	return responses
}

func toReceivedDeltaResponses(deltas []trade.ReceivedDelta) []ReceivedDeltaResponse {
	out := make([]ReceivedDeltaResponse, len(deltas))
	for i, d := range deltas {
		out[i] = ReceivedDeltaResponse{
			ItemID:      d.ItemID,
			Description: d.Description,
			Previous:    d.Previous,
			Current:     d.Current,
			Delta:       d.Delta,
			Clamped:     d.Clamped,
		}
	}
	return out
}
