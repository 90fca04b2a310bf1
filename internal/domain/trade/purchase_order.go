package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusSent      PurchaseOrderStatus = "sent"
	PurchaseOrderStatusPartial   PurchaseOrderStatus = "partial"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent, PurchaseOrderStatusPartial,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the order accepts no further changes
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusReceived || s == PurchaseOrderStatusCancelled
}

// CanTransitionTo checks if transition to target status is allowed
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusSent || target == PurchaseOrderStatusPartial ||
			target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusSent:
		return target == PurchaseOrderStatusPartial || target == PurchaseOrderStatusReceived ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPartial:
		return target == PurchaseOrderStatusPartial || target == PurchaseOrderStatusReceived ||
			target == PurchaseOrderStatusCancelled
	default:
		return false
	}
}

// CanReceive returns true if goods can still be received in this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return !s.IsTerminal()
}

// PurchaseOrderItem is a line of a purchase order
type PurchaseOrderItem struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	ProductID        *uuid.UUID
	Description      string
	OrderedQuantity  decimal.Decimal
	ReceivedQuantity decimal.Decimal
	UnitPrice        decimal.Decimal
	GSTRate          decimal.Decimal
	LineTotal        decimal.Decimal
	GSTAmount        decimal.Decimal
	SortOrder        int
}

// RemainingQuantity returns the quantity still to be received
func (i *PurchaseOrderItem) RemainingQuantity() decimal.Decimal {
	remaining := i.OrderedQuantity.Sub(i.ReceivedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived returns true if all ordered quantity has been received
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.OrderedQuantity)
}

// ItemInput is an unvalidated purchase order line
type ItemInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	GSTRate     decimal.Decimal
}

// ReceiveLine reports the new cumulative received quantity for one item
type ReceiveLine struct {
	ItemID           uuid.UUID
	ReceivedQuantity decimal.Decimal
}

// ReceivedDelta is the quantity newly received for an item by one receipt.
// Only Delta may be applied to stock.
type ReceivedDelta struct {
	ItemID      uuid.UUID
	ProductID   *uuid.UUID
	Description string
	Previous    decimal.Decimal
	Current     decimal.Decimal
	Delta       decimal.Decimal
	Clamped     bool
}

// PurchaseOrder is the aggregate root for an order placed with a supplier
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	OrderNumber   string
	SupplierID    *uuid.UUID
	SupplierName  string
	SupplierState string
	SellerState   string
	Status        PurchaseOrderStatus
	OrderDate     time.Time
	ExpectedDate  *time.Time
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Notes         string
	Items         []PurchaseOrderItem
	SentAt        *time.Time
	ReceivedAt    *time.Time
	CancelledAt   *time.Time
	CancelReason  string
}

// NewPurchaseOrder validates the lines, prices them through the tax engine and
// returns an unnumbered draft order.
func NewPurchaseOrder(tenantID, ownerID uuid.UUID, supplier *partner.BusinessEntity, sellerState string, orderDate time.Time, items []ItemInput) (*PurchaseOrder, error) {
	if supplier != nil && supplier.TenantID != tenantID {
		return nil, shared.NewValidationError("Supplier does not belong to this company")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	kept := make([]ItemInput, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Description) == "" {
			continue
		}
		kept = append(kept, it)
	}
	if len(kept) == 0 {
		return nil, shared.NewValidationError("Add at least one item with a description and quantity")
	}

	order := &PurchaseOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, ownerID),
		SellerState:         sellerState,
		Status:              PurchaseOrderStatusDraft,
		OrderDate:           orderDate,
	}
	if supplier != nil {
		order.SupplierID = &supplier.ID
		order.SupplierName = supplier.Name
		order.SupplierState = supplier.StateCode
	}

	lines := make([]tax.LineInput, len(kept))
	for i, it := range kept {
		lines[i] = tax.LineInput{Quantity: it.Quantity, UnitPrice: it.UnitPrice, GSTRate: it.GSTRate}
	}
	breakdown, err := tax.Compute(lines, tax.Jurisdiction{CounterpartyState: order.SupplierState, SellerState: sellerState})
	if err != nil {
		return nil, err
	}

	order.Items = make([]PurchaseOrderItem, len(kept))
	for i, it := range kept {
		order.Items[i] = PurchaseOrderItem{
			ID:               uuid.New(),
			OrderID:          order.ID,
			ProductID:        it.ProductID,
			Description:      strings.TrimSpace(it.Description),
			OrderedQuantity:  it.Quantity,
			ReceivedQuantity: decimal.Zero,
			UnitPrice:        it.UnitPrice,
			GSTRate:          it.GSTRate,
			LineTotal:        breakdown.Lines[i].LineTotal,
			GSTAmount:        breakdown.Lines[i].GSTAmount,
			SortOrder:        i,
		}
	}
	order.Subtotal = breakdown.Subtotal
	order.TaxAmount = breakdown.TaxAmount
	order.TotalAmount = breakdown.Total
	return order, nil
}

// RoundedTotals returns subtotal, tax and total rounded to two places, with
// the total derived from the rounded parts
func (o *PurchaseOrder) RoundedTotals() (subtotal, taxAmount, total decimal.Decimal) {
	return tax.RoundTotals(o.Subtotal, o.TaxAmount)
}

// AssignNumber sets the order number
func (o *PurchaseOrder) AssignNumber(number string) {
	o.OrderNumber = number
}

// Send marks a draft order as sent to the supplier
func (o *PurchaseOrder) Send() error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError(shared.CodeInvalidState, "Only draft orders can be sent")
	}
	now := time.Now()
	o.Status = PurchaseOrderStatusSent
	o.SentAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// Cancel cancels an order that has not been fully received. Stock already
// received stays in inventory.
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = strings.TrimSpace(reason)
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o))
	return nil
}

// Receive records new cumulative received quantities. Each quantity is
// clamped to [previously received, ordered], so received quantities never
// decrease and never exceed what was ordered. The returned deltas carry only
// the newly received quantity of each changed item.
func (o *PurchaseOrder) Receive(lines []ReceiveLine) ([]ReceivedDelta, error) {
	if !o.Status.CanReceive() {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot receive goods for order in %s status", o.Status))
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("At least one item must be received")
	}

	index := make(map[uuid.UUID]int, len(o.Items))
	for i := range o.Items {
		index[o.Items[i].ID] = i
	}
	for _, line := range lines {
		if _, ok := index[line.ItemID]; !ok {
			return nil, shared.NewValidationError("Order item not found: " + line.ItemID.String())
		}
		if line.ReceivedQuantity.IsNegative() {
			return nil, shared.NewValidationError("Received quantity cannot be negative")
		}
	}

	deltas := make([]ReceivedDelta, 0, len(lines))
	for _, line := range lines {
		item := &o.Items[index[line.ItemID]]
		previous := item.ReceivedQuantity
		current := line.ReceivedQuantity
		clamped := false
		if current.GreaterThan(item.OrderedQuantity) {
			current = item.OrderedQuantity
			clamped = true
		}
		if current.LessThan(previous) {
			current = previous
			clamped = true
		}
		delta := current.Sub(previous)
		if !delta.IsPositive() && !clamped {
			continue
		}
		item.ReceivedQuantity = current
		deltas = append(deltas, ReceivedDelta{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			Description: item.Description,
			Previous:    previous,
			Current:     current,
			Delta:       delta,
			Clamped:     clamped,
		})
	}

	o.deriveStatus()
	now := time.Now()
	if o.Status == PurchaseOrderStatusReceived {
		o.ReceivedAt = &now
	}
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o, deltas))
	return deltas, nil
}

func (o *PurchaseOrder) deriveStatus() {
	anyReceived := false
	allReceived := true
	for i := range o.Items {
		if o.Items[i].ReceivedQuantity.IsPositive() {
			anyReceived = true
		}
		if !o.Items[i].IsFullyReceived() {
			allReceived = false
		}
	}
	switch {
	case allReceived:
		o.Status = PurchaseOrderStatusReceived
	case anyReceived:
		o.Status = PurchaseOrderStatusPartial
	}
}

// TotalOrdered returns the summed ordered quantity
func (o *PurchaseOrder) TotalOrdered() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.OrderedQuantity)
	}
	return total
}

// TotalReceived returns the summed received quantity
func (o *PurchaseOrder) TotalReceived() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.ReceivedQuantity)
	}
	return total
}

// StockDeltas returns only the deltas that move stock
func StockDeltas(deltas []ReceivedDelta) []ReceivedDelta {
	out := make([]ReceivedDelta, 0, len(deltas))
	for _, d := range deltas {
		if d.Delta.IsPositive() {
			out = append(out, d)
		}
	}
	return out
}
