package invoice

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

// DefaultCreditDays is used when an invoice has no explicit due date
const DefaultCreditDays = 30

// InvoiceItem is a single line of an invoice
type InvoiceItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	ProductID   *uuid.UUID
	Description string
	HSNCode     string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	GSTRate     decimal.Decimal
	LineTotal   decimal.Decimal
	GSTAmount   decimal.Decimal
	SortOrder   int
}

// InvoicePayment is money received or paid against an invoice
type InvoicePayment struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	InvoiceID   uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string
	Reference   string
	CreatedAt   time.Time
}

// ItemInput is an unvalidated line as submitted by the caller
type ItemInput struct {
	ProductID   *uuid.UUID
	Description string
	HSNCode     string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	GSTRate     decimal.Decimal
}

// Header carries the invoice fields that are not derived
type Header struct {
	InvoiceType  InvoiceType
	EntityType   partner.EntityType
	CustomNumber string
	InvoiceDate  time.Time
	DueDate      *time.Time
	ForceIGST    bool
	Notes        string
}

// Invoice is the aggregate root for a sales, purchase or return document.
// Monetary totals are derived from the items and never edited directly.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber string
	CustomNumber  string
	InvoiceType   InvoiceType
	EntityType    partner.EntityType
	EntityID      *uuid.UUID
	EntityName    string
	EntityState   string
	EntityGSTIN   string
	SellerState   string
	ForceIGST     bool
	InvoiceDate   time.Time
	DueDate       *time.Time
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	CGST          decimal.Decimal
	SGST          decimal.Decimal
	IGST          decimal.Decimal
	TotalAmount   decimal.Decimal
	AmountPaid    decimal.Decimal
	PaymentStatus PaymentStatus
	PaidAt        *time.Time
	Notes         string
	Items         []InvoiceItem
	Payments      []InvoicePayment
}

// NewInvoice validates the header and items, computes totals through the tax
// engine and returns an unnumbered invoice. Rows without a description are
// dropped as blank form rows.
func NewInvoice(tenantID, ownerID uuid.UUID, h Header, items []ItemInput, entity *partner.BusinessEntity, sellerState string) (*Invoice, error) {
	if !h.InvoiceType.IsValid() {
		return nil, shared.NewValidationError("Invalid invoice type: " + string(h.InvoiceType))
	}
	rule, ok := RuleFor(h.EntityType)
	if !ok {
		return nil, shared.NewValidationError("Invalid entity type: " + string(h.EntityType))
	}
	if rule.RequiresEntity && entity == nil {
		return nil, shared.NewValidationError(fmt.Sprintf("Please select a %s for this invoice", h.EntityType))
	}
	if entity != nil && entity.TenantID != tenantID {
		return nil, shared.NewValidationError("Business entity does not belong to this company")
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

	if h.InvoiceDate.IsZero() {
		h.InvoiceDate = time.Now()
	}
	if h.DueDate != nil && h.DueDate.Before(truncateDay(h.InvoiceDate)) {
		return nil, shared.NewValidationError("Due date cannot be before the invoice date")
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, ownerID),
		CustomNumber:        strings.TrimSpace(h.CustomNumber),
		InvoiceType:         h.InvoiceType,
		EntityType:          h.EntityType,
		SellerState:         sellerState,
		ForceIGST:           h.ForceIGST,
		InvoiceDate:         h.InvoiceDate,
		DueDate:             h.DueDate,
		AmountPaid:          decimal.Zero,
		PaymentStatus:       PaymentStatusDue,
		Notes:               h.Notes,
	}
	if entity != nil {
		inv.EntityID = &entity.ID
		inv.EntityName = entity.Name
		inv.EntityState = entity.StateCode
		inv.EntityGSTIN = entity.GSTIN
	}

	lines := make([]tax.LineInput, len(kept))
	for i, it := range kept {
		lines[i] = tax.LineInput{Quantity: it.Quantity, UnitPrice: it.UnitPrice, GSTRate: it.GSTRate}
	}
	breakdown, err := tax.Compute(lines, inv.Jurisdiction())
	if err != nil {
		return nil, err
	}

	inv.Items = make([]InvoiceItem, len(kept))
	for i, it := range kept {
		inv.Items[i] = InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   inv.ID,
			ProductID:   it.ProductID,
			Description: strings.TrimSpace(it.Description),
			HSNCode:     strings.TrimSpace(it.HSNCode),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			GSTRate:     it.GSTRate,
			LineTotal:   breakdown.Lines[i].LineTotal,
			GSTAmount:   breakdown.Lines[i].GSTAmount,
			SortOrder:   i,
		}
	}
	inv.applyBreakdown(breakdown)
	return inv, nil
}

// Jurisdiction returns the tax engine input for this invoice
func (inv *Invoice) Jurisdiction() tax.Jurisdiction {
	return tax.Jurisdiction{
		CounterpartyState: inv.EntityState,
		SellerState:       inv.SellerState,
		ForceIGST:         inv.ForceIGST,
	}
}

// Breakdown returns the invoice totals at full precision
func (inv *Invoice) Breakdown() tax.Breakdown {
	return tax.Breakdown{
		InterState: tax.IsInterState(inv.Jurisdiction()),
		Subtotal:   inv.Subtotal,
		TaxAmount:  inv.TaxAmount,
		CGST:       inv.CGST,
		SGST:       inv.SGST,
		IGST:       inv.IGST,
		Total:      inv.TotalAmount,
	}
}

// RoundedTotals returns the totals rounded to two places with the buckets
// still adding up to the tax amount and subtotal plus tax equal to the total.
// Every stored or displayed copy of the totals goes through here.
func (inv *Invoice) RoundedTotals() tax.Breakdown {
	return inv.Breakdown().Rounded()
}

func (inv *Invoice) applyBreakdown(b tax.Breakdown) {
	inv.Subtotal = b.Subtotal
	inv.TaxAmount = b.TaxAmount
	inv.CGST = b.CGST
	inv.SGST = b.SGST
	inv.IGST = b.IGST
	inv.TotalAmount = b.Total
}

// AssignNumber sets the system number. The display number is the custom
// number when one was supplied.
func (inv *Invoice) AssignNumber(number string) {
	inv.InvoiceNumber = number
}

// DisplayNumber returns the number shown to users
func (inv *Invoice) DisplayNumber() string {
	if inv.CustomNumber != "" {
		return inv.CustomNumber
	}
	return inv.InvoiceNumber
}

// IsVoid reports whether the invoice is excluded from GST and all aggregates
func (inv *Invoice) IsVoid() bool {
	return inv.InvoiceType.IsReturn()
}

// SyncsInventory reports whether creating this invoice moves stock
func (inv *Invoice) SyncsInventory() bool {
	return SyncsInventory(inv.EntityType, inv.InvoiceType)
}

// EffectiveDueDate is the due date, or invoice date plus the default credit period
func (inv *Invoice) EffectiveDueDate() time.Time {
	if inv.DueDate != nil {
		return *inv.DueDate
	}
	return inv.InvoiceDate.AddDate(0, 0, DefaultCreditDays)
}

// AmountDue is the unpaid balance, never negative
func (inv *Invoice) AmountDue() decimal.Decimal {
	due := inv.TotalAmount.Sub(inv.AmountPaid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// RecordPayment appends a payment and derives the new status from the sum of
// all payments. Payments only ever raise the paid sum, so a paid invoice stays
// paid; an overdue invoice stays overdue until it is fully settled.
func (inv *Invoice) RecordPayment(amount decimal.Decimal, paidOn time.Time, method, reference string) (*InvoicePayment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be greater than zero")
	}
	if paidOn.IsZero() {
		paidOn = time.Now()
	}
	payment := InvoicePayment{
		ID:          uuid.New(),
		TenantID:    inv.TenantID,
		InvoiceID:   inv.ID,
		Amount:      amount,
		PaymentDate: paidOn,
		Method:      strings.TrimSpace(method),
		Reference:   strings.TrimSpace(reference),
		CreatedAt:   time.Now(),
	}
	inv.Payments = append(inv.Payments, payment)
	inv.AmountPaid = inv.AmountPaid.Add(amount)

	from := inv.PaymentStatus
	switch {
	case from == PaymentStatusPaid:
		// PaidAt records when the invoice was first settled
	case inv.AmountPaid.GreaterThanOrEqual(inv.TotalAmount):
		inv.markPaid(paidOn)
	case from == PaymentStatusDue:
		inv.PaymentStatus = PaymentStatusPartial
	}

	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewPaymentRecordedEvent(inv, &payment, from))
	return &payment, nil
}

// UpdatePaymentStatus applies a manual status override. Moving a paid invoice
// backwards is rejected.
func (inv *Invoice) UpdatePaymentStatus(target PaymentStatus, at time.Time) error {
	if !target.IsValid() {
		return shared.NewValidationError("Invalid payment status: " + string(target))
	}
	if !inv.PaymentStatus.CanTransitionTo(target) {
		return errStatusRegression(inv.PaymentStatus, target)
	}
	if inv.PaymentStatus == target {
		return nil
	}
	from := inv.PaymentStatus
	if target == PaymentStatusPaid {
		inv.markPaid(at)
	} else {
		inv.PaymentStatus = target
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewPaymentStatusChangedEvent(inv, from))
	return nil
}

// MarkOverdueIfPast flags an unpaid invoice whose due date is before asOf
func (inv *Invoice) MarkOverdueIfPast(asOf time.Time) bool {
	if inv.PaymentStatus != PaymentStatusDue && inv.PaymentStatus != PaymentStatusPartial {
		return false
	}
	if !truncateDay(inv.EffectiveDueDate()).Before(truncateDay(asOf)) {
		return false
	}
	from := inv.PaymentStatus
	inv.PaymentStatus = PaymentStatusOverdue
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewPaymentStatusChangedEvent(inv, from))
	return true
}

func (inv *Invoice) markPaid(at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	inv.PaymentStatus = PaymentStatusPaid
	inv.PaidAt = &at
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
