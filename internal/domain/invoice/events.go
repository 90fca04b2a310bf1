package invoice

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeInvoiceCreated       = "InvoiceCreated"
	EventTypePaymentRecorded      = "InvoicePaymentRecorded"
	EventTypePaymentStatusChanged = "InvoicePaymentStatusChanged"
)

// AggregateTypeInvoice is the aggregate type name for invoices
const AggregateTypeInvoice = "Invoice"

// InvoiceCreatedEvent is raised after an invoice and its side effects commit
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceType   InvoiceType     `json:"invoice_type"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	StockWarnings []string        `json:"stock_warnings,omitempty"`
}

// NewInvoiceCreatedEvent creates an InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice, warnings []string) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID, inv.TenantID),
		InvoiceNumber:   inv.DisplayNumber(),
		InvoiceType:     inv.InvoiceType,
		TotalAmount:     inv.TotalAmount,
		TaxAmount:       inv.TaxAmount,
		StockWarnings:   warnings,
	}
}

// PaymentRecordedEvent is raised when a payment is appended
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID  uuid.UUID       `json:"payment_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method,omitempty"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	FromStatus PaymentStatus   `json:"from_status"`
	ToStatus   PaymentStatus   `json:"to_status"`
}

// NewPaymentRecordedEvent creates a PaymentRecordedEvent
func NewPaymentRecordedEvent(inv *Invoice, p *InvoicePayment, from PaymentStatus) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypeInvoice, inv.ID, inv.TenantID),
		PaymentID:       p.ID,
		Amount:          p.Amount,
		Method:          p.Method,
		AmountPaid:      inv.AmountPaid,
		FromStatus:      from,
		ToStatus:        inv.PaymentStatus,
	}
}

// PaymentStatusChangedEvent is raised on manual or overdue status changes
type PaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	FromStatus PaymentStatus `json:"from_status"`
	ToStatus   PaymentStatus `json:"to_status"`
}

// NewPaymentStatusChangedEvent creates a PaymentStatusChangedEvent
func NewPaymentStatusChangedEvent(inv *Invoice, from PaymentStatus) *PaymentStatusChangedEvent {
	return &PaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentStatusChanged, AggregateTypeInvoice, inv.ID, inv.TenantID),
		FromStatus:      from,
		ToStatus:        inv.PaymentStatus,
	}
}
