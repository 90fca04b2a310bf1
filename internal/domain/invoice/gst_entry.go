package invoice

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GSTTransactionType classifies a GST ledger row
type GSTTransactionType string

const (
	GSTTransactionSale     GSTTransactionType = "sale"
	GSTTransactionPurchase GSTTransactionType = "purchase"
)

// GSTEntry is the append-only GST record derived from a non-return invoice
type GSTEntry struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	InvoiceID       uuid.UUID
	InvoiceNumber   string
	TransactionType GSTTransactionType
	EntityName      string
	GSTIN           string
	TaxableAmount   decimal.Decimal
	CGST            decimal.Decimal
	SGST            decimal.Decimal
	IGST            decimal.Decimal
	TotalTax        decimal.Decimal
	EntryDate       time.Time
	PaidAt          *time.Time
	CreatedAt       time.Time
}

// NewGSTEntry derives the GST record for an invoice. Returns nil for return
// invoices, which never reach the GST ledger.
func NewGSTEntry(inv *Invoice) *GSTEntry {
	if inv.IsVoid() {
		return nil
	}
	return &GSTEntry{
		ID:              uuid.New(),
		TenantID:        inv.TenantID,
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.DisplayNumber(),
		TransactionType: inv.InvoiceType.GSTTransactionType(),
		EntityName:      inv.EntityName,
		GSTIN:           inv.EntityGSTIN,
		TaxableAmount:   inv.Subtotal,
		CGST:            inv.CGST,
		SGST:            inv.SGST,
		IGST:            inv.IGST,
		TotalTax:        inv.TaxAmount,
		EntryDate:       inv.InvoiceDate,
		PaidAt:          inv.PaidAt,
		CreatedAt:       time.Now(),
	}
}

// Rounded returns a copy with amounts rounded to two places. CGST is rounded
// and SGST takes the remainder, so the buckets still sum to TotalTax.
func (e GSTEntry) Rounded() GSTEntry {
	b := tax.Breakdown{
		InterState: !e.IGST.IsZero(),
		Subtotal:   e.TaxableAmount,
		TaxAmount:  e.TotalTax,
		CGST:       e.CGST,
		SGST:       e.SGST,
		IGST:       e.IGST,
	}.Rounded()
	e.TaxableAmount = b.Subtotal
	e.TotalTax = b.TaxAmount
	e.CGST = b.CGST
	e.SGST = b.SGST
	e.IGST = b.IGST
	return e
}
