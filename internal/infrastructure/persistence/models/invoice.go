package models

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/invoice"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber string          `gorm:"type:varchar(50);not null"`
	CustomNumber  string          `gorm:"type:varchar(50)"`
	InvoiceType   string          `gorm:"type:varchar(20);not null;index"`
	EntityType    string          `gorm:"type:varchar(20);not null"`
	EntityID      *uuid.UUID      `gorm:"type:uuid;index"`
	EntityName    string          `gorm:"type:varchar(200)"`
	EntityState   string          `gorm:"type:varchar(2)"`
	EntityGSTIN   string          `gorm:"column:entity_gstin;type:varchar(15)"`
	SellerState   string          `gorm:"type:varchar(2)"`
	ForceIGST     bool            `gorm:"column:force_igst;not null;default:false"`
	InvoiceDate   time.Time       `gorm:"type:date;not null;index"`
	DueDate       *time.Time      `gorm:"type:date"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CGST          decimal.Decimal `gorm:"column:cgst;type:decimal(18,2);not null;default:0"`
	SGST          decimal.Decimal `gorm:"column:sgst;type:decimal(18,2);not null;default:0"`
	IGST          decimal.Decimal `gorm:"column:igst;type:decimal(18,2);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;index"`
	PaidAt        *time.Time
	Notes         string `gorm:"type:text"`

	Items    []InvoiceItemModel    `gorm:"foreignKey:InvoiceID;references:ID"`
	Payments []InvoicePaymentModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the model, with whatever associations were loaded, to a
// domain Invoice
func (m *InvoiceModel) ToDomain() *invoice.Invoice {
	inv := &invoice.Invoice{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		InvoiceNumber:       m.InvoiceNumber,
		CustomNumber:        m.CustomNumber,
		InvoiceType:         invoice.InvoiceType(m.InvoiceType),
		EntityType:          partner.EntityType(m.EntityType),
		EntityID:            m.EntityID,
		EntityName:          m.EntityName,
		EntityState:         m.EntityState,
		EntityGSTIN:         m.EntityGSTIN,
		SellerState:         m.SellerState,
		ForceIGST:           m.ForceIGST,
		InvoiceDate:         m.InvoiceDate,
		DueDate:             m.DueDate,
		Subtotal:            m.Subtotal,
		TaxAmount:           m.TaxAmount,
		CGST:                m.CGST,
		SGST:                m.SGST,
		IGST:                m.IGST,
		TotalAmount:         m.TotalAmount,
		AmountPaid:          m.AmountPaid,
		PaymentStatus:       invoice.PaymentStatus(m.PaymentStatus),
		PaidAt:              m.PaidAt,
		Notes:               m.Notes,
	}
	if len(m.Items) > 0 {
		inv.Items = make([]invoice.InvoiceItem, len(m.Items))
		for i := range m.Items {
			inv.Items[i] = m.Items[i].ToDomain()
		}
	}
	if len(m.Payments) > 0 {
		inv.Payments = make([]invoice.InvoicePayment, len(m.Payments))
		for i := range m.Payments {
			inv.Payments[i] = m.Payments[i].ToDomain()
		}
	}
	return inv
}

// InvoiceModelFromDomain creates a model with items from a domain Invoice.
// Payments are written separately. Totals are stored as the invoice rounds
// them, not column by column.
func InvoiceModelFromDomain(inv *invoice.Invoice) *InvoiceModel {
	totals := inv.RoundedTotals()
	m := &InvoiceModel{
		InvoiceNumber: inv.InvoiceNumber,
		CustomNumber:  inv.CustomNumber,
		InvoiceType:   string(inv.InvoiceType),
		EntityType:    string(inv.EntityType),
		EntityID:      inv.EntityID,
		EntityName:    inv.EntityName,
		EntityState:   inv.EntityState,
		EntityGSTIN:   inv.EntityGSTIN,
		SellerState:   inv.SellerState,
		ForceIGST:     inv.ForceIGST,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		CGST:          totals.CGST,
		SGST:          totals.SGST,
		IGST:          totals.IGST,
		TotalAmount:   totals.Total,
		AmountPaid:    inv.AmountPaid,
		PaymentStatus: string(inv.PaymentStatus),
		PaidAt:        inv.PaidAt,
		Notes:         inv.Notes,
	}
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i := range inv.Items {
		m.Items[i] = InvoiceItemModelFromDomain(inv.ID, &inv.Items[i])
	}
	return m
}

// InvoiceNumberModel reserves one number in an owner's invoice namespace.
// System and custom numbers share the primary key.
type InvoiceNumberModel struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number    string    `gorm:"type:varchar(50);primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (InvoiceNumberModel) TableName() string {
	return "invoice_numbers"
}

// InvoiceNumberModelsFromDomain lists the numbers the invoice answers to
func InvoiceNumberModelsFromDomain(inv *invoice.Invoice) []InvoiceNumberModel {
	numbers := []InvoiceNumberModel{{
		TenantID: inv.TenantID, OwnerID: inv.OwnerID, Number: inv.InvoiceNumber, InvoiceID: inv.ID,
	}}
	if inv.CustomNumber != "" && inv.CustomNumber != inv.InvoiceNumber {
		numbers = append(numbers, InvoiceNumberModel{
			TenantID: inv.TenantID, OwnerID: inv.OwnerID, Number: inv.CustomNumber, InvoiceID: inv.ID,
		})
	}
	return numbers
}

// InvoiceItemModel is one invoice line
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	HSNCode     string          `gorm:"column:hsn_code;type:varchar(16)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GSTRate     decimal.Decimal `gorm:"column:gst_rate;type:decimal(5,2);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GSTAmount   decimal.Decimal `gorm:"column:gst_amount;type:decimal(18,2);not null"`
	SortOrder   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the model to a domain InvoiceItem
func (m *InvoiceItemModel) ToDomain() invoice.InvoiceItem {
	return invoice.InvoiceItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		ProductID:   m.ProductID,
		Description: m.Description,
		HSNCode:     m.HSNCode,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		GSTRate:     m.GSTRate,
		LineTotal:   m.LineTotal,
		GSTAmount:   m.GSTAmount,
		SortOrder:   m.SortOrder,
	}
}

// InvoiceItemModelFromDomain creates an item model bound to invoiceID
func InvoiceItemModelFromDomain(invoiceID uuid.UUID, it *invoice.InvoiceItem) InvoiceItemModel {
	return InvoiceItemModel{
		ID:          it.ID,
		InvoiceID:   invoiceID,
		ProductID:   it.ProductID,
		Description: it.Description,
		HSNCode:     it.HSNCode,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		GSTRate:     it.GSTRate,
		LineTotal:   it.LineTotal,
		GSTAmount:   it.GSTAmount,
		SortOrder:   it.SortOrder,
	}
}

// InvoicePaymentModel is one payment against an invoice
type InvoicePaymentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentDate time.Time       `gorm:"type:date;not null"`
	Method      string          `gorm:"type:varchar(30)"`
	Reference   string          `gorm:"type:varchar(100)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoicePaymentModel) TableName() string {
	return "invoice_payments"
}

// ToDomain converts the model to a domain InvoicePayment
func (m *InvoicePaymentModel) ToDomain() invoice.InvoicePayment {
	return invoice.InvoicePayment{
		ID:          m.ID,
		TenantID:    m.TenantID,
		InvoiceID:   m.InvoiceID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Method:      m.Method,
		Reference:   m.Reference,
		CreatedAt:   m.CreatedAt,
	}
}

// InvoicePaymentModelFromDomain creates a payment model
func InvoicePaymentModelFromDomain(p *invoice.InvoicePayment) *InvoicePaymentModel {
	return &InvoicePaymentModel{
		ID:          p.ID,
		TenantID:    p.TenantID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Reference:   p.Reference,
		CreatedAt:   p.CreatedAt,
	}
}

// GSTEntryModel is one row of the derived GST ledger
type GSTEntryModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceNumber   string          `gorm:"type:varchar(50);not null"`
	TransactionType string          `gorm:"type:varchar(20);not null"`
	EntityName      string          `gorm:"type:varchar(200)"`
	GSTIN           string          `gorm:"column:gstin;type:varchar(15)"`
	TaxableAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CGST            decimal.Decimal `gorm:"column:cgst;type:decimal(18,2);not null"`
	SGST            decimal.Decimal `gorm:"column:sgst;type:decimal(18,2);not null"`
	IGST            decimal.Decimal `gorm:"column:igst;type:decimal(18,2);not null"`
	TotalTax        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	EntryDate       time.Time       `gorm:"type:date;not null;index"`
	PaidAt          *time.Time
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GSTEntryModel) TableName() string {
	return "gst_entries"
}

// ToDomain converts the model to a domain GSTEntry
func (m *GSTEntryModel) ToDomain() invoice.GSTEntry {
	return invoice.GSTEntry{
		ID:              m.ID,
		TenantID:        m.TenantID,
		InvoiceID:       m.InvoiceID,
		InvoiceNumber:   m.InvoiceNumber,
		TransactionType: invoice.GSTTransactionType(m.TransactionType),
		EntityName:      m.EntityName,
		GSTIN:           m.GSTIN,
		TaxableAmount:   m.TaxableAmount,
		CGST:            m.CGST,
		SGST:            m.SGST,
		IGST:            m.IGST,
		TotalTax:        m.TotalTax,
		EntryDate:       m.EntryDate,
		PaidAt:          m.PaidAt,
		CreatedAt:       m.CreatedAt,
	}
}

// GSTEntryModelFromDomain creates a model from a domain GSTEntry
func GSTEntryModelFromDomain(e *invoice.GSTEntry) *GSTEntryModel {
	r := e.Rounded()
	e = &r
	return &GSTEntryModel{
		ID:              e.ID,
		TenantID:        e.TenantID,
		InvoiceID:       e.InvoiceID,
		InvoiceNumber:   e.InvoiceNumber,
		TransactionType: string(e.TransactionType),
		EntityName:      e.EntityName,
		GSTIN:           e.GSTIN,
		TaxableAmount:   e.TaxableAmount,
		CGST:            e.CGST,
		SGST:            e.SGST,
		IGST:            e.IGST,
		TotalTax:        e.TotalTax,
		EntryDate:       e.EntryDate,
		PaidAt:          e.PaidAt,
		CreatedAt:       e.CreatedAt,
	}
}
