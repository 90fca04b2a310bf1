package models

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate
type PurchaseOrderModel struct {
	TenantAggregateModel
	OrderNumber   string          `gorm:"type:varchar(50);not null"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierName  string          `gorm:"type:varchar(200)"`
	SupplierState string          `gorm:"type:varchar(2)"`
	SellerState   string          `gorm:"type:varchar(2)"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	OrderDate     time.Time       `gorm:"type:date;not null"`
	ExpectedDate  *time.Time      `gorm:"type:date"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes         string          `gorm:"type:text"`
	SentAt        *time.Time
	ReceivedAt    *time.Time
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(500)"`

	Items []PurchaseOrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the model to a domain PurchaseOrder
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	o := &trade.PurchaseOrder{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OrderNumber:         m.OrderNumber,
		SupplierID:          m.SupplierID,
		SupplierName:        m.SupplierName,
		SupplierState:       m.SupplierState,
		SellerState:         m.SellerState,
		Status:              trade.PurchaseOrderStatus(m.Status),
		OrderDate:           m.OrderDate,
		ExpectedDate:        m.ExpectedDate,
		Subtotal:            m.Subtotal,
		TaxAmount:           m.TaxAmount,
		TotalAmount:         m.TotalAmount,
		Notes:               m.Notes,
		SentAt:              m.SentAt,
		ReceivedAt:          m.ReceivedAt,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}
	if len(m.Items) > 0 {
		o.Items = make([]trade.PurchaseOrderItem, len(m.Items))
		for i := range m.Items {
			o.Items[i] = m.Items[i].ToDomain()
		}
	}
	return o
}

// PurchaseOrderModelFromDomain creates a model with items from a domain order
func PurchaseOrderModelFromDomain(o *trade.PurchaseOrder) *PurchaseOrderModel {
	subtotal, taxAmount, total := o.RoundedTotals()
	m := &PurchaseOrderModel{
		OrderNumber:   o.OrderNumber,
		SupplierID:    o.SupplierID,
		SupplierName:  o.SupplierName,
		SupplierState: o.SupplierState,
		SellerState:   o.SellerState,
		Status:        string(o.Status),
		OrderDate:     o.OrderDate,
		ExpectedDate:  o.ExpectedDate,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		TotalAmount:   total,
		Notes:         o.Notes,
		SentAt:        o.SentAt,
		ReceivedAt:    o.ReceivedAt,
		CancelledAt:   o.CancelledAt,
		CancelReason:  o.CancelReason,
	}
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.Items = make([]PurchaseOrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i] = PurchaseOrderItemModelFromDomain(o.ID, &o.Items[i])
	}
	return m
}

// PurchaseOrderItemModel is one purchase order line
type PurchaseOrderItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        *uuid.UUID      `gorm:"type:uuid"`
	Description      string          `gorm:"type:varchar(500);not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GSTRate          decimal.Decimal `gorm:"column:gst_rate;type:decimal(5,2);not null;default:0"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GSTAmount        decimal.Decimal `gorm:"column:gst_amount;type:decimal(18,2);not null"`
	SortOrder        int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}

// ToDomain converts the model to a domain PurchaseOrderItem
func (m *PurchaseOrderItemModel) ToDomain() trade.PurchaseOrderItem {
	return trade.PurchaseOrderItem{
		ID:               m.ID,
		OrderID:          m.OrderID,
		ProductID:        m.ProductID,
		Description:      m.Description,
		OrderedQuantity:  m.OrderedQuantity,
		ReceivedQuantity: m.ReceivedQuantity,
		UnitPrice:        m.UnitPrice,
		GSTRate:          m.GSTRate,
		LineTotal:        m.LineTotal,
		GSTAmount:        m.GSTAmount,
		SortOrder:        m.SortOrder,
	}
}

// PurchaseOrderItemModelFromDomain creates an item model bound to orderID
func PurchaseOrderItemModelFromDomain(orderID uuid.UUID, it *trade.PurchaseOrderItem) PurchaseOrderItemModel {
	return PurchaseOrderItemModel{
		ID:               it.ID,
		OrderID:          orderID,
		ProductID:        it.ProductID,
		Description:      it.Description,
		OrderedQuantity:  it.OrderedQuantity,
		ReceivedQuantity: it.ReceivedQuantity,
		UnitPrice:        it.UnitPrice,
		GSTRate:          it.GSTRate,
		LineTotal:        it.LineTotal,
		GSTAmount:        it.GSTAmount,
		SortOrder:        it.SortOrder,
	}
}
