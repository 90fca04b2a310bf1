package models

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate.
// current_stock is written only by the conditional stock update.
type ProductModel struct {
	TenantAggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	SKU           string          `gorm:"column:sku;type:varchar(64)"`
	HSNCode       string          `gorm:"column:hsn_code;type:varchar(16)"`
	Unit          string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	CurrentStock  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GSTRate       decimal.Decimal `gorm:"column:gst_rate;type:decimal(5,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *inventory.Product {
	return &inventory.Product{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		SKU:                 m.SKU,
		HSNCode:             m.HSNCode,
		Unit:                m.Unit,
		CurrentStock:        m.CurrentStock,
		PurchasePrice:       m.PurchasePrice,
		SellingPrice:        m.SellingPrice,
		GSTRate:             m.GSTRate,
	}
}

// ProductModelFromDomain creates a model from a domain Product
func ProductModelFromDomain(p *inventory.Product) *ProductModel {
	m := &ProductModel{
		Name:          p.Name,
		SKU:           p.SKU,
		HSNCode:       p.HSNCode,
		Unit:          p.Unit,
		CurrentStock:  p.CurrentStock,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		GSTRate:       p.GSTRate,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}
