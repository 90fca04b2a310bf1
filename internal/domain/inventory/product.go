package inventory

import (
	"strings"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the stock-bearing entity. CurrentStock is changed only through
// ProductRepository.ApplyStockDelta, never by assigning the field and saving.
type Product struct {
	shared.TenantAggregateRoot
	Name          string
	SKU           string
	HSNCode       string
	Unit          string
	CurrentStock  decimal.Decimal
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	GSTRate       decimal.Decimal
}

// NewProduct creates a product with an opening stock
func NewProduct(tenantID, ownerID uuid.UUID, name, sku string, openingStock, purchasePrice, sellingPrice, gstRate decimal.Decimal) (*Product, error) {
	p := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID, ownerID),
		Unit:                "pcs",
	}
	if err := p.setDetails(name, sku); err != nil {
		return nil, err
	}
	if openingStock.IsNegative() {
		return nil, shared.NewValidationError("Opening stock cannot be negative")
	}
	if err := p.setPricing(purchasePrice, sellingPrice, gstRate); err != nil {
		return nil, err
	}
	p.CurrentStock = openingStock
	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

// Update changes descriptive and pricing fields; stock is untouched
func (p *Product) Update(name, sku, hsnCode, unit string, purchasePrice, sellingPrice, gstRate decimal.Decimal) error {
	if err := p.setDetails(name, sku); err != nil {
		return err
	}
	if err := p.setPricing(purchasePrice, sellingPrice, gstRate); err != nil {
		return err
	}
	p.HSNCode = strings.TrimSpace(hsnCode)
	if unit = strings.TrimSpace(unit); unit != "" {
		p.Unit = unit
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

func (p *Product) setDetails(name, sku string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Product name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	p.Name = name
	p.SKU = strings.ToUpper(strings.TrimSpace(sku))
	return nil
}

func (p *Product) setPricing(purchasePrice, sellingPrice, gstRate decimal.Decimal) error {
	if purchasePrice.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewValidationError("Prices cannot be negative")
	}
	if gstRate.IsNegative() || gstRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewValidationError("GST rate must be between 0 and 100")
	}
	p.PurchasePrice = purchasePrice
	p.SellingPrice = sellingPrice
	p.GSTRate = gstRate
	return nil
}

// StockValue is current stock valued at purchase price
func (p *Product) StockValue() decimal.Decimal {
	return p.CurrentStock.Mul(p.PurchasePrice)
}

// MatchesName reports a case-insensitive exact name match
func (p *Product) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name))
}
