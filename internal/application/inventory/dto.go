package inventory

import (
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	SKU           string          `json:"sku" binding:"omitempty,max=50"`
	HSNCode       string          `json:"hsn_code" binding:"omitempty,max=20"`
	Unit          string          `json:"unit" binding:"omitempty,max=20"`
	OpeningStock  decimal.Decimal `json:"opening_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
}

// AdjustStockRequest represents a manual stock correction. Quantity is signed:
// positive adds stock, negative removes it.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Reason   string          `json:"reason" binding:"required,min=1,max=255"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string `form:"search"`
	OutOfStock *bool  `form:"out_of_stock"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	HSNCode       string          `json:"hsn_code,omitempty"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	StockValue    decimal.Decimal `json:"stock_value"`
	StockValueINR string          `json:"stock_value_display"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// StockAdjustmentResponse reports a manual adjustment
type StockAdjustmentResponse struct {
	Product  ProductResponse `json:"product"`
	Delta    decimal.Decimal `json:"delta"`
	Reason   string          `json:"reason"`
	Adjusted time.Time       `json:"adjusted_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *inventory.Product) ProductResponse {
	value := p.StockValue()
	return ProductResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		Name:          p.Name,
		SKU:           p.SKU,
		HSNCode:       p.HSNCode,
		Unit:          p.Unit,
		CurrentStock:  p.CurrentStock,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		GSTRate:       p.GSTRate,
		StockValue:    valueobject.RoundForDisplay(value),
		StockValueINR: valueobject.FormatINR(value),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToProductResponses converts a slice of products to responses
func ToProductResponses(products []inventory.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
