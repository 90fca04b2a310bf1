package inventory

import "github.com/shopspring/decimal"

// Movement is the business reason for a stock change
type Movement string

const (
	MovementSale           Movement = "sale"
	MovementPurchase       Movement = "purchase"
	MovementSaleReturn     Movement = "sale_return"
	MovementPurchaseReturn Movement = "purchase_return"
	MovementReceipt        Movement = "po_receipt"
	MovementAdjustment     Movement = "adjustment"
)

// direction holds the sign each movement applies to a positive quantity
var direction = map[Movement]int64{
	MovementSale:           -1,
	MovementPurchase:       1,
	MovementSaleReturn:     1, // reverses a prior sale
	MovementPurchaseReturn: -1, // reverses a prior purchase
	MovementReceipt:        1,
}

// IsValid checks if the movement is known
func (m Movement) IsValid() bool {
	_, ok := direction[m]
	return ok || m == MovementAdjustment
}

// Delta returns the signed stock change for quantity. Adjustments carry their
// own sign and are returned unchanged.
func (m Movement) Delta(quantity decimal.Decimal) decimal.Decimal {
	if m == MovementAdjustment {
		return quantity
	}
	return quantity.Abs().Mul(decimal.NewFromInt(direction[m]))
}

// String returns the string representation
func (m Movement) String() string {
	return string(m)
}
