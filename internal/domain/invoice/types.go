package invoice

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/partner"
)

// InvoiceType is the commercial direction of an invoice
type InvoiceType string

const (
	InvoiceTypeSales          InvoiceType = "sales"
	InvoiceTypePurchase       InvoiceType = "purchase"
	InvoiceTypeSaleReturn     InvoiceType = "sale_return"
	InvoiceTypePurchaseReturn InvoiceType = "purchase_return"
)

// IsValid checks if the invoice type is known
func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeSales, InvoiceTypePurchase, InvoiceTypeSaleReturn, InvoiceTypePurchaseReturn:
		return true
	}
	return false
}

// IsReturn reports whether the invoice is a return/refund. Returns are void
// for GST and every aggregate but are kept for the audit trail.
func (t InvoiceType) IsReturn() bool {
	return t == InvoiceTypeSaleReturn || t == InvoiceTypePurchaseReturn
}

// Movement maps the invoice type onto the stock movement it causes
func (t InvoiceType) Movement() inventory.Movement {
	switch t {
	case InvoiceTypeSales:
		return inventory.MovementSale
	case InvoiceTypePurchase:
		return inventory.MovementPurchase
	case InvoiceTypeSaleReturn:
		return inventory.MovementSaleReturn
	case InvoiceTypePurchaseReturn:
		return inventory.MovementPurchaseReturn
	}
	return ""
}

// GSTTransactionType is the GST ledger classification of a non-return invoice
func (t InvoiceType) GSTTransactionType() GSTTransactionType {
	if t == InvoiceTypePurchase {
		return GSTTransactionPurchase
	}
	return GSTTransactionSale
}

// String returns the string representation
func (t InvoiceType) String() string {
	return string(t)
}

// EntityRule declares how one entity type behaves during invoice creation
type EntityRule struct {
	// RequiresEntity rejects invoices that do not reference a business entity
	RequiresEntity bool
	// InventoryTypes lists the invoice types that move stock for this entity type
	InventoryTypes map[InvoiceType]bool
}

// entityRules is the dispatch table for the closed set of entity types
var entityRules = map[partner.EntityType]EntityRule{
	partner.EntityTypeCustomer: {
		RequiresEntity: true,
		InventoryTypes: map[InvoiceType]bool{InvoiceTypeSales: true, InvoiceTypeSaleReturn: true},
	},
	partner.EntityTypeSupplier: {
		InventoryTypes: map[InvoiceType]bool{InvoiceTypePurchase: true, InvoiceTypePurchaseReturn: true},
	},
	partner.EntityTypeWholesaler: {},
	partner.EntityTypeTransport:  {},
	partner.EntityTypeLabour:     {},
	partner.EntityTypeOther:      {},
}

// RuleFor returns the rule for an entity type and whether the type is known
func RuleFor(t partner.EntityType) (EntityRule, bool) {
	r, ok := entityRules[t]
	return r, ok
}

// SyncsInventory reports whether an invoice of this shape moves stock
func SyncsInventory(entityType partner.EntityType, invoiceType InvoiceType) bool {
	return entityRules[entityType].InventoryTypes[invoiceType]
}
