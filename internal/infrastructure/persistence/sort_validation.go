package persistence

import (
	"strings"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"sku":            true,
	"current_stock":  true,
	"selling_price":  true,
	"purchase_price": true,
}

// EntitySortFields contains allowed sort fields for business entities
var EntitySortFields = map[string]bool{
	"created_at":  true,
	"name":        true,
	"entity_type": true,
	"state_code":  true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"created_at":     true,
	"invoice_date":   true,
	"invoice_number": true,
	"due_date":       true,
	"total_amount":   true,
	"payment_status": true,
	"entity_name":    true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"created_at":    true,
	"order_date":    true,
	"order_number":  true,
	"status":        true,
	"total_amount":  true,
	"supplier_name": true,
}

// LedgerSortFields contains allowed sort fields for ledgers
var LedgerSortFields = map[string]bool{
	"created_at":  true,
	"name":        true,
	"ledger_type": true,
}

// applyOrderAndPage adds the validated ORDER BY and, when PageSize is
// positive, LIMIT/OFFSET. A zero PageSize lists everything.
func applyOrderAndPage(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if field != "created_at" {
		query = query.Order("created_at DESC")
	}
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// likePattern builds a case-insensitive LIKE operand; callers compare it
// against LOWER(column)
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
