package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"asc", "ASC"},
		{" ASC ", "ASC"},
		{"desc", "DESC"},
		{"", "DESC"},
		{"asc; DROP TABLE invoices", "DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "invoice_date", ValidateSortField("invoice_date", InvoiceSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", InvoiceSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("amount_paid", InvoiceSortFields, "created_at"))
	assert.Equal(t, "name", ValidateSortField("name; DELETE FROM ledgers", LedgerSortFields, "name"))
}

func TestSortFieldsWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"products":        ProductSortFields,
		"entities":        EntitySortFields,
		"invoices":        InvoiceSortFields,
		"purchase_orders": PurchaseOrderSortFields,
		"ledgers":         LedgerSortFields,
	}
	for name, fields := range whitelists {
		t.Run(name, func(t *testing.T) {
			assert.True(t, fields["created_at"], "created_at should always be sortable")
			for field := range fields {
				assert.NotContains(t, field, " ")
				assert.NotContains(t, field, ";")
			}
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%acme traders%", likePattern("  ACME Traders "))
}
