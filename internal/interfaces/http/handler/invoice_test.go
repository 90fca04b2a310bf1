package handler

import (
	"net/http"
	"testing"

	invoiceapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/invoice"
	inventoryapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/inventory"
	partnerapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCustomer(t *testing.T, api *testAPI, state string) partnerapp.EntityResponse {
	t.Helper()
	var e partnerapp.EntityResponse
	api.mustCreate("/api/v1/partners", map[string]any{
		"name": "Customer " + state, "entity_type": "customer", "state_code": state,
	}, &e)
	return e
}

func salesInvoiceBody(customerID, productID uuid.UUID, qty string) map[string]any {
	return map[string]any{
		"invoice_type": "sales",
		"entity_type":  "customer",
		"entity_id":    customerID,
		"invoice_date": "2026-01-10",
		"due_date":     "2026-01-20",
		"items": []map[string]any{{
			"product_id": productID, "description": "Widget", "quantity": qty, "unit_price": "100", "gst_rate": "18",
		}},
	}
}

func TestInvoiceHandler_Preview(t *testing.T) {
	api := newTestAPI(t)
	product := createProduct(t, api, "Widget", "5")

	local := createCustomer(t, api, "27")
	w, resp := api.do(http.MethodPost, "/api/v1/invoices/preview", salesInvoiceBody(local.ID, product.ID, "2"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	preview := data[invoiceapp.PreviewResponse](t, resp)
	assert.False(t, preview.IsInterState)
	assert.True(t, preview.CGST.Equal(dec("18")))
	assert.True(t, preview.SGST.Equal(dec("18")))
	assert.True(t, preview.Total.Equal(dec("236")))

	remote := createCustomer(t, api, "29")
	w, resp = api.do(http.MethodPost, "/api/v1/invoices/preview", salesInvoiceBody(remote.ID, product.ID, "2"))
	require.Equal(t, http.StatusOK, w.Code)
	preview = data[invoiceapp.PreviewResponse](t, resp)
	assert.True(t, preview.IsInterState)
	assert.True(t, preview.IGST.Equal(dec("36")))
	assert.True(t, preview.CGST.IsZero())

	// Preview never touches stock
	w, resp = api.do(http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, data[inventoryapp.ProductResponse](t, resp).CurrentStock.Equal(dec("5")))
}

func TestInvoiceHandler_CreateAndPay(t *testing.T) {
	api := newTestAPI(t)
	product := createProduct(t, api, "Widget", "5")
	customer := createCustomer(t, api, "27")

	var created invoiceapp.CreateInvoiceResponse
	api.mustCreate("/api/v1/invoices", salesInvoiceBody(customer.ID, product.ID, "2"), &created)
	inv := created.Invoice
	assert.NotEmpty(t, inv.InvoiceNumber)
	assert.True(t, inv.TotalAmount.Equal(dec("236")))
	assert.Equal(t, "due", inv.PaymentStatus)
	assert.Empty(t, created.Warnings)

	w, resp := api.do(http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, data[inventoryapp.ProductResponse](t, resp).CurrentStock.Equal(dec("3")))

	paymentsPath := "/api/v1/invoices/" + inv.ID.String() + "/payments"
	w, resp = api.do(http.MethodPost, paymentsPath, map[string]any{
		"amount": "100", "payment_date": "2026-01-12", "payment_method": "upi",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := data[invoiceapp.InvoiceResponse](t, resp)
	assert.Equal(t, "partial", paid.PaymentStatus)
	assert.True(t, paid.AmountDue.Equal(dec("136")))

	w, resp = api.do(http.MethodPost, paymentsPath, map[string]any{"amount": "136"})
	require.Equal(t, http.StatusOK, w.Code)
	paid = data[invoiceapp.InvoiceResponse](t, resp)
	assert.Equal(t, "paid", paid.PaymentStatus)
	assert.NotNil(t, paid.PaidAt)

	w, resp = api.do(http.MethodGet, paymentsPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data[[]invoiceapp.PaymentResponse](t, resp), 2)

	// paid is final
	w, resp = api.do(http.MethodPut, "/api/v1/invoices/"+inv.ID.String()+"/payment-status", map[string]any{"payment_status": "due"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, shared.CodeStatusRegression, resp.Error.Code)
}

func TestInvoiceHandler_StockShortfallIsAWarning(t *testing.T) {
	api := newTestAPI(t)
	product := createProduct(t, api, "Widget", "1")
	customer := createCustomer(t, api, "27")

	var created invoiceapp.CreateInvoiceResponse
	api.mustCreate("/api/v1/invoices", salesInvoiceBody(customer.ID, product.ID, "4"), &created)
	assert.True(t, created.Invoice.TotalAmount.Equal(dec("472")))
	assert.NotEmpty(t, created.Warnings)

	w, resp := api.do(http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, data[inventoryapp.ProductResponse](t, resp).CurrentStock.Equal(dec("1")))
}

func TestInvoiceHandler_IdempotencyKey(t *testing.T) {
	api := newTestAPI(t)
	product := createProduct(t, api, "Widget", "10")
	customer := createCustomer(t, api, "27")
	body := salesInvoiceBody(customer.ID, product.ID, "1")

	w, _ := api.do(http.MethodPost, "/api/v1/invoices", body, IdempotencyKeyHeader, "order-77")
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := api.do(http.MethodPost, "/api/v1/invoices", body, IdempotencyKeyHeader, "order-77")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, shared.CodeIdempotencyConflict, resp.Error.Code)

	w, resp = api.do(http.MethodGet, "/api/v1/invoices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), resp.Meta.Total)

	w, resp = api.do(http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, data[inventoryapp.ProductResponse](t, resp).CurrentStock.Equal(dec("9")))
}

func TestInvoiceHandler_Validation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"missing items", map[string]any{"invoice_type": "sales", "entity_type": "customer"}, "items"},
		{"bad type", map[string]any{"invoice_type": "gift", "entity_type": "customer", "items": []map[string]any{{"description": "x", "quantity": "1"}}}, "invoice_type"},
		{"bad date", map[string]any{"invoice_type": "sales", "entity_type": "customer", "invoice_date": "10-01-2026", "items": []map[string]any{{"description": "x", "quantity": "1"}}}, "invoice_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := api.do(http.MethodPost, "/api/v1/invoices", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, resp.Error)
			require.NotEmpty(t, resp.Error.Details)
			assert.Equal(t, tt.field, resp.Error.Details[0].Field)
		})
	}

	t.Run("sales invoice needs a customer", func(t *testing.T) {
		w, resp := api.do(http.MethodPost, "/api/v1/invoices", map[string]any{
			"invoice_type": "sales", "entity_type": "customer",
			"items": []map[string]any{{"description": "x", "quantity": "1", "unit_price": "10"}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.CodeValidation, resp.Error.Code)
	})

	t.Run("payment must be positive", func(t *testing.T) {
		w, resp := api.do(http.MethodPost, "/api/v1/invoices/"+uuid.NewString()+"/payments", map[string]any{"amount": "-5"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "amount", resp.Error.Details[0].Field)
	})

	t.Run("oversized idempotency key", func(t *testing.T) {
		long := make([]byte, maxIdempotencyKeyLength+1)
		for i := range long {
			long[i] = 'k'
		}
		w, _ := api.do(http.MethodPost, "/api/v1/invoices", map[string]any{}, IdempotencyKeyHeader, string(long))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInvoiceHandler_MarkOverdue(t *testing.T) {
	api := newTestAPI(t)
	product := createProduct(t, api, "Widget", "10")
	customer := createCustomer(t, api, "27")

	var created invoiceapp.CreateInvoiceResponse
	api.mustCreate("/api/v1/invoices", salesInvoiceBody(customer.ID, product.ID, "1"), &created)

	w, resp := api.do(http.MethodPost, "/api/v1/invoices/mark-overdue", map[string]any{"as_of": "2026-01-15"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, data[invoiceapp.MarkOverdueResponse](t, resp).Updated)

	w, resp = api.do(http.MethodPost, "/api/v1/invoices/mark-overdue", map[string]any{"as_of": "2026-02-01"})
	require.Equal(t, http.StatusOK, w.Code)
	result := data[invoiceapp.MarkOverdueResponse](t, resp)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, []uuid.UUID{created.Invoice.ID}, result.InvoiceIDs)

	w, resp = api.do(http.MethodGet, "/api/v1/invoices?payment_status=overdue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data[[]invoiceapp.InvoiceResponse](t, resp), 1)
}
