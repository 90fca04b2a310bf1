package handler

import (
	"net/http"
	"testing"

	inventoryapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/inventory"
	partnerapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/partner"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/dto"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestPartnerHandler_Lifecycle(t *testing.T) {
	api := newTestAPI(t)

	var created partnerapp.EntityResponse
	api.mustCreate("/api/v1/partners", map[string]any{
		"name": "Acme Traders", "entity_type": "customer", "state_code": "27",
	}, &created)
	assert.Equal(t, "customer", created.EntityType)
	assert.Equal(t, api.tenantID, created.TenantID)

	w, resp := api.do(http.MethodGet, "/api/v1/partners/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Traders", data[partnerapp.EntityResponse](t, resp).Name)

	w, resp = api.do(http.MethodPut, "/api/v1/partners/"+created.ID.String(), map[string]any{
		"name": "Acme Traders Pvt", "entity_type": "customer", "state_code": "29",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "29", data[partnerapp.EntityResponse](t, resp).StateCode)

	api.mustCreate("/api/v1/partners", map[string]any{"name": "Bharat Steel", "entity_type": "supplier"}, &partnerapp.EntityResponse{})
	w, resp = api.do(http.MethodGet, "/api/v1/partners?entity_type=supplier", nil)
	require.Equal(t, http.StatusOK, w.Code)
	suppliers := data[[]partnerapp.EntityResponse](t, resp)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "Bharat Steel", suppliers[0].Name)
}

func TestPartnerHandler_Errors(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.do(http.MethodPost, "/api/v1/partners", map[string]any{"name": "X", "entity_type": "friend"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, shared.CodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "entity_type", resp.Error.Details[0].Field)

	w, resp = api.do(http.MethodGet, "/api/v1/partners/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)

	w, resp = api.do(http.MethodGet, "/api/v1/partners/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, shared.CodeNotFound, resp.Error.Code)
}

func TestPartnerHandler_TenantIsolation(t *testing.T) {
	api := newTestAPI(t)

	var created partnerapp.EntityResponse
	api.mustCreate("/api/v1/partners", map[string]any{"name": "Acme", "entity_type": "customer"}, &created)

	w, _ := api.do(http.MethodGet, "/api/v1/partners/"+created.ID.String(), nil,
		middleware.TenantHeaderKey, uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func createProduct(t *testing.T, api *testAPI, name, stock string) inventoryapp.ProductResponse {
	t.Helper()
	var p inventoryapp.ProductResponse
	api.mustCreate("/api/v1/products", map[string]any{
		"name": name, "opening_stock": stock, "purchase_price": "80", "selling_price": "100", "gst_rate": "18",
	}, &p)
	return p
}

func TestProductHandler_Adjust(t *testing.T) {
	api := newTestAPI(t)
	p := createProduct(t, api, "Widget", "5")
	adjustPath := "/api/v1/products/" + p.ID.String() + "/adjust"

	w, resp := api.do(http.MethodPost, adjustPath, map[string]any{"quantity": "-3", "reason": "damaged"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	adj := data[inventoryapp.StockAdjustmentResponse](t, resp)
	assert.True(t, adj.Product.CurrentStock.Equal(dec("2")))
	assert.True(t, adj.Delta.Equal(dec("-3")))

	w, resp = api.do(http.MethodPost, adjustPath, map[string]any{"quantity": "-5", "reason": "recount"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, shared.CodeInsufficientStock, resp.Error.Code)

	w, resp = api.do(http.MethodGet, "/api/v1/products/"+p.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, data[inventoryapp.ProductResponse](t, resp).CurrentStock.Equal(dec("2")))

	w, resp = api.do(http.MethodPost, adjustPath, map[string]any{"quantity": "0", "reason": "noop"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, shared.CodeValidation, resp.Error.Code)
}

func TestProductHandler_List(t *testing.T) {
	api := newTestAPI(t)
	createProduct(t, api, "Bolt", "0")
	createProduct(t, api, "Nut", "10")
	createProduct(t, api, "Washer", "0")

	w, resp := api.do(http.MethodGet, "/api/v1/products?out_of_stock=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := data[[]inventoryapp.ProductResponse](t, resp)
	require.Len(t, products, 2)
	assert.Equal(t, "Bolt", products[0].Name)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, defaultPageSize, resp.Meta.PageSize)

	w, resp = api.do(http.MethodGet, "/api/v1/products?page_size=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "page_size", resp.Error.Details[0].Field)
}
