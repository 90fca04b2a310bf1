package handler

import (
	inventoryapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product and stock endpoints
type ProductHandler struct {
	BaseHandler
	productService *inventoryapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *inventoryapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, userID := identity(c)

	var req inventoryapp.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, _ := identity(c)

	var filter inventoryapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Adjust handles POST /products/:id/adjust. A correction that would take
// stock below zero is rejected as a whole.
func (h *ProductHandler) Adjust(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "product")
	if !ok {
		return
	}

	var req inventoryapp.AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.productService.Adjust(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
