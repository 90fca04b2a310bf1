package handler

import (
	tradeapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *tradeapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *tradeapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// Create handles POST /purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	tenantID, userID := identity(c)

	var req tradeapp.CreatePurchaseOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID handles GET /purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "purchase order")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List handles GET /purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	tenantID, _ := identity(c)

	var filter tradeapp.PurchaseOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Send handles POST /purchase-orders/:id/send
func (h *PurchaseOrderHandler) Send(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "purchase order")
	if !ok {
		return
	}

	order, err := h.orderService.Send(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Receive handles POST /purchase-orders/:id/receive. Quantities are the new
// cumulative totals per item, not increments.
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "purchase order")
	if !ok {
		return
	}

	var req tradeapp.ReceivePurchaseOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.orderService.Receive(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel handles POST /purchase-orders/:id/cancel
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "purchase order")
	if !ok {
		return
	}

	var req tradeapp.CancelPurchaseOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
