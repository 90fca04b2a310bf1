package handler

import (
	invoiceapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/invoice"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets clients retry invoice creation safely
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength bounds client supplied keys
const maxIdempotencyKeyLength = 255

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoiceapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoiceapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Preview handles POST /invoices/preview: prices an invoice without saving it
func (h *InvoiceHandler) Preview(c *gin.Context) {
	tenantID, userID := identity(c)

	var req invoiceapp.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	preview, err := h.invoiceService.Preview(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// Create handles POST /invoices. Stock shortfalls on sales lines do not fail
// the request; they come back as warnings next to the invoice.
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, userID := identity(c)

	key := c.GetHeader(IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLength {
		h.BadRequest(c, "Idempotency-Key is too long")
		return
	}

	var req invoiceapp.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.invoiceService.Create(c.Request.Context(), tenantID, userID, key, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID handles GET /invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, _ := identity(c)

	var filter invoiceapp.InvoiceListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// ListPayments handles GET /invoices/:id/payments
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// RecordPayment handles POST /invoices/:id/payments
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	var req invoiceapp.RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inv, err := h.invoiceService.RecordPayment(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// UpdatePaymentStatus handles PUT /invoices/:id/payment-status
func (h *InvoiceHandler) UpdatePaymentStatus(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "invoice")
	if !ok {
		return
	}

	var req invoiceapp.UpdatePaymentStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inv, err := h.invoiceService.UpdatePaymentStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// MarkOverdue handles POST /invoices/mark-overdue
func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	tenantID, _ := identity(c)

	var req invoiceapp.MarkOverdueRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.invoiceService.MarkOverdue(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
