package handler

import (
	partnerapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// PartnerHandler handles business entity endpoints: customers, suppliers
// and the other counterparties invoices are raised against
type PartnerHandler struct {
	BaseHandler
	entityService *partnerapp.EntityService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(entityService *partnerapp.EntityService) *PartnerHandler {
	return &PartnerHandler{entityService: entityService}
}

// Create handles POST /partners
func (h *PartnerHandler) Create(c *gin.Context) {
	tenantID, userID := identity(c)

	var req partnerapp.CreateEntityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entity, err := h.entityService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entity)
}

// GetByID handles GET /partners/:id
func (h *PartnerHandler) GetByID(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "partner")
	if !ok {
		return
	}

	entity, err := h.entityService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entity)
}

// List handles GET /partners
func (h *PartnerHandler) List(c *gin.Context) {
	tenantID, _ := identity(c)

	var filter partnerapp.EntityListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	entities, err := h.entityService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entities)
}

// Update handles PUT /partners/:id
func (h *PartnerHandler) Update(c *gin.Context) {
	tenantID, _ := identity(c)
	id, ok := h.pathID(c, "id", "partner")
	if !ok {
		return
	}

	var req partnerapp.UpdateEntityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entity, err := h.entityService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entity)
}
