package handler

import (
	reportapp "github.com/Eros-Aphrodite/Inventory-sub000/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Generate handles GET /reports/:type
func (h *ReportHandler) Generate(c *gin.Context) {
	tenantID, _ := identity(c)

	var q reportapp.ReportQuery
	if !h.bindQuery(c, &q) {
		return
	}

	rep, err := h.reportService.Generate(c.Request.Context(), tenantID, c.Param("type"), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rep)
}

// Latest handles GET /reports/:type/latest
func (h *ReportHandler) Latest(c *gin.Context) {
	tenantID, _ := identity(c)

	rep, err := h.reportService.Latest(c.Request.Context(), tenantID, c.Param("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rep)
}
