package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/logger"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/dto"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// HandleError converts an error returned by a service into a response.
// Domain errors keep their code and message; anything else is logged and
// reported as an internal error without leaking its text.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	logger.FromContext(c.Request.Context()).Error("Unhandled error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// bindJSON binds the request body into req and writes the error response
// itself when binding fails. An empty body binds as {} so that required
// fields are reported individually.
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	return h.checkBind(c, err)
}

// bindQuery binds query parameters into req
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	return h.checkBind(c, c.ShouldBindQuery(req))
}

func (h *BaseHandler) checkBind(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	if details := middleware.ValidationDetails(err); details != nil {
		h.ValidationError(c, details)
		return false
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return false
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Malformed request body")
	return false
}

// pathID parses a UUID path parameter
func (h *BaseHandler) pathID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// identity returns the tenant and user resolved by the Identity middleware
func identity(c *gin.Context) (tenantID, userID uuid.UUID) {
	return middleware.GetTenantID(c), middleware.GetUserID(c)
}

// List endpoints page by 20 unless told otherwise
const defaultPageSize = 20

func pageOrDefault(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func pageSizeOrDefault(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	return size
}
