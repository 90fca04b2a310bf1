package dto

import (
	"net/http"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
)

// Transport error codes. Domain errors keep the code of their DomainError.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "INVALID_TOKEN"
	ErrCodeTenantRequired  = "TENANT_REQUIRED"
	ErrCodeForbidden       = "FORBIDDEN"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Validation errors -> 400 Bad Request
	shared.CodeValidation:   http.StatusBadRequest,
	shared.CodeInvalidInput: http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidJSON:      http.StatusBadRequest,
	ErrCodeTenantRequired:   http.StatusBadRequest,

	// Auth errors
	shared.CodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired:     http.StatusUnauthorized,
	ErrCodeTokenInvalid:     http.StatusUnauthorized,

	ErrCodeForbidden: http.StatusForbidden,

	shared.CodeNotFound: http.StatusNotFound,

	// Conflicts -> 409
	shared.CodeConflict:            http.StatusConflict,
	shared.CodeDuplicateNumber:     http.StatusConflict,
	shared.CodeIdempotencyConflict: http.StatusConflict,
	shared.CodeConcurrentModify:    http.StatusConflict,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Business rule errors -> 422 Unprocessable Entity
	shared.CodeInsufficientStock: http.StatusUnprocessableEntity,
	shared.CodeInvalidState:      http.StatusUnprocessableEntity,
	shared.CodeStatusRegression:  http.StatusUnprocessableEntity,
	shared.CodeQuantityExceeded:  http.StatusUnprocessableEntity,
	shared.CodeVoidTransaction:   http.StatusUnprocessableEntity,

	shared.CodeDependencyFailure: http.StatusServiceUnavailable,
	ErrCodeInternal:              http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
