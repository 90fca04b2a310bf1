package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target carries the same error code
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error carrying an underlying cause
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf extracts the domain error code from err, or "" when err is not a DomainError
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Error codes grouped by how callers are expected to react.
const (
	// Validation: rejected before any persistence
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"

	// Conflict: duplicate identity or a lost optimistic-lock race
	CodeConflict            = "CONFLICT"
	CodeDuplicateNumber     = "DUPLICATE_NUMBER"
	CodeIdempotencyConflict = "IDEMPOTENCY_CONFLICT"
	CodeConcurrentModify    = "CONCURRENT_MODIFICATION"

	// Consistency: side effect skipped, operation continues
	CodeInsufficientStock = "INSUFFICIENT_STOCK"

	// Invariant violations: rejected outright
	CodeInvalidState     = "INVALID_STATE"
	CodeStatusRegression = "PAYMENT_STATUS_REGRESSION"
	CodeQuantityExceeded = "QUANTITY_EXCEEDED"
	CodeVoidTransaction  = "VOID_TRANSACTION"

	CodeNotFound          = "NOT_FOUND"
	CodeDependencyFailure = "DEPENDENCY_FAILURE"
	CodeUnauthorized      = "UNAUTHORIZED"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeConflict, "Resource already exists")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrentModify, "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrDuplicateNumber     = NewDomainError(CodeDuplicateNumber, "Document number already in use")
)

// NewValidationError creates a validation error with a caller-facing message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}
