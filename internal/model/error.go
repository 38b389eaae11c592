package model

import (
	"fmt"
	"time"
)

// ErrorResponse is the standardised error body returned by every endpoint.
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Path       string    `json:"path"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeStockInsufficient  = "STOCK_INSUFFICIENT"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-logic error carrying a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewNotFound creates a NotFound error naming the missing entity and its id.
func NewNotFound(entity string, id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s #%d not found", entity, id),
	}
}

// NewStockInsufficient creates a stock-insufficiency error naming the product.
func NewStockInsufficient(productName string) *DomainError {
	return &DomainError{
		Code:    ErrCodeStockInsufficient,
		Message: fmt.Sprintf("insufficient stock for product %s", productName),
	}
}

// NewValidationError creates a request validation error.
func NewValidationError(message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "This email is not available")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password")
	ErrUnauthorised       = NewDomainError(ErrCodeUnauthorised, "User not authenticated")
	ErrForbidden          = NewDomainError(ErrCodeForbidden, "You are not authorised to access this resource")
)
