package model

import "fmt"

// Error codes carried by domain errors.
const (
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidWebhook  = "INVALID_WEBHOOK"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeInvalidPrice    = "INVALID_PRICE"
	ErrCodeInvalidAmount   = "INVALID_AMOUNT"
	ErrCodeEmptyOrder      = "EMPTY_ORDER"
	ErrCodeInvalidPassword = "INVALID_PASSWORD"
	ErrCodeUpstreamFailure = "UPSTREAM_FAILURE"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business rule failure with a client-safe message.
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

// Common domain errors
var (
	ErrUnauthenticated    = NewDomainError(ErrCodeUnauthenticated, "Not authenticated")
	ErrInvalidToken       = NewDomainError(ErrCodeUnauthenticated, "Invalid token")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthenticated, "Invalid credentials")
	ErrEmailExists        = NewDomainError(ErrCodeConflict, "Email already exists")
	ErrProductNotFound    = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrCheckoutNotFound   = NewDomainError(ErrCodeNotFound, "Checkout session not found")
	ErrOrderAlreadyPaid   = NewDomainError(ErrCodeConflict, "Order is already paid")
	ErrInvalidWebhook     = NewDomainError(ErrCodeInvalidWebhook, "Invalid webhook signature or payload")
	ErrMissingProductID   = NewDomainError(ErrCodeMissingField, "product_id is required")
	ErrMissingCredentials = NewDomainError(ErrCodeMissingField, "email and password are required")
	ErrMissingHostURL     = NewDomainError(ErrCodeMissingField, "host_url is required")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPrice       = NewDomainError(ErrCodeInvalidPrice, "Price must not be negative")
	ErrInvalidAmount      = NewDomainError(ErrCodeInvalidAmount, "Amount must be greater than zero")
	ErrAmountMismatch     = NewDomainError(ErrCodeInvalidAmount, "Amount does not match the order total")
	ErrPasswordTooLong    = NewDomainError(ErrCodeInvalidPassword, "Password must be at most 72 bytes")
	ErrEmptyOrder         = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one item")
)

// UpstreamError reports a failed call to an external provider.
// StatusCode is the provider's HTTP status, or 0 when no response arrived.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
