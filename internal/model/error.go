package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeSizeNotFound      = "SIZE_NOT_FOUND"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeCartEmpty         = "CART_EMPTY"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeOrderNotPending   = "ORDER_NOT_PENDING"
	ErrCodeStockInsufficient = "STOCK_INSUFFICIENT"
	ErrCodePaymentDeclined   = "PAYMENT_DECLINED"
	ErrCodeCommitFailed      = "COMMIT_FAILED"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code.
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
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrSizeNotFound    = NewDomainError(ErrCodeSizeNotFound, "Size not found for product")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrCartEmpty       = NewDomainError(ErrCodeCartEmpty, "Cart is empty")
	ErrOrderNotFound   = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrOrderNotPending = NewDomainError(ErrCodeOrderNotPending, "Order is not awaiting confirmation")
)
