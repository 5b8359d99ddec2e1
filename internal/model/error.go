package model

import "errors"

// Standard error codes carried by domain errors. The human-readable message
// is the contract with the presentation layer; codes exist so tests and
// callers do not have to match on message text.
const (
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeDuplicateEmail      = "DUPLICATE_EMAIL"
	ErrCodeDuplicateCategory   = "DUPLICATE_CATEGORY"
	ErrCodeHasExistingOrders   = "HAS_EXISTING_ORDERS"
	ErrCodeItemInUse           = "ITEM_IN_USE"
	ErrCodeCannotDeleteDefault = "CANNOT_DELETE_DEFAULT"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodePaymentDeclined     = "PAYMENT_DECLINED"
	ErrCodeOrderNotCompleted   = "ORDER_NOT_COMPLETED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeInvalidAction       = "INVALID_ACTION"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure that is reported to the caller as a
// structured result rather than propagated as a fault.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// AsDomainError unwraps err into a DomainError if it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors with fixed message text.
var (
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid credentials.")
	ErrDuplicateEmail     = NewDomainError(ErrCodeDuplicateEmail, "An account with this email already exists.")
	ErrDuplicateCategory  = NewDomainError(ErrCodeDuplicateCategory, "A category with this name already exists.")
	ErrCategoryNameTaken  = NewDomainError(ErrCodeDuplicateCategory, "Another category with this name already exists.")
	ErrDefaultCategory    = NewDomainError(ErrCodeCannotDeleteDefault, "Cannot delete the default category.")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Your cart is empty.")
	ErrOrderNotCompleted  = NewDomainError(ErrCodeOrderNotCompleted, "Cannot delete an order that is not completed or cancelled.")
)
