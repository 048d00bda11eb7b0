package service

import (
	"errors"
	"fmt"
)

// Service-level sentinel errors. Handlers map these onto response codes and
// localized messages.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderCreateFailed  = errors.New("order create failed")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrOrderNotCancelable = errors.New("order can no longer be canceled")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNotPurchased       = errors.New("product was not purchased by this user")
	ErrReviewExists       = errors.New("product already reviewed by this user")
	ErrReviewNotFound     = errors.New("review not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrSlugTaken          = errors.New("slug already in use")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password does not meet the policy")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaMismatch    = errors.New("captcha mismatch")
	ErrNotePersistFailed  = errors.New("order note persistence failed")
)

// OutOfStockError reports a cart mutation rejected by the live stock guard.
// MaxAllowed is how many more units the user could still add; it is zero
// when the product is gone or already fully in the cart.
type OutOfStockError struct {
	ProductID  uint
	MaxAllowed int
}

// Error implements error.
func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %d out of stock, at most %d more allowed", e.ProductID, e.MaxAllowed)
}

// IsOutOfStock extracts an OutOfStockError from err, if present.
func IsOutOfStock(err error) (*OutOfStockError, bool) {
	var oos *OutOfStockError
	if errors.As(err, &oos) {
		return oos, true
	}
	return nil, false
}

// FieldError is one field-scoped checkout validation failure. The message
// key is resolved against the requester's locale at the handler layer.
type FieldError struct {
	Field      string `json:"field"`
	MessageKey string `json:"message_key"`
}

// ValidationError bundles the field errors of a single checkout step.
// Validation never aborts on the first failure so the user sees every
// problem on the step at once.
type ValidationError struct {
	Step   int          `json:"step"`
	Fields []FieldError `json:"fields"`
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout step %d validation failed with %d field error(s)", e.Step, len(e.Fields))
}

// AsValidationError extracts a ValidationError from err, if present.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
