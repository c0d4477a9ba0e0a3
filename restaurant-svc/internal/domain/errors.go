package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidRole       = errors.New("user does not hold the required role")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("permission denied")
	ErrTransactionFailed = errors.New("transaction failed")
)

// ErrorKind returns the machine readable kind of err, "internal" when err
// does not wrap one of the sentinel errors above.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrTransactionFailed):
		return "transaction_failed"
	default:
		return "internal"
	}
}
