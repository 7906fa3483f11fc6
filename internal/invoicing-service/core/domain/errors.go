package domain

import "errors"

var (
	// ErrUnrecognizedItemType — the item type is not one of the three catalogs.
	ErrUnrecognizedItemType = errors.New("unrecognized item type")
	// ErrInvalidQuantity — the requested quantity is not a positive integer.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrItemUnavailable — the catalog (or the fee table) has no row for the item.
	ErrItemUnavailable = errors.New("item unavailable")
	// ErrInsufficientStock — the requested quantity exceeds the catalog stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrExceedsMaxTotal — the subtotal or the final total is over the $999.99
	// ceiling. Both gates report the same failure.
	ErrExceedsMaxTotal = errors.New("order exceeds maximum total")
	// ErrInvalidStateCode — no tax rate is configured for the state, or the
	// configured rate is zero (treated the same as unknown).
	ErrInvalidStateCode = errors.New("invalid state code")

	// ErrItemNotFound is returned by catalog lookups for a missing item.
	ErrItemNotFound = errors.New("catalog item not found")
	// ErrRateNotFound is returned by rate lookups for a missing table row.
	ErrRateNotFound = errors.New("rate not found")
	// ErrInvoiceNotFound is returned by the invoice repository.
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// ValidationError is a request rejection from the pricing pipeline. Reason is
// the human-readable message surfaced to the caller; the wrapped sentinel
// identifies which gate rejected the request.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a pipeline rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
