package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every store and service. Specific errors wrap one of
// these so callers can branch with errors.Is on the category alone.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)

var (
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrCartNotFound    = fmt.Errorf("cart %w", ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("item %w in cart", ErrNotFound)

	ErrInvalidQuantity   = fmt.Errorf("%w: quantity must be between 1 and %d", ErrValidation, MaxQuantity)
	ErrInvalidPriceRange = fmt.Errorf("%w: price range must satisfy 0 <= min <= max", ErrValidation)
	ErrInvalidEcoPref    = fmt.Errorf("%w: eco preference must be one of low, medium, high", ErrValidation)
	ErrMissingCategories = fmt.Errorf("%w: categories are required", ErrValidation)

	// ErrVersionConflict is returned by cart repositories when the stored
	// version no longer matches the one the caller read.
	ErrVersionConflict = errors.New("cart was modified concurrently")
)

// Unavailable marks err as a persistence failure while keeping it in the chain.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
