package repository

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// CartRepository persists carts with optimistic concurrency.
// Consumers define this interface, not the MongoDB implementation
type CartRepository interface {
	// GetCart returns domain.ErrCartNotFound when the user has no cart yet.
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	// SaveCart stores cart if the stored version still equals cart.Version
	// (zero meaning "not stored yet") and returns domain.ErrVersionConflict
	// otherwise. On success cart.Version and the timestamps are updated in place.
	SaveCart(ctx context.Context, cart *domain.Cart) error
}

type UserRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (*domain.User, error)
	// EnsureUser inserts user unless a user with the same id already exists.
	EnsureUser(ctx context.Context, user domain.User) error
}
