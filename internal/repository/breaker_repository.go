package repository

import (
	"context"
	"errors"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/pkg/circuitbreaker"
)

// IsStoreFailure reports whether err should count against a store's circuit
// breaker. Misses, validation errors and version conflicts are normal answers.
func IsStoreFailure(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, domain.ErrNotFound) &&
		!errors.Is(err, domain.ErrValidation) &&
		!errors.Is(err, domain.ErrVersionConflict) &&
		!errors.Is(err, context.Canceled)
}

// BreakerSettings returns circuit breaker settings classifying errors with
// IsStoreFailure.
func BreakerSettings(name string) circuitbreaker.Settings {
	return circuitbreaker.Settings{
		Name:         name,
		IsSuccessful: func(err error) bool { return !IsStoreFailure(err) },
	}
}

func breakerErr(err error) error {
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return domain.Unavailable("store call rejected", err)
	}
	return err
}

type breakerCartRepository struct {
	next    CartRepository
	breaker *circuitbreaker.Breaker
}

// WithCartBreaker routes every call to next through b. Calls rejected by an
// open breaker fail with domain.ErrStoreUnavailable.
func WithCartBreaker(next CartRepository, b *circuitbreaker.Breaker) CartRepository {
	return &breakerCartRepository{next: next, breaker: b}
}

func (r *breakerCartRepository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := circuitbreaker.Do(r.breaker, func() (*domain.Cart, error) {
		return r.next.GetCart(ctx, userID)
	})
	return cart, breakerErr(err)
}

func (r *breakerCartRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	return breakerErr(circuitbreaker.Run(r.breaker, func() error {
		return r.next.SaveCart(ctx, cart)
	}))
}

type breakerUserRepository struct {
	next    UserRepository
	breaker *circuitbreaker.Breaker
}

func WithUserBreaker(next UserRepository, b *circuitbreaker.Breaker) UserRepository {
	return &breakerUserRepository{next: next, breaker: b}
}

func (r *breakerUserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := circuitbreaker.Do(r.breaker, func() (*domain.User, error) {
		return r.next.GetUser(ctx, id)
	})
	return u, breakerErr(err)
}

func (r *breakerUserRepository) UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (*domain.User, error) {
	u, err := circuitbreaker.Do(r.breaker, func() (*domain.User, error) {
		return r.next.UpdatePreferences(ctx, id, prefs)
	})
	return u, breakerErr(err)
}

func (r *breakerUserRepository) EnsureUser(ctx context.Context, user domain.User) error {
	return breakerErr(circuitbreaker.Run(r.breaker, func() error {
		return r.next.EnsureUser(ctx, user)
	}))
}
