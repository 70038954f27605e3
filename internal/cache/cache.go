package cache

import (
	"context"
	"errors"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// CartCache holds read-through copies of persisted carts. Entries are
// dropped after every mutation, so a hit is never newer than the store.
type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// NopCache is used when no Redis address is configured. Every Get misses.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*domain.Cart, error) { return nil, ErrCacheMiss }
func (NopCache) Set(context.Context, string, *domain.Cart) error   { return nil }
func (NopCache) Delete(context.Context, string) error              { return nil }
