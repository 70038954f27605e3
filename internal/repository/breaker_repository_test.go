package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/pkg/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type failingCartRepository struct {
	err   error
	calls int
}

func (f *failingCartRepository) GetCart(context.Context, string) (*domain.Cart, error) {
	f.calls++
	return nil, f.err
}

func (f *failingCartRepository) SaveCart(context.Context, *domain.Cart) error {
	f.calls++
	return f.err
}

func newTestBreaker(t *testing.T) *circuitbreaker.Breaker {
	s := BreakerSettings("carts")
	s.ConsecutiveFailures = 2
	s.Timeout = time.Minute
	return circuitbreaker.New(s, zaptest.NewLogger(t))
}

func TestBreakerCartRepository_OpensOnStoreFailures(t *testing.T) {
	inner := &failingCartRepository{err: errors.New("connection refused")}
	repo := WithCartBreaker(inner, newTestBreaker(t))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.GetCart(ctx, "u")
		assert.Error(t, err)
	}

	err := repo.SaveCart(ctx, domain.NewCart("u"))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, 2, inner.calls)
}

func TestBreakerCartRepository_NotFoundDoesNotTrip(t *testing.T) {
	inner := &failingCartRepository{err: domain.ErrCartNotFound}
	repo := WithCartBreaker(inner, newTestBreaker(t))

	for i := 0; i < 5; i++ {
		_, err := repo.GetCart(context.Background(), "u")
		assert.ErrorIs(t, err, domain.ErrCartNotFound)
	}
	assert.Equal(t, 5, inner.calls)
}

func TestIsStoreFailure(t *testing.T) {
	assert.False(t, IsStoreFailure(nil))
	assert.False(t, IsStoreFailure(domain.ErrUserNotFound))
	assert.False(t, IsStoreFailure(domain.ErrVersionConflict))
	assert.False(t, IsStoreFailure(domain.ErrInvalidQuantity))
	assert.True(t, IsStoreFailure(domain.Unavailable("op", errors.New("x"))))
	assert.True(t, IsStoreFailure(context.DeadlineExceeded))
}
