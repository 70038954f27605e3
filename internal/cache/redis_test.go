package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client), mr
}

func TestGet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := &domain.Cart{
		UserID: "user123",
		Items: []domain.CartItem{
			{ID: "a", ProductID: 1, Quantity: 2, PriceAtAddition: decimal.RequireFromString("299.99")},
			{ID: "b", ProductID: 2, Quantity: 3, PriceAtAddition: decimal.RequireFromString("89.99")},
		},
		Version: 4,
	}
	cartJSON, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey("user123"), string(cartJSON)))

	result, err := cache.Get(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, "user123", result.UserID)
	assert.Equal(t, int64(4), result.Version)
	require.Len(t, result.Items, 2)
	assert.True(t, decimal.RequireFromString("299.99").Equal(result.Items[0].PriceAtAddition))
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	result, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_CorruptedEntry(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(cacheKey("user123"), "{not json"))

	_, err := cache.Get(context.Background(), "user123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestGet_RedisDown(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Close()

	_, err := cache.Get(context.Background(), "user123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_WritesWithTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "user123", domain.NewCart("user123")))

	assert.True(t, mr.Exists(cacheKey("user123")))
	ttl := mr.TTL(cacheKey("user123"))
	assert.GreaterOrEqual(t, ttl, defaultTTL)
	assert.Less(t, ttl, defaultTTL+maxJitter*time.Minute)

	got, err := cache.Get(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, "user123", got.UserID)
}

func TestDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "user123", domain.NewCart("user123")))
	require.NoError(t, cache.Delete(ctx, "user123"))
	assert.False(t, mr.Exists(cacheKey("user123")))

	// Deleting a missing key is not an error.
	require.NoError(t, cache.Delete(ctx, "user123"))
}

func TestNopCache(t *testing.T) {
	var c CartCache = NopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u", domain.NewCart("u")))
	_, err := c.Get(ctx, "u")
	assert.ErrorIs(t, err, ErrCacheMiss)
	require.NoError(t, c.Delete(ctx, "u"))
}
