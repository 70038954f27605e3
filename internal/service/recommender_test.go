package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userWith(prefs domain.Preferences) domain.User {
	return domain.User{ID: "1", Name: "AI Shopper", Preferences: prefs}
}

func priceRange(lo, hi int64) *domain.PriceRange {
	return &domain.PriceRange{Min: decimal.NewFromInt(lo), Max: decimal.NewFromInt(hi)}
}

func productIDs(products []domain.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestRecommend_HighEcoExample(t *testing.T) {
	products := []domain.Product{
		{ID: 5, Name: "Bamboo Toothbrush Set", EcoScore: 9.8, Price: dec("12.99")},
		{ID: 7, Name: "Solar Powered Charger", EcoScore: 9.2, Price: dec("39.99")},
	}
	users := newMockUserRepository(userWith(domain.Preferences{PriceRange: priceRange(0, 500), EcoPreference: domain.EcoHigh}))
	r := NewRecommender(users, catalog.NewMemoryStore(products))

	got, err := r.Recommend(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 7}, productIDs(got))
}

func TestRecommend_SeedCatalog(t *testing.T) {
	store := catalog.NewMemoryStore(catalog.SeedProducts())

	tests := []struct {
		name  string
		prefs domain.Preferences
		want  []int64
	}{
		{
			name:  "high eco within budget",
			prefs: domain.Preferences{Style: "modern", PriceRange: priceRange(0, 500), EcoPreference: domain.EcoHigh},
			want:  []int64{5, 7, 6, 8},
		},
		{
			name:  "medium eco",
			prefs: domain.Preferences{PriceRange: priceRange(0, 2000), EcoPreference: domain.EcoMedium},
			want:  []int64{5, 7, 6, 8, 3, 4},
		},
		{
			name:  "low eco keeps everything in range",
			prefs: domain.Preferences{PriceRange: priceRange(0, 300), EcoPreference: domain.EcoLow},
			want:  []int64{5, 7, 6, 8, 3, 1},
		},
		{
			name:  "inclusive price bounds",
			prefs: domain.Preferences{PriceRange: priceRange(249, 299)},
			want:  []int64{3, 1},
		},
		{
			name:  "no price range",
			prefs: domain.Preferences{EcoPreference: domain.EcoHigh},
			want:  []int64{5, 7, 6, 8},
		},
		{
			name:  "nothing matches",
			prefs: domain.Preferences{PriceRange: priceRange(2000, 3000)},
			want:  []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecommender(newMockUserRepository(userWith(tt.prefs)), store)

			got, err := r.Recommend(context.Background(), "1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, productIDs(got))
		})
	}
}

func TestRecommend_StableAndBounded(t *testing.T) {
	products := make([]domain.Product, 0, 12)
	for i := int64(1); i <= 12; i++ {
		products = append(products, domain.Product{ID: i, Name: fmt.Sprintf("p%d", i), Price: dec("10"), EcoScore: 9})
	}
	r := NewRecommender(newMockUserRepository(userWith(domain.Preferences{})), catalog.NewMemoryStore(products))

	got, err := r.Recommend(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, got, MaxRecommendations)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, productIDs(got))
}

func TestRecommend_UnknownUser(t *testing.T) {
	r := NewRecommender(newMockUserRepository(), catalog.NewMemoryStore(catalog.SeedProducts()))

	_, err := r.Recommend(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRecommend_StoreFailure(t *testing.T) {
	users := newMockUserRepository()
	users.err = domain.Unavailable("get user", errors.New("down"))
	r := NewRecommender(users, catalog.NewMemoryStore(catalog.SeedProducts()))

	_, err := r.Recommend(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
