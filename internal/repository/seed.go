package repository

import (
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// SampleUser is the shopper seeded at startup.
func SampleUser() domain.User {
	return domain.User{
		ID:   "1",
		Name: "AI Shopper",
		Preferences: domain.Preferences{
			Style:         "modern",
			PriceRange:    &domain.PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(500)},
			EcoPreference: domain.EcoHigh,
		},
		Wishlist: []int64{},
	}
}
