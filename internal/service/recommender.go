package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/repository"
)

const MaxRecommendations = 8

type Recommender struct {
	users   repository.UserRepository
	catalog catalog.Store
}

func NewRecommender(users repository.UserRepository, products catalog.Store) *Recommender {
	return &Recommender{users: users, catalog: products}
}

// Recommend filters the catalog by the user's price range and eco preference
// and ranks the survivors by ecoScore, highest first. Equal scores keep
// catalog order. Style does not affect the result.
func (r *Recommender) Recommend(ctx context.Context, userID string) ([]domain.Product, error) {
	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := r.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	prefs := user.Preferences
	minEco, ecoFilter := prefs.EcoPreference.MinEcoScore()

	picked := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if prefs.PriceRange != nil && !prefs.PriceRange.Contains(p.Price) {
			continue
		}
		if ecoFilter && p.EcoScore < minEco {
			continue
		}
		picked = append(picked, p)
	}

	slices.SortStableFunc(picked, func(a, b domain.Product) int {
		return cmp.Compare(b.EcoScore, a.EcoScore)
	})

	if len(picked) > MaxRecommendations {
		picked = picked[:MaxRecommendations]
	}
	return picked, nil
}
