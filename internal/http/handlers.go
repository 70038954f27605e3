package http

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/service"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) (domain.CartView, error)
	AddItem(ctx context.Context, userID string, productID int64, quantity *int) (domain.CartView, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (domain.CartView, error)
	RemoveItem(ctx context.Context, userID, itemID string) (domain.CartView, error)
}

type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (*domain.User, error)
}

type Recommender interface {
	Recommend(ctx context.Context, userID string) ([]domain.Product, error)
}

type Classifier interface {
	Classify(ctx context.Context, categories []string) ([]service.Classification, error)
}

type Assistant interface {
	Reply(ctx context.Context, message string) string
}
