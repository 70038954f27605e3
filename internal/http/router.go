package http

import (
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Services struct {
	Catalog     catalog.Store
	Carts       CartService
	Users       UserService
	Recommender Recommender
	Classifier  Classifier
	Assistant   Assistant
}

func NewRouter(s Services, log *zap.Logger, requestTimeout time.Duration) http.Handler {
	products := NewProductHandler(s.Catalog)
	carts := NewCartHandler(s.Carts)
	users := NewUserHandler(s.Users, s.Recommender)
	discovery := NewDiscoveryHandler(s.Classifier, s.Assistant)

	r := chi.NewRouter()

	// Global middleware
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.ListProducts)
			r.Get("/{id}", products.GetProduct)
			r.Get("/category/{category}", products.ListByCategory)
		})

		r.Post("/classify", discovery.Classify)
		r.Post("/assistant", discovery.Assistant)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", users.GetUser)
			r.Put("/preferences", users.UpdatePreferences)
			r.Get("/recommendations", users.Recommendations)
		})

		r.Route("/cart/{userID}", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{itemID}", carts.UpdateQuantity)
			r.Delete("/items/{itemID}", carts.RemoveItem)
		})
	})

	return r
}
