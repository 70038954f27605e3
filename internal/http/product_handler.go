package http

import (
	"net/http"
	"strconv"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	catalog catalog.Store
}

func NewProductHandler(products catalog.Store) *ProductHandler {
	return &ProductHandler{catalog: products}
}

// ListProducts serves the whole catalog, narrowed by the optional category,
// tag, minPrice and maxPrice query parameters.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var products []domain.Product
	if filter == (domain.ProductFilter{}) {
		products, err = h.catalog.GetAll(r.Context())
	} else {
		products, err = h.catalog.Find(r.Context(), filter)
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toProductDTOs(products))
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toProductDTO(*product))
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.GetByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toProductDTOs(products))
}

func parseProductFilter(r *http.Request) (domain.ProductFilter, error) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
	}

	var err error
	if filter.MinPrice, err = parsePrice(q.Get("minPrice")); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parsePrice(q.Get("maxPrice")); err != nil {
		return filter, err
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return filter, domain.ErrInvalidPriceRange
	}
	return filter, nil
}

func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, domain.ErrInvalidPriceRange
	}
	return &d, nil
}
