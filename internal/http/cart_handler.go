package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts CartService
}

func NewCartHandler(carts CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.carts.GetCart(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toCartViewDTO(view))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := h.carts.AddItem(r.Context(), chi.URLParam(r, "userID"), req.ProductID, req.Quantity)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toCartViewDTO(view))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := h.carts.UpdateItemQuantity(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "itemID"), req.Quantity)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toCartViewDTO(view))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.carts.RemoveItem(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "itemID"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toCartViewDTO(view))
}
