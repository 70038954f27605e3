package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users       UserService
	recommender Recommender
}

func NewUserHandler(users UserService, recommender Recommender) *UserHandler {
	return &UserHandler{users: users, recommender: recommender}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toUserDTO(user))
}

func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req PreferencesDTO
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := h.users.UpdatePreferences(r.Context(), chi.URLParam(r, "userID"), req.toDomain())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toUserDTO(user))
}

func (h *UserHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	products, err := h.recommender.Recommend(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toProductDTOs(products))
}
