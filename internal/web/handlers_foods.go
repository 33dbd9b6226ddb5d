package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitalcoach/backend/internal/store"
)

// handleListFoods returns the food library, newest first.
func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := s.foods.List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if foods == nil {
		foods = []store.Food{}
	}
	writeJSON(w, r, http.StatusOK, foods)
}

// handleDeleteFood removes one food item by ID.
func (s *Server) handleDeleteFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "foodID")

	if err := s.foods.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "food not found")
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
