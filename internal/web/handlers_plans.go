package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitalcoach/backend/internal/store"
)

// CreatePlanRequest is the payload for POST /api/plans.
type CreatePlanRequest struct {
	ClientName string          `json:"client_name" validate:"required,max=200"`
	Type       string          `json:"plan_type" validate:"required,oneof=diet workout supplement"`
	Title      string          `json:"title" validate:"required,max=200"`
	Notes      string          `json:"notes" validate:"max=2000"`
	Content    json.RawMessage `json:"content"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeErrorDetails(w, r, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}
	plan, err := s.plans.Create(r.Context(), store.Plan{
		ClientName: req.ClientName,
		Type:       store.PlanType(req.Type),
		Title:      req.Title,
		Notes:      req.Notes,
		Content:    req.Content,
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusCreated, plan)
}

// handleListPlans returns plans, optionally filtered by ?client= and ?type=.
func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	planType := store.PlanType(r.URL.Query().Get("type"))
	if planType != "" && !store.ValidPlanType(planType) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown plan type %q", planType))
		return
	}

	plans, err := s.plans.List(r.Context(), r.URL.Query().Get("client"), planType)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if plans == nil {
		plans = []store.Plan{}
	}
	writeJSON(w, r, http.StatusOK, plans)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "planID")

	if err := s.plans.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "plan not found")
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
