package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vitalcoach/backend/internal/store"
)

// CreateCheckInRequest is the payload for POST /api/checkins. Date uses the
// YYYY-MM-DD form the portal sends.
type CreateCheckInRequest struct {
	ClientName     string   `json:"client_name" validate:"required,max=200"`
	Date           string   `json:"date" validate:"required,datetime=2006-01-02"`
	WeightKg       float64  `json:"weight_kg" validate:"required,gt=0,lt=500"`
	BodyFatPercent *float64 `json:"body_fat_percent" validate:"omitempty,gt=0,lt=75"`
	Notes          string   `json:"notes" validate:"max=2000"`
}

func (s *Server) handleCreateCheckIn(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeErrorDetails(w, r, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	checkIn, err := s.checkIns.Create(r.Context(), store.CheckIn{
		ClientName:     req.ClientName,
		Date:           date,
		WeightKg:       req.WeightKg,
		BodyFatPercent: req.BodyFatPercent,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, r, http.StatusCreated, checkIn)
}

// handleListCheckIns returns check-ins, optionally filtered by ?client=.
func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	checkIns, err := s.checkIns.List(r.Context(), r.URL.Query().Get("client"))
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	if checkIns == nil {
		checkIns = []store.CheckIn{}
	}
	writeJSON(w, r, http.StatusOK, checkIns)
}
