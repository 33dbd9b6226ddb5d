package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/vitalcoach/backend/internal/logging"
	"github.com/vitalcoach/backend/internal/metabolic"
)

// CalculatorRequest is the payload for POST /api/calculator. Structural
// checks (presence, ranges) happen here at the edge; the metabolic package
// itself trusts its inputs.
type CalculatorRequest struct {
	Gender         string   `json:"gender" validate:"required,oneof=male female"`
	Age            int      `json:"age" validate:"required,gt=0,lt=120"`
	WeightKg       float64  `json:"weight_kg" validate:"required,gt=0,lt=500"`
	HeightCm       float64  `json:"height_cm" validate:"required,gt=0,lt=300"`
	BodyFatPercent *float64 `json:"body_fat_percent" validate:"omitempty,gt=0,lt=75"`
	ActivityLevel  string   `json:"activity_level" validate:"required"`
	Goal           string   `json:"goal" validate:"required"`
	Conditions     []string `json:"conditions" validate:"omitempty,dive,max=50"`
	LifestyleScore *float64 `json:"lifestyle_score" validate:"omitempty,gte=0,lte=100"`
}

// CalculatorResponse extends the calculation results with the optional
// health score, present only when lifestyle_score was supplied.
type CalculatorResponse struct {
	metabolic.Results
	HealthScore *int `json:"healthScore,omitempty"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		writeErrorDetails(w, r, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	if !metabolic.ValidActivityLevel(req.ActivityLevel) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown activity_level %q", req.ActivityLevel))
		return
	}
	if !metabolic.ValidGoal(req.Goal) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown goal %q", req.Goal))
		return
	}

	conditions := make([]metabolic.ConditionID, 0, len(req.Conditions))
	for _, c := range req.Conditions {
		conditions = append(conditions, metabolic.ConditionID(c))
	}

	results := metabolic.Calculate(&metabolic.Inputs{
		Gender:         metabolic.Gender(req.Gender),
		Age:            req.Age,
		WeightKg:       req.WeightKg,
		HeightCm:       req.HeightCm,
		BodyFatPercent: req.BodyFatPercent,
		ActivityLevel:  metabolic.ActivityLevel(req.ActivityLevel),
		Goal:           metabolic.Goal(req.Goal),
		Conditions:     conditions,
	})

	resp := CalculatorResponse{Results: *results}
	if req.LifestyleScore != nil {
		score := metabolic.HealthScore(*req.LifestyleScore, results.MetabolicImpactPercent, results.TargetCalories)
		resp.HealthScore = &score
	}

	s.metrics.calculations.Inc()
	logging.FromContext(r.Context()).Info("calculation completed",
		"goal", req.Goal,
		"activity_level", req.ActivityLevel,
		"conditions", len(conditions),
		"target_calories", results.TargetCalories,
	)

	writeJSON(w, r, http.StatusOK, resp)
}

// ConditionEntry is one selectable medical condition for the intake form.
type ConditionEntry struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	ImpactPercent float64 `json:"impact_percent"`
	GenderOnly    string  `json:"gender_only,omitempty"`
}

// handleListConditions returns the fixed condition catalog, sorted by ID so
// the form renders stably.
func (s *Server) handleListConditions(w http.ResponseWriter, r *http.Request) {
	catalog := metabolic.Conditions()
	entries := make([]ConditionEntry, 0, len(catalog))
	for _, c := range catalog {
		entries = append(entries, ConditionEntry{
			ID:            string(c.ID),
			Label:         c.Label,
			ImpactPercent: c.ImpactPercent,
			GenderOnly:    string(c.GenderOnly),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	writeJSON(w, r, http.StatusOK, entries)
}

// validationDetails flattens validator errors into readable field messages.
// Field names come out as JSON names via the tag-name func registered on
// the validator.
func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			details = append(details, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			details = append(details, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return details
}
