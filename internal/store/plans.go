package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlanType classifies a coaching plan.
type PlanType string

const (
	PlanDiet       PlanType = "diet"
	PlanWorkout    PlanType = "workout"
	PlanSupplement PlanType = "supplement"
)

// ValidPlanType reports whether t is a known plan type.
func ValidPlanType(t PlanType) bool {
	switch t {
	case PlanDiet, PlanWorkout, PlanSupplement:
		return true
	}
	return false
}

// Plan is a coaching plan assigned to a client. Content carries the
// type-specific payload (meals, exercises, or supplement schedule) as JSON.
type Plan struct {
	ID         string          `json:"id"`
	ClientName string          `json:"client_name"`
	Type       PlanType        `json:"plan_type"`
	Title      string          `json:"title"`
	Notes      string          `json:"notes,omitempty"`
	Content    json.RawMessage `json:"content"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PlanStore persists coaching plans.
type PlanStore struct {
	pool *pgxpool.Pool
}

func NewPlanStore(pool *pgxpool.Pool) *PlanStore {
	return &PlanStore{pool: pool}
}

// Create inserts a plan and returns it with ID and timestamp filled in.
func (s *PlanStore) Create(ctx context.Context, plan Plan) (Plan, error) {
	if !ValidPlanType(plan.Type) {
		return Plan{}, fmt.Errorf("invalid plan type %q", plan.Type)
	}
	if len(plan.Content) == 0 {
		plan.Content = json.RawMessage(`{}`)
	}

	var id pgtype.UUID
	err := s.pool.QueryRow(ctx, `
		INSERT INTO plans (client_name, plan_type, title, notes, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		plan.ClientName, plan.Type, plan.Title, plan.Notes, plan.Content,
	).Scan(&id, &plan.CreatedAt)
	if err != nil {
		return Plan{}, fmt.Errorf("insert plan: %w", err)
	}

	plan.ID = uuid.UUID(id.Bytes).String()
	return plan, nil
}

// List returns plans, newest first. Empty clientName or planType means no
// filter on that column.
func (s *PlanStore) List(ctx context.Context, clientName string, planType PlanType) ([]Plan, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, client_name, plan_type, title, notes, content, created_at
		FROM plans
		WHERE ($1 = '' OR client_name = $1)
		  AND ($2 = '' OR plan_type = $2)
		ORDER BY created_at DESC`,
		clientName, string(planType))
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		var id pgtype.UUID
		if err := rows.Scan(&id, &p.ClientName, &p.Type, &p.Title, &p.Notes,
			&p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p.ID = uuid.UUID(id.Bytes).String()
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Delete removes a plan by ID. Returns ErrNotFound when no row matched.
func (s *PlanStore) Delete(ctx context.Context, id string) error {
	var pgID pgtype.UUID
	if err := pgID.Scan(id); err != nil {
		return fmt.Errorf("invalid plan ID: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, pgID)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
