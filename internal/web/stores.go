package web

import (
	"context"

	"github.com/vitalcoach/backend/internal/importer"
	"github.com/vitalcoach/backend/internal/store"
)

// Handlers depend on these narrow interfaces rather than the concrete pgx
// stores so they can be exercised in tests without a database.

// FoodStore is the food persistence surface used by the import and food
// handlers.
type FoodStore interface {
	ExistingNames(ctx context.Context) ([]string, error)
	BulkInsert(ctx context.Context, items []importer.FoodItem) (store.BulkInsertResult, error)
	List(ctx context.Context) ([]store.Food, error)
	Delete(ctx context.Context, id string) error
}

// PlanStore is the coaching-plan persistence surface.
type PlanStore interface {
	Create(ctx context.Context, plan store.Plan) (store.Plan, error)
	List(ctx context.Context, clientName string, planType store.PlanType) ([]store.Plan, error)
	Delete(ctx context.Context, id string) error
}

// CheckInStore is the client check-in persistence surface.
type CheckInStore interface {
	Create(ctx context.Context, ci store.CheckIn) (store.CheckIn, error)
	List(ctx context.Context, clientName string) ([]store.CheckIn, error)
}
