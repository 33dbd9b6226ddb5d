package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitalcoach/backend/internal/importer"
	"github.com/vitalcoach/backend/internal/logging"
)

// Food is a stored food item.
type Food struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Calories       float64   `json:"calories"`
	Protein        float64   `json:"protein"`
	Carbs          *float64  `json:"carbs,omitempty"`
	Fats           *float64  `json:"fats,omitempty"`
	ServingSize    string    `json:"serving_size"`
	IsVegetarian   bool      `json:"is_vegetarian"`
	RawQuantity    *string   `json:"raw_quantity,omitempty"`
	CookedQuantity *string   `json:"cooked_quantity,omitempty"`
	MealTypes      []string  `json:"meal_types"`
	CreatedAt      time.Time `json:"created_at"`
}

// BulkInsertResult reports the outcome of a batch import commit.
type BulkInsertResult struct {
	Inserted int           `json:"inserted"`
	Failed   []FailedBatch `json:"failed,omitempty"`
}

// FailedBatch identifies one rolled-back insert batch.
type FailedBatch struct {
	Names  []string `json:"names"`
	Reason string   `json:"reason"`
}

// FoodStore persists food items.
type FoodStore struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewFoodStore creates a FoodStore. batchSize controls how many items share
// one savepoint during BulkInsert; values below 1 fall back to 10.
func NewFoodStore(pool *pgxpool.Pool, batchSize int) *FoodStore {
	if batchSize < 1 {
		batchSize = 10
	}
	return &FoodStore{pool: pool, batchSize: batchSize}
}

// ExistingNames returns every stored food name, for duplicate detection
// during import validation.
func (s *FoodStore) ExistingNames(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM food_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// BulkInsert writes items in batches inside a single transaction. Each batch
// runs under a savepoint: a failing batch is rolled back and recorded, and
// the remaining batches still go through.
func (s *FoodStore) BulkInsert(ctx context.Context, items []importer.FoodItem) (BulkInsertResult, error) {
	result := BulkInsertResult{}
	if len(items) == 0 {
		return result, nil
	}

	logger := logging.FromContext(ctx)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for batchNum, batch := range chunkItems(items, s.batchSize) {
		savepointName := fmt.Sprintf("sp_%d", batchNum)
		if _, err := tx.Exec(ctx, "SAVEPOINT "+savepointName); err != nil {
			return result, fmt.Errorf("create savepoint: %w", err)
		}

		if err := insertBatch(ctx, tx, batch); err != nil {
			_, _ = tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepointName)
			result.Failed = append(result.Failed, FailedBatch{
				Names:  itemNames(batch),
				Reason: err.Error(),
			})
			logger.Warn("insert batch failed", "batch", batchNum, "items", len(batch), "error", err)
			continue
		}

		_, _ = tx.Exec(ctx, "RELEASE SAVEPOINT "+savepointName)
		result.Inserted += len(batch)
	}

	if err := tx.Commit(ctx); err != nil {
		return BulkInsertResult{}, fmt.Errorf("commit: %w", err)
	}

	logger.Info("bulk insert completed",
		"inserted", result.Inserted,
		"failed_batches", len(result.Failed),
	)
	return result, nil
}

func insertBatch(ctx context.Context, tx pgx.Tx, items []importer.FoodItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO food_items
				(name, calories, protein, carbs, fats, serving_size,
				 is_vegetarian, raw_quantity, cooked_quantity, meal_types)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			item.Name, item.Calories, item.Protein, item.Carbs, item.Fats,
			item.ServingSize, item.IsVegetarian, item.RawQuantity,
			item.CookedQuantity, item.MealTypes,
		)
		if err != nil {
			return fmt.Errorf("insert %q: %w", item.Name, err)
		}
	}
	return nil
}

// chunkItems splits items into consecutive batches of at most size.
func chunkItems(items []importer.FoodItem, size int) [][]importer.FoodItem {
	var chunks [][]importer.FoodItem
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

func itemNames(items []importer.FoodItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

// List returns all stored foods, newest first.
func (s *FoodStore) List(ctx context.Context) ([]Food, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, calories, protein, carbs, fats, serving_size,
		       is_vegetarian, raw_quantity, cooked_quantity, meal_types, created_at
		FROM food_items
		ORDER BY created_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("query foods: %w", err)
	}
	defer rows.Close()

	var foods []Food
	for rows.Next() {
		var f Food
		var id pgtype.UUID
		if err := rows.Scan(&id, &f.Name, &f.Calories, &f.Protein, &f.Carbs,
			&f.Fats, &f.ServingSize, &f.IsVegetarian, &f.RawQuantity,
			&f.CookedQuantity, &f.MealTypes, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		f.ID = uuid.UUID(id.Bytes).String()
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

// Delete removes a food item by ID. Returns ErrNotFound when no row matched.
func (s *FoodStore) Delete(ctx context.Context, id string) error {
	var pgID pgtype.UUID
	if err := pgID.Scan(id); err != nil {
		return fmt.Errorf("invalid food ID: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM food_items WHERE id = $1`, pgID)
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
