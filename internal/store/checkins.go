package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CheckIn is a client progress record: weight and optional body fat on a
// given date.
type CheckIn struct {
	ID             string    `json:"id"`
	ClientName     string    `json:"client_name"`
	Date           time.Time `json:"date"`
	WeightKg       float64   `json:"weight_kg"`
	BodyFatPercent *float64  `json:"body_fat_percent,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CheckInStore persists client check-ins.
type CheckInStore struct {
	pool *pgxpool.Pool
}

func NewCheckInStore(pool *pgxpool.Pool) *CheckInStore {
	return &CheckInStore{pool: pool}
}

// Create inserts a check-in and returns it with ID and timestamp filled in.
func (s *CheckInStore) Create(ctx context.Context, ci CheckIn) (CheckIn, error) {
	var id pgtype.UUID
	err := s.pool.QueryRow(ctx, `
		INSERT INTO check_ins (client_name, check_in_date, weight_kg, body_fat_percent, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		ci.ClientName, ci.Date, ci.WeightKg, ci.BodyFatPercent, ci.Notes,
	).Scan(&id, &ci.CreatedAt)
	if err != nil {
		return CheckIn{}, fmt.Errorf("insert check-in: %w", err)
	}

	ci.ID = uuid.UUID(id.Bytes).String()
	return ci, nil
}

// List returns check-ins newest first. Empty clientName means all clients.
func (s *CheckInStore) List(ctx context.Context, clientName string) ([]CheckIn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, client_name, check_in_date, weight_kg, body_fat_percent, notes, created_at
		FROM check_ins
		WHERE ($1 = '' OR client_name = $1)
		ORDER BY check_in_date DESC, created_at DESC`,
		clientName)
	if err != nil {
		return nil, fmt.Errorf("query check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []CheckIn
	for rows.Next() {
		var ci CheckIn
		var id pgtype.UUID
		if err := rows.Scan(&id, &ci.ClientName, &ci.Date, &ci.WeightKg,
			&ci.BodyFatPercent, &ci.Notes, &ci.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		ci.ID = uuid.UUID(id.Bytes).String()
		checkIns = append(checkIns, ci)
	}
	return checkIns, rows.Err()
}
