package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup. Statements are idempotent so repeated boots
// against the same database are safe.
const schema = `
CREATE TABLE IF NOT EXISTS food_items (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name            TEXT NOT NULL,
	calories        DOUBLE PRECISION NOT NULL,
	protein         DOUBLE PRECISION NOT NULL,
	carbs           DOUBLE PRECISION,
	fats            DOUBLE PRECISION,
	serving_size    TEXT NOT NULL,
	is_vegetarian   BOOLEAN NOT NULL DEFAULT FALSE,
	raw_quantity    TEXT,
	cooked_quantity TEXT,
	meal_types      TEXT[] NOT NULL DEFAULT '{}',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS food_items_name_lower_idx
	ON food_items (lower(name));

CREATE TABLE IF NOT EXISTS plans (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	client_name TEXT NOT NULL,
	plan_type   TEXT NOT NULL,
	title       TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT '',
	content     JSONB NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS plans_client_idx ON plans (client_name, plan_type);

CREATE TABLE IF NOT EXISTS check_ins (
	id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	client_name      TEXT NOT NULL,
	check_in_date    DATE NOT NULL,
	weight_kg        DOUBLE PRECISION NOT NULL,
	body_fat_percent DOUBLE PRECISION,
	notes            TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS check_ins_client_date_idx
	ON check_ins (client_name, check_in_date DESC);
`

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
