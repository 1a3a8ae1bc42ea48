package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		standard_stock INT NOT NULL CHECK (standard_stock >= 0),
		image_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		building INT NOT NULL,
		minibar_stock JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		permissions TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		passkey_hash TEXT NOT NULL,
		role_id UUID NOT NULL REFERENCES roles(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS receipts (
		id UUID PRIMARY KEY,
		room_id TEXT NOT NULL,
		building INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		total_bill NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS receipt_consumed_items (
		receipt_id UUID NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
		position INT NOT NULL,
		product_id UUID NOT NULL,
		product_name TEXT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		price_per_unit NUMERIC(10,2) NOT NULL,
		line_total NUMERIC(10,2) NOT NULL,
		PRIMARY KEY (receipt_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS receipt_replenishment_items (
		receipt_id UUID NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
		position INT NOT NULL,
		product_id UUID NOT NULL,
		product_name TEXT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		PRIMARY KEY (receipt_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_receipts_room ON receipts(room_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_building ON rooms(building)`,
}

// InitSchema creates all tables if they are missing. There is no migration
// tooling; the schema is additive-only.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
