package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the four ledger relations if they do not exist yet.
// The ledger is single-tenant and the schema small enough that bootstrap at
// startup beats a migration tool.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS raffles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		total_numbers INTEGER NOT NULL,
		number_price DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS raffle_numbers (
		raffle_id TEXT NOT NULL,
		number_value INTEGER NOT NULL,
		state TEXT NOT NULL,
		sold_at TIMESTAMPTZ,
		buyer_name TEXT,
		buyer_phone TEXT,
		PRIMARY KEY (raffle_id, number_value)
	);

	CREATE TABLE IF NOT EXISTS sales (
		id TEXT PRIMARY KEY,
		raffle_id TEXT NOT NULL,
		buyer_name TEXT NOT NULL,
		buyer_phone TEXT NOT NULL,
		total_paid DOUBLE PRECISION NOT NULL,
		sold_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sale_items (
		sale_id TEXT NOT NULL,
		raffle_id TEXT NOT NULL,
		number_value INTEGER NOT NULL,
		PRIMARY KEY (sale_id, number_value)
	);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
