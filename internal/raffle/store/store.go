package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rifa-ledger/internal/raffle"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectRaffleColumns = `id, name, total_numbers, number_price, created_at, updated_at`

func scanRaffle(s scanner) (*raffle.Raffle, error) {
	var r raffle.Raffle

	if err := s.Scan(
		&r.ID, &r.Name, &r.TotalNumbers, &r.NumberPrice, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &r, nil
}

// ReplaceRaffle wipes all four relations and inserts the new raffle with its
// complete number pool, every number available. One transaction: either the
// whole new state is visible or the old state is untouched.
func (s *Store) ReplaceRaffle(ctx context.Context, r *raffle.Raffle) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteAll(ctx, tx); err != nil {
		return err
	}

	insertRaffle := `
		INSERT INTO raffles (id, name, total_numbers, number_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, insertRaffle,
		r.ID, r.Name, r.TotalNumbers, r.NumberPrice, r.CreatedAt, r.UpdatedAt,
	); err != nil {
		return fmt.Errorf("inserting raffle: %w", err)
	}

	insertNumbers := `
		INSERT INTO raffle_numbers (raffle_id, number_value, state)
		SELECT $1, n, $2 FROM generate_series(1, $3) AS n
	`
	if _, err := tx.ExecContext(ctx, insertNumbers,
		r.ID, raffle.StateAvailable, r.TotalNumbers,
	); err != nil {
		return fmt.Errorf("inserting number pool: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func deleteAll(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"sale_items", "sales", "raffle_numbers", "raffles"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	return nil
}

func (s *Store) CurrentRaffle(ctx context.Context) (*raffle.Raffle, error) {
	query := `SELECT ` + selectRaffleColumns + ` FROM raffles ORDER BY updated_at DESC LIMIT 1`

	r, err := scanRaffle(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting current raffle: %w", err)
	}

	return r, nil
}

func (s *Store) GetRaffle(ctx context.Context, id string) (*raffle.Raffle, error) {
	query := `SELECT ` + selectRaffleColumns + ` FROM raffles WHERE id = $1`

	r, err := scanRaffle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, raffle.ErrNotFound
		}

		return nil, fmt.Errorf("getting raffle: %w", err)
	}

	return r, nil
}

func (s *Store) ListNumbers(ctx context.Context, raffleID string, state *raffle.NumberState) ([]*raffle.Number, error) {
	query := `
		SELECT raffle_id, number_value, state, sold_at, buyer_name, buyer_phone
		FROM raffle_numbers
		WHERE raffle_id = $1
	`

	args := []any{raffleID}
	if state != nil {
		query += " AND state = $2"

		args = append(args, *state)
	}

	query += " ORDER BY number_value ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing numbers: %w", err)
	}
	defer rows.Close()

	var numbers []*raffle.Number

	for rows.Next() {
		n, err := scanNumber(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning number: %w", err)
		}

		numbers = append(numbers, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating number rows: %w", err)
	}

	return numbers, nil
}

func scanNumber(s scanner) (*raffle.Number, error) {
	var n raffle.Number

	var stateStr string

	var buyerName, buyerPhone sql.NullString

	if err := s.Scan(
		&n.RaffleID, &n.NumberValue, &stateStr, &n.SoldAt, &buyerName, &buyerPhone,
	); err != nil {
		return nil, err
	}

	n.State = raffle.NumberState(stateStr)
	n.BuyerName = buyerName.String
	n.BuyerPhone = buyerPhone.String

	return &n, nil
}

func (s *Store) CountNumbers(ctx context.Context, raffleID string) (int, int, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE state = $2)
		FROM raffle_numbers
		WHERE raffle_id = $1
	`

	var total, sold int
	if err := s.db.QueryRowContext(ctx, query, raffleID, raffle.StateSold).Scan(&total, &sold); err != nil {
		return 0, 0, fmt.Errorf("counting numbers: %w", err)
	}

	return total, sold, nil
}

type saleTx struct {
	tx *sql.Tx
}

func (s *Store) BeginSale(ctx context.Context) (raffle.SaleTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning sale tx: %w", err)
	}

	return &saleTx{tx: tx}, nil
}

func (stx *saleTx) Commit() error   { return stx.tx.Commit() }
func (stx *saleTx) Rollback() error { return stx.tx.Rollback() }

// SoldNumbers locks every requested number row and returns the ones already
// sold. The FOR UPDATE is what closes the check/update race: a concurrent sale
// of any of these numbers blocks here until this transaction finishes, then
// re-reads the committed sold state.
func (stx *saleTx) SoldNumbers(ctx context.Context, raffleID string, numbers []int) ([]int, error) {
	query := `
		SELECT number_value, state
		FROM raffle_numbers
		WHERE raffle_id = $1 AND number_value = ANY($2)
		ORDER BY number_value ASC
		FOR UPDATE
	`

	rows, err := stx.tx.QueryContext(ctx, query, raffleID, toInt32(numbers))
	if err != nil {
		return nil, fmt.Errorf("locking number rows: %w", err)
	}
	defer rows.Close()

	var sold []int

	for rows.Next() {
		var value int

		var state string

		if err := rows.Scan(&value, &state); err != nil {
			return nil, fmt.Errorf("scanning number state: %w", err)
		}

		if raffle.NumberState(state) == raffle.StateSold {
			sold = append(sold, value)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating number states: %w", err)
	}

	return sold, nil
}

func (stx *saleTx) InsertSale(ctx context.Context, sale *raffle.Sale, numbers []int) error {
	insertSale := `
		INSERT INTO sales (id, raffle_id, buyer_name, buyer_phone, total_paid, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := stx.tx.ExecContext(ctx, insertSale,
		sale.ID, sale.RaffleID, sale.BuyerName, sale.BuyerPhone, sale.TotalPaid, sale.SoldAt,
	); err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}

	insertItem := `
		INSERT INTO sale_items (sale_id, raffle_id, number_value)
		VALUES ($1, $2, $3)
	`

	for _, value := range numbers {
		if _, err := stx.tx.ExecContext(ctx, insertItem, sale.ID, sale.RaffleID, value); err != nil {
			return fmt.Errorf("inserting sale item %d: %w", value, err)
		}
	}

	return nil
}

func (stx *saleTx) MarkSold(ctx context.Context, sale *raffle.Sale, numbers []int) error {
	query := `
		UPDATE raffle_numbers
		SET state = $1, sold_at = $2, buyer_name = $3, buyer_phone = $4
		WHERE raffle_id = $5 AND number_value = ANY($6) AND state = $7
	`

	res, err := stx.tx.ExecContext(ctx, query,
		raffle.StateSold, sale.SoldAt, sale.BuyerName, sale.BuyerPhone,
		sale.RaffleID, toInt32(numbers), raffle.StateAvailable,
	)
	if err != nil {
		return fmt.Errorf("updating numbers: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	// Every requested number must have existed and been available; anything
	// else means the caller passed out-of-range values or the sold check was
	// bypassed, and the transaction must not commit.
	if affected != int64(len(numbers)) {
		return fmt.Errorf("expected to mark %d numbers sold, marked %d", len(numbers), affected)
	}

	return nil
}

func (stx *saleTx) TouchRaffle(ctx context.Context, raffleID string, at time.Time) error {
	query := `UPDATE raffles SET updated_at = $1 WHERE id = $2`

	if _, err := stx.tx.ExecContext(ctx, query, at, raffleID); err != nil {
		return fmt.Errorf("updating raffle timestamp: %w", err)
	}

	return nil
}

func toInt32(numbers []int) []int32 {
	out := make([]int32, len(numbers))
	for i, n := range numbers {
		out[i] = int32(n)
	}

	return out
}
