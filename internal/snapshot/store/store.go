package store

import (
	"context"
	"database/sql"
	"fmt"

	"rifa-ledger/internal/raffle"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetRaffle(ctx context.Context, id string) (*raffle.Raffle, error) {
	query := `
		SELECT id, name, total_numbers, number_price, created_at, updated_at
		FROM raffles WHERE id = $1
	`

	var r raffle.Raffle

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.Name, &r.TotalNumbers, &r.NumberPrice, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, raffle.ErrNotFound
		}

		return nil, fmt.Errorf("getting raffle: %w", err)
	}

	return &r, nil
}

func (s *Store) ListNumbers(ctx context.Context, raffleID string) ([]*raffle.Number, error) {
	query := `
		SELECT raffle_id, number_value, state, sold_at, buyer_name, buyer_phone
		FROM raffle_numbers
		WHERE raffle_id = $1
		ORDER BY number_value ASC
	`

	rows, err := s.db.QueryContext(ctx, query, raffleID)
	if err != nil {
		return nil, fmt.Errorf("listing numbers: %w", err)
	}
	defer rows.Close()

	var numbers []*raffle.Number

	for rows.Next() {
		var n raffle.Number

		var stateStr string

		var buyerName, buyerPhone sql.NullString

		if err := rows.Scan(&n.RaffleID, &n.NumberValue, &stateStr, &n.SoldAt, &buyerName, &buyerPhone); err != nil {
			return nil, fmt.Errorf("scanning number: %w", err)
		}

		n.State = raffle.NumberState(stateStr)
		n.BuyerName = buyerName.String
		n.BuyerPhone = buyerPhone.String

		numbers = append(numbers, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating number rows: %w", err)
	}

	return numbers, nil
}

func (s *Store) ListSales(ctx context.Context, raffleID string) ([]*raffle.Sale, error) {
	query := `
		SELECT id, raffle_id, buyer_name, buyer_phone, total_paid, sold_at
		FROM sales
		WHERE raffle_id = $1
		ORDER BY sold_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, raffleID)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var sales []*raffle.Sale

	for rows.Next() {
		var sale raffle.Sale

		if err := rows.Scan(&sale.ID, &sale.RaffleID, &sale.BuyerName, &sale.BuyerPhone, &sale.TotalPaid, &sale.SoldAt); err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}

		sales = append(sales, &sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale rows: %w", err)
	}

	return sales, nil
}

func (s *Store) ListSaleItems(ctx context.Context, raffleID string) ([]*raffle.SaleItem, error) {
	query := `
		SELECT sale_id, raffle_id, number_value
		FROM sale_items
		WHERE raffle_id = $1
		ORDER BY number_value ASC
	`

	rows, err := s.db.QueryContext(ctx, query, raffleID)
	if err != nil {
		return nil, fmt.Errorf("listing sale items: %w", err)
	}
	defer rows.Close()

	var items []*raffle.SaleItem

	for rows.Next() {
		var it raffle.SaleItem

		if err := rows.Scan(&it.SaleID, &it.RaffleID, &it.NumberValue); err != nil {
			return nil, fmt.Errorf("scanning sale item: %w", err)
		}

		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sale item rows: %w", err)
	}

	return items, nil
}

// ReplaceAll deletes everything and re-inserts the snapshot rows verbatim in
// one transaction, so a failed import leaves the previous state untouched.
func (s *Store) ReplaceAll(ctx context.Context, r *raffle.Raffle, numbers []*raffle.Number, sales []*raffle.Sale, items []*raffle.SaleItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"sale_items", "sales", "raffle_numbers", "raffles"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
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

	insertNumber := `
		INSERT INTO raffle_numbers (raffle_id, number_value, state, sold_at, buyer_name, buyer_phone)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, n := range numbers {
		if _, err := tx.ExecContext(ctx, insertNumber,
			n.RaffleID, n.NumberValue, n.State, n.SoldAt, nullable(n.BuyerName), nullable(n.BuyerPhone),
		); err != nil {
			return fmt.Errorf("inserting number %d: %w", n.NumberValue, err)
		}
	}

	insertSale := `
		INSERT INTO sales (id, raffle_id, buyer_name, buyer_phone, total_paid, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, sale := range sales {
		if _, err := tx.ExecContext(ctx, insertSale,
			sale.ID, sale.RaffleID, sale.BuyerName, sale.BuyerPhone, sale.TotalPaid, sale.SoldAt,
		); err != nil {
			return fmt.Errorf("inserting sale %s: %w", sale.ID, err)
		}
	}

	insertItem := `
		INSERT INTO sale_items (sale_id, raffle_id, number_value)
		VALUES ($1, $2, $3)
	`

	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertItem, it.SaleID, it.RaffleID, it.NumberValue); err != nil {
			return fmt.Errorf("inserting sale item %d: %w", it.NumberValue, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
