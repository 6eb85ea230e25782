package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rifa-ledger/internal/raffle"
)

type Repository interface {
	GetRaffle(ctx context.Context, id string) (*raffle.Raffle, error)

	// List methods return rows in the snapshot's canonical order: numbers and
	// sale items by number value, sales by sale timestamp.
	ListNumbers(ctx context.Context, raffleID string) ([]*raffle.Number, error)
	ListSales(ctx context.Context, raffleID string) ([]*raffle.Sale, error)
	ListSaleItems(ctx context.Context, raffleID string) ([]*raffle.SaleItem, error)

	// ReplaceAll wipes every relation and inserts the given rows verbatim in
	// one transaction.
	ReplaceAll(ctx context.Context, r *raffle.Raffle, numbers []*raffle.Number, sales []*raffle.Sale, items []*raffle.SaleItem) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Export assembles the raffle's full state into a payload stamped with the
// current time. Read-only; returns raffle.ErrNotFound for an unknown id.
func (s *Service) Export(ctx context.Context, raffleID string) (*Payload, error) {
	r, err := s.repo.GetRaffle(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("reading raffle: %w", err)
	}

	numbers, err := s.repo.ListNumbers(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("reading numbers: %w", err)
	}

	sales, err := s.repo.ListSales(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("reading sales: %w", err)
	}

	items, err := s.repo.ListSaleItems(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("reading sale items: %w", err)
	}

	return &Payload{
		ExportedAt: time.Now().UTC(),
		Raffle:     toRaffle(r),
		Numbers:    toNumbers(numbers),
		Sales:      toSales(sales),
		SaleItems:  toSaleItems(items),
	}, nil
}

// Import replaces ALL local state with the payload's rows, preserving the
// original identities and timestamps. This is a full replacement, never a
// merge, and it is destructive by design. Beyond requiring a raffle with a
// non-empty id, the payload's cross-row consistency is trusted as-is — the
// original app imported hand-editable files without re-validating them, and
// snapshots it produced must keep importing unchanged.
func (s *Service) Import(ctx context.Context, p *Payload) error {
	if p == nil || p.Raffle.ID == "" {
		return raffle.Validationf("snapshot has no raffle")
	}

	err := s.repo.ReplaceAll(ctx,
		p.Raffle.toDomain(),
		numbersToDomain(p.Numbers),
		salesToDomain(p.Sales),
		saleItemsToDomain(p.SaleItems),
	)
	if err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}

	return nil
}

// WriteFile writes the payload as a pretty-printed backup file named
// rifa-backup-<timestamp>.json inside dir, creating dir if needed. Returns
// the written path.
func (s *Service) WriteFile(p *Payload, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	// Colons and dots make poor filename characters; same substitution the
	// original app applied to its ISO timestamps.
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(p.ExportedAt.Format(time.RFC3339))
	path := filepath.Join(dir, fmt.Sprintf("rifa-backup-%s.json", stamp))

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing backup file: %w", err)
	}

	return path, nil
}

// ReadFile decodes a backup file written by WriteFile or by the original app.
func ReadFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup file: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return &p, nil
}
