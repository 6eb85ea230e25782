package raffle

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=raffle
type Repository interface {
	// ReplaceRaffle discards every raffle, number, sale and sale item in the
	// store and inserts the given raffle with its full 1..TotalNumbers pool,
	// all available, in one transaction.
	ReplaceRaffle(ctx context.Context, r *Raffle) error

	// CurrentRaffle returns the active raffle, or (nil, nil) when none exists.
	CurrentRaffle(ctx context.Context) (*Raffle, error)

	// GetRaffle returns the raffle with the given id or ErrNotFound.
	GetRaffle(ctx context.Context, id string) (*Raffle, error)

	// ListNumbers returns the raffle's numbers ordered by value, optionally
	// filtered by state.
	ListNumbers(ctx context.Context, raffleID string, state *NumberState) ([]*Number, error)

	// CountNumbers returns the total and sold ticket counts for the raffle.
	CountNumbers(ctx context.Context, raffleID string) (total, sold int, err error)

	BeginSale(ctx context.Context) (SaleTx, error)
}

// SaleTx is one atomic sale against the store. The duplicate check and every
// write happen inside the same database transaction, so a number observed
// available by SoldNumbers stays available until Commit.
type SaleTx interface {
	// SoldNumbers locks the requested number rows and returns the subset that
	// is already sold, ascending.
	SoldNumbers(ctx context.Context, raffleID string, numbers []int) ([]int, error)

	// InsertSale inserts the sale row and one sale item per number.
	InsertSale(ctx context.Context, sale *Sale, numbers []int) error

	// MarkSold flips the given numbers to sold with the sale's timestamp and
	// buyer fields.
	MarkSold(ctx context.Context, sale *Sale, numbers []int) error

	// TouchRaffle bumps the raffle's updated_at to the sale timestamp.
	TouchRaffle(ctx context.Context, raffleID string, at time.Time) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	TotalNumbers int
	NumberPrice  float64
}

// Create replaces whatever raffle exists with a new one and its number pool.
// This is destructive: any previous raffle, numbers and sales are gone unless
// the caller exported a snapshot first.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Raffle, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, Validationf("raffle name must not be empty")
	}

	if params.TotalNumbers <= 0 {
		return nil, Validationf("total numbers must be positive, got %d", params.TotalNumbers)
	}

	if params.NumberPrice <= 0 {
		return nil, Validationf("number price must be positive, got %g", params.NumberPrice)
	}

	now := time.Now().UTC()
	r := &Raffle{
		ID:           uuid.NewString(),
		Name:         name,
		TotalNumbers: params.TotalNumbers,
		NumberPrice:  params.NumberPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.ReplaceRaffle(ctx, r); err != nil {
		return nil, fmt.Errorf("replacing raffle: %w", err)
	}

	return r, nil
}

// Current returns the active raffle, or (nil, nil) when none has been
// created yet.
func (s *Service) Current(ctx context.Context) (*Raffle, error) {
	return s.repo.CurrentRaffle(ctx)
}

// Sell commits one sale of the given numbers to a buyer. The input is
// de-duplicated and sorted ascending so conflict errors list numbers
// deterministically. Either every number flips to sold and the sale with its
// items exists, or the store is unchanged.
func (s *Service) Sell(ctx context.Context, r *Raffle, numbers []int, buyerName, buyerPhone string) (*Sale, error) {
	buyerName = strings.TrimSpace(buyerName)
	if buyerName == "" {
		return nil, Validationf("buyer name must not be empty")
	}

	buyerPhone = strings.TrimSpace(buyerPhone)
	if buyerPhone == "" {
		return nil, Validationf("buyer phone must not be empty")
	}

	numbers = NormalizeNumbers(numbers)
	if len(numbers) == 0 {
		return nil, Validationf("select at least one number")
	}

	tx, err := s.repo.BeginSale(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sale: %w", err)
	}
	defer tx.Rollback()

	sold, err := tx.SoldNumbers(ctx, r.ID, numbers)
	if err != nil {
		return nil, fmt.Errorf("checking sold numbers: %w", err)
	}

	if len(sold) > 0 {
		return nil, &ConflictError{Numbers: sold}
	}

	sale := &Sale{
		ID:         uuid.NewString(),
		RaffleID:   r.ID,
		BuyerName:  buyerName,
		BuyerPhone: buyerPhone,
		TotalPaid:  Total(len(numbers), r.NumberPrice),
		SoldAt:     time.Now().UTC(),
	}

	if err := tx.InsertSale(ctx, sale, numbers); err != nil {
		return nil, fmt.Errorf("inserting sale: %w", err)
	}

	if err := tx.MarkSold(ctx, sale, numbers); err != nil {
		return nil, fmt.Errorf("marking numbers sold: %w", err)
	}

	if err := tx.TouchRaffle(ctx, r.ID, sale.SoldAt); err != nil {
		return nil, fmt.Errorf("touching raffle: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}

	return sale, nil
}

// Metrics derives the dashboard summary for a raffle. Pure read.
func (s *Service) Metrics(ctx context.Context, raffleID string, numberPrice float64) (*Metrics, error) {
	total, sold, err := s.repo.CountNumbers(ctx, raffleID)
	if err != nil {
		return nil, fmt.Errorf("counting numbers: %w", err)
	}

	m := &Metrics{
		Total:     total,
		Sold:      sold,
		Available: total - sold,
		Collected: Total(sold, numberPrice),
	}
	if total > 0 {
		m.Progress = 100 * float64(sold) / float64(total)
	}

	return m, nil
}

// Numbers lists the raffle's pool ordered by value. A nil state returns every
// number.
func (s *Service) Numbers(ctx context.Context, raffleID string, state *NumberState) ([]*Number, error) {
	return s.repo.ListNumbers(ctx, raffleID, state)
}

// NormalizeNumbers de-duplicates a selection and sorts it ascending. Sell
// applies it before touching the store; callers rendering receipts use it so
// what they show matches what was sold.
func NormalizeNumbers(numbers []int) []int {
	seen := make(map[int]struct{}, len(numbers))
	out := make([]int, 0, len(numbers))

	for _, n := range numbers {
		if _, ok := seen[n]; ok {
			continue
		}

		seen[n] = struct{}{}

		out = append(out, n)
	}

	sort.Ints(out)

	return out
}
