package raffle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NumberState represents whether a ticket number has been sold.
// The values are the wire strings the original mobile app wrote into its
// backup files; they must not change or old snapshots stop round-tripping.
type NumberState string

const (
	StateAvailable NumberState = "disponible"
	StateSold      NumberState = "vendido"
)

// Raffle is the single active raffle. At most one exists in the store at any
// time; creating a new one replaces all prior state.
type Raffle struct {
	ID           string
	Name         string
	TotalNumbers int
	NumberPrice  float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Number is one ticket in the raffle's pool, identified by (raffle, value).
// Sale metadata is set only while State is StateSold.
type Number struct {
	RaffleID    string
	NumberValue int
	State       NumberState
	SoldAt      *time.Time
	BuyerName   string
	BuyerPhone  string
}

// Sale is one buyer transaction covering one or more numbers. Immutable once
// committed.
type Sale struct {
	ID         string
	RaffleID   string
	BuyerName  string
	BuyerPhone string
	TotalPaid  float64
	SoldAt     time.Time
}

// SaleItem links one sold number to the sale that covered it.
type SaleItem struct {
	SaleID      string
	RaffleID    string
	NumberValue int
}

// Metrics is the read-side dashboard summary derived from the number pool.
type Metrics struct {
	Total     int
	Sold      int
	Available int
	Progress  float64 // percentage, 0..100
	Collected float64
}

// ErrNotFound is returned when an operation targets a raffle id that does not
// exist in the store.
var ErrNotFound = errors.New("raffle not found")

// ValidationError reports caller input that was rejected before any mutation
// was attempted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validationf builds a *ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError is returned when a sale requests numbers that are already
// sold. Numbers is sorted ascending and names every offending number.
type ConflictError struct {
	Numbers []int
}

func (e *ConflictError) Error() string {
	return "numbers already sold: " + FormatNumbers(e.Numbers)
}

// FormatNumbers renders a number list the way sale errors and receipts show
// it: comma-joined, in the given order.
func FormatNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}

	return strings.Join(parts, ", ")
}
