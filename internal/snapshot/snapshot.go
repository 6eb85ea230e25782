// Package snapshot exports and imports the full state of a raffle as a single
// portable document. The JSON field names below are the ones the original
// mobile app wrote; backups produced by it must keep importing byte-for-byte,
// so they are not negotiable.
package snapshot

import (
	"time"

	"rifa-ledger/internal/raffle"
)

// Payload is one raffle's complete state: the raffle row, every number,
// every sale and every sale item, stamped with the export time.
type Payload struct {
	ExportedAt time.Time  `json:"exportedAt"`
	Raffle     Raffle     `json:"raffle"`
	Numbers    []Number   `json:"numbers"`
	Sales      []Sale     `json:"sales"`
	SaleItems  []SaleItem `json:"saleItems"`
}

type Raffle struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TotalNumbers int       `json:"totalNumbers"`
	NumberPrice  float64   `json:"numberPrice"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Number struct {
	RaffleID    string     `json:"raffleId"`
	NumberValue int        `json:"numberValue"`
	State       string     `json:"state"`
	SoldAt      *time.Time `json:"soldAt,omitempty"`
	BuyerName   string     `json:"buyerName,omitempty"`
	BuyerPhone  string     `json:"buyerPhone,omitempty"`
}

type Sale struct {
	ID         string    `json:"id"`
	RaffleID   string    `json:"raffleId"`
	BuyerName  string    `json:"buyerName"`
	BuyerPhone string    `json:"buyerPhone"`
	TotalPaid  float64   `json:"totalPaid"`
	SoldAt     time.Time `json:"soldAt"`
}

type SaleItem struct {
	SaleID      string `json:"saleId"`
	RaffleID    string `json:"raffleId"`
	NumberValue int    `json:"numberValue"`
}

func toRaffle(r *raffle.Raffle) Raffle {
	return Raffle{
		ID:           r.ID,
		Name:         r.Name,
		TotalNumbers: r.TotalNumbers,
		NumberPrice:  r.NumberPrice,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r Raffle) toDomain() *raffle.Raffle {
	return &raffle.Raffle{
		ID:           r.ID,
		Name:         r.Name,
		TotalNumbers: r.TotalNumbers,
		NumberPrice:  r.NumberPrice,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toNumbers(numbers []*raffle.Number) []Number {
	out := make([]Number, len(numbers))
	for i, n := range numbers {
		out[i] = Number{
			RaffleID:    n.RaffleID,
			NumberValue: n.NumberValue,
			State:       string(n.State),
			SoldAt:      n.SoldAt,
			BuyerName:   n.BuyerName,
			BuyerPhone:  n.BuyerPhone,
		}
	}

	return out
}

func numbersToDomain(numbers []Number) []*raffle.Number {
	out := make([]*raffle.Number, len(numbers))
	for i, n := range numbers {
		out[i] = &raffle.Number{
			RaffleID:    n.RaffleID,
			NumberValue: n.NumberValue,
			State:       raffle.NumberState(n.State),
			SoldAt:      n.SoldAt,
			BuyerName:   n.BuyerName,
			BuyerPhone:  n.BuyerPhone,
		}
	}

	return out
}

func toSales(sales []*raffle.Sale) []Sale {
	out := make([]Sale, len(sales))
	for i, s := range sales {
		out[i] = Sale{
			ID:         s.ID,
			RaffleID:   s.RaffleID,
			BuyerName:  s.BuyerName,
			BuyerPhone: s.BuyerPhone,
			TotalPaid:  s.TotalPaid,
			SoldAt:     s.SoldAt,
		}
	}

	return out
}

func salesToDomain(sales []Sale) []*raffle.Sale {
	out := make([]*raffle.Sale, len(sales))
	for i, s := range sales {
		out[i] = &raffle.Sale{
			ID:         s.ID,
			RaffleID:   s.RaffleID,
			BuyerName:  s.BuyerName,
			BuyerPhone: s.BuyerPhone,
			TotalPaid:  s.TotalPaid,
			SoldAt:     s.SoldAt,
		}
	}

	return out
}

func toSaleItems(items []*raffle.SaleItem) []SaleItem {
	out := make([]SaleItem, len(items))
	for i, it := range items {
		out[i] = SaleItem{
			SaleID:      it.SaleID,
			RaffleID:    it.RaffleID,
			NumberValue: it.NumberValue,
		}
	}

	return out
}

func saleItemsToDomain(items []SaleItem) []*raffle.SaleItem {
	out := make([]*raffle.SaleItem, len(items))
	for i, it := range items {
		out[i] = &raffle.SaleItem{
			SaleID:      it.SaleID,
			RaffleID:    it.RaffleID,
			NumberValue: it.NumberValue,
		}
	}

	return out
}
