package raffle

import (
	"time"

	"rifa-ledger/internal/raffle"
)

type raffleResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TotalNumbers int       `json:"totalNumbers"`
	NumberPrice  float64   `json:"numberPrice"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toRaffleResponse(r *raffle.Raffle) raffleResponse {
	return raffleResponse{
		ID:           r.ID,
		Name:         r.Name,
		TotalNumbers: r.TotalNumbers,
		NumberPrice:  r.NumberPrice,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type metricsResponse struct {
	Total     int     `json:"total"`
	Sold      int     `json:"sold"`
	Available int     `json:"available"`
	Progress  float64 `json:"progress"`
	Collected float64 `json:"collected"`
}

func toMetricsResponse(m *raffle.Metrics) metricsResponse {
	return metricsResponse{
		Total:     m.Total,
		Sold:      m.Sold,
		Available: m.Available,
		Progress:  m.Progress,
		Collected: m.Collected,
	}
}

type numberResponse struct {
	RaffleID    string     `json:"raffleId"`
	NumberValue int        `json:"numberValue"`
	State       string     `json:"state"`
	SoldAt      *time.Time `json:"soldAt,omitempty"`
	BuyerName   string     `json:"buyerName,omitempty"`
	BuyerPhone  string     `json:"buyerPhone,omitempty"`
}

func toNumberResponseList(numbers []*raffle.Number) []numberResponse {
	resp := make([]numberResponse, len(numbers))
	for i, n := range numbers {
		resp[i] = numberResponse{
			RaffleID:    n.RaffleID,
			NumberValue: n.NumberValue,
			State:       string(n.State),
			SoldAt:      n.SoldAt,
			BuyerName:   n.BuyerName,
			BuyerPhone:  n.BuyerPhone,
		}
	}

	return resp
}

type saleResponse struct {
	ID         string    `json:"id"`
	RaffleID   string    `json:"raffleId"`
	BuyerName  string    `json:"buyerName"`
	BuyerPhone string    `json:"buyerPhone"`
	TotalPaid  float64   `json:"totalPaid"`
	SoldAt     time.Time `json:"soldAt"`
}

func toSaleResponse(s *raffle.Sale) saleResponse {
	return saleResponse{
		ID:         s.ID,
		RaffleID:   s.RaffleID,
		BuyerName:  s.BuyerName,
		BuyerPhone: s.BuyerPhone,
		TotalPaid:  s.TotalPaid,
		SoldAt:     s.SoldAt,
	}
}
