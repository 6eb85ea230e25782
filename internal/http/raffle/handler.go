package raffle

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rifa-ledger/internal/raffle"
	"rifa-ledger/internal/selection"
)

type Handler struct {
	svc *raffle.Service
}

func NewHandler(svc *raffle.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.current)
	r.Get("/metrics", h.metrics)
	r.Get("/numbers", h.numbers)
	r.Post("/sales", h.sell)
}

type createRaffleRequest struct {
	Name         string  `json:"name"`
	TotalNumbers int     `json:"totalNumbers"`
	NumberPrice  float64 `json:"numberPrice"`
}

// create replaces any existing raffle with a fresh one. Destructive: callers
// wanting the old state back must have exported it first.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRaffleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.Create(r.Context(), raffle.CreateParams{
		Name:         req.Name,
		TotalNumbers: req.TotalNumbers,
		NumberPrice:  req.NumberPrice,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toRaffleResponse(created)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	current, err := h.svc.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if current == nil {
		http.Error(w, "no active raffle", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toRaffleResponse(current)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// metrics returns the dashboard summary. With no active raffle it answers a
// zeroed summary rather than an error, so the dashboard can always render.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	current, err := h.svc.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	m := &raffle.Metrics{}

	if current != nil {
		m, err = h.svc.Metrics(r.Context(), current.ID, current.NumberPrice)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toMetricsResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) numbers(w http.ResponseWriter, r *http.Request) {
	current, err := h.svc.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if current == nil {
		http.Error(w, "no active raffle", http.StatusNotFound)
		return
	}

	var state *raffle.NumberState

	if s := r.URL.Query().Get("state"); s != "" {
		ns := raffle.NumberState(s)
		if ns != raffle.StateAvailable && ns != raffle.StateSold {
			http.Error(w, "state must be disponible or vendido", http.StatusBadRequest)
			return
		}

		state = &ns
	}

	numbers, err := h.svc.Numbers(r.Context(), current.ID, state)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toNumberResponseList(numbers)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type sellRequest struct {
	BuyerName  string `json:"buyerName"`
	BuyerPhone string `json:"buyerPhone"`

	// Three input modes, combined: a single number, a comma-separated list
	// and an inclusive "start-end" range. All optional, all text.
	Number  string `json:"number,omitempty"`
	Numbers string `json:"numbers,omitempty"`
	Range   string `json:"range,omitempty"`
}

func (h *Handler) sell(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	current, err := h.svc.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if current == nil {
		http.Error(w, "no active raffle", http.StatusNotFound)
		return
	}

	numbers, err := selection.Combine(req.Number, req.Numbers, req.Range, current.TotalNumbers)
	if err != nil {
		writeError(w, err)
		return
	}

	sale, err := h.svc.Sell(r.Context(), current, numbers, req.BuyerName, req.BuyerPhone)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSaleResponse(sale)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var validation *raffle.ValidationError
	if errors.As(err, &validation) {
		http.Error(w, validation.Error(), http.StatusBadRequest)
		return
	}

	var conflict *raffle.ConflictError
	if errors.As(err, &conflict) {
		http.Error(w, conflict.Error(), http.StatusConflict)
		return
	}

	if errors.Is(err, raffle.ErrNotFound) {
		http.Error(w, "raffle not found", http.StatusNotFound)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}
