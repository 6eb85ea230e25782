package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"rifa-ledger/internal/raffle"
	"rifa-ledger/internal/snapshot"
)

type Handler struct {
	snapshots *snapshot.Service
	raffles   *raffle.Service
}

func NewHandler(snapshots *snapshot.Service, raffles *raffle.Service) *Handler {
	return &Handler{snapshots: snapshots, raffles: raffles}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.export)
	r.Post("/import", h.importSnapshot)
}

// export streams the current raffle's snapshot as a downloadable backup file,
// named the way the original app named its backups.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	current, err := h.raffles.Current(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if current == nil {
		http.Error(w, "no active raffle", http.StatusNotFound)
		return
	}

	payload, err := h.snapshots.Export(r.Context(), current.ID)
	if err != nil {
		if errors.Is(err, raffle.ErrNotFound) {
			http.Error(w, "raffle not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(payload.ExportedAt.Format(time.RFC3339))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"rifa-backup-%s.json\"", stamp))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(payload); err != nil {
		slog.Error("failed to encode snapshot", "error", err)
	}
}

// importSnapshot replaces ALL local state with the posted snapshot. Not a
// merge: whatever raffle existed before is gone afterwards.
func (h *Handler) importSnapshot(w http.ResponseWriter, r *http.Request) {
	var payload snapshot.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.snapshots.Import(r.Context(), &payload); err != nil {
		var validation *raffle.ValidationError
		if errors.As(err, &validation) {
			http.Error(w, validation.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
