package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/http/response"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Counter interface {
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	db       Pinger
	expenses Counter
}

func NewHandler(db Pinger, expenses Counter) *Handler {
	return &Handler{db: db, expenses: expenses}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.check)
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, api.HealthResponse{Status: "unavailable"})
		return
	}

	n, err := h.expenses.Count(ctx)
	if err != nil {
		response.Internal(w, r, "Error counting expenses", err)
		return
	}

	response.JSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Expenses: n})
}
