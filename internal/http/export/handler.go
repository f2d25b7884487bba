package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/http/response"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid from date")
		return
	}

	to, err := queryDate(r, "to")
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid to date")
		return
	}

	if from != nil && to != nil && to.Before(*from) {
		response.Message(w, http.StatusBadRequest, "from must not be after to")
		return
	}

	// Buffered so a failed query can still answer with an error status.
	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), &buf, from, to)
	if err != nil {
		response.Internal(w, r, "Error exporting expenses", err)
		return
	}

	slog.InfoContext(r.Context(), "exported expenses", "count", n)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(from, to)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

// queryDate reads an optional YYYY-MM-DD query parameter.
func queryDate(r *http.Request, key string) (*calendar.Date, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	d, err := calendar.ParseDate(s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}
