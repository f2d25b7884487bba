package recurring

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/http/response"
	"github.com/MrJamesThe3rd/tally/internal/recurring"
)

type Handler struct {
	svc *recurring.Service
}

func NewHandler(svc *recurring.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/add", h.create)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/occurrences", h.occurrences)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.List(r.Context())
	if err != nil {
		response.Internal(w, r, "Error loading recurring expenses", err)
		return
	}

	resp := api.RecurringResponse{RecurringExpenses: make([]api.RecurringExpense, len(ts))}
	for i, t := range ts {
		resp.RecurringExpenses[i] = api.FromTemplate(t)
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.RecurringRequest
	if !response.Decode(w, r, &req) {
		return
	}

	freq, err := recurring.ParseFrequency(req.Frequency)
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid frequency")
		return
	}

	t, err := h.svc.Create(r.Context(), recurring.CreateParams{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Frequency:   freq,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, r, "Error adding recurring expense", err)
		return
	}

	response.JSON(w, http.StatusCreated, api.FromTemplate(t))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, "Error deleting recurring expense", err)
		return
	}

	response.Message(w, http.StatusOK, "Recurring expense deleted successfully")
}

func (h *Handler) occurrences(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid id")
		return
	}

	from, err := calendar.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid from date")
		return
	}

	to, err := calendar.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid to date")
		return
	}

	dates, err := h.svc.Occurrences(r.Context(), id, from, to)
	if err != nil {
		writeError(w, r, "Error previewing recurring expense", err)
		return
	}

	response.JSON(w, http.StatusOK, api.OccurrencesResponse{Dates: dates})
}

func writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, recurring.ErrNotFound):
		response.Message(w, http.StatusNotFound, "Recurring expense not found")
	case recurring.IsValidation(err):
		response.Message(w, http.StatusBadRequest, err.Error())
	default:
		response.Internal(w, r, msg, err)
	}
}
