package expense

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/response"
)

type Handler struct {
	svc   *expense.Service
	today func() calendar.Date
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc, today: calendar.Today}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.overview)
	r.Post("/add", h.create)
	r.Get("/month/{year}/{month}", h.month)
	r.Get("/day/{year}/{month}/{day}", h.day)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Overview(r.Context(), h.today())
	if err != nil {
		response.Internal(w, r, "Error loading expenses", err)
		return
	}

	response.JSON(w, http.StatusOK, api.FromOverview(o))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req api.ExpenseRequest
	if !response.Decode(w, r, &req) {
		return
	}

	e, err := h.svc.Create(r.Context(), req.Params())
	if err != nil {
		writeError(w, r, "Error adding expense", err)
		return
	}

	response.JSON(w, http.StatusCreated, api.FromExpense(e))
}

func (h *Handler) month(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid year")
		return
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid month")
		return
	}

	list, err := h.svc.ListMonth(r.Context(), year, time.Month(month))
	if err != nil {
		if errors.Is(err, expense.ErrInvalidMonth) {
			response.Message(w, http.StatusBadRequest, "Invalid month")
			return
		}

		response.Internal(w, r, "Error loading expenses", err)

		return
	}

	response.JSON(w, http.StatusOK, api.ExpensesResponse{Expenses: api.FromExpenses(list)})
}

func (h *Handler) day(w http.ResponseWriter, r *http.Request) {
	day, ok := pathDate(r)
	if !ok {
		response.Message(w, http.StatusBadRequest, "Invalid date")
		return
	}

	list, err := h.svc.ListDay(r.Context(), day)
	if err != nil {
		response.Internal(w, r, "Error loading expenses", err)
		return
	}

	response.JSON(w, http.StatusOK, api.ExpensesResponse{Expenses: api.FromExpenses(list)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req api.ExpenseRequest
	if !response.Decode(w, r, &req) {
		return
	}

	e, err := h.svc.Update(r.Context(), id, req.Params())
	if err != nil {
		writeError(w, r, "Error updating expense", err)
		return
	}

	response.JSON(w, http.StatusOK, api.FromExpense(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Message(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, "Error deleting expense", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathDate reads year/month/day URL params. Out-of-range days such as
// Feb 30 are rejected.
func pathDate(r *http.Request) (calendar.Date, bool) {
	var parts [3]int

	for i, name := range []string{"year", "month", "day"} {
		n, err := strconv.Atoi(chi.URLParam(r, name))
		if err != nil {
			return calendar.Date{}, false
		}

		parts[i] = n
	}

	d, err := calendar.ParseDate(fmt.Sprintf("%04d-%02d-%02d", parts[0], parts[1], parts[2]))
	if err != nil {
		return calendar.Date{}, false
	}

	return d, true
}

func writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, expense.ErrNotFound):
		response.Message(w, http.StatusNotFound, "Expense not found")
	case expense.IsValidation(err):
		response.Message(w, http.StatusBadRequest, err.Error())
	default:
		response.Internal(w, r, msg, err)
	}
}
