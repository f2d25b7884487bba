package category

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/http/response"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/add", h.add)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.List(r.Context())
	if err != nil {
		response.Internal(w, r, "Error loading categories", err)
		return
	}

	response.JSON(w, http.StatusOK, api.CategoriesResponse{Categories: names})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req api.CategoryRequest
	if !response.Decode(w, r, &req) {
		return
	}

	if _, err := h.svc.Add(r.Context(), req.Name); err != nil {
		switch {
		case errors.Is(err, category.ErrEmptyName):
			response.Message(w, http.StatusBadRequest, "Category name is required")
		case errors.Is(err, category.ErrExists):
			response.Message(w, http.StatusConflict, "Category already exists")
		default:
			response.Internal(w, r, "Error adding category", err)
		}

		return
	}

	response.Message(w, http.StatusCreated, "Category added successfully")
}
