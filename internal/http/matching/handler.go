package matching

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/http/response"
	"github.com/MrJamesThe3rd/tally/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.rules)
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	desc := r.URL.Query().Get("description")
	if desc == "" {
		response.Message(w, http.StatusBadRequest, "description query parameter is required")
		return
	}

	category, err := h.svc.Suggest(r.Context(), desc)
	if err != nil {
		response.Internal(w, r, "Error suggesting category", err)
		return
	}

	response.JSON(w, http.StatusOK, api.SuggestResponse{
		Description: desc,
		Category:    category,
	})
}

func (h *Handler) rules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.Rules(r.Context())
	if err != nil {
		response.Internal(w, r, "Error loading rules", err)
		return
	}

	resp := api.RulesResponse{Rules: make([]api.Rule, len(rules))}
	for i, rule := range rules {
		resp.Rules[i] = api.FromRule(rule)
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req api.RuleRequest
	if !response.Decode(w, r, &req) {
		return
	}

	rule, err := h.svc.Learn(r.Context(), req.Pattern, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrEmptyPattern), errors.Is(err, matching.ErrUnknownCategory):
			response.Message(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, matching.ErrRuleExists):
			response.Message(w, http.StatusConflict, err.Error())
		default:
			response.Internal(w, r, "Error saving rule", err)
		}

		return
	}

	response.JSON(w, http.StatusCreated, api.FromRule(rule))
}
