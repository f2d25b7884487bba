package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

func ValidateRecurring(req api.RecurringRequest) error {
	var missing []string

	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}

	if !req.Amount.IsPositive() {
		missing = append(missing, "amount")
	}

	if strings.TrimSpace(req.Category) == "" {
		missing = append(missing, "category")
	}

	if strings.TrimSpace(req.Frequency) == "" {
		missing = append(missing, "frequency")
	}

	if req.StartDate.IsZero() {
		missing = append(missing, "startDate")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	return nil
}

func (c *Client) RecurringExpenses(ctx context.Context) ([]api.RecurringExpense, error) {
	var out api.RecurringResponse
	if err := c.do(ctx, http.MethodGet, "/recurring-expenses", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.RecurringExpenses, nil
}

func (c *Client) AddRecurring(ctx context.Context, req api.RecurringRequest) (*api.RecurringExpense, error) {
	if err := ValidateRecurring(req); err != nil {
		return nil, err
	}

	var out api.RecurringExpense
	if err := c.do(ctx, http.MethodPost, "/recurring-expenses/add", nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteRecurring(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/recurring-expenses/"+id.String(), nil, nil, nil)
}

// Occurrences previews the dates a recurring expense falls on within
// [from, to].
func (c *Client) Occurrences(ctx context.Context, id uuid.UUID, from, to calendar.Date) ([]calendar.Date, error) {
	query := url.Values{}
	query.Set("from", from.Key())
	query.Set("to", to.Key())

	var out api.OccurrencesResponse
	if err := c.do(ctx, http.MethodGet, "/recurring-expenses/"+id.String()+"/occurrences", query, nil, &out); err != nil {
		return nil, err
	}

	return out.Dates, nil
}
