package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

// ValidateExpense checks that description, amount, category and date are
// all present. Amounts of zero or less count as missing.
func ValidateExpense(req api.ExpenseRequest) error {
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

	if req.Date.IsZero() {
		missing = append(missing, "date")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	return nil
}

// Overview fetches every expense, newest first, with the dashboard series.
func (c *Client) Overview(ctx context.Context) (*api.OverviewResponse, error) {
	var out api.OverviewResponse
	if err := c.do(ctx, http.MethodGet, "/expenses", nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) AddExpense(ctx context.Context, req api.ExpenseRequest) (*api.Expense, error) {
	if err := ValidateExpense(req); err != nil {
		return nil, err
	}

	var out api.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses/add", nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateExpense replaces the stored record with req.
func (c *Client) UpdateExpense(ctx context.Context, id uuid.UUID, req api.ExpenseRequest) (*api.Expense, error) {
	if err := ValidateExpense(req); err != nil {
		return nil, err
	}

	var out api.Expense
	if err := c.do(ctx, http.MethodPut, "/expenses/"+id.String(), nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+id.String(), nil, nil, nil)
}

func (c *Client) MonthExpenses(ctx context.Context, m calendar.Month) ([]api.Expense, error) {
	var out api.ExpensesResponse

	path := fmt.Sprintf("/expenses/month/%d/%d", m.Year, int(m.Month))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Expenses, nil
}

func (c *Client) DayExpenses(ctx context.Context, d calendar.Date) ([]api.Expense, error) {
	var out api.ExpensesResponse

	path := fmt.Sprintf("/expenses/day/%d/%d/%d", d.Year(), int(d.Month()), d.Day())
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Expenses, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out api.CategoriesResponse
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Categories, nil
}

func (c *Client) AddCategory(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Fields: []string{"name"}}
	}

	return c.do(ctx, http.MethodPost, "/categories/add", nil, api.CategoryRequest{Name: name}, nil)
}

func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var out api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
