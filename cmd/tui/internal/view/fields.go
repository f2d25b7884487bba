package view

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

// expenseFields backs the add and edit forms. huh binds to its fields by
// pointer, so it lives on the heap and survives model copies.
type expenseFields struct {
	Description string
	Amount      string
	Category    string
	Date        string
	Notes       string
}

func newExpenseFields(categories []string, today calendar.Date) *expenseFields {
	f := &expenseFields{}
	f.reset(categories, today)

	return f
}

// reset restores the defaults: no text, the first category and today.
func (f *expenseFields) reset(categories []string, today calendar.Date) {
	*f = expenseFields{Date: today.Key()}
	if len(categories) > 0 {
		f.Category = categories[0]
	}
}

func fieldsFromExpense(e api.Expense) *expenseFields {
	return &expenseFields{
		Description: e.Description,
		Amount:      e.Amount.StringFixed(2),
		Category:    e.Category,
		Date:        e.Date.Key(),
		Notes:       e.Notes,
	}
}

// request converts the form text. Blank amount and date stay zero so that
// the client reports them as missing.
func (f *expenseFields) request() (api.ExpenseRequest, error) {
	req := api.ExpenseRequest{
		Description: strings.TrimSpace(f.Description),
		Category:    f.Category,
		Notes:       strings.TrimSpace(f.Notes),
	}

	if s := strings.TrimSpace(f.Amount); s != "" {
		amount, err := parseDecimal(s)
		if err != nil {
			return req, err
		}

		req.Amount = amount
	}

	if s := strings.TrimSpace(f.Date); s != "" {
		date, err := calendar.ParseDate(s)
		if err != nil {
			return req, errors.New("Invalid date")
		}

		req.Date = date
	}

	return req, nil
}

// parseDecimal accepts "12.50" and "12,50".
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if err != nil {
		return decimal.Zero, errors.New("Invalid amount")
	}

	return d, nil
}

func validDecimal(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	_, err := parseDecimal(s)

	return err
}

func validDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := calendar.ParseDate(strings.TrimSpace(s)); err != nil {
		return errors.New("Invalid date")
	}

	return nil
}

func descriptionInput(f *expenseFields) *huh.Input {
	return huh.NewInput().
		Key("description").
		Title("Description").
		Placeholder("What did you pay for?").
		Value(&f.Description)
}

// detailFields are the inputs that follow the description.
func detailFields(f *expenseFields, categories []string) []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Key("amount").
			Title("Amount (" + currency + ")").
			Placeholder("0.00").
			Validate(validDecimal).
			Value(&f.Amount),
		huh.NewSelect[string]().
			Key("category").
			Title("Category").
			Options(huh.NewOptions(categories...)...).
			Value(&f.Category),
		huh.NewInput().
			Key("date").
			Title("Date").
			Placeholder("YYYY-MM-DD").
			Validate(validDate).
			Value(&f.Date),
		huh.NewInput().
			Key("notes").
			Title("Notes").
			Value(&f.Notes),
	}
}
