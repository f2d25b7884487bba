package view

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
)

const allCategories = ""

var (
	minDate = calendar.NewDate(1, 1, 1)
	maxDate = calendar.NewDate(9999, 12, 31)
)

// filterFields is the text form of an expense.Filter.
type filterFields struct {
	Text     string
	Category string
	From     string
	To       string
	Min      string
	Max      string
}

// filter parses the form. An open-ended date range is closed with the
// earliest or latest representable date.
func (f *filterFields) filter() (expense.Filter, error) {
	out := expense.Filter{Text: strings.TrimSpace(f.Text)}

	if f.Category != allCategories {
		category := f.Category
		out.Category = &category
	}

	from, to := strings.TrimSpace(f.From), strings.TrimSpace(f.To)
	if from != "" || to != "" {
		r := &expense.DateRange{Start: minDate, End: maxDate}

		if from != "" {
			d, err := calendar.ParseDate(from)
			if err != nil {
				return out, errors.New("invalid from date (YYYY-MM-DD)")
			}

			r.Start = d
		}

		if to != "" {
			d, err := calendar.ParseDate(to)
			if err != nil {
				return out, errors.New("invalid to date (YYYY-MM-DD)")
			}

			r.End = d
		}

		out.DateRange = r
	}

	var err error

	if out.AmountRange.Min, err = optionalDecimal(f.Min); err != nil {
		return out, errors.New("invalid minimum amount")
	}

	if out.AmountRange.Max, err = optionalDecimal(f.Max); err != nil {
		return out, errors.New("invalid maximum amount")
	}

	return out, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	d, err := parseDecimal(s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func filterForm(f *filterFields, categories []string) *huh.Form {
	options := []huh.Option[string]{huh.NewOption("All categories", allCategories)}
	options = append(options, huh.NewOptions(categories...)...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("text").Title("Search").Placeholder("description or notes").Value(&f.Text),
			huh.NewSelect[string]().Key("category").Title("Category").Options(options...).Value(&f.Category),
			huh.NewInput().Key("from").Title("From").Placeholder("YYYY-MM-DD").Validate(validDate).Value(&f.From),
			huh.NewInput().Key("to").Title("To").Placeholder("YYYY-MM-DD").Validate(validDate).Value(&f.To),
			huh.NewInput().Key("min").Title("Min amount").Validate(validDecimal).Value(&f.Min),
			huh.NewInput().Key("max").Title("Max amount").Validate(validDecimal).Value(&f.Max),
		),
	).WithWidth(45).WithShowHelp(false)
}
