package expense

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

// DateRange is an inclusive day range.
type DateRange struct {
	Start calendar.Date
	End   calendar.Date
}

// AmountRange bounds are independently optional.
type AmountRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// Filter is the Expense Manager's search configuration. The zero value
// matches everything.
type Filter struct {
	Text        string
	DateRange   *DateRange
	Category    *string
	AmountRange AmountRange
}

// IsZero reports whether no criterion is active.
func (f Filter) IsZero() bool {
	return f.Text == "" && f.DateRange == nil && f.Category == nil &&
		f.AmountRange.Min == nil && f.AmountRange.Max == nil
}

// Matches is the AND of every active criterion.
func (f Filter) Matches(e *Expense) bool {
	return f.matchText(e) && f.matchDate(e) && f.matchCategory(e) && f.matchAmount(e)
}

func (f Filter) matchText(e *Expense) bool {
	if f.Text == "" {
		return true
	}

	needle := strings.ToLower(f.Text)

	return strings.Contains(strings.ToLower(e.Description), needle) ||
		strings.Contains(strings.ToLower(e.Notes), needle)
}

func (f Filter) matchDate(e *Expense) bool {
	if f.DateRange == nil {
		return true
	}

	return e.Date.Compare(f.DateRange.Start) >= 0 && e.Date.Compare(f.DateRange.End) <= 0
}

func (f Filter) matchCategory(e *Expense) bool {
	return f.Category == nil || e.Category == *f.Category
}

func (f Filter) matchAmount(e *Expense) bool {
	if f.AmountRange.Min != nil && e.Amount.LessThan(*f.AmountRange.Min) {
		return false
	}

	if f.AmountRange.Max != nil && e.Amount.GreaterThan(*f.AmountRange.Max) {
		return false
	}

	return true
}

// Apply returns the expenses matching f in their original order. The input
// slice is not modified.
func Apply(expenses []*Expense, f Filter) []*Expense {
	out := make([]*Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			out = append(out, e)
		}
	}

	return out
}

type SortKey int

const (
	SortByDate SortKey = iota
	SortByAmount
)

func (k SortKey) String() string {
	if k == SortByAmount {
		return "amount"
	}

	return "date"
}

type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}

	return "asc"
}

// Sort returns a sorted copy. Equal keys keep their relative order.
func Sort(expenses []*Expense, key SortKey, order SortOrder) []*Expense {
	out := slices.Clone(expenses)

	slices.SortStableFunc(out, func(a, b *Expense) int {
		var c int

		switch key {
		case SortByAmount:
			c = a.Amount.Cmp(b.Amount)
		default:
			c = a.Date.Compare(b.Date)
		}

		if order == Descending {
			return cmp.Compare(0, c)
		}

		return c
	})

	return out
}
