package expense

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

const (
	dailyWindow   = 7
	monthlyWindow = 6
)

type CategoryTotal struct {
	Name  string
	Value decimal.Decimal
}

type DayTotal struct {
	Label  string // MM/DD
	Date   calendar.Date
	Amount decimal.Decimal
}

type MonthTotal struct {
	Label  string // Jan 2006
	Month  calendar.Month
	Amount decimal.Decimal
}

// Summary holds the aggregate series the dashboard charts.
type Summary struct {
	Categories []CategoryTotal
	Daily      []DayTotal
	Monthly    []MonthTotal
}

// DailyTotal sums the amounts of expenses dated on day. Dates are compared by
// their canonical key only.
func DailyTotal(expenses []*Expense, day calendar.Date) decimal.Decimal {
	key := day.Key()
	total := decimal.Zero

	for _, e := range expenses {
		if e.Date.Key() == key {
			total = total.Add(e.Amount)
		}
	}

	return total
}

// MonthlyTotal sums the amounts of expenses dated inside m.
func MonthlyTotal(expenses []*Expense, m calendar.Month) decimal.Decimal {
	total := decimal.Zero

	for _, e := range expenses {
		if m.Contains(e.Date) {
			total = total.Add(e.Amount)
		}
	}

	return total
}

// Total sums every amount.
func Total(expenses []*Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return total
}

// Summarize builds per-category totals over all expenses (in order of first
// appearance), daily totals for the 7 days ending today and monthly totals
// for the 6 months ending with the current one. An empty list yields empty
// series.
func Summarize(expenses []*Expense, today calendar.Date) Summary {
	s := Summary{
		Categories: []CategoryTotal{},
		Daily:      []DayTotal{},
		Monthly:    []MonthTotal{},
	}

	if len(expenses) == 0 {
		return s
	}

	index := make(map[string]int)
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			index[e.Category] = len(s.Categories)
			s.Categories = append(s.Categories, CategoryTotal{Name: e.Category, Value: e.Amount})

			continue
		}

		s.Categories[i].Value = s.Categories[i].Value.Add(e.Amount)
	}

	for i := dailyWindow - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		s.Daily = append(s.Daily, DayTotal{
			Label:  day.Format("01/02"),
			Date:   day,
			Amount: DailyTotal(expenses, day),
		})
	}

	current := calendar.MonthOf(today)
	months := make([]calendar.Month, monthlyWindow)
	for i := monthlyWindow - 1; i >= 0; i-- {
		months[i] = current
		current = current.Prev()
	}

	for _, m := range months {
		s.Monthly = append(s.Monthly, MonthTotal{
			Label:  m.First().Format("Jan 2006"),
			Month:  m,
			Amount: MonthlyTotal(expenses, m),
		})
	}

	return s
}
