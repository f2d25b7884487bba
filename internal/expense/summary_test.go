package expense_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
)

func TestDailyTotal(t *testing.T) {
	list := []*expense.Expense{
		{Amount: decimal.NewFromInt(10), Date: calendar.MustParseDate("2024-03-01")},
		{Amount: decimal.NewFromInt(5), Date: calendar.MustParseDate("2024-03-02")},
	}

	got := expense.DailyTotal(list, calendar.MustParseDate("2024-03-01"))
	assert.Equal(t, "10.00", got.StringFixed(2))

	assert.True(t, expense.DailyTotal(list, calendar.MustParseDate("2024-03-03")).IsZero())
}

func TestDailyTotal_IgnoresTimeOfDay(t *testing.T) {
	// A late-evening timestamp with an offset still belongs to its own civil day.
	list := []*expense.Expense{
		{Amount: decimal.NewFromInt(7), Date: calendar.MustParseDate("2024-03-01T23:30:00-05:00")},
	}

	assert.Equal(t, "7", expense.DailyTotal(list, calendar.NewDate(2024, time.March, 1)).String())
}

func TestMonthlyTotal(t *testing.T) {
	list := []*expense.Expense{
		{Amount: decimal.RequireFromString("1.10"), Date: calendar.NewDate(2024, time.February, 1)},
		{Amount: decimal.RequireFromString("2.20"), Date: calendar.NewDate(2024, time.February, 29)},
		{Amount: decimal.RequireFromString("4.00"), Date: calendar.NewDate(2024, time.March, 1)},
	}

	got := expense.MonthlyTotal(list, calendar.Month{Year: 2024, Month: time.February})
	assert.Equal(t, "3.30", got.StringFixed(2))
	assert.Equal(t, "7.30", expense.Total(list).StringFixed(2))
}

func TestSummarize_Empty(t *testing.T) {
	s := expense.Summarize(nil, calendar.NewDate(2024, time.March, 1))

	assert.NotNil(t, s.Categories)
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Daily)
	assert.Empty(t, s.Monthly)
}

func TestSummarize(t *testing.T) {
	today := calendar.NewDate(2024, time.March, 2)
	list := []*expense.Expense{
		{Category: "Transport", Amount: decimal.NewFromInt(30), Date: today},
		{Category: "Food", Amount: decimal.NewFromInt(10), Date: today.AddDays(-1)},
		{Category: "Transport", Amount: decimal.NewFromInt(5), Date: calendar.NewDate(2023, time.October, 15)},
		{Category: "Food", Amount: decimal.NewFromInt(2), Date: calendar.NewDate(2023, time.September, 30)},
	}

	s := expense.Summarize(list, today)

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Transport", s.Categories[0].Name)
	assert.Equal(t, "35", s.Categories[0].Value.String())
	assert.Equal(t, "Food", s.Categories[1].Name)
	assert.Equal(t, "12", s.Categories[1].Value.String())

	require.Len(t, s.Daily, 7)
	assert.Equal(t, "02/25", s.Daily[0].Label)
	assert.Equal(t, "03/02", s.Daily[6].Label)
	assert.Equal(t, "10", s.Daily[5].Amount.String())
	assert.Equal(t, "30", s.Daily[6].Amount.String())

	require.Len(t, s.Monthly, 6)
	assert.Equal(t, "Oct 2023", s.Monthly[0].Label)
	assert.Equal(t, "Mar 2024", s.Monthly[5].Label)
	assert.Equal(t, "5", s.Monthly[0].Amount.String())
	assert.True(t, s.Monthly[1].Amount.IsZero())
	assert.Equal(t, "40", s.Monthly[5].Amount.String())
}
