package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

const currency = "₹"

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// FormatAmount renders an amount with two decimals and the currency symbol.
func FormatAmount(d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}

func FormatDate(d calendar.Date) string {
	return d.Key()
}

// Bar draws a horizontal bar proportional to value/peak, at most width cells.
// Any positive value gets at least one cell.
func Bar(value, peak decimal.Decimal, width int) string {
	if width <= 0 || !peak.IsPositive() || !value.IsPositive() {
		return ""
	}

	n := int(value.Mul(decimal.NewFromInt(int64(width))).Div(peak).Round(0).IntPart())
	n = min(max(n, 1), width)

	return strings.Repeat("█", n)
}

func activeStyle(s string) string {
	return accentStyle.Render(s)
}
