package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/expense"
)

const (
	barWidth    = 30
	recentCount = 5
)

var panelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63"))

// DashboardModel charts the aggregates the store computes for GET /expenses.
type DashboardModel struct {
	CommonModel
	deps Deps

	seq      requestSeq
	loading  bool
	overview *api.OverviewResponse
	err      string
}

func NewDashboardModel(deps Deps) DashboardModel {
	m := DashboardModel{deps: deps, loading: true}
	m.seq.next()

	return m
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "r: refresh | Esc: back" }

func (m DashboardModel) Init() tea.Cmd {
	return loadOverviewCmd(m.deps, m.seq.last)
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		if !m.seq.isLatest(msg.id) {
			return m, nil
		}

		m.loading = false

		if msg.err != nil {
			m.err = userError(msg.err, "Failed to load expenses")
			return m, nil
		}

		m.err = ""
		m.overview = msg.overview

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			id := m.seq.next()

			return m, loadOverviewCmd(m.deps, id)
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	parts := []string{titleStyle.Render("Dashboard")}

	switch {
	case m.overview != nil:
		parts = append(parts, "", m.viewOverview())
	case m.loading:
		parts = append(parts, "", "Loading expenses...")
	}

	if m.err != "" {
		parts = append(parts, "", errorStyle.Render(m.err))
	}

	parts = append(parts, "", faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m DashboardModel) viewOverview() string {
	o := m.overview
	list := api.ToDomain(o.Expenses)

	summary := fmt.Sprintf("Total spent: %s across %d expenses",
		activeStyle(FormatAmount(expense.Total(list))), len(list))

	categories := make([]barRow, len(o.CategoryData))
	for i, c := range o.CategoryData {
		categories[i] = barRow{label: c.Name, value: c.Value}
	}

	daily := make([]barRow, len(o.DailyData))
	for i, d := range o.DailyData {
		daily[i] = barRow{label: d.Date, value: d.Amount}
	}

	monthly := make([]barRow, len(o.MonthlyData))
	for i, mt := range o.MonthlyData {
		monthly[i] = barRow{label: mt.Month, value: mt.Amount}
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(barChart("By category", categories)),
		" ",
		panelStyle.Render(recentList(o.Expenses)),
	)

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(barChart("Last 7 days", daily)),
		" ",
		panelStyle.Render(barChart("Last 6 months", monthly)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, summary, "", top, bottom)
}

type barRow struct {
	label string
	value decimal.Decimal
}

func barChart(title string, rows []barRow) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString("No data")
		return b.String()
	}

	peak := decimal.Zero
	for _, r := range rows {
		peak = decimal.Max(peak, r.value)
	}

	for _, r := range rows {
		bar := fmt.Sprintf("%-*s", barWidth, Bar(r.value, peak, barWidth))
		fmt.Fprintf(&b, "%-14s %s %s\n", truncate(r.label, 14), accentStyle.Render(bar), FormatAmount(r.value))
	}

	return strings.TrimRight(b.String(), "\n")
}

func recentList(expenses []api.Expense) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Recent"))
	b.WriteString("\n\n")

	if len(expenses) == 0 {
		b.WriteString("No expenses yet")
		return b.String()
	}

	for _, e := range expenses[:min(recentCount, len(expenses))] {
		fmt.Fprintf(&b, "%s  %-20s %12s\n", FormatDate(e.Date), truncate(e.Description, 20), FormatAmount(e.Amount))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Messages

type overviewMsg struct {
	id       uint64
	overview *api.OverviewResponse
	err      error
}

func loadOverviewCmd(deps Deps, id uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		o, err := deps.Client.Overview(ctx)

		return overviewMsg{id: id, overview: o, err: err}
	}
}
