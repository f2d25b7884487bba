package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
)

const cellWidth = 11

var (
	cellStyle     = lipgloss.NewStyle().Width(cellWidth).Height(2).Padding(0, 1)
	selectedCell  = cellStyle.Background(lipgloss.Color("57")).Foreground(lipgloss.Color("229"))
	todayCell     = cellStyle.Bold(true).Foreground(lipgloss.Color("205"))
	weekdayHeader = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// CalendarModel browses expenses on a month grid. Daily totals come from the
// month's expenses; the day list is fetched when a day is opened.
type CalendarModel struct {
	CommonModel
	deps Deps

	month    calendar.Month
	cursor   calendar.Date
	expenses []*expense.Expense
	monthSeq requestSeq
	loading  bool

	day         calendar.Date
	dayExpenses []api.Expense
	daySeq      requestSeq

	err string
}

func NewCalendarModel(deps Deps) CalendarModel {
	today := deps.today()

	m := CalendarModel{
		deps:   deps,
		month:  calendar.MonthOf(today),
		cursor: today,
	}
	m.monthSeq.next()
	m.loading = true

	return m
}

func (m CalendarModel) Title() string { return "Calendar" }

func (m CalendarModel) ShortHelp() string {
	return "←/→/↑/↓: move | p/n: month | t: today | Enter: open day | Esc: back"
}

// Init loads the month whose request was numbered by NewCalendarModel.
func (m CalendarModel) Init() tea.Cmd {
	return loadMonthCmd(m.deps, m.monthSeq.last, m.month)
}

func (m *CalendarModel) fetchMonth() tea.Cmd {
	m.loading = true
	return loadMonthCmd(m.deps, m.monthSeq.next(), m.month)
}

func (m CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case monthMsg:
		if !m.monthSeq.isLatest(msg.id) {
			return m, nil
		}

		m.loading = false

		if msg.err != nil {
			m.err = userError(msg.err, "Failed to load month")
			return m, nil
		}

		m.err = ""
		m.expenses = api.ToDomain(msg.expenses)

		return m, nil

	case dayMsg:
		if !m.daySeq.isLatest(msg.id) {
			return m, nil
		}

		if msg.err != nil {
			m.err = userError(msg.err, "Failed to load day")
			return m, nil
		}

		m.err = ""
		m.day = msg.day
		m.dayExpenses = msg.expenses

		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m CalendarModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, Back
	case "left", "h":
		return m.moveTo(m.cursor.AddDays(-1))
	case "right", "l":
		return m.moveTo(m.cursor.AddDays(1))
	case "up", "k":
		return m.moveTo(m.cursor.AddDays(-7))
	case "down", "j":
		return m.moveTo(m.cursor.AddDays(7))
	case "p", "[":
		return m.moveTo(m.month.Prev().First())
	case "n", "]":
		return m.moveTo(m.month.Next().First())
	case "t":
		return m.moveTo(m.deps.today())
	case "enter":
		id := m.daySeq.next()
		return m, loadDayCmd(m.deps, id, m.cursor)
	case "r":
		cmd := m.fetchMonth()
		return m, cmd
	}

	return m, nil
}

// moveTo selects d, switching month and refetching when d leaves the
// displayed month.
func (m CalendarModel) moveTo(d calendar.Date) (tea.Model, tea.Cmd) {
	m.cursor = d

	if m.month.Contains(d) {
		return m, nil
	}

	m.month = calendar.MonthOf(d)
	m.expenses = nil
	m.dayExpenses = nil
	m.day = calendar.Date{}
	m.daySeq.next()
	cmd := m.fetchMonth()

	return m, cmd
}

func (m CalendarModel) View() string {
	header := fmt.Sprintf("‹ %s ›", m.month)
	if m.loading {
		header += faintStyle.Render("  loading...")
	}

	grid := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(header),
		"",
		m.viewGrid(),
		"",
		fmt.Sprintf("Month total: %s", FormatAmount(expense.MonthlyTotal(m.expenses, m.month))),
	)

	content := lipgloss.JoinHorizontal(lipgloss.Top, grid, "   ", m.viewDay())

	parts := []string{content}
	if m.err != "" {
		parts = append(parts, "", errorStyle.Render(m.err))
	}

	parts = append(parts, "", faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m CalendarModel) viewGrid() string {
	heads := make([]string, len(weekdayHeader))
	for i, h := range weekdayHeader {
		heads[i] = cellStyle.Height(1).Render(h)
	}

	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, heads...)}
	today := m.deps.today()

	for _, row := range calendar.Rows(calendar.BuildGrid(m.month.Year, m.month.Index())) {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = m.viewCell(c, today)
		}

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m CalendarModel) viewCell(c calendar.Cell, today calendar.Date) string {
	if c.Empty() {
		return cellStyle.Render("")
	}

	text := fmt.Sprintf("%2d", c.Day)
	if total := expense.DailyTotal(m.expenses, c.Date); total.IsPositive() {
		text += "\n" + total.StringFixed(2)
	}

	switch {
	case c.Date.Equal(m.cursor):
		return selectedCell.Render(text)
	case c.Date.Equal(today):
		return todayCell.Render(text)
	}

	return cellStyle.Render(text)
}

func (m CalendarModel) viewDay() string {
	if m.day.IsZero() {
		return faintStyle.Render("Press Enter to list a day's expenses")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.day.Format("Monday, 2 January 2006")))
	b.WriteString("\n\n")

	if len(m.dayExpenses) == 0 {
		b.WriteString("No expenses on this day")
		return b.String()
	}

	list := api.ToDomain(m.dayExpenses)
	for _, e := range list {
		fmt.Fprintf(&b, "%-24s %12s  %s\n", truncate(e.Description, 24), FormatAmount(e.Amount), faintStyle.Render(e.Category))
	}

	fmt.Fprintf(&b, "\nTotal: %s", FormatAmount(expense.Total(list)))

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

// Messages

type monthMsg struct {
	id       uint64
	expenses []api.Expense
	err      error
}

type dayMsg struct {
	id       uint64
	day      calendar.Date
	expenses []api.Expense
	err      error
}

func loadMonthCmd(deps Deps, id uint64, month calendar.Month) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		expenses, err := deps.Client.MonthExpenses(ctx, month)

		return monthMsg{id: id, expenses: expenses, err: err}
	}
}

func loadDayCmd(deps Deps, id uint64, day calendar.Date) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		expenses, err := deps.Client.DayExpenses(ctx, day)

		return dayMsg{id: id, day: day, expenses: expenses, err: err}
	}
}
