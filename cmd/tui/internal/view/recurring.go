package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/recurring"
)

const previewDays = 90

type recurringState int

const (
	recurringStateBrowse recurringState = iota
	recurringStateAdd
	recurringStateDelete
)

type recurringFields struct {
	Description string
	Amount      string
	Category    string
	Frequency   string
	StartDate   string
	EndDate     string
	Notes       string
}

func (f *recurringFields) reset(categories []string, today calendar.Date) {
	*f = recurringFields{Frequency: string(recurring.Monthly), StartDate: today.Key()}
	if len(categories) > 0 {
		f.Category = categories[0]
	}
}

func (f *recurringFields) request() (api.RecurringRequest, error) {
	req := api.RecurringRequest{
		Description: strings.TrimSpace(f.Description),
		Category:    f.Category,
		Frequency:   f.Frequency,
		Notes:       strings.TrimSpace(f.Notes),
	}

	if s := strings.TrimSpace(f.Amount); s != "" {
		amount, err := parseDecimal(s)
		if err != nil {
			return req, err
		}

		req.Amount = amount
	}

	if s := strings.TrimSpace(f.StartDate); s != "" {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return req, errors.New("Invalid date")
		}

		req.StartDate = d
	}

	if s := strings.TrimSpace(f.EndDate); s != "" {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return req, errors.New("Invalid date")
		}

		req.EndDate = &d
	}

	return req, nil
}

// RecurringModel lists templates with their next due date, adds and deletes
// them, and previews the dates the selected one will generate.
type RecurringModel struct {
	CommonModel
	deps Deps

	state recurringState
	table table.Model
	form  *huh.Form

	templates  []api.RecurringExpense
	categories []string
	seq        requestSeq
	loading    bool

	fields  *recurringFields
	confirm *bool

	previewSeq requestSeq
	previewFor uuid.UUID
	preview    []calendar.Date

	status string
	err    string
}

func NewRecurringModel(deps Deps) RecurringModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Description", Width: 24},
			{Title: "Amount", Width: 12},
			{Title: "Category", Width: 14},
			{Title: "Frequency", Width: 11},
			{Title: "Start", Width: 11},
			{Title: "End", Width: 11},
			{Title: "Next", Width: 11},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := RecurringModel{
		deps:    deps,
		table:   t,
		fields:  &recurringFields{},
		confirm: new(bool),
		loading: true,
	}
	m.seq.next()

	return m
}

func (m RecurringModel) Title() string { return "Recurring Expenses" }

func (m RecurringModel) ShortHelp() string {
	switch m.state {
	case recurringStateAdd:
		return "Navigate form | Esc: cancel"
	case recurringStateDelete:
		return "←/→: choose | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | a: add | d: delete | Enter: preview dates | r: refresh"
}

func (m RecurringModel) Init() tea.Cmd {
	return tea.Batch(loadRecurringCmd(m.deps, m.seq.last), loadCategoriesCmd(m.deps))
}

func (m RecurringModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recurringMsg:
		if !m.seq.isLatest(msg.id) {
			return m, nil
		}

		m.loading = false

		if msg.err != nil {
			m.err = userError(msg.err, "Failed to load recurring expenses")
			return m, nil
		}

		m.err = ""
		m.templates = msg.templates
		m.refreshTable()

		return m, nil

	case categoriesMsg:
		if msg.err == nil {
			m.categories = msg.categories
		}

		return m, nil

	case previewMsg:
		if !m.previewSeq.isLatest(msg.id) {
			return m, nil
		}

		if msg.err != nil {
			m.err = userError(msg.err, "Failed to load occurrences")
			return m, nil
		}

		m.err = ""
		m.previewFor = msg.templateID
		m.preview = msg.dates

		return m, nil

	case recurringMutationMsg:
		m.state = recurringStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.err = userError(msg.err, msg.fallback)
			return m, nil
		}

		m.err = ""
		m.status = msg.done
		m.loading = true
		id := m.seq.next()

		return m, loadRecurringCmd(m.deps, id)
	}

	switch m.state {
	case recurringStateAdd:
		return m.updateAdd(msg)
	case recurringStateDelete:
		return m.updateDelete(msg)
	}

	return m.updateBrowse(msg)
}

func (m RecurringModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			id := m.seq.next()

			return m, loadRecurringCmd(m.deps, id)
		case "a":
			m.fields.reset(m.categories, m.deps.today())
			m.form = m.addForm()
			m.state = recurringStateAdd
			m.table.Blur()

			return m, m.form.Init()
		case "d", "delete":
			t := m.selected()
			if t == nil {
				return m, nil
			}

			*m.confirm = false
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete recurring %q? Expenses already generated stay.", t.Description)).
						Affirmative("Delete").
						Negative("Cancel").
						Value(m.confirm),
				),
			).WithShowHelp(false)
			m.state = recurringStateDelete
			m.table.Blur()

			return m, m.form.Init()
		case "enter":
			t := m.selected()
			if t == nil {
				return m, nil
			}

			from := m.deps.today()
			id := m.previewSeq.next()

			return m, previewCmd(m.deps, id, t.ID, from, from.AddDays(previewDays))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RecurringModel) addForm() *huh.Form {
	frequencies := make([]huh.Option[string], len(recurring.Frequencies))
	for i, f := range recurring.Frequencies {
		frequencies[i] = huh.NewOption(string(f), string(f))
	}

	f := m.fields

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("description").Title("Description").Value(&f.Description),
			huh.NewInput().Key("amount").Title("Amount ("+currency+")").Validate(validDecimal).Value(&f.Amount),
			huh.NewSelect[string]().Key("category").Title("Category").Options(huh.NewOptions(m.categories...)...).Value(&f.Category),
			huh.NewSelect[string]().Key("frequency").Title("Frequency").Options(frequencies...).Value(&f.Frequency),
			huh.NewInput().Key("start").Title("Start date").Placeholder("YYYY-MM-DD").Validate(validDate).Value(&f.StartDate),
			huh.NewInput().Key("end").Title("End date (optional)").Placeholder("YYYY-MM-DD").Validate(validDate).Value(&f.EndDate),
			huh.NewInput().Key("notes").Title("Notes").Value(&f.Notes),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m RecurringModel) cancel() (tea.Model, tea.Cmd) {
	m.state = recurringStateBrowse
	m.form = nil
	m.table.Focus()

	return m, nil
}

func (m *RecurringModel) updateForm(msg tea.Msg) (cmd tea.Cmd, done, aborted bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return nil, false, true
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	return cmd, m.form.State == huh.StateCompleted, m.form.State == huh.StateAborted
}

func (m RecurringModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done, aborted := m.updateForm(msg)
	if aborted {
		return m.cancel()
	}

	if !done {
		return m, cmd
	}

	return m.submitAdd()
}

func (m RecurringModel) submitAdd() (tea.Model, tea.Cmd) {
	req, err := m.fields.request()
	if err != nil {
		m.err = err.Error()
		return m.cancel()
	}

	return m, addRecurringCmd(m.deps, req)
}

func (m RecurringModel) updateDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done, aborted := m.updateForm(msg)
	if aborted || (done && !*m.confirm) {
		return m.cancel()
	}

	if !done {
		return m, cmd
	}

	return m.submitDelete()
}

func (m RecurringModel) submitDelete() (tea.Model, tea.Cmd) {
	t := m.selected()
	if t == nil {
		return m.cancel()
	}

	return m, deleteRecurringCmd(m.deps, t.ID)
}

func (m RecurringModel) selected() *api.RecurringExpense {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.templates) {
		return nil
	}

	return &m.templates[idx]
}

func (m *RecurringModel) refreshTable() {
	today := m.deps.today()

	rows := make([]table.Row, 0, len(m.templates))
	for _, t := range m.templates {
		end, next := "", "ended"
		if t.EndDate != nil {
			end = FormatDate(*t.EndDate)
		}

		if d, ok := recurring.NextOnOrAfter(t.ToTemplate(), today); ok {
			next = FormatDate(d)
		}

		rows = append(rows, table.Row{
			t.Description,
			FormatAmount(t.Amount),
			t.Category,
			t.Frequency,
			FormatDate(t.StartDate),
			end,
			next,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m RecurringModel) View() string {
	if m.loading && m.templates == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading recurring expenses...")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	switch {
	case m.state != recurringStateBrowse && m.form != nil:
		title := "Add Recurring Expense"
		if m.state == recurringStateDelete {
			title = "Delete Recurring Expense"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render(title+"\n\n"+m.form.View()))
	case m.previewFor != uuid.Nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Render(m.viewPreview()))
	}

	if m.err != "" {
		content = errorStyle.Render(m.err) + "\n" + content
	} else if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	content = titleStyle.Render("Recurring Expenses") + "\n\n" + content + "\n" + faintStyle.Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m RecurringModel) viewPreview() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("Next %d days", previewDays)))

	if len(m.preview) == 0 {
		b.WriteString("No occurrences")
		return b.String()
	}

	for _, d := range m.preview {
		fmt.Fprintf(&b, "%s  %s\n", FormatDate(d), faintStyle.Render(d.Weekday().String()))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Messages

type recurringMsg struct {
	id        uint64
	templates []api.RecurringExpense
	err       error
}

type previewMsg struct {
	id         uint64
	templateID uuid.UUID
	dates      []calendar.Date
	err        error
}

type recurringMutationMsg struct {
	done     string
	fallback string
	err      error
}

func loadRecurringCmd(deps Deps, id uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		templates, err := deps.Client.RecurringExpenses(ctx)

		return recurringMsg{id: id, templates: templates, err: err}
	}
}

func previewCmd(deps Deps, id uint64, templateID uuid.UUID, from, to calendar.Date) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		dates, err := deps.Client.Occurrences(ctx, templateID, from, to)

		return previewMsg{id: id, templateID: templateID, dates: dates, err: err}
	}
}

func addRecurringCmd(deps Deps, req api.RecurringRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		_, err := deps.Client.AddRecurring(ctx, req)

		return recurringMutationMsg{done: "Recurring expense added", fallback: "Failed to add recurring expense", err: err}
	}
}

func deleteRecurringCmd(deps Deps, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		err := deps.Client.DeleteRecurring(ctx, id)

		return recurringMutationMsg{done: "Recurring expense deleted successfully", fallback: "Failed to delete recurring expense", err: err}
	}
}
