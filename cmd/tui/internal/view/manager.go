package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/expense"
)

type managerState int

const (
	managerStateBrowse managerState = iota
	managerStateFilter
	managerStateEdit
	managerStateDelete
)

// ManagerModel lists every expense with client-side filtering and sorting,
// and edits or deletes the selected one. Each mutation is followed by a full
// reload.
type ManagerModel struct {
	CommonModel
	deps Deps

	state managerState
	table table.Model
	form  *huh.Form

	all        []*expense.Expense
	visible    []*expense.Expense
	categories []string
	seq        requestSeq
	loading    bool

	filter    expense.Filter
	filterIn  *filterFields
	sortKey   expense.SortKey
	sortOrder expense.SortOrder

	editing *expense.Expense
	fields  *expenseFields
	confirm *bool

	status string
	err    string
}

func NewManagerModel(deps Deps) ManagerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 16},
		{Title: "Description", Width: 32},
		{Title: "Notes", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	m := ManagerModel{
		deps:      deps,
		table:     t,
		filterIn:  &filterFields{},
		sortKey:   expense.SortByDate,
		sortOrder: expense.Descending,
		loading:   true,
		confirm:   new(bool),
	}
	m.seq.next()

	return m
}

func (m ManagerModel) Title() string { return "Manage Expenses" }

func (m ManagerModel) ShortHelp() string {
	switch m.state {
	case managerStateFilter, managerStateEdit:
		return "Navigate form | Esc: cancel"
	case managerStateDelete:
		return "←/→: choose | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | e: edit | d: delete | f: filter | c: clear | s: sort by | o: order | r: refresh"
}

func (m ManagerModel) Init() tea.Cmd {
	return tea.Batch(loadExpensesCmd(m.deps, m.seq.last), loadCategoriesCmd(m.deps))
}

func (m ManagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesMsg:
		if !m.seq.isLatest(msg.id) {
			return m, nil
		}

		m.loading = false

		if msg.err != nil {
			m.err = userError(msg.err, "Failed to load expenses")
			return m, nil
		}

		m.err = ""
		m.all = api.ToDomain(msg.expenses)
		m.refreshTable()

		return m, nil

	case categoriesMsg:
		if msg.err == nil {
			m.categories = msg.categories
		}

		return m, nil

	case mutationMsg:
		m.state = managerStateBrowse
		m.form = nil
		m.editing = nil
		m.table.Focus()

		if msg.err != nil {
			m.err = userError(msg.err, msg.fallback)
			return m, nil
		}

		m.err = ""
		m.status = msg.done
		cmd := m.reload()

		return m, cmd

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}

	switch m.state {
	case managerStateBrowse:
		return m.updateBrowse(msg)
	case managerStateFilter:
		return m.updateFilter(msg)
	case managerStateEdit:
		return m.updateEdit(msg)
	case managerStateDelete:
		return m.updateDelete(msg)
	}

	return m, nil
}

func (m *ManagerModel) reload() tea.Cmd {
	m.loading = true
	return loadExpensesCmd(m.deps, m.seq.next())
}

func (m ManagerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			cmd := m.reload()
			return m, cmd
		case "f":
			m.form = filterForm(m.filterIn, m.categories)
			m.state = managerStateFilter
			m.table.Blur()

			return m, m.form.Init()
		case "c":
			*m.filterIn = filterFields{}
			m.filter = expense.Filter{}
			m.refreshTable()

			return m, nil
		case "s":
			m.sortKey = (m.sortKey + 1) % 2
			m.refreshTable()

			return m, nil
		case "o":
			m.sortOrder = (m.sortOrder + 1) % 2
			m.refreshTable()

			return m, nil
		case "e", "enter":
			return m.enterEdit()
		case "d", "delete":
			return m.enterDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ManagerModel) selected() *expense.Expense {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	return m.visible[idx]
}

func (m ManagerModel) enterEdit() (tea.Model, tea.Cmd) {
	e := m.selected()
	if e == nil {
		return m, nil
	}

	m.editing = e
	m.fields = fieldsFromExpense(api.FromExpense(e))

	fields := append([]huh.Field{descriptionInput(m.fields)}, detailFields(m.fields, m.categoriesWith(e.Category))...)
	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)
	m.state = managerStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

// categoriesWith keeps a category that was removed from the list selectable
// for records that still carry it.
func (m ManagerModel) categoriesWith(current string) []string {
	for _, c := range m.categories {
		if c == current {
			return m.categories
		}
	}

	return append([]string{current}, m.categories...)
}

func (m ManagerModel) enterDelete() (tea.Model, tea.Cmd) {
	e := m.selected()
	if e == nil {
		return m, nil
	}

	m.editing = e
	*m.confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q (%s on %s)?", e.Description, FormatAmount(e.Amount), FormatDate(e.Date))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirm),
		),
	).WithShowHelp(false)
	m.state = managerStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ManagerModel) cancel() (tea.Model, tea.Cmd) {
	m.state = managerStateBrowse
	m.form = nil
	m.editing = nil
	m.table.Focus()

	return m, nil
}

// updateForm forwards msg to the open form. done is true once the form was
// submitted.
func (m *ManagerModel) updateForm(msg tea.Msg) (cmd tea.Cmd, done, aborted bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return nil, false, true
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	return cmd, m.form.State == huh.StateCompleted, m.form.State == huh.StateAborted
}

func (m ManagerModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done, aborted := m.updateForm(msg)
	if aborted {
		return m.cancel()
	}

	if !done {
		return m, cmd
	}

	f, err := m.filterIn.filter()
	if err != nil {
		m.err = err.Error()
		return m.cancel()
	}

	m.err = ""
	m.filter = f
	m.refreshTable()

	return m.cancel()
}

func (m ManagerModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done, aborted := m.updateForm(msg)
	if aborted {
		return m.cancel()
	}

	if !done {
		return m, cmd
	}

	req, err := m.fields.request()
	if err != nil {
		m.err = err.Error()
		return m.cancel()
	}

	return m, updateExpenseCmd(m.deps, m.editing.ID, req)
}

func (m ManagerModel) updateDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, done, aborted := m.updateForm(msg)
	if aborted || (done && !*m.confirm) {
		return m.cancel()
	}

	if !done {
		return m, cmd
	}

	return m, deleteExpenseCmd(m.deps, m.editing.ID)
}

func (m *ManagerModel) refreshTable() {
	m.visible = expense.Sort(expense.Apply(m.all, m.filter), m.sortKey, m.sortOrder)

	rows := make([]table.Row, 0, len(m.visible))
	for _, e := range m.visible {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			FormatAmount(e.Amount),
			e.Category,
			e.Description,
			e.Notes,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m ManagerModel) View() string {
	if m.loading && m.all == nil {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	header := fmt.Sprintf(
		"Showing %d of %d | Sum: %s | Sort: %s",
		len(m.visible), len(m.all),
		activeStyle(FormatAmount(expense.Total(m.visible))),
		activeStyle(m.sortKey.String()+" "+m.sortOrder.String()),
	)

	if !m.filter.IsZero() {
		header += " | " + activeStyle("filtered")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != managerStateBrowse && m.form != nil {
		title := map[managerState]string{
			managerStateFilter: "Filter Expenses",
			managerStateEdit:   "Edit Expense",
			managerStateDelete: "Delete Expense",
		}[m.state]

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.err != "" {
		content = errorStyle.Render(m.err) + "\n" + content
	} else if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	content += "\n" + faintStyle.Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type expensesMsg struct {
	id       uint64
	expenses []api.Expense
	err      error
}

type mutationMsg struct {
	done     string
	fallback string
	err      error
}

func loadExpensesCmd(deps Deps, id uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		o, err := deps.Client.Overview(ctx)
		if err != nil {
			return expensesMsg{id: id, err: err}
		}

		return expensesMsg{id: id, expenses: o.Expenses}
	}
}

func updateExpenseCmd(deps Deps, id uuid.UUID, req api.ExpenseRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		_, err := deps.Client.UpdateExpense(ctx, id, req)

		return mutationMsg{done: "Expense updated", fallback: "Failed to update expense", err: err}
	}
}

func deleteExpenseCmd(deps Deps, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		err := deps.Client.DeleteExpense(ctx, id)

		return mutationMsg{done: "Expense deleted", fallback: "Failed to delete expense", err: err}
	}
}
