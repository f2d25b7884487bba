package view

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/api"
)

type addState int

const (
	addStateLoading addState = iota
	addStateDescription
	addStateSuggesting
	addStateDetails
	addStateSaving
)

// AddModel records a new expense. The description is asked first so the
// category of the best matching rule can be pre-selected.
type AddModel struct {
	CommonModel
	deps Deps

	state      addState
	categories []string
	fields     *expenseFields
	form       *huh.Form
	suggestSeq requestSeq

	status string
	err    string
}

func NewAddModel(deps Deps) AddModel {
	return AddModel{
		deps:   deps,
		state:  addStateLoading,
		fields: &expenseFields{},
	}
}

func (m AddModel) Title() string { return "Add Expense" }

func (m AddModel) ShortHelp() string {
	if m.state == addStateDetails {
		return "Enter: next | Esc: edit description"
	}

	return "Enter: next | Esc: back"
}

func (m AddModel) Init() tea.Cmd {
	return loadCategoriesCmd(m.deps)
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesMsg:
		if msg.err != nil {
			m.err = userError(msg.err, "Failed to load categories")
			m.state = addStateDescription
			m.form = m.descriptionForm()

			return m, m.form.Init()
		}

		m.categories = msg.categories
		m.fields.reset(m.categories, m.deps.today())
		m.state = addStateDescription
		m.form = m.descriptionForm()

		return m, m.form.Init()

	case suggestionMsg:
		if !m.suggestSeq.isLatest(msg.id) || m.state != addStateSuggesting {
			return m, nil
		}

		if msg.err == nil && slices.Contains(m.categories, msg.category) {
			m.fields.Category = msg.category
		}

		m.state = addStateDetails
		m.form = m.detailsForm()

		return m, m.form.Init()

	case addResultMsg:
		if msg.err != nil {
			m.err = userError(msg.err, "Failed to add expense")
			m.state = addStateDetails
			m.form = m.detailsForm()

			return m, m.form.Init()
		}

		m.err = ""
		m.status = fmt.Sprintf("Added %s  %s", msg.expense.Description, FormatAmount(msg.expense.Amount))
		m.fields.reset(m.categories, m.deps.today())
		m.state = addStateDescription
		m.form = m.descriptionForm()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}
	}

	if m.form == nil || (m.state != addStateDescription && m.state != addStateDetails) {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m, Back
	case huh.StateCompleted:
		return m.advance()
	}

	return m, cmd
}

func (m AddModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state != addStateDetails {
		return m, Back
	}

	m.state = addStateDescription
	m.form = m.descriptionForm()

	return m, m.form.Init()
}

func (m AddModel) advance() (tea.Model, tea.Cmd) {
	switch m.state {
	case addStateDescription:
		m.status = ""
		m.state = addStateSuggesting
		id := m.suggestSeq.next()

		return m, suggestCmd(m.deps, id, m.fields.Description)
	case addStateDetails:
		req, err := m.fields.request()
		if err != nil {
			m.err = err.Error()
			m.form = m.detailsForm()

			return m, m.form.Init()
		}

		m.err = ""
		m.state = addStateSaving

		return m, addExpenseCmd(m.deps, req)
	}

	return m, nil
}

func (m AddModel) descriptionForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(descriptionInput(m.fields))).
		WithWidth(50).
		WithShowHelp(false)
}

func (m AddModel) detailsForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(detailFields(m.fields, m.categories)...)).
		WithWidth(50).
		WithShowHelp(false)
}

func (m AddModel) View() string {
	var body string

	switch m.state {
	case addStateLoading:
		body = "Loading categories..."
	case addStateSuggesting:
		body = fmt.Sprintf("Description: %s\n\nLooking up category...", m.fields.Description)
	case addStateSaving:
		body = "Saving..."
	case addStateDetails:
		body = fmt.Sprintf("Description: %s\n\n%s", m.fields.Description, m.form.View())
	default:
		body = m.form.View()
	}

	parts := []string{titleStyle.Render("Add Expense"), "", body}

	if m.err != "" {
		parts = append(parts, "", errorStyle.Render(m.err))
	}

	if m.status != "" {
		parts = append(parts, "", successStyle.Render(m.status))
	}

	parts = append(parts, "", faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Messages

type categoriesMsg struct {
	categories []string
	err        error
}

type suggestionMsg struct {
	id       uint64
	category string
	err      error
}

type addResultMsg struct {
	expense *api.Expense
	err     error
}

func loadCategoriesCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		categories, err := deps.Client.Categories(ctx)

		return categoriesMsg{categories: categories, err: err}
	}
}

func suggestCmd(deps Deps, id uint64, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		category, err := deps.Client.Suggest(ctx, description)

		return suggestionMsg{id: id, category: category, err: err}
	}
}

func addExpenseCmd(deps Deps, req api.ExpenseRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := deps.ctx()
		defer cancel()

		e, err := deps.Client.AddExpense(ctx, req)

		return addResultMsg{expense: e, err: err}
	}
}
