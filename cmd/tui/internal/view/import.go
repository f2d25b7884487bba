package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/api"
	"github.com/MrJamesThe3rd/tally/internal/client"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateConflicts
	importStateResult
)

// ImportModel uploads a CSV file. When rows look like duplicates of stored
// expenses the user picks which of them to keep before anything is written.
type ImportModel struct {
	CommonModel
	deps Deps

	state      importState
	filePicker filepicker.Model

	newRows      []api.ExpenseRequest
	conflicts    []api.Conflict
	conflictList list.Model
	selected     map[int]bool

	status string
	err    error
}

func NewImportModel(deps Deps) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		deps:       deps,
		filePicker: fp,
		selected:   make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Expenses" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateConflicts {
		return "Space: toggle | a: all | n: none | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateConflicts {
			return m.updateConflicts(msg)
		}

	case importResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = userError(msg.err, "Failed to import file")

			return m, nil
		}

		if msg.result.Imported != nil {
			m.state = importStateResult
			m.status = fmt.Sprintf("Imported %d expenses.", msg.result.Imported.Imported)

			return m, nil
		}

		m.newRows = msg.result.Conflicts.New
		m.conflicts = msg.result.Conflicts.Conflicts
		m.selected = make(map[int]bool)
		m.state = importStateConflicts

		items := make([]list.Item, len(m.conflicts))
		for i, c := range m.conflicts {
			items[i] = conflictItem{conflict: c, index: i}
		}

		delegate := conflictDelegate{selected: &m.selected}
		m.conflictList = list.New(items, delegate, 80, 20)
		m.conflictList.Title = fmt.Sprintf("Possible duplicates (%d new rows will be imported)", len(m.newRows))
		m.conflictList.SetShowStatusBar(false)
		m.conflictList.SetFilteringEnabled(false)
		m.conflictList.SetShowHelp(false)

		return m, nil

	case confirmResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = userError(msg.err, "Failed to import expenses")

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d expenses.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, importCmd(m.deps.Client, path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateResult, importStateConflicts:
		m.state = importStateFilePick
		m.err = nil
		m.status = ""
		m.conflicts = nil
		m.newRows = nil
		m.selected = make(map[int]bool)

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.conflictList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.conflicts {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.conflicts {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		m.state = importStateImporting
		m.status = "Saving..."

		return m, confirmCmd(m.deps.Client, keptRows(m.newRows, m.conflicts, m.selected))
	}

	var cmd tea.Cmd
	m.conflictList, cmd = m.conflictList.Update(msg)

	return m, cmd
}

// keptRows is every new row plus the conflicting rows the user selected.
func keptRows(newRows []api.ExpenseRequest, conflicts []api.Conflict, selected map[int]bool) []api.ExpenseRequest {
	rows := make([]api.ExpenseRequest, 0, len(newRows)+len(conflicts))
	rows = append(rows, newRows...)

	for i, c := range conflicts {
		if selected[i] {
			rows = append(rows, c.Incoming)
		}
	}

	return rows
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a CSV file to import:\n\n%s", m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateConflicts:
		return lipgloss.NewStyle().Padding(1).Render(
			m.conflictList.View() + "\n" + faintStyle.Render(m.ShortHelp()),
		)
	case importStateResult:
		style := errorStyle
		if m.err == nil {
			style = successStyle
		}

		return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

// Messages

type importResultMsg struct {
	result *client.ImportResult
	err    error
}

type confirmResultMsg struct {
	count int
	err   error
}

func importCmd(c *client.Client, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := c.Import(ctx, path, f)

		return importResultMsg{result: result, err: err}
	}
}

func confirmCmd(c *client.Client, rows []api.ExpenseRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		resp, err := c.ConfirmImport(ctx, rows)
		if err != nil {
			return confirmResultMsg{err: err}
		}

		return confirmResultMsg{count: resp.Imported}
	}
}

// Conflict list item

type conflictItem struct {
	conflict api.Conflict
	index    int
}

func (i conflictItem) Title() string       { return "" }
func (i conflictItem) Description() string { return "" }
func (i conflictItem) FilterValue() string { return "" }

// Conflict list delegate

type conflictDelegate struct {
	selected *map[int]bool
}

func (d conflictDelegate) Height() int                             { return 3 }
func (d conflictDelegate) Spacing() int                            { return 0 }
func (d conflictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conflictDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(conflictItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	incoming := item.conflict.Incoming
	existing := item.conflict.Existing

	fmt.Fprintf(w, "%s%s %s  %s  %s\n      Existing: %s  %s  %s [%s]\n",
		cursor, checkbox,
		FormatDate(incoming.Date), FormatAmount(incoming.Amount), incoming.Description,
		FormatDate(existing.Date), FormatAmount(existing.Amount), existing.Description, existing.Category,
	)
}
