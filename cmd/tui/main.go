package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/client"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/logging"
)

type View int

const (
	ViewMenu      View = 0
	ViewAdd       View = 1
	ViewCalendar  View = 2
	ViewDashboard View = 3
	ViewManager   View = 4
	ViewRecurring View = 5
	ViewImport    View = 6
	ViewExport    View = 7
)

var menu = []struct {
	key   string
	view  View
	label string
}{
	{"1", ViewAdd, "Add Expense"},
	{"2", ViewCalendar, "Calendar"},
	{"3", ViewDashboard, "Dashboard"},
	{"4", ViewManager, "Manage Expenses"},
	{"5", ViewRecurring, "Recurring Expenses"},
	{"6", ViewImport, "Import CSV"},
	{"7", ViewExport, "Export CSV"},
}

// model routes keys and messages to the active screen. Screens are rebuilt
// on every visit so each one starts from fresh store data.
type model struct {
	deps    view.Deps
	appName string

	currentView View
	screen      tea.Model
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v View) (tea.Model, tea.Cmd) {
	switch v {
	case ViewAdd:
		m.screen = view.NewAddModel(m.deps)
	case ViewCalendar:
		m.screen = view.NewCalendarModel(m.deps)
	case ViewDashboard:
		m.screen = view.NewDashboardModel(m.deps)
	case ViewManager:
		m.screen = view.NewManagerModel(m.deps)
	case ViewRecurring:
		m.screen = view.NewRecurringModel(m.deps)
	case ViewImport:
		m.screen = view.NewImportModel(m.deps)
	case ViewExport:
		m.screen = view.NewExportModel(m.deps)
	default:
		return m, nil
	}

	m.currentView = v

	return m, m.screen.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			for _, item := range menu {
				if msg.String() == item.key {
					return m.open(item.view)
				}
			}

			return m, nil
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.currentView != ViewMenu && m.screen != nil {
		return m.screen.View()
	}

	s := m.appName + "\n\n"
	for _, item := range menu {
		s += fmt.Sprintf("%s. %s\n", item.key, item.label)
	}

	s += "\nq. Quit"

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := logging.NewFile(cfg.Client.LogFile, cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.SetDefault(logger)

	deps := view.Deps{
		Client:  client.New(cfg.Client.APIURL, cfg.Client.Timeout),
		Timeout: cfg.Client.Timeout,
		Today:   calendar.Today,
	}

	p := tea.NewProgram(model{deps: deps, appName: cfg.App.Name, currentView: ViewMenu}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
