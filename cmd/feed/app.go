package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/transfer-feed/internal/logger"
	"github.com/rovshanmuradov/transfer-feed/internal/ui"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/router"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/screen"
)

// AppModel is the root model: it owns the router and pumps poller
// updates from the channel into the screens.
type AppModel struct {
	router  *router.Router
	updates <-chan tea.Msg
	logs    *logger.LogBuffer
	width   int
	height  int
}

func NewAppModel(updates <-chan tea.Msg, logs *logger.LogBuffer, opts screen.TransfersOptions) *AppModel {
	opts.Logs = logs
	return &AppModel{
		router:  router.New(screen.NewTransfersScreen(opts)),
		updates: updates,
		logs:    logs,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Init(),
		ui.Listen(m.updates),
		ui.TickLogs(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case ui.RouterMsg:
		return m, m.handleNavigation(msg.To)

	case ui.TransfersMsg:
		cmds = append(cmds, ui.Listen(m.updates))

	case ui.LogTickMsg:
		cmds = append(cmds, ui.TickLogs())
	}

	var cmd tea.Cmd
	m.router, cmd = m.router.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *AppModel) handleNavigation(route ui.Route) tea.Cmd {
	switch route {
	case ui.RouteLogs:
		if m.router.Depth() > 1 || m.logs == nil {
			return nil
		}
		return m.router.Push(screen.NewLogsScreen(m.logs))
	case ui.RouteTransfers:
		return m.router.Pop()
	default:
		return nil
	}
}

func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.router.View()
}
