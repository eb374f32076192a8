package screen

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/transfer-feed/internal/logger"
	"github.com/rovshanmuradov/transfer-feed/internal/ui"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/component"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/router"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/style"
)

// LogsScreen shows the whole log buffer with a level filter
type LogsScreen struct {
	width      int
	height     int
	keyMap     ui.KeyMap
	buffer     *logger.LogBuffer
	viewer     *component.LogViewer
	helpBar    *component.HelpBar
	showFields bool
}

func NewLogsScreen(buffer *logger.LogBuffer) *LogsScreen {
	keyMap := ui.DefaultKeyMap()
	return &LogsScreen{
		keyMap:  keyMap,
		buffer:  buffer,
		viewer:  component.NewLogViewer(buffer, "Logs", 0),
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteLogs)),
	}
}

func (s *LogsScreen) Init() tea.Cmd {
	s.viewer.Refresh()
	return nil
}

func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Up):
			s.viewer.ScrollUp()
		case key.Matches(msg, s.keyMap.Down):
			s.viewer.ScrollDown()
		case key.Matches(msg, s.keyMap.CycleLevel):
			s.viewer.CycleLevel()
		case key.Matches(msg, s.keyMap.ToggleField):
			s.showFields = !s.showFields
			s.viewer.SetShowFields(s.showFields)
		default:
			return s, s.viewer.Update(msg)
		}
		return s, nil

	case tea.MouseMsg:
		return s, s.viewer.Update(msg)
	}
	return s, nil
}

func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
	s.viewer.SetSize(width, height-3)
}

func (s *LogsScreen) View() string {
	total, overwritten := uint64(0), uint64(0)
	if s.buffer != nil {
		total, overwritten = s.buffer.GetStats()
	}
	stats := style.MutedStyle.Render(fmt.Sprintf("%d entries logged, %d rotated out", total, overwritten))

	return lipgloss.JoinVertical(lipgloss.Left,
		style.TitleStyle.Render("Logs")+" "+stats,
		s.viewer.View(),
		s.helpBar.View(),
	)
}
