package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/transfer-feed/internal/feed"
)

// TransfersMsg carries a poller state into the program
type TransfersMsg struct {
	State feed.State
}

// ExportedMsg reports the result of an export started from the UI
type ExportedMsg struct {
	Path string
	Err  error
}

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// LogTickMsg asks log panels to reload the buffer
type LogTickMsg time.Time

// LogRefreshInterval is how often log panels re-read the buffer
const LogRefreshInterval = time.Second

// Listen waits for the next message on ch. It returns nil once ch is
// closed, which ends the listening loop.
func Listen(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// TickLogs schedules the next LogTickMsg
func TickLogs() tea.Cmd {
	return tea.Tick(LogRefreshInterval, func(t time.Time) tea.Msg {
		return LogTickMsg(t)
	})
}

// Navigate returns a command that switches to route
func Navigate(route Route) tea.Cmd {
	return func() tea.Msg {
		return RouterMsg{To: route}
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteTransfers Route = iota
	RouteLogs
)

func (r Route) String() string {
	switch r {
	case RouteTransfers:
		return "transfers"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
