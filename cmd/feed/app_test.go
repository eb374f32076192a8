package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/transfer-feed/internal/feed"
	"github.com/rovshanmuradov/transfer-feed/internal/logger"
	"github.com/rovshanmuradov/transfer-feed/internal/ui"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppModelNavigation(t *testing.T) {
	logs := logger.NewLogBuffer(10)
	logs.Add(logger.LogEntry{Timestamp: time.Now(), Level: "INFO", Message: "Starting transfer poller"})
	m := NewAppModel(make(chan tea.Msg), logs, screen.TransfersOptions{})

	assert.Equal(t, "Initializing...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m.Update(ui.RouterMsg{To: ui.RouteLogs})
	assert.Equal(t, 2, m.router.Depth())
	assert.Contains(t, m.View(), "Starting transfer poller")

	// A second request does not stack another logs screen
	m.Update(ui.RouterMsg{To: ui.RouteLogs})
	assert.Equal(t, 2, m.router.Depth())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, m.router.Depth())
}

func TestAppModelForwardsUpdates(t *testing.T) {
	updates := make(chan tea.Msg, 1)
	m := NewAppModel(updates, nil, screen.TransfersOptions{})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})

	_, cmd := m.Update(ui.TransfersMsg{State: feed.State{Status: feed.StatusSuccess}})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "No transfers found")

	// Logs are unavailable without a buffer
	m.Update(ui.RouterMsg{To: ui.RouteLogs})
	assert.Equal(t, 1, m.router.Depth())
}
