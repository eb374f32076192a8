package screen

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/transfer-feed/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestLogsScreenLevelFilter(t *testing.T) {
	buffer := logger.NewLogBuffer(10)
	buffer.Add(logger.LogEntry{Timestamp: time.Now(), Level: "INFO", Message: "Collected transfers"})
	buffer.Add(logger.LogEntry{Timestamp: time.Now(), Level: "ERROR", Message: "Poll failed"})

	s := NewLogsScreen(buffer)
	s.SetSize(120, 30)
	s.Init()

	view := s.View()
	assert.Contains(t, view, "Collected transfers")
	assert.Contains(t, view, "2 entries logged")

	s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}) // warn
	s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}) // error
	view = s.View()
	assert.NotContains(t, view, "Collected transfers")
	assert.Contains(t, view, "Poll failed")
}
