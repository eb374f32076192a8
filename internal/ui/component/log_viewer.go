package component

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/transfer-feed/internal/logger"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/style"
	"go.uber.org/zap/zapcore"
)

// LogViewer renders the tail of a logger.LogBuffer in a scrollable
// viewport. Entries below the minimum level are hidden.
type LogViewer struct {
	buffer     *logger.LogBuffer
	viewport   viewport.Model
	title      string
	limit      int
	minLevel   zapcore.Level
	showFields bool
	follow     bool
	width      int
	height     int

	palette        style.Palette
	container      lipgloss.Style
	titleStyle     lipgloss.Style
	timestampStyle lipgloss.Style
	loggerStyle    lipgloss.Style
	fieldStyle     lipgloss.Style
}

// NewLogViewer shows up to limit of the newest entries; limit <= 0 shows
// the whole buffer.
func NewLogViewer(buffer *logger.LogBuffer, title string, limit int) *LogViewer {
	palette := style.DefaultPalette()

	return &LogViewer{
		buffer:   buffer,
		viewport: viewport.New(50, 4),
		title:    title,
		limit:    limit,
		minLevel: zapcore.InfoLevel,
		follow:   true,

		palette: palette,
		container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Info).
			Padding(0, 1),
		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Info).
			Bold(true),
		timestampStyle: lipgloss.NewStyle().Foreground(palette.TextMuted),
		loggerStyle:    lipgloss.NewStyle().Foreground(palette.Secondary),
		fieldStyle:     lipgloss.NewStyle().Foreground(palette.TextSecondary),
	}
}

func (v *LogViewer) SetSize(width, height int) {
	v.width = width
	v.height = height

	// border, padding and the title line
	w := width - 4
	h := height - 3
	if w < 10 {
		w = 10
	}
	if h < 1 {
		h = 1
	}
	v.viewport.Width = w
	v.viewport.Height = h
	v.Refresh()
}

func (v *LogViewer) SetMinLevel(level zapcore.Level) {
	v.minLevel = level
	v.Refresh()
}

func (v *LogViewer) MinLevel() zapcore.Level { return v.minLevel }

// CycleLevel steps the minimum level debug -> info -> warn -> error -> debug
func (v *LogViewer) CycleLevel() {
	next := v.minLevel + 1
	if next > zapcore.ErrorLevel {
		next = zapcore.DebugLevel
	}
	v.SetMinLevel(next)
}

func (v *LogViewer) SetShowFields(show bool) {
	v.showFields = show
	v.Refresh()
}

// Update scrolls the viewport. Scrolling away from the bottom stops
// following new entries until the bottom is reached again.
func (v *LogViewer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	v.follow = v.viewport.AtBottom()
	return cmd
}

func (v *LogViewer) ScrollUp() {
	v.viewport.LineUp(1)
	v.follow = v.viewport.AtBottom()
}

func (v *LogViewer) ScrollDown() {
	v.viewport.LineDown(1)
	v.follow = v.viewport.AtBottom()
}

// Refresh reloads the entries from the buffer
func (v *LogViewer) Refresh() {
	lines := v.Lines()
	if len(lines) == 0 {
		v.viewport.SetContent(v.timestampStyle.Render("No logs at " + levelName(v.minLevel) + " or above"))
		return
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
	if v.follow {
		v.viewport.GotoBottom()
	}
}

// Lines returns the formatted entries that pass the level filter,
// oldest first.
func (v *LogViewer) Lines() []string {
	if v.buffer == nil {
		return nil
	}
	entries := v.buffer.GetRecentLogs(v.limit)
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !v.visible(entry) {
			continue
		}
		lines = append(lines, v.format(entry))
	}
	return lines
}

func (v *LogViewer) View() string {
	v.Refresh()

	title := fmt.Sprintf("%s (%s+)", v.title, levelName(v.minLevel))
	content := lipgloss.JoinVertical(lipgloss.Left,
		v.titleStyle.Render(title),
		v.viewport.View(),
	)
	return v.container.Width(v.width - 2).Render(content)
}

func (v *LogViewer) visible(entry logger.LogEntry) bool {
	level, err := zapcore.ParseLevel(strings.ToLower(entry.Level))
	if err != nil {
		return true
	}
	return level >= v.minLevel
}

func (v *LogViewer) format(entry logger.LogEntry) string {
	levelStyle := lipgloss.NewStyle().Foreground(v.palette.LevelColor(entry.Level))

	parts := []string{
		v.timestampStyle.Render(entry.Timestamp.Format("15:04:05")),
		levelStyle.Bold(true).Render(fmt.Sprintf("%-5s", entry.Level)),
	}
	if entry.Logger != "" {
		parts = append(parts, v.loggerStyle.Render(entry.Logger))
	}
	parts = append(parts, levelStyle.Render(entry.Message))

	if v.showFields && len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%v", k, entry.Fields[k])
		}
		parts = append(parts, v.fieldStyle.Render(strings.Join(pairs, " ")))
	}
	return strings.Join(parts, " ")
}

func levelName(level zapcore.Level) string {
	return level.CapitalString()
}
