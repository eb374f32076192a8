package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/style"
)

const helpSeparator = " • "

// HelpBar shows the enabled key bindings of the current screen,
// wrapped to the available width.
type HelpBar struct {
	bindings []key.Binding
	width    int

	keyStyle       lipgloss.Style
	descStyle      lipgloss.Style
	sepStyle       lipgloss.Style
	containerStyle lipgloss.Style
}

func NewHelpBar() *HelpBar {
	palette := style.DefaultPalette()

	return &HelpBar{
		width: 80,

		keyStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),

		descStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		sepStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		containerStyle: lipgloss.NewStyle().
			Padding(0, 1),
	}
}

func (h *HelpBar) SetKeyBindings(bindings []key.Binding) *HelpBar {
	h.bindings = bindings
	return h
}

func (h *HelpBar) SetWidth(width int) *HelpBar {
	h.width = width
	return h
}

func (h *HelpBar) View() string {
	items := h.items()
	if len(items) == 0 {
		return ""
	}

	available := h.width - 2
	separator := h.sepStyle.Render(helpSeparator)
	sepWidth := lipgloss.Width(separator)

	var lines []string
	var line []string
	lineWidth := 0
	for _, item := range items {
		w := lipgloss.Width(item)
		if len(line) > 0 && lineWidth+sepWidth+w > available {
			lines = append(lines, strings.Join(line, separator))
			line, lineWidth = nil, 0
		}
		if len(line) > 0 {
			lineWidth += sepWidth
		}
		line = append(line, item)
		lineWidth += w
	}
	lines = append(lines, strings.Join(line, separator))

	return h.containerStyle.Render(strings.Join(lines, "\n"))
}

// items renders "key desc" for each enabled binding that has help text
func (h *HelpBar) items() []string {
	items := make([]string, 0, len(h.bindings))
	for _, binding := range h.bindings {
		if !binding.Enabled() {
			continue
		}
		help := binding.Help()
		if help.Key == "" || help.Desc == "" {
			continue
		}
		items = append(items, h.keyStyle.Render(help.Key)+" "+h.descStyle.Render(help.Desc))
	}
	return items
}
