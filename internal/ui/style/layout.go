package style

import "github.com/charmbracelet/lipgloss"

var palette = DefaultPalette()

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(0, 1)
)

var (
	LoadingStyle   = lipgloss.NewStyle().Foreground(palette.Warning).Italic(true)
	ErrorStyle     = lipgloss.NewStyle().Foreground(palette.Error).Bold(true)
	SuccessStyle   = lipgloss.NewStyle().Foreground(palette.Success)
	MutedStyle     = lipgloss.NewStyle().Foreground(palette.TextMuted)
	LabelStyle     = lipgloss.NewStyle().Foreground(palette.TextSecondary).Bold(true)
	LinkStyle      = lipgloss.NewStyle().Foreground(palette.Link).Underline(true)
	PumpStyle      = lipgloss.NewStyle().Foreground(palette.Pump).Bold(true)
	MarketCapStyle = lipgloss.NewStyle().Foreground(palette.MarketCap)
)
