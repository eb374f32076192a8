package style

import "github.com/charmbracelet/lipgloss"

var (
	Cyan    = lipgloss.Color("#00E5FF") // Primary highlight
	Magenta = lipgloss.Color("#FF1B6B") // Pump tokens
	Yellow  = lipgloss.Color("#FFB500") // Warnings / loading
	Green   = lipgloss.Color("#2AFFAA") // Success
	Red     = lipgloss.Color("#FF5555") // Errors
	Blue    = lipgloss.Color("#3B82F6") // Links
	Purple  = lipgloss.Color("#8B5CF6") // Market cap

	Base03 = lipgloss.Color("#1B1D23") // Background
	Base02 = lipgloss.Color("#262831") // Selected row
	Base01 = lipgloss.Color("#6C7280") // Muted text
	Base2  = lipgloss.Color("#ECEFF4") // Primary text
	Base1  = lipgloss.Color("#B4BCC8") // Secondary text
)

// Palette groups the colors used by the feed screens
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color

	Background    lipgloss.Color
	BackgroundAlt lipgloss.Color
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextSecondary lipgloss.Color

	Pump      lipgloss.Color
	Link      lipgloss.Color
	MarketCap lipgloss.Color
}

// DefaultPalette returns the default color palette
func DefaultPalette() Palette {
	return Palette{
		Primary:   Cyan,
		Secondary: Magenta,
		Success:   Green,
		Error:     Red,
		Warning:   Yellow,
		Info:      Blue,

		Background:    Base03,
		BackgroundAlt: Base02,
		Text:          Base2,
		TextMuted:     Base01,
		TextSecondary: Base1,

		Pump:      Magenta,
		Link:      Blue,
		MarketCap: Purple,
	}
}

// LevelColor maps a capitalized zap level name to its display color.
func (p Palette) LevelColor(level string) lipgloss.Color {
	switch level {
	case "DEBUG":
		return p.TextMuted
	case "WARN":
		return p.Warning
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return p.Error
	default:
		return p.Text
	}
}
