package component

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"
	"github.com/rovshanmuradov/transfer-feed/internal/feed"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/style"
)

// StatusHeader is the one-line banner above the transfer list: title,
// poll status, number of transfers and the time of the last update.
type StatusHeader struct {
	title     string
	status    feed.Status
	count     int
	updatedAt time.Time
	errText   string
	spinner   spinner.Model
	width     int
	now       func() time.Time

	container lipgloss.Style
	titleSt   lipgloss.Style
	loading   lipgloss.Style
	ok        lipgloss.Style
	failed    lipgloss.Style
	muted     lipgloss.Style
}

func NewStatusHeader(title string) *StatusHeader {
	palette := style.DefaultPalette()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(palette.Warning)

	return &StatusHeader{
		title:   title,
		status:  feed.StatusLoading,
		spinner: sp,
		now:     time.Now,

		container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 2),
		titleSt: lipgloss.NewStyle().Foreground(palette.Primary).Bold(true),
		loading: lipgloss.NewStyle().Foreground(palette.Warning),
		ok:      lipgloss.NewStyle().Foreground(palette.Success).Bold(true),
		failed:  lipgloss.NewStyle().Foreground(palette.Error).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(palette.TextMuted),
	}
}

// Tick starts the loading spinner
func (sh *StatusHeader) Tick() tea.Cmd {
	return sh.spinner.Tick
}

// Update advances the spinner while a poll is in flight
func (sh *StatusHeader) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	sh.spinner, cmd = sh.spinner.Update(msg)
	return cmd
}

// SetState copies what the header shows from a poll state
func (sh *StatusHeader) SetState(state feed.State) {
	sh.status = state.Status
	sh.count = len(state.Transfers)
	sh.errText = state.Err
	if !state.UpdatedAt.IsZero() {
		sh.updatedAt = state.UpdatedAt
	}
}

func (sh *StatusHeader) SetWidth(width int) {
	sh.width = width
}

func (sh *StatusHeader) View() string {
	parts := []string{
		sh.titleSt.Render(sh.title),
		sh.renderStatus(),
		sh.muted.Render(fmt.Sprintf("%d transfers", sh.count)),
	}
	if !sh.updatedAt.IsZero() {
		parts = append(parts, sh.muted.Render("updated "+humanize.RelTime(sh.updatedAt, sh.now(), "ago", "from now")))
	}

	content := ""
	for i, p := range parts {
		if i > 0 {
			content += sh.muted.Render(" | ")
		}
		content += p
	}

	if sh.width > 4 {
		return sh.container.Width(sh.width - 2).Render(content)
	}
	return sh.container.Render(content)
}

func (sh *StatusHeader) renderStatus() string {
	switch sh.status {
	case feed.StatusLoading:
		return sh.spinner.View() + sh.loading.Render(" Updating...")
	case feed.StatusError:
		return sh.failed.Render("● " + sh.errText)
	default:
		return sh.ok.Render("● Live")
	}
}

// Height is the number of terminal lines the header takes
func (sh *StatusHeader) Height() int {
	return 3
}
