package screen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/transfer-feed/internal/export"
	"github.com/rovshanmuradov/transfer-feed/internal/feed"
	"github.com/rovshanmuradov/transfer-feed/internal/logger"
	"github.com/rovshanmuradov/transfer-feed/internal/ui"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/component"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/router"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/style"
)

const (
	feedTitle        = "Recent Token Transfers"
	compactLogHeight = 8
	detailHeight     = 10
	compactLogLimit  = 50
)

// Refresher requests an extra poll pass; *feed.Poller satisfies it.
type Refresher interface {
	Refresh()
}

// Exporter writes transfers to disk; *export.TransferExporter satisfies it.
type Exporter interface {
	ExportTransfers(transfers []feed.TokenTransfer, options export.ExportOptions) (string, error)
}

type TransfersOptions struct {
	Refresher Refresher
	Exporter  Exporter
	ExportDir string
	// Logs enables the compact log panel when set
	Logs *logger.LogBuffer
}

// TransfersScreen shows the transfer window as a table with an optional
// detail pane and log panel.
type TransfersScreen struct {
	width  int
	height int
	keyMap ui.KeyMap
	opts   TransfersOptions

	header  *component.StatusHeader
	table   *component.Table
	helpBar *component.HelpBar
	logs    *component.LogViewer

	transfers   []feed.TokenTransfer
	status      feed.Status
	errText     string
	loaded      bool
	notice      string
	noticeErr   bool
	showDetails bool
	showLogs    bool
}

func NewTransfersScreen(opts TransfersOptions) *TransfersScreen {
	keyMap := ui.DefaultKeyMap()

	s := &TransfersScreen{
		keyMap:  keyMap,
		opts:    opts,
		header:  component.NewStatusHeader(feedTitle),
		table:   component.NewTable(),
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteTransfers)),
		status:  feed.StatusLoading,
	}
	s.table.SetColumns([]component.TableColumn{
		{Header: "Buyer", Width: 13, Align: lipgloss.Left},
		{Header: "Amount", Width: 18, Align: lipgloss.Right},
		{Header: "Token", Width: 0, Align: lipgloss.Left},
		{Header: "Market cap", Width: 13, Align: lipgloss.Right},
		{Header: "Time", Width: 21, Align: lipgloss.Left},
		{Header: "Links", Width: 28, Align: lipgloss.Left},
	})
	if opts.Logs != nil {
		s.logs = component.NewLogViewer(opts.Logs, "Recent Logs", compactLogLimit)
	}
	return s
}

func (s *TransfersScreen) Init() tea.Cmd {
	return s.header.Tick()
}

func (s *TransfersScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.TransfersMsg:
		return s, s.apply(msg.State)

	case spinner.TickMsg:
		if s.status != feed.StatusLoading {
			return s, nil
		}
		return s, s.header.Update(msg)

	case ui.ExportedMsg:
		if msg.Err != nil {
			s.setNotice(exportErrorText(msg.Err), true)
		} else {
			s.setNotice("Exported to "+msg.Path, false)
		}
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

// apply takes over a poller state. An error stays on screen through the
// following loading state and is cleared by the next success.
func (s *TransfersScreen) apply(state feed.State) tea.Cmd {
	prev := s.status
	s.status = state.Status
	s.header.SetState(state)

	switch state.Status {
	case feed.StatusLoading:
		if prev != feed.StatusLoading {
			return s.header.Tick()
		}
		return nil
	case feed.StatusSuccess:
		s.errText = ""
	case feed.StatusError:
		s.errText = state.Err
	}

	s.loaded = true
	s.transfers = state.Transfers
	s.table.SetRows(s.rows())
	for i, t := range s.transfers {
		if t.IsPumpToken {
			s.table.SetRowStyle(i, style.PumpStyle)
		}
	}
	if state.Changed {
		s.table.Top()
	}
	return nil
}

func (s *TransfersScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.Quit):
		return tea.Quit
	case key.Matches(msg, s.keyMap.Up):
		s.table.MoveUp()
	case key.Matches(msg, s.keyMap.Down):
		s.table.MoveDown()
	case key.Matches(msg, s.keyMap.Top):
		s.table.Top()
	case key.Matches(msg, s.keyMap.Details):
		s.showDetails = !s.showDetails
		s.layout()
	case key.Matches(msg, s.keyMap.ToggleLogs):
		if s.logs != nil {
			s.showLogs = !s.showLogs
			s.layout()
		}
	case key.Matches(msg, s.keyMap.Logs):
		if s.opts.Logs != nil {
			return ui.Navigate(ui.RouteLogs)
		}
	case key.Matches(msg, s.keyMap.Refresh):
		if s.opts.Refresher != nil {
			s.opts.Refresher.Refresh()
			s.setNotice("Refresh requested", false)
		}
	case key.Matches(msg, s.keyMap.Export):
		return s.exportCmd(export.ExportOptions{Format: export.FormatCSV})
	case key.Matches(msg, s.keyMap.ExportPump):
		return s.exportCmd(export.ExportOptions{Format: export.FormatJSON, OnlyPump: true})
	}
	return nil
}

func (s *TransfersScreen) exportCmd(opts export.ExportOptions) tea.Cmd {
	if s.opts.Exporter == nil {
		return nil
	}
	exporter := s.opts.Exporter
	opts.OutputDir = s.opts.ExportDir
	transfers := append([]feed.TokenTransfer(nil), s.transfers...)
	return func() tea.Msg {
		path, err := exporter.ExportTransfers(transfers, opts)
		return ui.ExportedMsg{Path: path, Err: err}
	}
}

func exportErrorText(err error) string {
	if errors.Is(err, export.ErrNothingToExport) {
		return "Nothing to export"
	}
	return "Export failed: " + err.Error()
}

func (s *TransfersScreen) setNotice(text string, isErr bool) {
	s.notice = text
	s.noticeErr = isErr
}

func (s *TransfersScreen) rows() [][]string {
	rows := make([][]string, len(s.transfers))
	for i, t := range s.transfers {
		marketCap := "-"
		if t.MarketCap > 0 {
			marketCap = "$" + feed.FormatMarketCap(t.MarketCap)
		}
		rows[i] = []string{
			feed.FormatAddress(t.Buyer),
			feed.FormatAmount(t.Amount),
			fmt.Sprintf("%s (%s)", t.TokenName, t.TokenSymbol),
			marketCap,
			t.Timestamp.Local().Format(feed.TimeLayout),
			feed.FormatLinkLabels(feed.TokenLinks(t)),
		}
	}
	return rows
}

func (s *TransfersScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.header.SetWidth(width)
	s.helpBar.SetWidth(width)
	s.layout()
}

// layout gives the table whatever height the other panels leave
func (s *TransfersScreen) layout() {
	tableHeight := s.height - s.header.Height() - 3 // notice and help bar
	if s.showDetails {
		tableHeight -= detailHeight
	}
	if s.showLogs && s.logs != nil {
		s.logs.SetSize(s.width, compactLogHeight)
		tableHeight -= compactLogHeight
	}
	if tableHeight < 5 {
		tableHeight = 5
	}
	s.table.SetSize(s.width, tableHeight)
}

func (s *TransfersScreen) View() string {
	sections := []string{s.header.View(), s.body()}

	if s.showDetails {
		if t, ok := s.selected(); ok {
			sections = append(sections, s.detailView(t))
		}
	}
	if s.notice != "" {
		if s.noticeErr {
			sections = append(sections, style.ErrorStyle.Render(s.notice))
		} else {
			sections = append(sections, style.SuccessStyle.Render(s.notice))
		}
	}
	if s.showLogs && s.logs != nil {
		sections = append(sections, s.logs.View())
	}
	sections = append(sections, s.helpBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// body shows the error in place of the list, like the list view always has
func (s *TransfersScreen) body() string {
	switch {
	case s.errText != "":
		return style.ErrorStyle.Render(s.errText)
	case !s.loaded:
		return style.LoadingStyle.Render("Updating...")
	case len(s.transfers) == 0:
		return style.MutedStyle.Render("No transfers found")
	default:
		return s.table.View()
	}
}

func (s *TransfersScreen) selected() (feed.TokenTransfer, bool) {
	i := s.table.Selected()
	if s.errText != "" || i < 0 || i >= len(s.transfers) {
		return feed.TokenTransfer{}, false
	}
	return s.transfers[i], true
}

func (s *TransfersScreen) detailView(t feed.TokenTransfer) string {
	label := func(name string) string {
		return style.LabelStyle.Render(fmt.Sprintf("%-11s", name))
	}

	lines := []string{
		feed.Describe(t),
		label("Signature") + t.Signature,
		label("Buyer") + t.Buyer + "  " + style.LinkStyle.Render(feed.ExplorerURL(t.Buyer)),
		label("Token") + feed.FormatTokenLabel(t),
		label("Mint") + t.TokenAddress,
		label("Time") + t.Timestamp.Local().Format(feed.TimeLayout),
	}
	for _, link := range feed.TokenLinks(t) {
		lines = append(lines, label(link.Label)+style.LinkStyle.Render(link.URL))
	}
	if t.IsPumpToken {
		lines[0] = style.PumpStyle.Render("pump ") + lines[0]
	}

	return style.PanelStyle.Render(strings.Join(lines, "\n"))
}
