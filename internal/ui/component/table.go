package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rovshanmuradov/transfer-feed/internal/ui/style"
)

// TableColumn is a fixed or auto-sized column. Width 0 means auto.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// Table renders rows of cells with a movable selection. When the table
// is shorter than its rows it scrolls to keep the selection visible.
type Table struct {
	columns  []TableColumn
	rows     [][]string
	styles   map[int]lipgloss.Style
	width    int
	height   int
	selected int
	offset   int

	headerStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	selectedStyle lipgloss.Style
	borderStyle   lipgloss.Style
	showBorder    bool
}

func NewTable() *Table {
	palette := style.DefaultPalette()

	return &Table{
		styles: make(map[int]lipgloss.Style),

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		selectedStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		showBorder: true,
	}
}

func (t *Table) SetColumns(columns []TableColumn) *Table {
	t.columns = columns
	return t
}

// SetRows replaces the rows and any per-row styles. The selection is kept
// in range.
func (t *Table) SetRows(rows [][]string) *Table {
	t.rows = rows
	t.styles = make(map[int]lipgloss.Style)
	t.clampSelection()
	return t
}

// SetRowStyle overrides the style of one row until the next SetRows
func (t *Table) SetRowStyle(index int, s lipgloss.Style) *Table {
	if index >= 0 && index < len(t.rows) {
		t.styles[index] = s.Padding(0, 1)
	}
	return t
}

// SetSize sets the outer size; height counts the header and border too.
func (t *Table) SetSize(width, height int) *Table {
	t.width = width
	t.height = height
	t.clampSelection()
	return t
}

func (t *Table) SetShowBorder(show bool) *Table {
	t.showBorder = show
	return t
}

func (t *Table) MoveUp() *Table {
	if t.selected > 0 {
		t.selected--
	}
	t.clampSelection()
	return t
}

func (t *Table) MoveDown() *Table {
	if t.selected < len(t.rows)-1 {
		t.selected++
	}
	t.clampSelection()
	return t
}

// Top moves the selection to the first row
func (t *Table) Top() *Table {
	t.selected = 0
	t.offset = 0
	return t
}

func (t *Table) Selected() int { return t.selected }

func (t *Table) RowCount() int { return len(t.rows) }

// visibleRows is the number of data rows that fit the height.
// A zero height means unlimited.
func (t *Table) visibleRows() int {
	if t.height <= 0 {
		return len(t.rows)
	}
	rows := t.height - 2 // header and separator
	if t.showBorder {
		rows -= 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (t *Table) clampSelection() {
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}

	visible := t.visibleRows()
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+visible {
		t.offset = t.selected - visible + 1
	}
	if last := len(t.rows) - visible; t.offset > last {
		t.offset = last
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

func (t *Table) View() string {
	if len(t.columns) == 0 {
		return ""
	}
	widths := t.columnWidths()

	var b strings.Builder
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	b.WriteString(t.renderRow(headers, widths, t.headerStyle))
	b.WriteString("\n")

	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("─", w)
	}
	b.WriteString(strings.Join(separators, "┼"))

	end := t.offset + t.visibleRows()
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for i := t.offset; i < end; i++ {
		rowStyle := t.rowStyle
		if s, ok := t.styles[i]; ok {
			rowStyle = s
		}
		if i == t.selected {
			rowStyle = t.selectedStyle
		}
		b.WriteString("\n")
		b.WriteString(t.renderRow(t.rows[i], widths, rowStyle))
	}

	if t.showBorder {
		return t.borderStyle.Render(b.String())
	}
	return b.String()
}

func (t *Table) renderRow(cells []string, widths []int, s lipgloss.Style) string {
	rendered := make([]string, len(t.columns))
	for i, col := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		// Padding takes two columns out of the cell width
		inner := widths[i] - 2
		if inner < 1 {
			inner = 1
		}
		cell = runewidth.Truncate(cell, inner, "…")
		rendered[i] = s.Width(widths[i]).Align(col.Align).Render(cell)
	}
	return strings.Join(rendered, "│")
}

// columnWidths spreads the space left after fixed columns over auto columns
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	fixed, auto := 0, 0
	for i, col := range t.columns {
		widths[i] = col.Width
		if col.Width > 0 {
			fixed += col.Width
		} else {
			auto++
		}
	}
	if auto == 0 {
		return widths
	}

	available := t.width - fixed - (len(t.columns) - 1)
	if t.showBorder {
		available -= 2
	}
	each := 10
	if available > 0 && available/auto > each {
		each = available / auto
	}
	for i := range widths {
		if widths[i] <= 0 {
			widths[i] = each
		}
	}
	return widths
}
