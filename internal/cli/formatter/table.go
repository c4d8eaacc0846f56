package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is an aligned text table. Columns listed in Right are right-aligned,
// which is what money columns want.
type Table struct {
	Headers []string
	Rows    [][]string
	Right   []int
	Footer  []string
}

const colGap = 2

// Render draws the table with a header separator and, when Footer is set, a
// closing separator followed by the footer row. Widths are measured on
// visible text so styled cells line up.
func (t Table) Render() string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	measure(t.Footer)

	right := make(map[int]bool, len(t.Right))
	for _, i := range t.Right {
		right[i] = true
	}

	var b strings.Builder
	writeRow := func(row []string, style *lipgloss.Style) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if style != nil {
				cell = style.Render(cell)
			}
			if right[i] {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}
	separator := func() {
		for i, w := range widths {
			b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.Headers, &StyleHeader)
	separator()
	for _, row := range t.Rows {
		writeRow(row, nil)
	}
	if len(t.Footer) > 0 {
		separator()
		writeRow(t.Footer, &StyleBold)
	}
	return b.String()
}

// RenderTable renders a left-aligned table.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}
