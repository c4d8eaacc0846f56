package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Rupiah formats an amount in whole rupiah with dot grouping, e.g.
// "Rp 63.600.000".
func Rupiah(v float64) string {
	return "Rp " + humanize.FormatFloat("#.###,", v)
}

// Percent drops a trailing ".0" so 20 reads "20%" and 17.5 reads "17.5%".
func Percent(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0") + "%"
}

// Months renders "1 month" or "N months".
func Months(n int) string {
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("-")
	}
	return s
}
