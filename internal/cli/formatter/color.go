package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/proquote/internal/intelligence"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

	StyleSignature = lipgloss.NewStyle().Foreground(ColorPurple).Italic(true)
)

// StateColor returns the style for a translation outcome.
func StateColor(state intelligence.TranslationState) lipgloss.Style {
	switch state {
	case intelligence.StateReady:
		return StyleGreen
	case intelligence.StateNeedsClarification:
		return StyleYellow
	case intelligence.StateRejected:
		return StyleRed
	default:
		return StyleDim
	}
}

// StateIndicator returns a colored label such as "● READY".
func StateIndicator(state intelligence.TranslationState) string {
	label := strings.ToUpper(strings.ReplaceAll(string(state), "_", " "))
	if label == "" {
		label = "UNKNOWN"
	}
	return StateColor(state).Render("● " + label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
