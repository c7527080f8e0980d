package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dotpop/internal/core"
)

// colorStyles maps screen colors to ANSI 256-color styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorRed:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBlue:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorYellow:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorPurple:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorOrange:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorFrame:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
}

// styleFor returns the style of a screen color, plain for unknown values.
func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is split into runs of one color so a run costs a single escape
// sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		runColor := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				sb.WriteString(styleFor(runColor).Render(run.String()))
				run.Reset()
				runColor = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			sb.WriteString(styleFor(runColor).Render(run.String()))
			run.Reset()
		}
	}
	return sb.String()
}
