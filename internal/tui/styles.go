package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	// store pane
	glassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	metricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	metricValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
)

// sliderBar draws a track of width cells with a knob at frac in [0, 1].
func sliderBar(frac float64, width int, focused bool) string {
	if width < 3 {
		width = 3
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	pos := int(frac*float64(width-1) + 0.5)
	filled := strings.Repeat("━", pos)
	rest := strings.Repeat("─", width-pos-1)
	if focused {
		return cyan.Render(filled) + magenta.Render("●") + dim.Render(rest)
	}
	return dim.Render(filled) + white.Render("●") + dimmer.Render(rest)
}
