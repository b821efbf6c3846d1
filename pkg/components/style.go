package components

import "github.com/charmbracelet/lipgloss"

// Shared palette for widget text and gauges.
const (
	ColorOK     = "#4CAF50"
	ColorWarn   = "#FF9800"
	ColorCrit   = "#F44336"
	ColorAccent = "#A78BFA"
	ColorInfo   = "#64B5F6"
	ColorMuted  = "#9CA3AF"
)

var (
	boldStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Bold renders s in bold.
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Dim renders s dimmed, for de-emphasized text such as key hints.
func Dim(s string) string {
	return faintStyle.Render(s)
}

// Fg renders s in the given hex foreground color.
func Fg(hex, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}

// StatusColor maps a ratio in [0,1] against warn/crit thresholds onto the
// shared palette.
func StatusColor(ratio, warnAt, critAt float64) string {
	switch {
	case critAt > 0 && ratio >= critAt:
		return ColorCrit
	case warnAt > 0 && ratio >= warnAt:
		return ColorWarn
	default:
		return ColorOK
	}
}
