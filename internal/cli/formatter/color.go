// Package formatter renders planning results for the terminal.
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/route66/trip-service/internal/itinerary"
)

// Desert palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle maps a drive-time severity to a color.
func SeverityStyle(s itinerary.Severity) lipgloss.Style {
	switch s {
	case itinerary.SeverityRelaxed:
		return StyleBlue
	case itinerary.SeverityNormal:
		return StyleGreen
	case itinerary.SeverityElevated:
		return StyleYellow
	case itinerary.SeverityCritical:
		return StyleRed
	default:
		return StyleDim
	}
}

// GradeStyle colors a letter grade.
func GradeStyle(grade string) lipgloss.Style {
	switch grade {
	case "A":
		return StyleGreen
	case "B":
		return StyleBlue
	case "C":
		return StyleYellow
	case "D":
		return StyleOrange
	default:
		return StyleRed
	}
}

// Header renders an upper-case section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Hours formats a drive time like "5.3h".
func Hours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// Miles formats a distance like "264 mi".
func Miles(m float64) string {
	return fmt.Sprintf("%.0f mi", m)
}
