package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: paths, slugs, module names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for created files and inserted lines.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for skipped entries and lines requiring a manual edit.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed lines in diffs.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleBold styles headings and root names.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome and descriptions.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleAdded styles added diff lines.
	StyleAdded = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleRemoved styles removed diff lines.
	StyleRemoved = lipgloss.NewStyle().Foreground(ColorRed)
)

// Status words used for materialized files and injections.
const (
	StatusCreated  = "created"
	StatusSkipped  = "skipped"
	StatusInserted = "inserted"
	StatusPresent  = "present"
	StatusManual   = "manual edit required"
)

// StatusStyle returns the lipgloss style for a given status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated, StatusInserted:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped, StatusManual:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusPresent:
		return lipgloss.NewStyle().Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth keeps status words aligned after the path column.
const minPathColumnWidth = 48

// FormatStatusLine renders a path with a right-aligned, color-coded status suffix.
func FormatStatusLine(path, status string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}
	return StyleNoun.Render(path) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
