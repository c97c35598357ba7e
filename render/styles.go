// Package render draws grids, routes and trees for terminals (lipgloss) and
// exports them to PDF (gofpdf).
package render

import "github.com/charmbracelet/lipgloss"

var (
	Walnut  = lipgloss.Color("#8D6E63")
	Leaf    = lipgloss.Color("#8BC34A")
	Shell   = lipgloss.Color("#FFC107")
	Sky     = lipgloss.Color("#2196F3")
	Berry   = lipgloss.Color("#e53935")
	Fog     = lipgloss.Color("#9E9E9E")
	Outline = lipgloss.Color("#2a3850")
)

// Theme holds the styles used by every renderer in this package.
type Theme struct {
	Cell     lipgloss.Style
	Visited  lipgloss.Style
	Current  lipgloss.Style
	Shortest lipgloss.Style
	Longest  lipgloss.Style
	Node     lipgloss.Style
	Full     lipgloss.Style
	Forager  lipgloss.Style
	Muted    lipgloss.Style
	Title    lipgloss.Style
	Frame    lipgloss.Style
}

// DefaultTheme returns the coloured theme.
func DefaultTheme() Theme {
	return Theme{
		Cell:     lipgloss.NewStyle().Width(3).Align(lipgloss.Right),
		Visited:  lipgloss.NewStyle().Width(3).Align(lipgloss.Right).Foreground(Leaf),
		Current:  lipgloss.NewStyle().Width(3).Align(lipgloss.Right).Bold(true).Reverse(true),
		Shortest: lipgloss.NewStyle().Foreground(Sky).Bold(true),
		Longest:  lipgloss.NewStyle().Foreground(Berry).Bold(true),
		Node:     lipgloss.NewStyle().Foreground(Walnut).Bold(true),
		Full:     lipgloss.NewStyle().Foreground(Shell),
		Forager:  lipgloss.NewStyle().Foreground(Berry).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(Fog),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Walnut),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Outline).
			Padding(0, 1),
	}
}
