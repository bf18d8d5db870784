package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles of one colour scheme.
type Theme struct {
	Accent   lipgloss.Color
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Added    lipgloss.Style
	Removed  lipgloss.Style
}

var accents = map[string]lipgloss.Color{
	"amd":    lipgloss.Color("#FF0000"),
	"intel":  lipgloss.Color("#0071C5"),
	"nvidia": lipgloss.Color("#76B900"),
}

// NewTheme builds the styles for a theme name. Unknown names fall back
// to amd.
func NewTheme(name string) Theme {
	accent, ok := accents[name]
	if !ok {
		accent = accents["amd"]
	}

	return Theme{
		Accent:   accent,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")).MarginTop(1),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(accent).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f")),
		Added:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f")),
		Removed:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
	}
}
