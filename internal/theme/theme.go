// Package theme holds the lipgloss styles of the command-line output.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskbot/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for section titles.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// PanelStyle wraps a block of key/value lines.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// LabelStyle renders the key column of a key/value line.
var LabelStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Width(12)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorYellow)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed)
)

// HelpStyle is used for hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// CategoryStyle returns a color-coded style for a status category.
func CategoryStyle(category string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch category {
	case model.StatusCategoryToDo:
		return base.Foreground(ColorBlue)
	case model.StatusCategoryInProgress:
		return base.Foreground(ColorYellow)
	case model.StatusCategoryDone:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// Field is one line of a Panel.
type Field struct {
	Label string
	Value string
}

// Panel renders a titled, bordered list of fields. Empty values are skipped.
func Panel(title string, fields []Field) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		lines = append(lines, LabelStyle.Render(f.Label)+f.Value)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(title),
		PanelStyle.Render(strings.Join(lines, "\n")),
	)
}
