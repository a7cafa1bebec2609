package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/xonecas/hitext/internal/theme"
)

// Styles are the status bar styles derived from a palette.
type Styles struct {
	Status lipgloss.Style
	Path   lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles builds the status bar styles for pal.
func NewStyles(pal theme.Palette) Styles {
	bg := lipgloss.Color(pal.Secondary.String())
	return Styles{
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Muted.String())).Background(bg),
		Path:   lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Accent.String())).Background(bg).Bold(true),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Error.String())).Background(bg),
	}
}
