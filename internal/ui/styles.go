package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions for the host chrome and the pages
type Styles struct {
	Title       lipgloss.Style
	Body        lipgloss.Style
	Dim         lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Body:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}
