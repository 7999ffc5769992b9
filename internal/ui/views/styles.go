package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Prompt      lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Spinner     lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	PhotoTitle  lipgloss.Style
	PhotoDesc   lipgloss.Style
	PhotoURL    lipgloss.Style
	SelectionBg lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // red
			MarginTop(1),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Help:    lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		PhotoTitle:  lipgloss.NewStyle().Bold(true),
		PhotoDesc:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PhotoURL:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")), // blue
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}
