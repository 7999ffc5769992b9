package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"photofeed/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Input          string // rendered search box
	Spinner        string // rendered spinner frame
	Visibility     domain.Visibility
	InFlight       int
	Results        []domain.Photo
	LastTerm       string
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	StatusMessage  string
	LastError      string
	HelpView       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	photoRender *PhotoRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showDescriptions bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		photoRender: NewPhotoRenderer(styles, showDescriptions),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")
	content.WriteString(r.styles.Prompt.Render("Search: ") + state.Input)
	content.WriteString("\n\n")

	switch {
	case len(state.Results) == 0 && state.LastTerm == "":
		content.WriteString(r.styles.Dim.Render("Type a tag to search the public photo feed."))
	case len(state.Results) == 0:
		content.WriteString(r.styles.Dim.Render(fmt.Sprintf("No photos tagged %q.", state.LastTerm)))
	default:
		content.WriteString(r.renderResultList(state))
	}

	content.WriteString("\n")
	if state.LastError != "" {
		content.WriteString(r.styles.StatusError.Render("Error: " + state.LastError))
	} else if state.StatusMessage != "" {
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	if state.HelpView != "" {
		content.WriteString("\n\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

// renderTitleLine renders the title with the busy indicator right-aligned
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("photofeed")
	if state.Visibility != domain.VisibilityVisible {
		return logo
	}

	indicator := r.styles.Spinner.Render(state.Spinner + " Searching")
	if state.InFlight > 1 {
		indicator += r.styles.Dim.Render(fmt.Sprintf(" (%d)", state.InFlight))
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + indicator
}

// renderResultList renders the visible window of results
func (r *Renderer) renderResultList(state ViewState) string {
	height := state.ViewportHeight
	if height < 1 {
		height = 1
	}
	start := state.ViewportOffset
	if start < 0 || start >= len(state.Results) {
		start = 0
	}
	end := start + height
	if end > len(state.Results) {
		end = len(state.Results)
	}

	width := state.Width - 4
	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.photoRender.RenderPhoto(i, state.Results[i], i == state.SelectedIndex, width))
	}
	if end < len(state.Results) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more", len(state.Results)-end)))
	}
	return strings.Join(lines, "\n")
}
