package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"photofeed/internal/domain"
)

// PhotoRenderer handles rendering of a single result line
type PhotoRenderer struct {
	styles           *Styles
	showDescriptions bool
}

// NewPhotoRenderer creates a new photo renderer
func NewPhotoRenderer(styles *Styles, showDescriptions bool) *PhotoRenderer {
	return &PhotoRenderer{
		styles:           styles,
		showDescriptions: showDescriptions,
	}
}

// RenderPhoto renders one record, clipped to width
func (pr *PhotoRenderer) RenderPhoto(index int, photo domain.Photo, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	title := photo.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s%3d. %s", cursor, index+1, pr.styles.PhotoTitle.Render(title))

	if pr.showDescriptions {
		if desc := singleLine(photo.Description); desc != "" {
			line += "  " + pr.styles.PhotoDesc.Render(desc)
		}
	}
	line += "  " + pr.styles.PhotoURL.Render(photo.URL)

	if width > 0 {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	if selected {
		line = pr.styles.SelectionBg.Render(line)
	}
	return line
}

// singleLine collapses runs of whitespace so a description fits one row
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
