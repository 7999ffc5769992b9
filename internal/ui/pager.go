package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"photofeed/internal/domain"
)

// pagerMsg contains the result of a detail pager command
type pagerMsg struct {
	err error
}

// PagerOps shows photo details in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (o *PagerOps) SetProgram(p *tea.Program) {
	o.program = p
}

// ShowPhoto opens the details of photo in the pager
func (o *PagerOps) ShowPhoto(photo domain.Photo) error {
	if o.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := o.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = o.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(photoDetails(photo)))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showPhotoCmd runs the pager outside the update loop
func (o *PagerOps) showPhotoCmd(photo domain.Photo) tea.Cmd {
	return func() tea.Msg {
		return pagerMsg{err: o.ShowPhoto(photo)}
	}
}

// photoDetails formats a record for the pager
func photoDetails(photo domain.Photo) string {
	var b strings.Builder
	title := photo.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))))
	b.WriteString("\n\n")
	b.WriteString("Thumbnail: ")
	b.WriteString(photo.URL)
	b.WriteString("\n\n")

	desc := strings.TrimSpace(photo.Description)
	if desc == "" {
		desc = "(no description)"
	}
	b.WriteString(desc)
	b.WriteString("\n")
	return b.String()
}
