package state

import (
	"photofeed/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Search data
	SearchTerm string         // raw text of the search box
	LastTerm   string         // last term sent to the feed
	Results    []domain.Photo // replaced wholesale on each applied search

	// Selection state
	SelectedIndex int

	// Busy indicator
	Visibility domain.Visibility
	InFlight   int

	// UI state
	ViewportOffset int // offset for scrolling
	ViewportHeight int // available height for the result list
	StatusMessage  string
	LastError      string
	ShowHelp       bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Results:        []domain.Photo{},
		Visibility:     domain.VisibilityHidden,
		ViewportHeight: 10,
	}
}

// IsBusy reports whether the busy flag is set
func (s *AppState) IsBusy() bool {
	return s.Visibility == domain.VisibilityVisible
}

// SetResults replaces the result list and resets the selection
func (s *AppState) SetResults(term string, photos []domain.Photo) {
	if photos == nil {
		photos = []domain.Photo{}
	}
	s.Results = photos
	s.LastTerm = term
	s.SelectedIndex = 0
	s.ViewportOffset = 0
	s.LastError = ""
}

// SelectedPhoto returns the highlighted record, if any
func (s *AppState) SelectedPhoto() (domain.Photo, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Results) {
		return domain.Photo{}, false
	}
	return s.Results[s.SelectedIndex], true
}

// MoveSelection moves the cursor by delta, clamped to the result list,
// and keeps it inside the viewport
func (s *AppState) MoveSelection(delta int) {
	if len(s.Results) == 0 {
		s.SelectedIndex = 0
		return
	}
	s.SelectedIndex += delta
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	if s.SelectedIndex >= len(s.Results) {
		s.SelectedIndex = len(s.Results) - 1
	}
	s.EnsureSelectedVisible()
}

// EnsureSelectedVisible adjusts the viewport offset so the selection is shown
func (s *AppState) EnsureSelectedVisible() {
	height := s.ViewportHeight
	if height < 1 {
		height = 1
	}
	if s.SelectedIndex < s.ViewportOffset {
		s.ViewportOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ViewportOffset+height {
		s.ViewportOffset = s.SelectedIndex - height + 1
	}
	if s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
}
