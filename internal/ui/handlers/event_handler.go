package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"photofeed/internal/eventbus"
	"photofeed/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{
		state: appState,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SearchRequestedEvent:
		// a new term supersedes the last failure
		h.state.LastError = ""

	case eventbus.SearchStartedEvent:
		h.state.StatusMessage = fmt.Sprintf("Searching for %q...", e.Term)

	case eventbus.SearchCompletedEvent:
		if !e.Applied {
			return nil
		}
		switch e.Results {
		case 0:
			h.state.StatusMessage = fmt.Sprintf("No photos for %q", e.Term)
		case 1:
			h.state.StatusMessage = fmt.Sprintf("1 photo for %q", e.Term)
		default:
			h.state.StatusMessage = fmt.Sprintf("%d photos for %q", e.Results, e.Term)
		}

	case eventbus.SearchFailedEvent:
		if e.Stale {
			return nil
		}
		h.state.LastError = fmt.Sprintf("search for %q failed: %v", e.Term, e.Err)

	case eventbus.ConfigLoadedEvent:
		h.state.StatusMessage = fmt.Sprintf("Config loaded from %s", e.Path)

	case eventbus.ConfigSavedEvent:
		h.state.StatusMessage = fmt.Sprintf("Config saved to %s", e.Path)
	}

	return nil
}
