package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photofeed/internal/eventbus"
	"photofeed/internal/ui/state"
)

func TestHandleSearchEvents(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s)

	h.HandleEvent(eventbus.SearchStartedEvent{ID: 1, Term: "cats"})
	assert.Equal(t, `Searching for "cats"...`, s.StatusMessage)

	h.HandleEvent(eventbus.SearchCompletedEvent{ID: 1, Term: "cats", Results: 3, Applied: true})
	assert.Equal(t, `3 photos for "cats"`, s.StatusMessage)

	h.HandleEvent(eventbus.SearchCompletedEvent{ID: 0, Term: "cat", Results: 9, Applied: false})
	assert.Equal(t, `3 photos for "cats"`, s.StatusMessage, "stale completion leaves status alone")

	h.HandleEvent(eventbus.SearchCompletedEvent{ID: 2, Term: "dogs", Results: 1, Applied: true})
	assert.Equal(t, `1 photo for "dogs"`, s.StatusMessage)

	h.HandleEvent(eventbus.SearchCompletedEvent{ID: 3, Term: "zzz", Applied: true})
	assert.Equal(t, `No photos for "zzz"`, s.StatusMessage)
}

func TestHandleSearchFailed(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s)

	h.HandleEvent(eventbus.SearchFailedEvent{ID: 4, Term: "cats", Err: errors.New("http get: refused")})
	assert.Equal(t, `search for "cats" failed: http get: refused`, s.LastError)
}

func TestStaleFailureKeepsNewerResults(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s)

	h.HandleEvent(eventbus.SearchFailedEvent{ID: 1, Term: "cat", Err: errors.New("timeout"), Stale: true})
	assert.Empty(t, s.LastError)
}

func TestNewSearchClearsLastError(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s)

	h.HandleEvent(eventbus.SearchFailedEvent{ID: 1, Term: "cats", Err: errors.New("refused")})
	require.NotEmpty(t, s.LastError)

	h.HandleEvent(eventbus.SearchRequestedEvent{Term: "dogs"})
	assert.Empty(t, s.LastError)
}

func TestHandleConfigEvents(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s)

	h.HandleEvent(eventbus.ConfigLoadedEvent{Path: "/tmp/photofeed/config.toml"})
	assert.Equal(t, "Config loaded from /tmp/photofeed/config.toml", s.StatusMessage)

	h.HandleEvent(eventbus.ConfigSavedEvent{Path: "/tmp/photofeed/config.toml"})
	assert.Equal(t, "Config saved to /tmp/photofeed/config.toml", s.StatusMessage)
}
