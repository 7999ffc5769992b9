// Package debounce turns a stream of raw text edits into search terms.
//
// A Debouncer is owned by the UI loop: Push is called on every edit and the
// returned command fires a SettledMsg once the quiet period elapses. Settle
// then applies, in order, the staleness check, trimming, suppression of a
// value equal to the previous one and the emptiness filter.
package debounce

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

// SettledMsg is delivered when a quiet period started by Push elapses
type SettledMsg struct {
	ID  int
	Tag uint64
}

// Debouncer is not safe for concurrent use
type Debouncer struct {
	id      int
	quiet   time.Duration
	tag     uint64
	pending string
	last    string
	seen    bool
}

// New creates a debouncer with the given quiet period
func New(quiet time.Duration) *Debouncer {
	return &Debouncer{
		id:    int(lastID.Add(1)),
		quiet: quiet,
	}
}

// Quiet returns the quiet period
func (d *Debouncer) Quiet() time.Duration {
	return d.quiet
}

// Push records raw as the latest value and restarts the quiet period
func (d *Debouncer) Push(raw string) tea.Cmd {
	d.tag++
	d.pending = raw
	id, tag := d.id, d.tag
	return tea.Tick(d.quiet, func(time.Time) tea.Msg {
		return SettledMsg{ID: id, Tag: tag}
	})
}

// Owns reports whether msg was produced by this debouncer
func (d *Debouncer) Owns(msg SettledMsg) bool {
	return msg.ID == d.id
}

// Settle returns the term to search for, or false when msg is stale or the
// value is filtered out
func (d *Debouncer) Settle(msg SettledMsg) (string, bool) {
	if !d.Owns(msg) || msg.Tag != d.tag {
		return "", false
	}

	term := strings.TrimSpace(d.pending)
	if d.seen && term == d.last {
		return "", false
	}
	d.last, d.seen = term, true

	if term == "" {
		return "", false
	}
	return term, true
}
