package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"photofeed/internal/domain"
	"photofeed/internal/eventbus"
)

// Executor is the single-slot search command: it numbers invocations,
// tracks how many are in flight and reports each outcome on the bus.
// Invocations may overlap and are never cancelled; a completion is only
// applied when it belongs to a newer request than the last applied one.
//
// ExecuteSearch and Complete must be called from the UI loop.
type Executor struct {
	ctx       context.Context
	searcher  Searcher
	bus       eventbus.EventBus
	log       logrus.FieldLogger
	nextID    uint64
	appliedID uint64
	inFlight  int
	started   bool
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, searcher Searcher, bus eventbus.EventBus, log logrus.FieldLogger) *Executor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Executor{
		ctx:      ctx,
		searcher: searcher,
		bus:      bus,
		log:      log,
	}
}

// ExecuteSearch starts a search for term and returns the background command
func (e *Executor) ExecuteSearch(term string) tea.Cmd {
	e.nextID++
	e.inFlight++
	e.started = true

	e.log.WithFields(logrus.Fields{"id": e.nextID, "term": term}).Debug("search started")
	if e.bus != nil {
		e.bus.Publish(eventbus.SearchStartedEvent{ID: e.nextID, Term: term})
	}

	cmd := NewSearchCommand(e.ctx, e.searcher, e.nextID, term)
	return cmd.Execute()
}

// Complete records the end of an invocation. It returns the photos to show
// and whether they should replace the current results.
func (e *Executor) Complete(msg SearchResultMsg) ([]domain.Photo, bool) {
	if e.inFlight > 0 {
		e.inFlight--
	}

	fields := logrus.Fields{"id": msg.ID, "term": msg.Term}
	if msg.Err != nil {
		if e.bus != nil {
			e.bus.Publish(eventbus.SearchFailedEvent{
				ID:    msg.ID,
				Term:  msg.Term,
				Err:   msg.Err,
				Stale: msg.ID < e.appliedID,
			})
		} else {
			e.log.WithFields(fields).WithError(msg.Err).Error("search failed")
		}
		return nil, false
	}

	apply := msg.ID > e.appliedID
	if apply {
		e.appliedID = msg.ID
	}
	e.log.WithFields(fields).WithFields(logrus.Fields{
		"results": len(msg.Photos),
		"applied": apply,
	}).Debug("search completed")
	if e.bus != nil {
		e.bus.Publish(eventbus.SearchCompletedEvent{
			ID:      msg.ID,
			Term:    msg.Term,
			Results: len(msg.Photos),
			Applied: apply,
		})
	}

	if !apply {
		return nil, false
	}
	if msg.Photos == nil {
		return []domain.Photo{}, true
	}
	return msg.Photos, true
}

// IsExecuting reports whether any invocation is in flight
func (e *Executor) IsExecuting() bool {
	return e.inFlight > 0
}

// InFlight returns the number of invocations not yet completed
func (e *Executor) InFlight() int {
	return e.inFlight
}

// Visibility maps the execution state onto the busy indicator
func (e *Executor) Visibility() domain.Visibility {
	switch {
	case e.IsExecuting():
		return domain.VisibilityVisible
	case e.started:
		return domain.VisibilityCollapsed
	default:
		return domain.VisibilityHidden
	}
}
