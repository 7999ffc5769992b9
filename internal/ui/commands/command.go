package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"photofeed/internal/domain"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// Searcher runs one feed search; it may block on the network
type Searcher interface {
	Search(ctx context.Context, term string) ([]domain.Photo, error)
}

// SearchResultMsg carries the outcome of one search invocation back to the UI loop
type SearchResultMsg struct {
	ID     uint64
	Term   string
	Photos []domain.Photo
	Err    error
}

// SearchCommand fetches photos for a term off the UI loop
type SearchCommand struct {
	ctx      context.Context
	searcher Searcher
	id       uint64
	term     string
}

// NewSearchCommand creates a new search command
func NewSearchCommand(ctx context.Context, searcher Searcher, id uint64, term string) *SearchCommand {
	return &SearchCommand{
		ctx:      ctx,
		searcher: searcher,
		id:       id,
		term:     term,
	}
}

// Execute returns a tea.Cmd that performs the search in the background
func (c *SearchCommand) Execute() tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = SearchResultMsg{ID: c.id, Term: c.term, Err: fmt.Errorf("search panicked: %v", r)}
			}
		}()
		photos, err := c.searcher.Search(c.ctx, c.term)
		return SearchResultMsg{ID: c.id, Term: c.term, Photos: photos, Err: err}
	}
}
