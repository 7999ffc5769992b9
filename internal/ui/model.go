package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"photofeed/internal/config"
	"photofeed/internal/debounce"
	"photofeed/internal/domain"
	"photofeed/internal/eventbus"
	"photofeed/internal/ui/commands"
	"photofeed/internal/ui/handlers"
	"photofeed/internal/ui/state"
	"photofeed/internal/ui/viewmodels"
	"photofeed/internal/ui/views"
)

// reservedLines covers title, search box, status and help rows plus padding
const reservedLines = 10

// Model is the search view-model. Every field is owned by the bubbletea
// update loop; network work runs in commands returned from Update.
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState
	log    logrus.FieldLogger

	width  int
	height int
	keys   keyMap

	input   textinput.Model
	spinner spinner.Model

	debouncer    *debounce.Debouncer
	cmdExecutor  *commands.Executor
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	renderer     *views.Renderer
	pager        *PagerOps
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, cfg *config.Config, searcher commands.Searcher, bus eventbus.EventBus, log logrus.FieldLogger) *Model {
	if log == nil {
		log = logrus.StandardLogger()
	}
	appState := state.NewAppState()

	input := textinput.New()
	input.Placeholder = "tags, e.g. cats"
	input.CharLimit = 256
	input.Prompt = ""
	input.Focus()

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		log:          log,
		keys:         defaultKeyMap(),
		input:        input,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		debouncer:    debounce.New(cfg.Debounce()),
		cmdExecutor:  commands.NewExecutor(ctx, searcher, bus, log),
		eventHandler: handlers.NewEventHandler(appState),
		renderer:     views.NewRenderer(cfg.UISettings.ShowDescriptions),
		pager:        NewPagerOps(),
	}
	m.viewModel = viewmodels.NewViewModel(appState, m.keys)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// SearchTerm returns the current raw search text
func (m *Model) SearchTerm() string {
	return m.state.SearchTerm
}

// SetSearchTerm replaces the search text as if the user had typed it
func (m *Model) SetSearchTerm(term string) tea.Cmd {
	m.input.SetValue(term)
	return m.termChanged()
}

// SearchResults returns the current result list; empty before the first search
func (m *Model) SearchResults() []domain.Photo {
	return m.state.Results
}

// IsBusy reports whether a search is in flight
func (m *Model) IsBusy() bool {
	return m.state.IsBusy()
}

// Visibility returns the busy indicator state
func (m *Model) Visibility() domain.Visibility {
	return m.state.Visibility
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 14
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounce.SettledMsg:
		return m, m.handleSettled(msg)

	case commands.SearchResultMsg:
		return m, m.handleSearchResult(msg)

	case spinner.TickMsg:
		if !m.state.IsBusy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("pager failed")
			m.state.LastError = msg.err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.UpdateTextInput(m.input)
	m.viewModel.UpdateSpinner(m.spinner)
	return m.renderer.Render(m.viewModel.BuildViewState())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.state.ShowHelp = !m.state.ShowHelp
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.state.MoveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.state.MoveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.state.MoveSelection(-m.state.ViewportHeight)
		return m, nil
	case key.Matches(msg, m.keys.PageDn):
		m.state.MoveSelection(m.state.ViewportHeight)
		return m, nil
	case key.Matches(msg, m.keys.Details):
		if photo, ok := m.state.SelectedPhoto(); ok {
			return m, m.pager.showPhotoCmd(photo)
		}
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		return m, m.SetSearchTerm("")
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, tea.Batch(cmd, m.termChanged())
}

// termChanged restarts the quiet period when the search text differs
// from the last recorded edit
func (m *Model) termChanged() tea.Cmd {
	value := m.input.Value()
	if value == m.state.SearchTerm {
		return nil
	}
	m.state.SearchTerm = value
	return m.debouncer.Push(value)
}

func (m *Model) handleSettled(msg debounce.SettledMsg) tea.Cmd {
	term, ok := m.debouncer.Settle(msg)
	if !ok {
		return nil
	}

	if m.bus != nil {
		m.bus.Publish(eventbus.SearchRequestedEvent{Term: term})
	}
	wasBusy := m.state.IsBusy()
	cmd := m.cmdExecutor.ExecuteSearch(term)
	m.syncBusy()

	if !wasBusy {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *Model) handleSearchResult(msg commands.SearchResultMsg) tea.Cmd {
	photos, apply := m.cmdExecutor.Complete(msg)
	if apply {
		m.state.SetResults(msg.Term, photos)
	}
	m.syncBusy()
	return nil
}

// syncBusy copies the executor's state into the busy flag
func (m *Model) syncBusy() {
	m.state.Visibility = m.cmdExecutor.Visibility()
	m.state.InFlight = m.cmdExecutor.InFlight()
}

// updateViewportHeight calculates the available height for the result list
func (m *Model) updateViewportHeight() {
	m.state.ViewportHeight = m.height - reservedLines
	if m.state.ViewportHeight < 1 {
		m.state.ViewportHeight = 1
	}
	m.state.EnsureSelectedVisible()
}
