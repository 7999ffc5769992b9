package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"photofeed/internal/ui/state"
	"photofeed/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state   *state.AppState
	width   int
	height  int
	help    help.Model
	keys    help.KeyMap
	input   textinput.Model
	spinner spinner.Model
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, keys help.KeyMap) *ViewModel {
	return &ViewModel{
		state: appState,
		help:  help.New(),
		keys:  keys,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// UpdateTextInput updates the search box model
func (vm *ViewModel) UpdateTextInput(input textinput.Model) {
	vm.input = input
}

// UpdateSpinner updates the busy indicator model
func (vm *ViewModel) UpdateSpinner(s spinner.Model) {
	vm.spinner = s
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	helpView := vm.help.ShortHelpView(vm.keys.ShortHelp())
	if vm.state.ShowHelp {
		helpView = vm.help.FullHelpView(vm.keys.FullHelp())
	}

	return views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		Input:          vm.input.View(),
		Spinner:        vm.spinner.View(),
		Visibility:     vm.state.Visibility,
		InFlight:       vm.state.InFlight,
		Results:        vm.state.Results,
		LastTerm:       vm.state.LastTerm,
		SelectedIndex:  vm.state.SelectedIndex,
		ViewportOffset: vm.state.ViewportOffset,
		ViewportHeight: vm.state.ViewportHeight,
		StatusMessage:  vm.state.StatusMessage,
		LastError:      vm.state.LastError,
		HelpView:       helpView,
	}
}
