package window

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the terminal title.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithBackground sets the colour of empty cells.
//
// Parameters:
//   - c: the background colour
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithBackground(c colorful.Color) WindowBuilderOption {
	return func(w *engineWindow) {
		w.background = c
	}
}

// WithScreen draws on an existing screen instead of opening the terminal.
// The screen must not be initialised yet; NewWindow calls Init on it.
//
// Parameters:
//   - screen: the screen, typically a tcell.SimulationScreen in tests
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithScreen(screen tcell.Screen) WindowBuilderOption {
	return func(w *engineWindow) {
		w.screen = screen
	}
}
