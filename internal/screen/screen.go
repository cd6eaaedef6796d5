package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that take free text; while
// Capturing is true the app leaves "q" and "esc" to the screen.
type InputCapturer interface {
	Capturing() bool
}

// ResultMsg carries the outcome of a tracker call started by a screen.
type ResultMsg struct {
	Event  string
	Result tracker.Result
	Err    error
}

// Apply runs fn off the UI goroutine and reports its outcome as a ResultMsg.
func Apply(event string, fn func(context.Context) (tracker.Result, error)) tea.Cmd {
	return func() tea.Msg {
		res, err := fn(context.Background())
		return ResultMsg{Event: event, Result: res, Err: err}
	}
}
