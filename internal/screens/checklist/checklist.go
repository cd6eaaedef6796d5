// Package checklist is a screen listing rows derived from the tracker state,
// where choosing a row applies an event.
package checklist

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/components"
	"github.com/abhisek/proyo/internal/ui/layout"
	"github.com/abhisek/proyo/internal/ui/theme"
)

// Options configures a checklist screen.
type Options struct {
	Title  string
	Intro  string
	Empty  string // shown when Rows returns nothing
	Action string // footer label for Enter
	Boxes  bool
	Rows   func(progress.State) []components.CheckItem
	// Choose applies the chosen row. Nil makes the list read-only.
	Choose func(ctx context.Context, t *tracker.Service, key string) (tracker.Result, error)
	// Footer is an optional summary under the list.
	Footer func(progress.State) string
	// Add, when set, opens a screen on "a".
	Add func() screen.Screen
}

// Screen is a checklist bound to the tracker.
type Screen struct {
	opts    Options
	tracker *tracker.Service
	list    components.Checklist
	footer  string
	busy    bool
	errMsg  string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates a checklist screen.
func New(t *tracker.Service, opts Options) *Screen {
	s := &Screen{opts: opts, tracker: t}
	s.list.NoBoxes = !opts.Boxes
	return s
}

func (s *Screen) Init() tea.Cmd {
	s.refresh()
	return nil
}

func (s *Screen) Title() string {
	return s.opts.Title
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}}
	if s.opts.Choose != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: s.opts.Action})
	}
	if s.opts.Add != nil {
		hints = append(hints, layout.KeyHint{Key: "a", Description: "Add"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Items returns the rows currently shown.
func (s *Screen) Items() []components.CheckItem {
	return s.list.Items
}

func (s *Screen) refresh() {
	st, err := s.tracker.State()
	if err != nil {
		s.errMsg = err.Error()
		s.list.SetItems(nil)
		return
	}
	s.list.SetItems(s.opts.Rows(st))
	if s.opts.Footer != nil {
		s.footer = s.opts.Footer(st)
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ResultMsg:
		s.busy = false
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.refresh()
		return s, nil

	case components.ChosenMsg:
		if s.busy || s.opts.Choose == nil {
			return s, nil
		}
		s.busy = true
		key, t, choose := msg.Key, s.tracker, s.opts.Choose
		return s, screen.Apply(s.opts.Title, func(ctx context.Context) (tracker.Result, error) {
			return choose(ctx, t, key)
		})

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "a":
			if s.opts.Add != nil {
				next := s.opts.Add()
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	if s.opts.Intro != "" {
		b.WriteString(theme.Hint.Width(cw).Render(s.opts.Intro) + "\n\n")
	}
	if len(s.list.Items) == 0 {
		b.WriteString(theme.Hint.Render(s.opts.Empty))
	} else {
		b.WriteString(s.list.View(cw))
	}
	if s.footer != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.footer))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Bad.Render(s.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+b.String())
}
