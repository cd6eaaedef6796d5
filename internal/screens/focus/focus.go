// Package focus runs a countdown focus session and awards it on completion.
package focus

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/components"
	"github.com/abhisek/proyo/internal/ui/layout"
	"github.com/abhisek/proyo/internal/ui/theme"
)

// DefaultDuration is a classic pomodoro.
const DefaultDuration = 25 * time.Minute

// timerTickMsg is sent every second while the timer runs. seq ties a tick
// to the run that scheduled it so a pause/resume does not double the rate.
type timerTickMsg struct {
	seq int
}

// FocusScreen is a pausable countdown.
type FocusScreen struct {
	tracker   *tracker.Service
	total     time.Duration
	remaining time.Duration
	running   bool
	seq       int
	done      bool
	message   string
}

var (
	_ screen.Screen          = (*FocusScreen)(nil)
	_ screen.KeyHintProvider = (*FocusScreen)(nil)
)

// New creates a focus session of length d.
func New(t *tracker.Service, d time.Duration) *FocusScreen {
	return &FocusScreen{tracker: t, total: d, remaining: d}
}

func (f *FocusScreen) Init() tea.Cmd {
	if f.done || f.running {
		return nil
	}
	return f.start()
}

func (f *FocusScreen) start() tea.Cmd {
	f.running = true
	f.seq++
	return tick(f.seq)
}

func tick(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return timerTickMsg{seq: seq} })
}

func (f *FocusScreen) Title() string {
	return "Sesión de Foco"
}

func (f *FocusScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Pause/Resume"},
		{Key: "Esc", Description: "Abandon"},
	}
}

// Remaining returns the time left.
func (f *FocusScreen) Remaining() time.Duration {
	return f.remaining
}

func (f *FocusScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if !f.running || msg.seq != f.seq {
			return f, nil
		}
		f.remaining -= time.Second
		if f.remaining > 0 {
			return f, tick(f.seq)
		}
		f.remaining = 0
		f.running = false
		f.done = true
		t := f.tracker
		return f, screen.Apply("focus", func(ctx context.Context) (tracker.Result, error) {
			return t.CompleteFocusSession(ctx)
		})

	case screen.ResultMsg:
		switch {
		case msg.Err != nil:
			f.message = msg.Err.Error()
		case len(msg.Result.Notices) > 0:
			f.message = msg.Result.Notices[0].Title
		default:
			f.message = "Sesión completada. Tu plan no tiene una acción de foco."
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return f, func() tea.Msg { return router.PopScreenMsg{} }
		case "space", " ":
			if f.done {
				return f, nil
			}
			if f.running {
				f.running = false
				return f, nil
			}
			return f, f.start()
		}
	}
	return f, nil
}

func (f *FocusScreen) View(width, height int) string {
	mins := int(f.remaining / time.Minute)
	secs := int(f.remaining % time.Minute / time.Second)
	clock := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("%02d:%02d", mins, secs))

	elapsed := 1 - float64(f.remaining)/float64(f.total)
	bar := components.NewProgressBar("", elapsed, components.ContentWidth(width)).View()

	status := theme.Hint.Render("Concéntrate en una sola tarea.")
	switch {
	case f.done && f.message != "":
		status = theme.Good.Render(f.message)
	case f.done:
		status = theme.Hint.Render("Guardando...")
	case !f.running:
		status = lipgloss.NewStyle().Foreground(theme.Accent).Render("En pausa")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, clock, "", bar, "", status))
}
