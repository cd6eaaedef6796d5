// Package home is the dashboard: level, weekly progress and the main menu.
package home

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/levels"
	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/screens/focus"
	"github.com/abhisek/proyo/internal/screens/history"
	"github.com/abhisek/proyo/internal/screens/report"
	"github.com/abhisek/proyo/internal/screens/skillmap"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/components"
	"github.com/abhisek/proyo/internal/ui/layout"
	"github.com/abhisek/proyo/internal/ui/theme"
)

// Options wires the dashboard.
type Options struct {
	Tracker *tracker.Service
	// Reporter is optional; without it the report entry is hidden.
	Reporter      report.Reporter
	ReportTimeout time.Duration
	// Restart builds the first screen shown after logging out.
	Restart func() screen.Screen
}

// HomeScreen is the main dashboard.
type HomeScreen struct {
	opts   Options
	state  progress.State
	menu   components.Menu
	errMsg string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates the dashboard.
func New(opts Options) *HomeScreen {
	if opts.ReportTimeout <= 0 {
		opts.ReportTimeout = 30 * time.Second
	}
	return &HomeScreen{opts: opts}
}

func (h *HomeScreen) Init() tea.Cmd {
	st, err := h.opts.Tracker.State()
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.state = st
	h.errMsg = ""

	selected := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	if selected < len(h.menu.Items) {
		h.menu.Selected = selected
	}
	return nil
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if !h.state.Snapshot.TutorialCompleted {
		hints = append(hints, layout.KeyHint{Key: "x", Description: "Hide tips"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

// MenuLabels returns the labels of the current menu entries.
func (h *HomeScreen) MenuLabels() []string {
	out := make([]string, len(h.menu.Items))
	for i, it := range h.menu.Items {
		out[i] = it.Label
	}
	return out
}

func push(s screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

// pushLazy builds the screen only when the entry is chosen.
func pushLazy(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) items() []components.MenuItem {
	t := h.opts.Tracker
	var items []components.MenuItem

	if h.state.Snapshot.HasCheckedIn {
		items = append(items, components.MenuItem{Label: "TAREAS", Action: pushLazy(func() screen.Screen { return tasksScreen(t) })})
	} else {
		items = append(items, components.MenuItem{Label: "CHECK-IN", Action: pushLazy(func() screen.Screen { return checkinForm(t) })})
	}

	items = append(items,
		components.MenuItem{Label: "PENALIZACIONES", Action: pushLazy(func() screen.Screen { return penaltiesScreen(t) })},
		components.MenuItem{Label: "ACCIÓN LIBRE", Action: pushLazy(func() screen.Screen { return actionForm(t) })},
		components.MenuItem{
			Label:    "SESIÓN DE FOCO",
			Action:   pushLazy(func() screen.Screen { return focus.New(t, focus.DefaultDuration) }),
			Disabled: !h.state.Snapshot.HasCheckedIn,
		},
		components.MenuItem{
			Label:    "CHECK-OUT",
			Action:   pushLazy(func() screen.Screen { return checkoutForm(t) }),
			Disabled: !h.state.Snapshot.HasCheckedIn,
		},
		components.MenuItem{Label: "KPIs", Action: pushLazy(func() screen.Screen { return kpisScreen(t) })},
		components.MenuItem{Label: "HABILIDADES", Action: pushLazy(func() screen.Screen { return skillmap.New(t) })},
		components.MenuItem{Label: "LOGROS", Action: pushLazy(func() screen.Screen { return achievementsScreen(t) })},
		components.MenuItem{Label: "BITÁCORA", Action: pushLazy(func() screen.Screen { return history.New(t) })},
		components.MenuItem{Label: "RECORDATORIOS", Action: pushLazy(func() screen.Screen { return remindersScreen(t) })},
	)

	if h.opts.Reporter != nil {
		r, timeout := h.opts.Reporter, h.opts.ReportTimeout
		items = append(items, components.MenuItem{
			Label:  "INFORME IA",
			Action: pushLazy(func() screen.Screen { return report.New(t, r, timeout) }),
		})
	}

	items = append(items,
		components.MenuItem{Label: "AJUSTES", Action: push(newSettings(t, h.opts.Restart))},
		components.MenuItem{Label: "SALIR", Action: func() tea.Cmd { return tea.Quit }},
	)
	return items
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ResultMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		return h, h.Init()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "x":
			if h.state.Snapshot.TutorialCompleted {
				return h, nil
			}
			t := h.opts.Tracker
			return h, screen.Apply("tutorial", func(ctx context.Context) (tracker.Result, error) {
				return t.CompleteTutorial(ctx)
			})
		case "left", "h":
			msg = tea.KeyPressMsg{Code: tea.KeyUp}
		case "right", "l":
			msg = tea.KeyPressMsg{Code: tea.KeyDown}
		}
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	snap := h.state.Snapshot
	compact := height < 30

	var sections []string
	greeting := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Hola, " + snap.UserName)

	if compact {
		sections = append(sections, greeting)
	} else {
		mascot := RenderMascot(mascotFor(snap.HasCheckedIn, snap.WeeklyXP, levels.WeeklyRewardThreshold))
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center, mascot, "   ", greeting))
		sections = append(sections, renderLevelCard(snap, cw))
	}
	sections = append(sections, renderProgress(snap, cw))

	if !snap.TutorialCompleted && !compact {
		sections = append(sections, renderTutorial(cw))
	}
	sections = append(sections, renderMenu(h.menu.Items, h.menu.Selected, cw))

	if h.errMsg != "" {
		sections = append(sections, theme.Bad.Render(h.errMsg))
	}

	return components.CabinetFrame(lipgloss.JoinVertical(lipgloss.Center, sections...), width, height)
}

