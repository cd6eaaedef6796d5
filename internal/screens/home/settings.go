package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/screens/form"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/components"
	"github.com/abhisek/proyo/internal/ui/layout"
	"github.com/abhisek/proyo/internal/ui/theme"
)

// settingsScreen groups the less frequent account actions.
type settingsScreen struct {
	tracker    *tracker.Service
	restart    func() screen.Screen
	menu       components.Menu
	confirming string // label awaiting a second Enter
	status     string
	errMsg     string
}

type loggedOutMsg struct{ err error }

func newSettings(t *tracker.Service, restart func() screen.Screen) *settingsScreen {
	s := &settingsScreen{tracker: t, restart: restart}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "RECOMPENSA SEMANAL", Action: pushLazy(func() screen.Screen { return rewardForm(t) })},
		{Label: "CAMBIAR NOMBRE", Action: pushLazy(func() screen.Screen { return nameForm(t) })},
		{Label: "TEMA CLARO / OSCURO", Action: s.toggleTheme},
		{Label: "NUEVA SEMANA", Action: s.confirm("NUEVA SEMANA", s.resetWeek)},
		{Label: "REINICIAR PROGRESO", Action: s.confirm("REINICIAR PROGRESO", s.reset)},
		{Label: "CERRAR SESIÓN", Action: s.confirm("CERRAR SESIÓN", s.logout)},
	})
	return s
}

func (s *settingsScreen) Init() tea.Cmd {
	s.confirming = ""
	return nil
}

func (s *settingsScreen) Title() string {
	return "Ajustes"
}

func (s *settingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

// confirm runs fn only when the same entry is chosen twice in a row.
func (s *settingsScreen) confirm(label string, fn func() tea.Cmd) func() tea.Cmd {
	return func() tea.Cmd {
		if s.confirming != label {
			s.confirming = label
			s.status = "Pulsa Enter otra vez para confirmar " + strings.ToLower(label) + "."
			return nil
		}
		s.confirming = ""
		s.status = ""
		return fn()
	}
}

func (s *settingsScreen) toggleTheme() tea.Cmd {
	st, err := s.tracker.State()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	next := progress.ThemeLight
	if st.Snapshot.Theme == progress.ThemeLight {
		next = progress.ThemeDark
	}
	theme.Set(string(next))
	t := s.tracker
	return screen.Apply("theme", func(ctx context.Context) (tracker.Result, error) {
		return t.SetTheme(ctx, next)
	})
}

func (s *settingsScreen) resetWeek() tea.Cmd {
	t := s.tracker
	return screen.Apply("reset_week", func(ctx context.Context) (tracker.Result, error) {
		return t.ResetWeek(ctx)
	})
}

func (s *settingsScreen) reset() tea.Cmd {
	s.status = "Generando un plan nuevo..."
	t := s.tracker
	return screen.Apply("reset", func(ctx context.Context) (tracker.Result, error) {
		return t.Reset(ctx)
	})
}

func (s *settingsScreen) logout() tea.Cmd {
	t := s.tracker
	return func() tea.Msg {
		return loggedOutMsg{err: t.Logout(context.Background())}
	}
}

func (s *settingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ResultMsg:
		s.errMsg = ""
		s.status = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		switch msg.Event {
		case "reset":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "reset_week":
			s.status = "Semana reiniciada."
		}
		return s, nil

	case loggedOutMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		if s.restart == nil {
			return s, tea.Quit
		}
		next := s.restart()
		return s, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		prev := s.menu.Selected
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		if s.menu.Selected != prev {
			s.confirming = ""
			s.status = ""
		}
		return s, cmd
	}
	return s, nil
}

func (s *settingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	lines := []string{renderMenu(s.menu.Items, s.menu.Selected, cw)}
	if s.status != "" {
		lines = append(lines, "", theme.Hint.Render(s.status))
	}
	if s.errMsg != "" {
		lines = append(lines, "", theme.Bad.Render(s.errMsg))
	}
	return components.CabinetFrame(strings.Join(lines, "\n"), width, height)
}

func rewardForm(t *tracker.Service) screen.Screen {
	current := ""
	if st, err := t.State(); err == nil {
		current = st.Snapshot.CustomWeeklyReward
	}
	fields := []form.Field{{Label: "Recompensa", Placeholder: "p. ej. Cena fuera", Value: current, CharLimit: 80}}
	return form.New("Recompensa semanal", "Te la ganas al llegar a la meta de XP semanal.", "", fields,
		func(v []string) (tea.Cmd, error) {
			reward := v[0]
			return apply("set_reward", func(ctx context.Context) (tracker.Result, error) {
				return t.SetReward(ctx, reward)
			})
		}, nil)
}

func nameForm(t *tracker.Service) screen.Screen {
	current := ""
	if st, err := t.State(); err == nil {
		current = st.Snapshot.UserName
	}
	fields := []form.Field{{Label: "Nombre", Value: current, Required: true, CharLimit: 40}}
	return form.New("Cambiar nombre", "", "", fields, func(v []string) (tea.Cmd, error) {
		name := v[0]
		return apply("set_name", func(ctx context.Context) (tracker.Result, error) {
			return t.SetName(ctx, name)
		})
	}, nil)
}
