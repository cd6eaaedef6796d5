// Package onboarding collects the user's name and goals.
package onboarding

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/screens/form"
	"github.com/abhisek/proyo/internal/tracker"
)

const intro = "Cuéntanos qué quieres lograr. Tu coach armará un plan de acciones y KPIs a tu medida."

// New returns the onboarding form. After a successful onboarding the stack
// is reset to the screen built by next.
func New(t *tracker.Service, next func() screen.Screen) *form.Form {
	fields := []form.Field{
		{Label: "Nombre", Placeholder: "¿Cómo te llamas?", Required: true, CharLimit: 40},
		{Label: "Objetivo", Placeholder: "¿Qué quieres lograr en los próximos meses?", CharLimit: 200},
		{Label: "Motivación", Placeholder: "¿Por qué es importante para ti?", CharLimit: 200},
		{Label: "Expectativa", Placeholder: "¿Qué esperas de esta app?", CharLimit: 200},
	}
	submit := func(v []string) (tea.Cmd, error) {
		name := v[0]
		goals := progress.Goals{Objective: v[1], Motivation: v[2], Expectation: v[3]}
		return screen.Apply("onboard", func(ctx context.Context) (tracker.Result, error) {
			return t.Onboard(ctx, name, goals)
		}), nil
	}
	done := func(screen.ResultMsg) tea.Cmd {
		s := next()
		return func() tea.Msg { return router.ResetScreenMsg{Screen: s} }
	}
	return form.New("Bienvenido a Proyecto YO", intro, "Empezar", fields, submit, done)
}
