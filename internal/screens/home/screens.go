package home

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/proyo/internal/achievements"
	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/screens/checklist"
	"github.com/abhisek/proyo/internal/screens/form"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/components"
)

// apply wraps a tracker call as a form submission.
func apply(event string, fn func(context.Context) (tracker.Result, error)) (tea.Cmd, error) {
	return screen.Apply(event, fn), nil
}

func checkinForm(t *tracker.Service) screen.Screen {
	fields := []form.Field{
		{Label: "Prioridades", Placeholder: "Las 3 cosas más importantes de hoy"},
		{Label: "Estado", Placeholder: "¿Cómo te sientes?"},
		{Label: "Meta del día", Placeholder: "Lo que cuenta como un buen día"},
		{Label: "Mini misión", Placeholder: "Un pequeño reto"},
	}
	return form.New("Check-in", "Abre el día y carga tus tareas.", "Check-in", fields,
		func(v []string) (tea.Cmd, error) {
			data := progress.CheckinData{Priorities: v[0], Status: v[1], DailyGoal: v[2], MiniMission: v[3]}
			return apply("checkin", func(ctx context.Context) (tracker.Result, error) {
				return t.CheckIn(ctx, data)
			})
		}, nil)
}

func checkoutForm(t *tracker.Service) screen.Screen {
	fields := []form.Field{
		{Label: "Reflexión", Placeholder: "¿Qué salió bien? ¿Qué mejorarías?", CharLimit: 500},
	}
	return form.New("Check-out", "Cierra el día. Tu coach analizará el tono de tu reflexión.", "Cerrar día", fields,
		func(v []string) (tea.Cmd, error) {
			reflection := v[0]
			return apply("checkout", func(ctx context.Context) (tracker.Result, error) {
				return t.CheckOut(ctx, reflection)
			})
		}, nil)
}

func actionForm(t *tracker.Service) screen.Screen {
	fields := []form.Field{
		{Label: "Acción", Placeholder: "Describe lo que hiciste", Required: true},
		{Label: "XP", Placeholder: "p. ej. 5 o -10", Numeric: true, Required: true, CharLimit: 5},
	}
	return form.New("Acción libre", "Suma o resta XP por algo fuera de tu plan.", "", fields,
		func(v []string) (tea.Cmd, error) {
			xp, err := strconv.Atoi(v[1])
			if err != nil || xp == 0 {
				return nil, errors.New("XP debe ser un número distinto de cero")
			}
			action := progress.Action{Description: v[0], XP: xp}
			return apply("adjust_xp", func(ctx context.Context) (tracker.Result, error) {
				return t.AdjustXP(ctx, action)
			})
		}, nil)
}

func tasksScreen(t *tracker.Service) screen.Screen {
	return checklist.New(t, checklist.Options{
		Title:  "Tareas del Día",
		Empty:  "Haz check-in para cargar tus tareas.",
		Action: "Toggle",
		Boxes:  true,
		Rows: func(st progress.State) []components.CheckItem {
			items := make([]components.CheckItem, len(st.DailyTasks))
			for i, task := range st.DailyTasks {
				items[i] = components.CheckItem{
					Key: task.Description, Label: task.Description,
					Detail: components.XPDetail(task.XP), Checked: task.Completed,
				}
			}
			return items
		},
		Choose: func(ctx context.Context, t *tracker.Service, key string) (tracker.Result, error) {
			return t.ToggleTask(ctx, key)
		},
		Footer: func(st progress.State) string {
			return fmt.Sprintf("Hoy: %+d XP", st.Snapshot.DailyXP)
		},
	})
}

func penaltiesScreen(t *tracker.Service) screen.Screen {
	return checklist.New(t, checklist.Options{
		Title:  "Penalizaciones",
		Intro:  "Sé honesto: registrar un tropiezo también es disciplina.",
		Empty:  "Tu plan no tiene penalizaciones.",
		Action: "Apply",
		Rows: func(st progress.State) []components.CheckItem {
			items := make([]components.CheckItem, len(st.Snapshot.NegativeActions))
			for i, a := range st.Snapshot.NegativeActions {
				items[i] = components.CheckItem{Key: a.Description, Label: a.Description, Detail: components.XPDetail(a.XP)}
			}
			return items
		},
		Choose: func(ctx context.Context, t *tracker.Service, key string) (tracker.Result, error) {
			return t.Penalize(ctx, key)
		},
		Footer: func(st progress.State) string {
			return fmt.Sprintf("Total: %d XP", st.Snapshot.TotalXP)
		},
	})
}

func kpisScreen(t *tracker.Service) screen.Screen {
	return checklist.New(t, checklist.Options{
		Title:  "KPIs Semanales",
		Empty:  "Tu plan no tiene KPIs.",
		Action: "Toggle",
		Boxes:  true,
		Rows: func(st progress.State) []components.CheckItem {
			items := make([]components.CheckItem, len(st.Snapshot.KPIs))
			for i, k := range st.Snapshot.KPIs {
				items[i] = components.CheckItem{Key: k.Indicator, Label: k.Indicator, Checked: k.Completed, Group: k.Area}
			}
			return items
		},
		Choose: func(ctx context.Context, t *tracker.Service, key string) (tracker.Result, error) {
			return t.ToggleKPI(ctx, key)
		},
		Footer: func(st progress.State) string {
			var parts []string
			for _, a := range progress.KPICompletionByArea(st.Snapshot.KPIs) {
				parts = append(parts, fmt.Sprintf("%s %d/%d", a.Area, a.Completed, a.Total))
			}
			return strings.Join(parts, " · ")
		},
	})
}

func achievementsScreen(t *tracker.Service) screen.Screen {
	return checklist.New(t, checklist.Options{
		Title: "Logros",
		Rows: func(st progress.State) []components.CheckItem {
			all := achievements.All()
			items := make([]components.CheckItem, len(all))
			for i, a := range all {
				unlocked := slices.Contains(st.Snapshot.UnlockedAchievements, a.ID)
				icon := "🔒"
				if unlocked {
					icon = a.ID.Icon()
				}
				items[i] = components.CheckItem{
					Key: string(a.ID), Label: icon + " " + a.Name, Detail: a.Description, Checked: unlocked,
				}
			}
			return items
		},
		Footer: func(st progress.State) string {
			return fmt.Sprintf("%d de %d desbloqueados", len(st.Snapshot.UnlockedAchievements), len(achievements.All()))
		},
	})
}

var dayLetters = [7]string{"L", "M", "X", "J", "V", "S", "D"}

func remindersScreen(t *tracker.Service) screen.Screen {
	return checklist.New(t, checklist.Options{
		Title:  "Recordatorios",
		Empty:  "Sin recordatorios. Pulsa a para crear uno.",
		Action: "Delete",
		Rows: func(st progress.State) []components.CheckItem {
			items := make([]components.CheckItem, len(st.Reminders))
			for i, r := range st.Reminders {
				var days strings.Builder
				for d, on := range r.Days {
					if on {
						days.WriteString(dayLetters[d])
					} else {
						days.WriteString("·")
					}
				}
				items[i] = components.CheckItem{Key: r.ID, Label: r.Time + "  " + r.Title, Detail: days.String()}
			}
			return items
		},
		Choose: func(ctx context.Context, t *tracker.Service, key string) (tracker.Result, error) {
			return t.DeleteReminder(ctx, key)
		},
		Add: func() screen.Screen { return reminderForm(t) },
	})
}

func reminderForm(t *tracker.Service) screen.Screen {
	fields := []form.Field{
		{Label: "Título", Placeholder: "p. ej. Entrenar", Required: true, CharLimit: 60},
		{Label: "Hora", Placeholder: "HH:MM", Required: true, CharLimit: 5},
		{Label: "Días", Placeholder: "LMXJVSD", Value: "LMXJVSD", CharLimit: 7},
	}
	return form.New("Nuevo recordatorio", "", "Crear", fields, func(v []string) (tea.Cmd, error) {
		if _, err := time.Parse("15:04", v[1]); err != nil {
			return nil, errors.New("la hora debe tener el formato HH:MM")
		}
		days, err := parseDayLetters(v[2])
		if err != nil {
			return nil, err
		}
		title, at := v[0], v[1]
		return apply("add_reminder", func(ctx context.Context) (tracker.Result, error) {
			return t.AddReminder(ctx, title, at, days)
		})
	}, nil)
}

// parseDayLetters reads Spanish weekday initials (L M X J V S D).
func parseDayLetters(s string) ([7]bool, error) {
	var days [7]bool
	for _, r := range strings.ToUpper(s) {
		i := slices.Index(dayLetters[:], string(r))
		if i < 0 {
			return days, fmt.Errorf("día desconocido %q", r)
		}
		days[i] = true
	}
	if !slices.Contains(days[:], true) {
		return days, errors.New("elige al menos un día")
	}
	return days, nil
}
