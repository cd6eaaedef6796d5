package progress

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/proyo/internal/skilltree"
)

// SocialMediaPenalty is the penalty the proactive coach watches for.
const SocialMediaPenalty = skilltree.PenaltySocialMedia

// Plan is the set of actions and KPIs a user tracks.
type Plan struct {
	PositiveActions []Action `json:"positiveActions"`
	NegativeActions []Action `json:"negativeActions"`
	KPIs            []KPI    `json:"kpis"`
}

// DefaultPlan returns the built-in plan used when no personalised plan is available.
func DefaultPlan() Plan {
	return Plan{
		PositiveActions: []Action{
			{"Rutina completa", 10},
			{"Entrenamiento", 5},
			{"Dormir antes de 00:00", 5},
			{"Publicar contenido", 10},
			{"Estudiar 30 min", 5},
			{"Acción consciente (pareja/familia)", 5},
			{"Meditar o reflexionar", 3},
			{"Romper mal hábito", 10},
			{"Día sin procrastinar", 10},
			{"Sesión de Foco de 25 min", 10},
		},
		NegativeActions: []Action{
			{skilltree.PenaltyMissedGoal, -10},
			{"Dormir después de 01:00", -5},
			{"Gasto impulsivo", -10},
			{SocialMediaPenalty, -15},
		},
		KPIs: []KPI{
			{"Salud", "Ejercicio 3x semana", false},
			{"Sueño", "Dormir antes de 00:00 (5/7)", false},
			{"Finanzas", "Ahorro semanal ₲100.000", false},
			{"Productividad", "4h foco real (4/5 días)", false},
			{"Contenido", "2 publicaciones / semana", false},
			{"Relaciones", "1 acción consciente semanal", false},
		},
	}
}

// Sanitize drops malformed entries: blank or duplicate keys, positive actions
// with xp <= 0 and negative actions with xp >= 0. KPIs come back incomplete.
func (p Plan) Sanitize() Plan {
	return Plan{
		PositiveActions: sanitizeActions(p.PositiveActions, func(xp int) bool { return xp > 0 }),
		NegativeActions: sanitizeActions(p.NegativeActions, func(xp int) bool { return xp < 0 }),
		KPIs:            sanitizeKPIs(p.KPIs),
	}
}

// Empty reports whether the plan has nothing to track.
func (p Plan) Empty() bool {
	return len(p.PositiveActions) == 0 && len(p.NegativeActions) == 0 && len(p.KPIs) == 0
}

func sanitizeActions(in []Action, signOK func(int) bool) []Action {
	seen := make(map[string]bool, len(in))
	out := make([]Action, 0, len(in))
	for _, a := range in {
		a.Description = strings.TrimSpace(a.Description)
		if a.Description == "" || seen[a.Description] || !signOK(a.XP) {
			continue
		}
		seen[a.Description] = true
		out = append(out, a)
	}
	return out
}

func sanitizeKPIs(in []KPI) []KPI {
	seen := make(map[string]bool, len(in))
	out := make([]KPI, 0, len(in))
	for _, k := range in {
		k.Indicator = strings.TrimSpace(k.Indicator)
		if k.Indicator == "" || seen[k.Indicator] {
			continue
		}
		seen[k.Indicator] = true
		k.Completed = false
		out = append(out, k)
	}
	return out
}

// NormalizeName trims and capitalises a display name.
func NormalizeName(name string) string {
	// Casers keep state between calls, so each call gets its own.
	return cases.Title(language.Und, cases.NoLower).String(strings.TrimSpace(name))
}

func clonePlan(p Plan) Plan {
	return Plan{
		PositiveActions: slices.Clone(p.PositiveActions),
		NegativeActions: slices.Clone(p.NegativeActions),
		KPIs:            slices.Clone(p.KPIs),
	}
}
