// Package achievements holds the achievement catalog and the rules that unlock it.
package achievements

// ID identifies an achievement.
type ID string

const (
	FirstStep        ID = "first_step"
	Centurion        ID = "centurion"
	Streak3          ID = "streak_3"
	Streak7          ID = "streak_7"
	DisciplineMaster ID = "discipline_master"
	EarlyBird        ID = "early_bird"
	XPHoarder1K      ID = "xp_hoarder_1k"
	Planner          ID = "planner"
)

// Achievement is a catalog entry.
type Achievement struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Achievement{
	{FirstStep, "Primer Paso", "Completa tu primer día en Proyecto YO."},
	{Centurion, "Centurión", "Alcanza los 100 XP totales."},
	{Streak3, "En Racha", "Mantén una racha de 3 días de check-out."},
	{Streak7, "Imparable", "Mantén una racha de 7 días de check-out."},
	{DisciplineMaster, "Maestro de la Disciplina", "Completa todos tus KPIs en una semana."},
	{EarlyBird, "Madrugador", "Realiza el check-in antes de las 7:00 a.m. 5 veces."},
	{XPHoarder1K, "Acumulador de XP", "Alcanza los 1,000 XP totales."},
	{Planner, "Planificador", "Crea tu primer recordatorio personalizado."},
}

var byID = func() map[ID]Achievement {
	m := make(map[ID]Achievement, len(catalog))
	for _, a := range catalog {
		m[a.ID] = a
	}
	return m
}()

// All returns every achievement in display order.
func All() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns the achievement with the given ID.
func Get(id ID) (Achievement, bool) {
	a, ok := byID[id]
	return a, ok
}

// Icon returns the display icon for an achievement.
func (id ID) Icon() string {
	switch id {
	case FirstStep:
		return "👣"
	case Centurion:
		return "💯"
	case Streak3:
		return "🔥"
	case Streak7:
		return "⚡"
	case DisciplineMaster:
		return "🎯"
	case EarlyBird:
		return "🌅"
	case XPHoarder1K:
		return "💰"
	case Planner:
		return "🗓️"
	default:
		return "🏆"
	}
}
