package achievements

import "slices"

// Facts are the inputs the unlock rules look at.
type Facts struct {
	LogEntries        int
	Reminders         int
	TotalXP           int
	CurrentStreak     int
	KPIsTotal         int
	KPIsCompleted     int
	EarlyBirdCheckins int
}

type rule struct {
	id   ID
	test func(Facts) bool
}

var rules = []rule{
	{FirstStep, func(f Facts) bool { return f.LogEntries > 0 }},
	{Centurion, func(f Facts) bool { return f.TotalXP >= 100 }},
	{XPHoarder1K, func(f Facts) bool { return f.TotalXP >= 1000 }},
	{Streak3, func(f Facts) bool { return f.CurrentStreak >= 3 }},
	{Streak7, func(f Facts) bool { return f.CurrentStreak >= 7 }},
	{DisciplineMaster, func(f Facts) bool { return f.KPIsTotal > 0 && f.KPIsCompleted == f.KPIsTotal }},
	{EarlyBird, func(f Facts) bool { return f.EarlyBirdCheckins >= 5 }},
	{Planner, func(f Facts) bool { return f.Reminders > 0 }},
}

// Evaluate returns the unlocked set after applying every rule to f, along with
// the ids that were newly unlocked in rule order. Held ids are never removed
// and the input slice is not modified.
func Evaluate(unlocked []ID, f Facts) ([]ID, []ID) {
	var newly []ID
	for _, r := range rules {
		if slices.Contains(unlocked, r.id) || slices.Contains(newly, r.id) {
			continue
		}
		if r.test(f) {
			newly = append(newly, r.id)
		}
	}
	if len(newly) == 0 {
		return unlocked, nil
	}
	out := make([]ID, 0, len(unlocked)+len(newly))
	out = append(out, unlocked...)
	out = append(out, newly...)
	return out, newly
}
