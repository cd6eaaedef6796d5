// Package xp applies signed XP changes to a user's running totals.
package xp

import (
	"math"

	"github.com/abhisek/proyo/internal/levels"
	"github.com/abhisek/proyo/internal/skilltree"
)

// Totals are the XP-derived counters of a snapshot.
type Totals struct {
	TotalXP     int
	WeeklyXP    int
	DailyXP     int
	SkillPoints int
	LevelIndex  int
}

// Result is the outcome of applying one delta.
type Result struct {
	Totals
	Delta        int // delta after resistances
	PointsEarned int // skill points gained (negative on clawback) before clamping
}

// Resist scales a negative delta by every unlocked resistance targeting the
// penalty, in unlock order, and rounds half away from zero. Positive deltas,
// an empty penalty and unknown skill ids leave the delta untouched.
func Resist(raw int, penalty string, unlocked []skilltree.ID) int {
	if raw >= 0 || penalty == "" {
		return raw
	}
	scaled := float64(raw)
	matched := false
	for _, id := range unlocked {
		r, ok := skilltree.ResistanceOf(id)
		if !ok || r.Target != penalty {
			continue
		}
		scaled *= 1 - r.Value
		matched = true
	}
	if !matched {
		return raw
	}
	return int(math.Round(scaled))
}

// Apply adds raw XP to t. When penalty names the penalty action being applied,
// resistances from unlocked skills are taken into account first.
//
// Total XP is floored at zero; weekly and daily XP are not. One skill point is
// granted per rank boundary crossed upward and clawed back per boundary crossed
// downward, never going below zero. The level index is re-derived from the
// new total in both directions.
func Apply(t Totals, raw int, penalty string, unlocked []skilltree.ID, ladder []levels.Level) Result {
	delta := Resist(raw, penalty, unlocked)

	next := t
	next.TotalXP = max(0, t.TotalXP+delta)
	next.WeeklyXP = t.WeeklyXP + delta
	next.DailyXP = t.DailyXP + delta

	earned := next.TotalXP/levels.XPPerRank - t.TotalXP/levels.XPPerRank
	next.SkillPoints = max(0, t.SkillPoints+earned)

	next.LevelIndex = levels.IndexFor(ladder, t.LevelIndex, next.TotalXP)

	return Result{Totals: next, Delta: delta, PointsEarned: earned}
}
