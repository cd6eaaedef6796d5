// Package levels builds the level ladder a user climbs as total XP grows.
package levels

import "math"

// Unbounded is the threshold of the final level. Total XP never reaches it.
const Unbounded = math.MaxInt

// XPPerRank is the size of one rank. Crossing a multiple of it grants a skill point.
const XPPerRank = 100

// WeeklyRewardThreshold is the weekly XP needed to earn the custom weekly reward.
const WeeklyRewardThreshold = 80

// Level is one rung of the ladder.
type Level struct {
	Index     int
	Name      string
	Title     string
	Focus     string
	Threshold int // total XP needed to leave this level
}

// IsFinal reports whether the level has no successor.
func (l Level) IsFinal() bool {
	return l.Threshold == Unbounded
}

type rung struct {
	suffix    string
	title     string
	focus     string
	threshold int
}

var rungs = [...]rung{
	{"1.0", "El Despertar", "Reconstrucción de disciplina y hábitos", 500},
	{"2.0", "El Arquitecto", "Diseño de sistema y consistencia", 1500},
	{"3.0", "El Estratega", "Consolidación, marca y finanzas", 3000},
	{"Élite", "El Dominante", "Propósito, libertad, plenitud", Unbounded},
}

// Ladder returns the ordered levels for a user. Level names embed the user's
// name, so the ladder must be rebuilt whenever the name changes.
func Ladder(name string) []Level {
	out := make([]Level, len(rungs))
	for i, r := range rungs {
		out[i] = Level{
			Index:     i,
			Name:      name + " " + r.suffix,
			Title:     r.title,
			Focus:     r.focus,
			Threshold: r.threshold,
		}
	}
	return out
}

// Current returns the level at idx, clamped to the ladder bounds.
func Current(ladder []Level, idx int) Level {
	if len(ladder) == 0 {
		return Level{}
	}
	switch {
	case idx < 0:
		idx = 0
	case idx >= len(ladder):
		idx = len(ladder) - 1
	}
	return ladder[idx]
}

// IndexFor walks from the current index to the level consistent with totalXP.
// It advances while totalXP has reached the current threshold, then retreats
// while totalXP is below the previous threshold.
func IndexFor(ladder []Level, current, totalXP int) int {
	if len(ladder) == 0 {
		return 0
	}
	idx := current
	if idx < 0 {
		idx = 0
	}
	if idx > len(ladder)-1 {
		idx = len(ladder) - 1
	}
	for idx < len(ladder)-1 && totalXP >= ladder[idx].Threshold {
		idx++
	}
	for idx > 0 && totalXP < ladder[idx-1].Threshold {
		idx--
	}
	return idx
}

// RankProgress returns progress through the current rank in [0, 1).
func RankProgress(totalXP int) float64 {
	if totalXP < 0 {
		return 0
	}
	return float64(totalXP%XPPerRank) / XPPerRank
}

// WeeklyProgress returns progress toward the weekly reward, capped at 1.
func WeeklyProgress(weeklyXP int) float64 {
	if weeklyXP <= 0 {
		return 0
	}
	return min(float64(weeklyXP)/WeeklyRewardThreshold, 1)
}
