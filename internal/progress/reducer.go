package progress

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/proyo/internal/achievements"
	"github.com/abhisek/proyo/internal/levels"
	"github.com/abhisek/proyo/internal/skilltree"
	"github.com/abhisek/proyo/internal/xp"
)

// Every handler takes the current State by value and returns the next one.
// The input is never modified. Events that refer to something that does not
// exist (a task, KPI, skill or reminder) return the state unchanged.

// Onboard seeds a brand-new state for name from plan. Counters start at zero
// and the logbook, reminders and tasks start empty. Calling it again for an
// existing user is a full reset.
func Onboard(name string, goals Goals, plan Plan) State {
	p := clonePlan(plan)
	for i := range p.KPIs {
		p.KPIs[i].Completed = false
	}
	return State{
		Snapshot: Snapshot{
			UserName:        NormalizeName(name),
			Goals:           goals,
			PositiveActions: p.PositiveActions,
			NegativeActions: p.NegativeActions,
			KPIs:            p.KPIs,
			Theme:           ThemeDark,
		},
	}
}

// Reset replaces s with a fresh state seeded from plan, keeping the user's
// name, goals and theme.
func Reset(s State, plan Plan) State {
	next := Onboard(s.Snapshot.UserName, s.Snapshot.Goals, plan)
	next.Snapshot.Theme = s.Snapshot.Theme
	return next
}

// CheckIn opens the day. Callers gate on HasCheckedIn; a repeated check-in
// reseeds the day's tasks.
func CheckIn(s State, data CheckinData) (State, []Notice) {
	next := s.Clone()
	next.Snapshot.HasCheckedIn = true
	if isEarly(data.CheckinTime) {
		next.Snapshot.EarlyBirdCheckins++
	}
	next.DailyTasks = make([]DailyTask, len(next.Snapshot.PositiveActions))
	for i, a := range next.Snapshot.PositiveActions {
		next.DailyTasks[i] = DailyTask{Action: a}
	}
	next.PendingCheckin = &data
	return evaluate(next)
}

// ToggleTask flips a daily task. Completing awards its XP, un-completing takes
// the same amount back.
func ToggleTask(s State, description string) (State, []Notice) {
	i := slices.IndexFunc(s.DailyTasks, func(t DailyTask) bool { return t.Description == description })
	if i < 0 {
		return s, nil
	}
	next := s.Clone()
	task := &next.DailyTasks[i]
	delta := task.XP
	if task.Completed {
		delta = -task.XP
	}
	task.Completed = !task.Completed
	return applyXP(next, delta, "")
}

// Penalize applies a negative action, softened by any matching resistance
// skills, and records it in the penalty history.
func Penalize(s State, action Action, at time.Time) (State, []Notice) {
	next, notices := applyXP(s.Clone(), action.XP, action.Description)
	next.Snapshot.PenaltyHistory = append(next.Snapshot.PenaltyHistory,
		PenaltyRecord{Description: action.Description, Date: at})
	if n := len(next.Snapshot.PenaltyHistory); n > PenaltyHistoryCap {
		next.Snapshot.PenaltyHistory = slices.Clone(next.Snapshot.PenaltyHistory[n-PenaltyHistoryCap:])
	}
	return next, notices
}

// AdjustXP applies an action's XP directly, as from the actions panel.
// Negative actions still go through resistances but are not recorded as penalties.
func AdjustXP(s State, action Action) (State, []Notice) {
	penalty := ""
	if action.XP < 0 {
		penalty = action.Description
	}
	return applyXP(s.Clone(), action.XP, penalty)
}

// CompleteFocusSession awards the first positive action mentioning "foco".
func CompleteFocusSession(s State) (State, []Notice) {
	i := slices.IndexFunc(s.Snapshot.PositiveActions, func(a Action) bool {
		return strings.Contains(strings.ToLower(a.Description), "foco")
	})
	if i < 0 {
		return s, nil
	}
	award := s.Snapshot.PositiveActions[i].XP
	next, notices := applyXP(s.Clone(), award, "")
	notices = append([]Notice{{
		Kind:  NoticeFocus,
		Title: fmt.Sprintf("+%d XP por completar una sesión de foco!", award),
	}}, notices...)
	return next, notices
}

// Checkout carries the inputs of a check-out.
type Checkout struct {
	Reflection string
	Sentiment  Sentiment // empty when analysis failed or was skipped
	At         time.Time
	EntryID    string
}

// CheckOut closes the day. The streak grows when the last check-out was
// yesterday, restarts at 1 after a gap and is left alone when today was
// already counted. A log entry is written only if a check-in is pending.
func CheckOut(s State, co Checkout) (State, []Notice) {
	next := s.Clone()
	snap := &next.Snapshot

	today := DateKey(co.At)
	yesterday := DateKey(co.At.AddDate(0, 0, -1))
	switch snap.LastCheckinDate {
	case yesterday:
		snap.CurrentStreak++
	case today:
	default:
		snap.CurrentStreak = 1
	}

	if next.PendingCheckin != nil {
		entry := LogEntry{
			ID:         co.EntryID,
			Date:       co.At,
			DailyXP:    snap.DailyXP,
			Checkin:    *next.PendingCheckin,
			Reflection: co.Reflection,
		}
		if co.Sentiment.Valid() {
			entry.Sentiment = co.Sentiment
		}
		next.Log = append([]LogEntry{entry}, next.Log...)
	}

	snap.DailyXP = 0
	snap.HasCheckedIn = false
	snap.LastCheckinDate = today
	next.DailyTasks = nil
	next.PendingCheckin = nil
	return evaluate(next)
}

// ResetWeek starts a new week: period XP and KPI completion are cleared, the
// day is closed and the weekly reward can be earned again.
func ResetWeek(s State) State {
	next := s.Clone()
	next.Snapshot.WeeklyXP = 0
	next.Snapshot.DailyXP = 0
	next.Snapshot.HasCheckedIn = false
	for i := range next.Snapshot.KPIs {
		next.Snapshot.KPIs[i].Completed = false
	}
	next.DailyTasks = nil
	next.RewardAnimationPlayed = false
	return next
}

// UnlockSkill spends skill points on a skill. Unknown, unaffordable, already
// unlocked or prerequisite-blocked skills leave the state unchanged.
func UnlockSkill(s State, id skilltree.ID) (State, []Notice) {
	if skilltree.Check(id, s.Snapshot.UnlockedSkills, s.Snapshot.SkillPoints) != skilltree.Unlockable {
		return s, nil
	}
	skill, _ := skilltree.Get(id)
	next := s.Clone()
	next.Snapshot.SkillPoints -= skill.Cost
	next.Snapshot.UnlockedSkills = append(next.Snapshot.UnlockedSkills, id)
	return next, []Notice{skillNotice(skill)}
}

// ToggleKPI flips one KPI. Achievements earned while it was complete stay earned.
func ToggleKPI(s State, indicator string) (State, []Notice) {
	i := slices.IndexFunc(s.Snapshot.KPIs, func(k KPI) bool { return k.Indicator == indicator })
	if i < 0 {
		return s, nil
	}
	next := s.Clone()
	next.Snapshot.KPIs[i].Completed = !next.Snapshot.KPIs[i].Completed
	return evaluate(next)
}

// UpdateActions replaces both action lists.
func UpdateActions(s State, positive, negative []Action) State {
	next := s.Clone()
	next.Snapshot.PositiveActions = slices.Clone(positive)
	next.Snapshot.NegativeActions = slices.Clone(negative)
	return next
}

// UpdateKPIs replaces the KPI list.
func UpdateKPIs(s State, kpis []KPI) State {
	next := s.Clone()
	next.Snapshot.KPIs = slices.Clone(kpis)
	return next
}

// SetReward sets the custom weekly reward text.
func SetReward(s State, reward string) State {
	next := s.Clone()
	next.Snapshot.CustomWeeklyReward = reward
	return next
}

// SetName renames the user. Blank names are ignored.
func SetName(s State, name string) State {
	name = NormalizeName(name)
	if name == "" {
		return s
	}
	next := s.Clone()
	next.Snapshot.UserName = name
	return next
}

// SetTheme switches the color theme. Unknown themes are ignored.
func SetTheme(s State, theme Theme) State {
	if theme != ThemeLight && theme != ThemeDark {
		return s
	}
	next := s.Clone()
	next.Snapshot.Theme = theme
	return next
}

// CompleteTutorial marks the tutorial as done.
func CompleteTutorial(s State) State {
	next := s.Clone()
	next.Snapshot.TutorialCompleted = true
	return next
}

// Ladder returns the level ladder for the snapshot's user.
func (s Snapshot) Ladder() []levels.Level {
	return levels.Ladder(s.UserName)
}

// Level returns the snapshot's current level.
func (s Snapshot) Level() levels.Level {
	return levels.Current(s.Ladder(), s.LevelIndex)
}

func applyXP(next State, raw int, penalty string) (State, []Notice) {
	snap := &next.Snapshot
	res := xp.Apply(xp.Totals{
		TotalXP:     snap.TotalXP,
		WeeklyXP:    snap.WeeklyXP,
		DailyXP:     snap.DailyXP,
		SkillPoints: snap.SkillPoints,
		LevelIndex:  snap.LevelIndex,
	}, raw, penalty, snap.UnlockedSkills, snap.Ladder())

	snap.TotalXP = res.TotalXP
	snap.WeeklyXP = res.WeeklyXP
	snap.DailyXP = res.DailyXP
	snap.SkillPoints = res.SkillPoints
	snap.LevelIndex = res.LevelIndex

	var notices []Notice
	if snap.WeeklyXP >= levels.WeeklyRewardThreshold && !next.RewardAnimationPlayed {
		next.RewardAnimationPlayed = true
		notices = append(notices, rewardNotice(snap.CustomWeeklyReward))
	}

	next, more := evaluate(next)
	return next, append(notices, more...)
}

// evaluate unlocks whatever achievements the state now qualifies for and
// returns one notice per newly unlocked id.
func evaluate(s State) (State, []Notice) {
	unlocked, newly := achievements.Evaluate(s.Snapshot.UnlockedAchievements, factsOf(s))
	if len(newly) == 0 {
		return s, nil
	}
	s.Snapshot.UnlockedAchievements = unlocked
	notices := make([]Notice, len(newly))
	for i, id := range newly {
		notices[i] = achievementNotice(id)
	}
	return s, notices
}

// Evaluate runs the achievement rules on s without any other change.
func Evaluate(s State) (State, []Notice) {
	return evaluate(s.Clone())
}

func factsOf(s State) achievements.Facts {
	done := 0
	for _, k := range s.Snapshot.KPIs {
		if k.Completed {
			done++
		}
	}
	return achievements.Facts{
		LogEntries:        len(s.Log),
		Reminders:         len(s.Reminders),
		TotalXP:           s.Snapshot.TotalXP,
		CurrentStreak:     s.Snapshot.CurrentStreak,
		KPIsTotal:         len(s.Snapshot.KPIs),
		KPIsCompleted:     done,
		EarlyBirdCheckins: s.Snapshot.EarlyBirdCheckins,
	}
}

// isEarly reports whether an "HH:MM" time is before the early-bird cutoff.
func isEarly(hhmm string) bool {
	if _, err := time.Parse("15:04", hhmm); err != nil {
		return false
	}
	return hhmm < EarlyBirdCutoff
}
