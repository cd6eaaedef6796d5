// Package progress holds the user's progress snapshot and the pure event
// handlers that move it from one value to the next.
package progress

import (
	"slices"
	"time"

	"github.com/abhisek/proyo/internal/achievements"
	"github.com/abhisek/proyo/internal/skilltree"
)

// PenaltyHistoryCap bounds the penalty history; the oldest records go first.
const PenaltyHistoryCap = 20

// EarlyBirdCutoff is the check-in time ("HH:MM") before which a check-in counts as early.
const EarlyBirdCutoff = "07:00"

// DateLayout is the calendar-date key format used for streaks.
const DateLayout = "2006-01-02"

// Theme is the UI color theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Sentiment is the tone of a check-out reflection. Empty means unknown.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

// Valid reports whether s is one of the known sentiments.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Action is something the user does. Positive actions carry xp > 0,
// negative ones xp < 0. Description is the unique key.
type Action struct {
	Description string `json:"description"`
	XP          int    `json:"xp"`
}

// DailyTask is a positive action scheduled for today.
type DailyTask struct {
	Action
	Completed bool `json:"completed"`
}

// KPI is a weekly key performance indicator. Indicator is the unique key.
type KPI struct {
	Area      string `json:"area"`
	Indicator string `json:"indicator"`
	Completed bool   `json:"completed"`
}

// Goals are the user's own words about what they want to achieve.
type Goals struct {
	Objective   string `json:"objective"`
	Motivation  string `json:"motivation"`
	Expectation string `json:"expectation"`
}

// PenaltyRecord notes when a penalty was applied.
type PenaltyRecord struct {
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// CheckinData is what the user declares at check-in.
type CheckinData struct {
	Priorities  string `json:"priorities"`
	Status      string `json:"status"`
	DailyGoal   string `json:"dailyGoal"`
	MiniMission string `json:"miniMission"`
	CheckinTime string `json:"checkinTime"` // "HH:MM"
}

// LogEntry records one completed day.
type LogEntry struct {
	ID         string      `json:"id"`
	Date       time.Time   `json:"date"`
	DailyXP    int         `json:"dailyXp"`
	Checkin    CheckinData `json:"checkin"`
	Reflection string      `json:"reflection"`
	Sentiment  Sentiment   `json:"sentiment,omitempty"`
}

// Snapshot is the progress of one user.
type Snapshot struct {
	UserName             string            `json:"userName"`
	Goals                Goals             `json:"userGoals"`
	LevelIndex           int               `json:"levelIndex"`
	TotalXP              int               `json:"totalXp"`
	WeeklyXP             int               `json:"weeklyXp"`
	DailyXP              int               `json:"dailyXp"`
	HasCheckedIn         bool              `json:"hasCheckedIn"`
	PositiveActions      []Action          `json:"positiveActions"`
	NegativeActions      []Action          `json:"negativeActions"`
	KPIs                 []KPI             `json:"kpis"`
	UnlockedAchievements []achievements.ID `json:"unlockedAchievements"`
	EarlyBirdCheckins    int               `json:"earlyBirdCheckins"`
	CurrentStreak        int               `json:"currentStreak"`
	LastCheckinDate      string            `json:"lastCheckinDate"` // DateLayout, "" if never
	PenaltyHistory       []PenaltyRecord   `json:"penaltyHistory"`
	CustomWeeklyReward   string            `json:"customWeeklyReward"`
	Theme                Theme             `json:"theme"`
	SkillPoints          int               `json:"skillPoints"`
	UnlockedSkills       []skilltree.ID    `json:"unlockedSkills"`
	TutorialCompleted    bool              `json:"tutorialCompleted"`
}

// State is everything persisted for a user: the snapshot plus the day's
// tasks, the pending check-in, the logbook and reminders.
type State struct {
	Snapshot              Snapshot     `json:"userState"`
	DailyTasks            []DailyTask  `json:"dailyTasks"`
	PendingCheckin        *CheckinData `json:"currentCheckinData,omitempty"`
	Log                   []LogEntry   `json:"logEntries"` // newest first
	Reminders             []Reminder   `json:"reminders"`
	RewardAnimationPlayed bool         `json:"rewardAnimationPlayed"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Snapshot = s.Snapshot.clone()
	out.DailyTasks = slices.Clone(s.DailyTasks)
	if s.PendingCheckin != nil {
		c := *s.PendingCheckin
		out.PendingCheckin = &c
	}
	out.Log = slices.Clone(s.Log)
	out.Reminders = slices.Clone(s.Reminders)
	return out
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.PositiveActions = slices.Clone(s.PositiveActions)
	out.NegativeActions = slices.Clone(s.NegativeActions)
	out.KPIs = slices.Clone(s.KPIs)
	out.UnlockedAchievements = slices.Clone(s.UnlockedAchievements)
	out.PenaltyHistory = slices.Clone(s.PenaltyHistory)
	out.UnlockedSkills = slices.Clone(s.UnlockedSkills)
	return out
}

// DateKey returns the calendar-date key of t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
