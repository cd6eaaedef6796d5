package progress

import (
	"slices"
	"strings"
	"time"
)

// Reminder is a recurring notification at a wall-clock time on chosen
// weekdays. Days is indexed Monday first.
type Reminder struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Time  string  `json:"time"` // "HH:MM"
	Days  [7]bool `json:"days"`
}

// WeekdayIndex maps a time.Weekday onto Reminder.Days (Monday = 0).
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Valid reports whether r has a title, a parseable time and at least one day.
func (r Reminder) Valid() bool {
	if strings.TrimSpace(r.Title) == "" {
		return false
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		return false
	}
	return slices.Contains(r.Days[:], true)
}

// DueAt reports whether r fires during the minute containing now.
func (r Reminder) DueAt(now time.Time) bool {
	return r.Days[WeekdayIndex(now.Weekday())] && r.Time == now.Format("15:04")
}

// DueReminders returns the reminders that fire during the minute containing now.
func DueReminders(rs []Reminder, now time.Time) []Reminder {
	var due []Reminder
	for _, r := range rs {
		if r.DueAt(now) {
			due = append(due, r)
		}
	}
	return due
}

// AddReminder appends r. Invalid reminders or ids already present are ignored.
func AddReminder(s State, r Reminder) (State, []Notice) {
	if !r.Valid() || r.ID == "" {
		return s, nil
	}
	if slices.ContainsFunc(s.Reminders, func(x Reminder) bool { return x.ID == r.ID }) {
		return s, nil
	}
	next := s.Clone()
	next.Reminders = append(next.Reminders, r)
	return evaluate(next)
}

// DeleteReminder removes the reminder with id. The planner achievement stays.
func DeleteReminder(s State, id string) State {
	i := slices.IndexFunc(s.Reminders, func(r Reminder) bool { return r.ID == id })
	if i < 0 {
		return s
	}
	next := s.Clone()
	next.Reminders = slices.Delete(next.Reminders, i, i+1)
	return next
}
