package coach

import (
	"time"

	"github.com/abhisek/proyo/internal/progress"
)

// Trigger names the situation a proactive message responds to.
type Trigger string

// TriggerSocialMedia fires on repeated social media penalties.
const TriggerSocialMedia Trigger = "repeated_social_media_penalty"

const (
	nudgeWindow  = 5 * 24 * time.Hour
	nudgeMinDays = 3
)

// ShouldNudge reports whether the social media penalty was applied on at
// least three distinct UTC days within the five days before now.
func ShouldNudge(history []progress.PenaltyRecord, now time.Time) bool {
	since := now.Add(-nudgeWindow)
	days := make(map[string]struct{})
	for _, p := range history {
		if p.Description != progress.SocialMediaPenalty || !p.Date.After(since) {
			continue
		}
		days[progress.DateKey(p.Date.UTC())] = struct{}{}
	}
	return len(days) >= nudgeMinDays
}
