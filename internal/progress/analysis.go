package progress

import "slices"

// SentimentWindow is how many log entries the sentiment trend looks at.
const SentimentWindow = 30

// AreaCompletion is the KPI completion ratio of one area.
type AreaCompletion struct {
	Area      string
	Completed int
	Total     int
}

// Ratio returns completed/total, or 0 for an empty area.
func (a AreaCompletion) Ratio() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Completed) / float64(a.Total)
}

// KPICompletionByArea groups KPIs by area in first-seen order.
func KPICompletionByArea(kpis []KPI) []AreaCompletion {
	var out []AreaCompletion
	for _, k := range kpis {
		i := slices.IndexFunc(out, func(a AreaCompletion) bool { return a.Area == k.Area })
		if i < 0 {
			out = append(out, AreaCompletion{Area: k.Area})
			i = len(out) - 1
		}
		out[i].Total++
		if k.Completed {
			out[i].Completed++
		}
	}
	return out
}

// SentimentPoint is one day on the sentiment trend.
type SentimentPoint struct {
	Date  string
	Value int // +1 positive, 0 neutral, -1 negative
}

// SentimentTrend returns the tagged entries among the newest SentimentWindow
// log entries, oldest first. Entries without a sentiment are skipped.
func SentimentTrend(log []LogEntry) []SentimentPoint {
	recent := log
	if len(recent) > SentimentWindow {
		recent = recent[:SentimentWindow]
	}
	var out []SentimentPoint
	for i := len(recent) - 1; i >= 0; i-- {
		e := recent[i]
		var v int
		switch e.Sentiment {
		case SentimentPositive:
			v = 1
		case SentimentNegative:
			v = -1
		case SentimentNeutral:
		default:
			continue
		}
		out = append(out, SentimentPoint{Date: DateKey(e.Date), Value: v})
	}
	return out
}

// XPHistory returns the daily XP of the newest n log entries, oldest first.
func XPHistory(log []LogEntry, n int) []int {
	if n > len(log) {
		n = len(log)
	}
	out := make([]int, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, log[i].DailyXP)
	}
	return out
}
