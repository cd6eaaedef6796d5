package progress

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestKPICompletionByArea(t *testing.T) {
	kpis := []KPI{
		{"Salud", "Ejercicio", true},
		{"Sueño", "Dormir", false},
		{"Salud", "Agua", false},
	}
	want := []AreaCompletion{
		{Area: "Salud", Completed: 1, Total: 2},
		{Area: "Sueño", Completed: 0, Total: 1},
	}
	got := KPICompletionByArea(kpis)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("KPICompletionByArea mismatch (-want +got):\n%s", diff)
	}
	if r := got[0].Ratio(); r != 0.5 {
		t.Errorf("ratio = %v, want 0.5", r)
	}
	if r := (AreaCompletion{}).Ratio(); r != 0 {
		t.Errorf("empty ratio = %v, want 0", r)
	}
}

func TestSentimentTrend(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2026, time.March, day, 20, 0, 0, 0, time.UTC) }
	log := []LogEntry{
		{Date: d(4), Sentiment: SentimentNegative},
		{Date: d(3)},
		{Date: d(2), Sentiment: SentimentNeutral},
		{Date: d(1), Sentiment: SentimentPositive},
	}
	want := []SentimentPoint{
		{"2026-03-01", 1},
		{"2026-03-02", 0},
		{"2026-03-04", -1},
	}
	if diff := cmp.Diff(want, SentimentTrend(log)); diff != "" {
		t.Errorf("SentimentTrend mismatch (-want +got):\n%s", diff)
	}
}

func TestSentimentTrend_Window(t *testing.T) {
	log := make([]LogEntry, 40)
	for i := range log {
		log[i] = LogEntry{Date: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 40-i), Sentiment: SentimentPositive}
	}
	got := SentimentTrend(log)
	if len(got) != SentimentWindow {
		t.Fatalf("len = %d, want %d", len(got), SentimentWindow)
	}
	if got[len(got)-1].Date != DateKey(log[0].Date) {
		t.Errorf("last point = %s, want newest entry %s", got[len(got)-1].Date, DateKey(log[0].Date))
	}
}

func TestXPHistory(t *testing.T) {
	log := []LogEntry{{DailyXP: 30}, {DailyXP: 20}, {DailyXP: 10}}
	if diff := cmp.Diff([]int{20, 30}, XPHistory(log, 2)); diff != "" {
		t.Errorf("XPHistory mismatch (-want +got):\n%s", diff)
	}
	if got := XPHistory(log, 10); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}
