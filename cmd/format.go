package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/proyo/internal/levels"
	"github.com/abhisek/proyo/internal/progress"
)

const rule = "─"

func printPlan(w io.Writer, snap progress.Snapshot) {
	fmt.Fprintln(w, "Positive actions")
	fmt.Fprintln(w, strings.Repeat(rule, 48))
	for _, a := range snap.PositiveActions {
		fmt.Fprintf(w, "  %+4d  %s\n", a.XP, a.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Penalties")
	fmt.Fprintln(w, strings.Repeat(rule, 48))
	for _, a := range snap.NegativeActions {
		fmt.Fprintf(w, "  %+4d  %s\n", a.XP, a.Description)
	}
	fmt.Fprintln(w)
	printKPIs(w, snap.KPIs)
}

func printKPIs(w io.Writer, kpis []progress.KPI) {
	fmt.Fprintln(w, "Weekly KPIs")
	fmt.Fprintln(w, strings.Repeat(rule, 48))
	for _, k := range kpis {
		fmt.Fprintf(w, "  %s  %-14s %s\n", check(k.Completed), k.Area, k.Indicator)
	}
}

// printXP prints the one-line XP summary shown after every event.
func printXP(w io.Writer, snap progress.Snapshot) {
	fmt.Fprintf(w, "%d XP total · %d/%d this week · %+d today · %s\n",
		snap.TotalXP, snap.WeeklyXP, levels.WeeklyRewardThreshold, snap.DailyXP, snap.Level().Name)
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// bar renders ratio (0..1) as a fixed-width progress bar.
func bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
