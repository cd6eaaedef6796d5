package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/proyo/internal/achievements"
	"github.com/abhisek/proyo/internal/levels"
	"github.com/abhisek/proyo/internal/progress"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, XP, streak and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			snap := st.Snapshot
			lvl := snap.Level()

			fmt.Fprintf(out, "%s · %s\n", lvl.Name, lvl.Title)
			fmt.Fprintf(out, "Focus: %s\n", lvl.Focus)
			fmt.Fprintln(out, strings.Repeat(rule, 48))
			if lvl.IsFinal() {
				fmt.Fprintf(out, "Total XP   %d (final level)\n", snap.TotalXP)
			} else {
				fmt.Fprintf(out, "Total XP   %d / %d\n", snap.TotalXP, lvl.Threshold)
			}
			fmt.Fprintf(out, "Rank       %s %d%%\n", bar(levels.RankProgress(snap.TotalXP), 20), int(levels.RankProgress(snap.TotalXP)*100))
			fmt.Fprintf(out, "Week       %s %d/%d\n", bar(levels.WeeklyProgress(snap.WeeklyXP), 20), snap.WeeklyXP, levels.WeeklyRewardThreshold)
			if snap.CustomWeeklyReward != "" {
				fmt.Fprintf(out, "Reward     %s\n", snap.CustomWeeklyReward)
			}
			fmt.Fprintf(out, "Today      %+d XP", snap.DailyXP)
			if snap.HasCheckedIn {
				done := 0
				for _, t := range st.DailyTasks {
					if t.Completed {
						done++
					}
				}
				fmt.Fprintf(out, " (%d/%d tasks)", done, len(st.DailyTasks))
			} else {
				fmt.Fprint(out, " (not checked in)")
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Streak     %d day(s)\n", snap.CurrentStreak)
			fmt.Fprintf(out, "Skill pts  %d\n", snap.SkillPoints)

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Achievements")
			fmt.Fprintln(out, strings.Repeat(rule, 48))
			for _, a := range achievements.All() {
				icon := "🔒"
				if slices.Contains(snap.UnlockedAchievements, a.ID) {
					icon = a.ID.Icon()
				}
				fmt.Fprintf(out, "%s %-26s %s\n", icon, a.Name, a.Description)
			}

			if hist := progress.XPHistory(st.Log, 7); len(hist) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Last %d days XP: %s\n", len(hist), joinInts(hist))
			}
			if trend := progress.SentimentTrend(st.Log); len(trend) > 0 {
				var sum int
				for _, p := range trend {
					sum += p.Value
				}
				fmt.Fprintf(out, "Mood trend (%d days): %+d\n", len(trend), sum)
			}
			return nil
		})
	},
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the logbook of completed days",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(st.Log) == 0 {
				fmt.Fprintln(out, "No days logged yet.")
				return nil
			}
			entries := st.Log
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			fmt.Fprintf(out, "%-10s  %5s  %-8s  %s\n", "Date", "XP", "Tone", "Reflection")
			fmt.Fprintln(out, strings.Repeat(rule, 80))
			for _, e := range entries {
				tone := string(e.Sentiment)
				if tone == "" {
					tone = "-"
				}
				fmt.Fprintf(out, "%-10s  %+5d  %-8s  %s\n",
					progress.DateKey(e.Date), e.DailyXP, tone, truncate(e.Reflection, 50))
				if e.Checkin.DailyGoal != "" {
					fmt.Fprintf(out, "%-10s  %5s  %-8s  goal: %s\n", "", "", "", truncate(e.Checkin.DailyGoal, 44))
				}
			}
			return nil
		})
	},
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, " ")
}

func init() {
	logCmd.Flags().IntP("limit", "n", 14, "Number of days to show (0 = all)")
}
