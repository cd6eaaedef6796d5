package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/tracker"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Open the day and load today's tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		data := progress.CheckinData{}
		data.Priorities, _ = cmd.Flags().GetString("priorities")
		data.Status, _ = cmd.Flags().GetString("status")
		data.DailyGoal, _ = cmd.Flags().GetString("goal")
		data.MiniMission, _ = cmd.Flags().GetString("mission")
		data.CheckinTime, _ = cmd.Flags().GetString("time")
		if data.CheckinTime != "" {
			if _, err := time.Parse("15:04", data.CheckinTime); err != nil {
				return fmt.Errorf("invalid --time %q, want HH:MM", data.CheckinTime)
			}
		}

		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			res, err := d.tracker.CheckIn(ctx, data)
			if errors.Is(err, tracker.ErrAlreadyCheckedIn) {
				return errors.New("already checked in today, run `proyo checkout` to close the day")
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checked in at %s. Today's tasks:\n", res.State.PendingCheckin.CheckinTime)
			for _, t := range res.State.DailyTasks {
				fmt.Fprintf(out, "  %s %+4d  %s\n", check(t.Completed), t.XP, t.Description)
			}
			return nil
		})
	},
}

var taskCmd = &cobra.Command{
	Use:   "task <description>",
	Short: "Toggle one of today's tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc := strings.Join(args, " ")
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			if !st.Snapshot.HasCheckedIn {
				return errors.New("no open day, run `proyo checkin` first")
			}
			if !slices.ContainsFunc(st.DailyTasks, func(t progress.DailyTask) bool { return t.Description == desc }) {
				return fmt.Errorf("unknown task %q", desc)
			}
			res, err := d.tracker.ToggleTask(ctx, desc)
			if err != nil {
				return err
			}
			printXP(cmd.OutOrStdout(), res.State.Snapshot)
			return nil
		})
	},
}

var penaltyCmd = &cobra.Command{
	Use:   "penalty <description>",
	Short: "Apply one of your penalties",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc := strings.Join(args, " ")
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			if !slices.ContainsFunc(st.Snapshot.NegativeActions, func(a progress.Action) bool { return a.Description == desc }) {
				return fmt.Errorf("unknown penalty %q", desc)
			}
			res, err := d.tracker.Penalize(ctx, desc)
			if err != nil {
				return err
			}
			printXP(cmd.OutOrStdout(), res.State.Snapshot)
			return nil
		})
	},
}

var actionCmd = &cobra.Command{
	Use:   "action <description>",
	Short: "Record a free-form action worth --xp points",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, _ := cmd.Flags().GetInt("xp")
		if points == 0 {
			return errors.New("--xp must not be zero")
		}
		action := progress.Action{Description: strings.Join(args, " "), XP: points}
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			res, err := d.tracker.AdjustXP(ctx, action)
			if err != nil {
				return err
			}
			printXP(cmd.OutOrStdout(), res.State.Snapshot)
			return nil
		})
	},
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Record a completed focus session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			res, err := d.tracker.CompleteFocusSession(ctx)
			if err != nil {
				return err
			}
			if len(res.Notices) == 0 {
				return errors.New("your plan has no focus action")
			}
			printXP(cmd.OutOrStdout(), res.State.Snapshot)
			return nil
		})
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout [reflection]",
	Short: "Close the day with an optional reflection",
	RunE: func(cmd *cobra.Command, args []string) error {
		reflection := strings.Join(args, " ")
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			res, err := d.tracker.CheckOut(ctx, reflection)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			snap := res.State.Snapshot
			if len(res.State.Log) > 0 && res.State.Log[0].Sentiment != "" {
				fmt.Fprintf(out, "Reflection tone: %s\n", res.State.Log[0].Sentiment)
			}
			fmt.Fprintf(out, "Day closed. Streak: %d day(s).\n", snap.CurrentStreak)
			printXP(out, snap)
			return nil
		})
	},
}

func init() {
	checkinCmd.Flags().String("priorities", "", "Today's priorities")
	checkinCmd.Flags().String("status", "", "How you feel right now")
	checkinCmd.Flags().String("goal", "", "Today's goal")
	checkinCmd.Flags().String("mission", "", "Today's mini mission")
	checkinCmd.Flags().String("time", "", "Check-in time as HH:MM (default now)")

	actionCmd.Flags().Int("xp", 0, "XP for the action, negative for a setback")
}
