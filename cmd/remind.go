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
)

var dayNames = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage recurring reminders",
}

var remindAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a reminder",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, _ := cmd.Flags().GetString("at")
		spec, _ := cmd.Flags().GetString("days")
		if _, err := time.Parse("15:04", at); err != nil {
			return fmt.Errorf("invalid --at %q, want HH:MM", at)
		}
		days, err := parseDays(spec)
		if err != nil {
			return err
		}
		title := strings.Join(args, " ")

		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			res, err := d.tracker.AddReminder(ctx, title, at, days)
			if err != nil {
				return err
			}
			r := res.State.Reminders[len(res.State.Reminders)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Reminder %s added: %s at %s on %s\n", r.ID, r.Title, r.Time, formatDays(r.Days))
			return nil
		})
	},
}

var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(st.Reminders) == 0 {
				fmt.Fprintln(out, "No reminders.")
				return nil
			}
			fmt.Fprintf(out, "%-36s  %-5s  %-27s  %s\n", "ID", "Time", "Days", "Title")
			fmt.Fprintln(out, strings.Repeat(rule, 90))
			for _, r := range st.Reminders {
				fmt.Fprintf(out, "%-36s  %-5s  %-27s  %s\n", r.ID, r.Time, formatDays(r.Days), r.Title)
			}
			return nil
		})
	},
}

var remindDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			if !slices.ContainsFunc(st.Reminders, func(r progress.Reminder) bool { return r.ID == args[0] }) {
				return fmt.Errorf("no reminder with id %q", args[0])
			}
			if _, err := d.tracker.DeleteReminder(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reminder deleted.")
			return nil
		})
	},
}

var remindCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Deliver reminders due this minute (run from cron)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			due, err := d.tracker.DeliverDueReminders()
			if err != nil {
				return err
			}
			if len(due) == 0 {
				logger.Debug("no reminders due")
			}
			return nil
		})
	},
}

// parseDays accepts "all", "weekdays", "weekends" or a comma separated list
// of three-letter day names.
func parseDays(spec string) ([7]bool, error) {
	var days [7]bool
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", "all", "daily":
		for i := range days {
			days[i] = true
		}
		return days, nil
	case "weekdays":
		for i := 0; i < 5; i++ {
			days[i] = true
		}
		return days, nil
	case "weekends":
		days[5], days[6] = true, true
		return days, nil
	}
	for _, part := range strings.Split(spec, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if len(name) > 3 {
			name = name[:3]
		}
		i := slices.Index(dayNames[:], name)
		if i < 0 {
			return days, fmt.Errorf("unknown day %q", part)
		}
		days[i] = true
	}
	if !slices.Contains(days[:], true) {
		return days, errors.New("no days selected")
	}
	return days, nil
}

func formatDays(days [7]bool) string {
	var names []string
	for i, on := range days {
		if on {
			names = append(names, dayNames[i])
		}
	}
	if len(names) == 7 {
		return "every day"
	}
	return strings.Join(names, ",")
}

func init() {
	remindAddCmd.Flags().String("at", "", "Time of day as HH:MM")
	remindAddCmd.Flags().String("days", "all", "Days: all, weekdays, weekends or e.g. mon,wed,fri")
	_ = remindAddCmd.MarkFlagRequired("at")

	remindCmd.AddCommand(remindAddCmd)
	remindCmd.AddCommand(remindListCmd)
	remindCmd.AddCommand(remindDeleteCmd)
	remindCmd.AddCommand(remindCheckCmd)
}
