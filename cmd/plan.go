package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/proyo/internal/progress"
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Inspect and complete weekly KPIs",
}

var kpiListCmd = &cobra.Command{
	Use:   "list",
	Short: "List KPIs with completion by area",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printKPIs(out, st.Snapshot.KPIs)
			fmt.Fprintln(out)
			for _, a := range progress.KPICompletionByArea(st.Snapshot.KPIs) {
				fmt.Fprintf(out, "  %-14s %s %d/%d\n", a.Area, bar(a.Ratio(), 10), a.Completed, a.Total)
			}
			return nil
		})
	},
}

var kpiToggleCmd = &cobra.Command{
	Use:   "toggle <indicator>",
	Short: "Mark a KPI done or not done",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		indicator := strings.Join(args, " ")
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			if !slices.ContainsFunc(st.Snapshot.KPIs, func(k progress.KPI) bool { return k.Indicator == indicator }) {
				return fmt.Errorf("unknown KPI %q", indicator)
			}
			res, err := d.tracker.ToggleKPI(ctx, indicator)
			if err != nil {
				return err
			}
			i := slices.IndexFunc(res.State.Snapshot.KPIs, func(k progress.KPI) bool { return k.Indicator == indicator })
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", check(res.State.Snapshot.KPIs[i].Completed), indicator)
			return nil
		})
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Manage the weekly cycle",
}

var weekResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a new week: clears weekly XP and KPI completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			res, err := d.tracker.ResetWeek(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "New week started.")
			printXP(cmd.OutOrStdout(), res.State.Snapshot)
			return nil
		})
	},
}

var rewardCmd = &cobra.Command{
	Use:   "reward <text>",
	Short: "Set the reward you earn for reaching the weekly XP goal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reward := strings.Join(args, " ")
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			if _, err := d.tracker.SetReward(ctx, reward); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Weekly reward set: %s\n", reward)
			return nil
		})
	},
}

var nameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Change your display name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			res, err := d.tracker.SetName(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			snap := res.State.Snapshot
			fmt.Fprintf(cmd.OutOrStdout(), "Name set to %s (%s).\n", snap.UserName, snap.Level().Name)
			return nil
		})
	},
}

var themeCmd = &cobra.Command{
	Use:       "theme light|dark",
	Short:     "Choose the dashboard color theme",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(progress.ThemeLight), string(progress.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			if _, err := d.tracker.SetTheme(ctx, progress.Theme(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", args[0])
			return nil
		})
	},
}

func init() {
	kpiCmd.AddCommand(kpiListCmd)
	kpiCmd.AddCommand(kpiToggleCmd)
	weekCmd.AddCommand(weekResetCmd)
}
