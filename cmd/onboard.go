package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/proyo/internal/progress"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard <name>",
	Short: "Create your profile and generate a personal plan",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		objective, _ := cmd.Flags().GetString("objective")
		motivation, _ := cmd.Flags().GetString("motivation")
		expectation, _ := cmd.Flags().GetString("expectation")
		force, _ := cmd.Flags().GetBool("force")

		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			if d.tracker.Onboarded() && !force {
				return fmt.Errorf("already onboarded, use --force to start over or `proyo reset` to keep your name")
			}
			res, err := d.tracker.Onboard(ctx, strings.Join(args, " "), progress.Goals{
				Objective:   objective,
				Motivation:  motivation,
				Expectation: expectation,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			snap := res.State.Snapshot
			fmt.Fprintf(out, "Welcome, %s! You start as %s.\n\n", snap.UserName, snap.Level().Name)
			printPlan(out, snap)
			return nil
		})
	},
}

func init() {
	onboardCmd.Flags().String("objective", "", "What you want to achieve")
	onboardCmd.Flags().String("motivation", "", "Why it matters to you")
	onboardCmd.Flags().String("expectation", "", "What you expect from the tracker")
	onboardCmd.Flags().Bool("force", false, "Replace an existing profile")
}
