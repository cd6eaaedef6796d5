package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over with a new plan, keeping your name and goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmed(cmd, "This erases all XP, achievements and logs. Continue? [y/N] ") {
			return nil
		}
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			res, err := d.tracker.Reset(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
			printPlan(cmd.OutOrStdout(), res.State.Snapshot)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete your profile and all stored progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmed(cmd, "This deletes your profile. Continue? [y/N] ") {
			return nil
		}
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			if err := d.tracker.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile deleted.")
			return nil
		})
	},
}

// confirmed asks on stdin unless --yes was given.
func confirmed(cmd *cobra.Command, prompt string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	logoutCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
