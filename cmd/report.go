package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Ask the AI coach for a weekly progress report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			if d.coach == nil {
				return errors.New("AI coach unavailable, configure an LLM provider")
			}
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, cfg.Coach.Timeout)
			defer cancel()
			report, err := d.coach.ProgressReport(ctx, st)
			if err != nil {
				return fmt.Errorf("generate report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		})
	},
}
