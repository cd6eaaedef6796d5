package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/proyo/internal/progress"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show or replace your actions and KPIs",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), st.Snapshot)
			return nil
		})
	},
}

var planImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace actions and KPIs from a YAML or JSON plan file",
	Long: `Replace actions and KPIs from a plan file with the keys
positiveActions, negativeActions and kpis. A full "proyo export" document
works too. KPI completion is reset.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read plan: %w", err)
		}
		plan, err := decodePlan(data)
		if err != nil {
			return err
		}

		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			if _, err := d.tracker.UpdateActions(ctx, plan.PositiveActions, plan.NegativeActions); err != nil {
				return err
			}
			res, err := d.tracker.UpdateKPIs(ctx, plan.KPIs)
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), res.State.Snapshot)
			return nil
		})
	},
}

// decodePlan reads YAML (and so JSON) using the plan's JSON field names,
// keeping only well-formed entries. An exported state is read from its
// userState section.
func decodePlan(data []byte) (progress.Plan, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return progress.Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	if m, ok := doc.(map[string]any); ok {
		if us, ok := m["userState"]; ok {
			doc = us
		}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return progress.Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	var plan progress.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return progress.Plan{}, fmt.Errorf("parse plan: %w", err)
	}
	plan = plan.Sanitize()
	if plan.Empty() {
		return progress.Plan{}, errors.New("plan has no valid actions or KPIs")
	}
	return plan, nil
}

func init() {
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planImportCmd)
}
