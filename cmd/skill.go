package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/proyo/internal/skilltree"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse and unlock skills",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all skills with their state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			unlocked := st.Snapshot.UnlockedSkills

			fmt.Fprintf(out, "Skill points: %d\n\n", st.Snapshot.SkillPoints)
			for _, cat := range skilltree.AllCategories() {
				fmt.Fprintln(out, cat.DisplayName())
				fmt.Fprintln(out, strings.Repeat(rule, 90))
				fmt.Fprintf(out, "   %-16s  %-20s  %4s  %-10s  %s\n", "ID", "Name", "Cost", "State", "Requires")
				for _, s := range skilltree.ByCategory(cat) {
					state := skilltree.StateOf(s.ID, unlocked)
					reqs := make([]string, len(s.Requires))
					for i, r := range s.Requires {
						reqs[i] = string(r)
					}
					fmt.Fprintf(out, "%s %-16s  %-20s  %4d  %-10s  %s\n",
						state.Icon(), s.ID, s.Name, s.Cost, state.Label(), strings.Join(reqs, ", "))
					fmt.Fprintf(out, "   %s\n", s.Description)
				}
				fmt.Fprintln(out)
			}
			return nil
		})
	},
}

var skillUnlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Spend skill points on a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := skilltree.ID(args[0])
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			if b := skilltree.Check(id, st.Snapshot.UnlockedSkills, st.Snapshot.SkillPoints); b != skilltree.Unlockable {
				return fmt.Errorf("cannot unlock %s: %s", id, b)
			}
			res, err := d.tracker.UnlockSkill(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Skill points left: %d\n", res.State.Snapshot.SkillPoints)
			return nil
		})
	},
}

func init() {
	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillUnlockCmd)
}
