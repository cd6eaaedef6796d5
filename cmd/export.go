package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/proyo/internal/progress"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the full stored state as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return withTracker(cmd, func(ctx context.Context, d *deps) error {
			st, err := d.tracker.State()
			if err != nil {
				return err
			}
			data, err := encodeState(st, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		})
	},
}

// encodeState renders st in format. YAML goes through the JSON form so both
// use the same field names.
func encodeState(st progress.State, format string) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	switch format {
	case "json":
		return append(data, '\n'), nil
	case "yaml":
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode state: %w", err)
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
}
