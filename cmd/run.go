package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/proyo/internal/app"
	"github.com/abhisek/proyo/internal/logging"
	"github.com/abhisek/proyo/internal/notify"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	// stderr belongs to the TUI, so logs go next to the database by default.
	if cfg.Logging.File == "" {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(cfg.Logging.Level, filepath.Join(filepath.Dir(dbPath), "proyo.log"), verbose)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger = l
	}

	recorder := &notify.Recorder{}
	d, err := openDeps(cmd, recorder)
	if err != nil {
		return err
	}
	defer d.Close()

	opts := app.Options{
		Tracker:       d.tracker,
		ReportTimeout: cfg.Coach.Timeout,
		Notifications: recorder,
		Logger:        logger,
	}
	if d.coach != nil {
		opts.Reporter = d.coach
	}
	return app.Run(opts)
}
