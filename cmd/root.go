package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/proyo/internal/config"
	"github.com/abhisek/proyo/internal/logging"
	"github.com/abhisek/proyo/internal/store"
)

var (
	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "proyo",
	Short: "Gamified personal development tracker",
	Long: `Proyo turns daily habits into XP, levels, streaks, achievements and a skill tree.

Run without arguments to open the dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.DefaultPath()
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c

		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(cfg.Logging.Level, cfg.Logging.File, verbose)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PROYO_DB and the config file)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/proyo/config.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(penaltyCmd)
	rootCmd.AddCommand(actionCmd)
	rootCmd.AddCommand(kpiCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(rewardCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db (highest priority),
// then PROYO_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}
