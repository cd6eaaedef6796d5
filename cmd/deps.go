package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/proyo/internal/coach"
	"github.com/abhisek/proyo/internal/llm"
	"github.com/abhisek/proyo/internal/notify"
	"github.com/abhisek/proyo/internal/store"
	"github.com/abhisek/proyo/internal/tracker"
)

// deps holds everything a command needs to drive the tracker.
type deps struct {
	store   *store.Store
	tracker *tracker.Service
	coach   *coach.Service // nil when no provider is configured
	gate    *notify.Gate
}

// openDeps opens the store, builds the optional coach and loads the state.
// Notifications go to sink and to the log.
func openDeps(cmd *cobra.Command, sink notify.Sink) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath,
		store.WithLogger(logger),
		store.WithKeepSnapshots(cfg.Store.KeepSnapshots))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &deps{store: st}
	d.gate = notify.NewGate(notify.Multi{sink, notify.NewLog(logger)}, cfg.Notifications.Enabled)

	opts := []tracker.Option{
		tracker.WithSink(d.gate),
		tracker.WithLogger(logger),
		tracker.WithTimeout(cfg.Coach.Timeout),
	}
	if c := buildCoach(ctx, st.EventRepo()); c != nil {
		d.coach = c
		opts = append(opts, tracker.WithPlanner(c), tracker.WithSentiment(c), tracker.WithCoach(c))
	}

	d.tracker = tracker.New(st.StateRepo(), opts...)
	if err := d.tracker.Load(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return d, nil
}

// buildCoach returns nil when the coach is disabled or no provider can be built.
func buildCoach(ctx context.Context, events store.EventRepo) *coach.Service {
	if !cfg.Coach.Enabled {
		return nil
	}
	llmCfg, ok := llm.FromConfig(cfg.LLM)
	if !ok {
		logger.Debug("no LLM provider configured, AI features disabled")
		return nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, events, logger)
	if err != nil {
		logger.Warn("LLM provider unavailable, AI features disabled", zap.Error(err))
		return nil
	}
	return coach.NewService(provider, coach.DefaultConfig(), logger)
}

func (d *deps) Close() error {
	return d.store.Close()
}

// withTracker opens deps for the duration of fn.
func withTracker(cmd *cobra.Command, fn func(ctx context.Context, d *deps) error) error {
	d, err := openDeps(cmd, notify.NewWriter(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	err = fn(ctx, d)
	if errors.Is(err, tracker.ErrNotOnboarded) {
		return errors.New("no user yet, run `proyo onboard <name>` first")
	}
	return err
}
