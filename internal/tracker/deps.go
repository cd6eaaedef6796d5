package tracker

import (
	"context"

	"github.com/abhisek/proyo/internal/coach"
	"github.com/abhisek/proyo/internal/progress"
)

// Persistence loads and stores the single progress document.
type Persistence interface {
	// Load returns nil when nothing usable is stored.
	Load(ctx context.Context) (*progress.State, error)
	Save(ctx context.Context, s progress.State) error
	Clear(ctx context.Context) error
}

// Planner produces a personalised plan from the user's goals.
type Planner interface {
	GeneratePlan(ctx context.Context, goals progress.Goals) (progress.Plan, error)
}

// SentimentAnalyzer classifies a check-out reflection.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (progress.Sentiment, error)
}

// Coach writes proactive coaching messages.
type Coach interface {
	ProactiveMessage(ctx context.Context, trigger coach.Trigger, goals progress.Goals) (string, error)
}
