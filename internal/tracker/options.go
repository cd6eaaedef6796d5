package tracker

import (
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/proyo/internal/notify"
)

// DefaultTimeout bounds each collaborator call.
const DefaultTimeout = 20 * time.Second

// Option configures a Service.
type Option func(*Service)

// WithPlanner sets the plan generator used at onboarding and full reset.
func WithPlanner(p Planner) Option {
	return func(s *Service) { s.planner = p }
}

// WithSentiment sets the analyzer used at check-out.
func WithSentiment(a SentimentAnalyzer) Option {
	return func(s *Service) { s.sentiment = a }
}

// WithCoach sets the proactive coach.
func WithCoach(c Coach) Option {
	return func(s *Service) { s.coach = c }
}

// WithSink sets where notices are delivered.
func WithSink(sink notify.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the id generator for log entries and reminders.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithTimeout sets the per-call collaborator timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}
