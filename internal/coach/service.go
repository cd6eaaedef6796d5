// Package coach turns the user's goals and history into a personalised plan,
// reflection sentiment and short coaching messages using an LLM.
package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/proyo/internal/llm"
	"github.com/abhisek/proyo/internal/progress"
)

// ErrEmptyPlan is returned when the model's plan has nothing usable in it.
var ErrEmptyPlan = errors.New("generated plan is empty")

// Service is the LLM-backed coach. It is safe for concurrent use.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger

	// Identical proactive requests in flight share one call.
	group singleflight.Group
}

// NewService creates a coach over provider.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger.Named("coach")}
}

type planOutput struct {
	PositiveActions []progress.Action `json:"positiveActions"`
	NegativeActions []progress.Action `json:"negativeActions"`
	KPIs            []struct {
		Area      string `json:"area"`
		Indicator string `json:"indicator"`
	} `json:"kpis"`
}

// GeneratePlan asks the model for a plan tailored to goals. Malformed entries
// are dropped; a plan with nothing left is ErrEmptyPlan.
func (s *Service) GeneratePlan(ctx context.Context, goals progress.Goals) (progress.Plan, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposePlan)

	req := llm.UserPrompt(planSystemPrompt, buildPlanUserMessage(goals))
	req.Schema = PlanSchema
	req.MaxTokens = s.cfg.PlanMaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return progress.Plan{}, fmt.Errorf("plan generation: %w", err)
	}

	var out planOutput
	if err := resp.Decode(&out); err != nil {
		return progress.Plan{}, fmt.Errorf("parse plan response: %w", err)
	}

	plan := progress.Plan{
		PositiveActions: out.PositiveActions,
		NegativeActions: out.NegativeActions,
	}
	for _, k := range out.KPIs {
		plan.KPIs = append(plan.KPIs, progress.KPI{Area: k.Area, Indicator: k.Indicator})
	}
	plan = plan.Sanitize()
	if plan.Empty() {
		return progress.Plan{}, ErrEmptyPlan
	}

	s.logger.Debug("plan generated",
		zap.Int("positive", len(plan.PositiveActions)),
		zap.Int("negative", len(plan.NegativeActions)),
		zap.Int("kpis", len(plan.KPIs)))
	return plan, nil
}

// AnalyzeSentiment classifies a reflection. Blank text is not sent and
// yields an empty sentiment.
func (s *Service) AnalyzeSentiment(ctx context.Context, text string) (progress.Sentiment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeSentiment)

	req := llm.UserPrompt(sentimentSystemPrompt, buildSentimentUserMessage(text))
	req.Schema = SentimentSchema
	req.MaxTokens = s.cfg.SentimentMaxTokens

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("sentiment analysis: %w", err)
	}

	var out struct {
		Sentiment progress.Sentiment `json:"sentiment"`
	}
	if err := resp.Decode(&out); err != nil {
		return "", fmt.Errorf("parse sentiment response: %w", err)
	}
	if !out.Sentiment.Valid() {
		return "", fmt.Errorf("unknown sentiment %q", out.Sentiment)
	}
	return out.Sentiment, nil
}

// ProactiveMessage writes a short coaching message for trigger. Concurrent
// calls for the same trigger and goals share a single request.
func (s *Service) ProactiveMessage(ctx context.Context, trigger Trigger, goals progress.Goals) (string, error) {
	key := strings.Join([]string{string(trigger), goals.Objective, goals.Motivation, goals.Expectation}, "\x00")

	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.text(llm.WithPurpose(ctx, llm.PurposeProactive),
			proactiveSystemPrompt, buildProactiveUserMessage(trigger, goals))
	})
	if shared {
		s.logger.Debug("proactive message shared", zap.String("trigger", string(trigger)))
	}
	if err != nil {
		return "", fmt.Errorf("proactive message: %w", err)
	}
	return v.(string), nil
}

// ProgressReport writes a short weekly summary of s.
func (s *Service) ProgressReport(ctx context.Context, st progress.State) (string, error) {
	msg, err := s.text(llm.WithPurpose(ctx, llm.PurposeReport), reportSystemPrompt, buildReportUserMessage(st))
	if err != nil {
		return "", fmt.Errorf("progress report: %w", err)
	}
	return msg, nil
}

func (s *Service) text(ctx context.Context, system, prompt string) (string, error) {
	req := llm.UserPrompt(system, prompt)
	req.MaxTokens = s.cfg.MessageMaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	msg := strings.TrimSpace(resp.Text())
	if msg == "" {
		return "", errors.New("empty response")
	}
	return msg, nil
}
