// Package tracker owns the user's progress. It serialises events through the
// progress reducer, calls the plan, sentiment and coach collaborators outside
// its lock, persists every transition and forwards notices to a sink.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/proyo/internal/coach"
	"github.com/abhisek/proyo/internal/notify"
	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/skilltree"
)

var (
	// ErrNotOnboarded is returned for events that need an existing user.
	ErrNotOnboarded = errors.New("not onboarded")

	// ErrSuperseded is returned when a newer request or a snapshot-replacing
	// event made a collaborator's answer stale.
	ErrSuperseded = errors.New("superseded by a newer request")

	// ErrAlreadyCheckedIn is returned by a second check-in on the same day.
	ErrAlreadyCheckedIn = errors.New("already checked in")
)

// PlanFallbackNotice is shown when the default plan replaces a failed generation.
const PlanFallbackNotice = "AI error, using standard plan"

// Result is the state after an event and the notices it produced.
type Result struct {
	State   progress.State
	Notices []progress.Notice
}

type concern int

const (
	concernPlan concern = iota
	concernSentiment
	concernProactive
	numConcerns
)

func (c concern) String() string {
	switch c {
	case concernPlan:
		return "plan"
	case concernSentiment:
		return "sentiment"
	case concernProactive:
		return "proactive"
	}
	return "unknown"
}

// ticket identifies one collaborator request.
type ticket struct {
	concern concern
	id      uint64
	gen     uint64
}

// Service is the single owner of the progress state. It is safe for
// concurrent use.
type Service struct {
	mu    sync.Mutex
	state *progress.State // nil until onboarded

	// gen changes whenever the whole state is replaced.
	gen      uint64
	reqs     [numConcerns]uint64
	nudgedOn string

	store     Persistence
	planner   Planner
	sentiment SentimentAnalyzer
	coach     Coach
	sink      notify.Sink
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
	timeout   time.Duration
}

// New creates a Service over store. Collaborators left unset are skipped:
// onboarding uses the default plan and check-outs carry no sentiment.
func New(store Persistence, opts ...Option) *Service {
	s := &Service{
		store:   store,
		sink:    notify.Discard,
		logger:  zap.NewNop(),
		now:     time.Now,
		newID:   uuid.NewString,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("tracker")
	return s
}

// Load replaces the in-memory state with the stored one.
func (s *Service) Load(ctx context.Context) error {
	st, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.gen++
	s.logger.Debug("state loaded", zap.Bool("onboarded", st != nil))
	return nil
}

// Onboarded reports whether a user exists.
func (s *Service) Onboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != nil
}

// State returns a copy of the current state.
func (s *Service) State() (progress.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return progress.State{}, ErrNotOnboarded
	}
	return s.state.Clone(), nil
}

// Onboard creates the user, seeded with a plan generated from goals. A failed
// generation falls back to the default plan with a notice.
func (s *Service) Onboard(ctx context.Context, name string, goals progress.Goals) (Result, error) {
	s.mu.Lock()
	s.gen++
	t := s.beginLocked(concernPlan)
	s.mu.Unlock()

	plan, notices := s.generatePlan(ctx, goals)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(t) {
		return Result{}, ErrSuperseded
	}
	return s.commitLocked(ctx, "onboard", progress.Onboard(name, goals, plan), notices)
}

// Reset starts over with a freshly generated plan, keeping the user's name,
// goals and theme.
func (s *Service) Reset(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if s.state == nil {
		s.mu.Unlock()
		return Result{}, ErrNotOnboarded
	}
	goals := s.state.Snapshot.Goals
	s.gen++
	t := s.beginLocked(concernPlan)
	s.mu.Unlock()

	plan, notices := s.generatePlan(ctx, goals)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(t) {
		return Result{}, ErrSuperseded
	}
	if s.state == nil {
		return Result{}, ErrNotOnboarded
	}
	return s.commitLocked(ctx, "reset", progress.Reset(*s.state, plan), notices)
}

// Logout forgets the user and clears storage.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	s.state = nil
	s.gen++
	s.nudgedOn = ""
	s.logger.Debug("logged out")
	return nil
}

// CheckIn opens the day. An empty CheckinTime is filled from the clock.
func (s *Service) CheckIn(ctx context.Context, data progress.CheckinData) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return Result{}, ErrNotOnboarded
	}
	if s.state.Snapshot.HasCheckedIn {
		return Result{}, ErrAlreadyCheckedIn
	}
	if data.CheckinTime == "" {
		data.CheckinTime = s.now().Format("15:04")
	}
	next, notices := progress.CheckIn(*s.state, data)
	return s.commitLocked(ctx, "checkin", next, notices)
}

// ToggleTask flips one of today's tasks.
func (s *Service) ToggleTask(ctx context.Context, description string) (Result, error) {
	return s.apply(ctx, "toggle_task", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.ToggleTask(st, description)
	})
}

// Penalize applies the negative action named description. Repeated social
// media penalties may add a coach notice.
func (s *Service) Penalize(ctx context.Context, description string) (Result, error) {
	at := s.now()
	res, err := s.apply(ctx, "penalty", func(st progress.State) (progress.State, []progress.Notice) {
		i := slices.IndexFunc(st.Snapshot.NegativeActions, func(a progress.Action) bool {
			return a.Description == description
		})
		if i < 0 {
			return st, nil
		}
		return progress.Penalize(st, st.Snapshot.NegativeActions[i], at)
	})
	if err != nil {
		return Result{}, err
	}
	if description == progress.SocialMediaPenalty {
		res.Notices = append(res.Notices, s.nudge(ctx)...)
	}
	return res, nil
}

// AdjustXP applies a free-form action.
func (s *Service) AdjustXP(ctx context.Context, action progress.Action) (Result, error) {
	return s.apply(ctx, "adjust_xp", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.AdjustXP(st, action)
	})
}

// CompleteFocusSession awards a finished focus session.
func (s *Service) CompleteFocusSession(ctx context.Context) (Result, error) {
	return s.apply(ctx, "focus", progress.CompleteFocusSession)
}

// CheckOut closes the day. The reflection's sentiment is analysed first,
// outside the lock; a failed analysis leaves the entry untagged.
func (s *Service) CheckOut(ctx context.Context, reflection string) (Result, error) {
	s.mu.Lock()
	if s.state == nil {
		s.mu.Unlock()
		return Result{}, ErrNotOnboarded
	}
	t := s.beginLocked(concernSentiment)
	s.mu.Unlock()

	sentiment := s.analyze(ctx, reflection)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(t) {
		return Result{}, ErrSuperseded
	}
	if s.state == nil {
		return Result{}, ErrNotOnboarded
	}
	next, notices := progress.CheckOut(*s.state, progress.Checkout{
		Reflection: reflection,
		Sentiment:  sentiment,
		At:         s.now(),
		EntryID:    s.newID(),
	})
	return s.commitLocked(ctx, "checkout", next, notices)
}

// ResetWeek starts a new week.
func (s *Service) ResetWeek(ctx context.Context) (Result, error) {
	return s.apply(ctx, "week_reset", stateOnly(progress.ResetWeek))
}

// UnlockSkill spends skill points on id.
func (s *Service) UnlockSkill(ctx context.Context, id skilltree.ID) (Result, error) {
	return s.apply(ctx, "unlock_skill", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.UnlockSkill(st, id)
	})
}

// ToggleKPI flips a weekly KPI.
func (s *Service) ToggleKPI(ctx context.Context, indicator string) (Result, error) {
	return s.apply(ctx, "toggle_kpi", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.ToggleKPI(st, indicator)
	})
}

// UpdateActions replaces the tracked actions.
func (s *Service) UpdateActions(ctx context.Context, positive, negative []progress.Action) (Result, error) {
	return s.apply(ctx, "update_actions", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.UpdateActions(st, positive, negative), nil
	})
}

// UpdateKPIs replaces the weekly KPIs.
func (s *Service) UpdateKPIs(ctx context.Context, kpis []progress.KPI) (Result, error) {
	return s.apply(ctx, "update_kpis", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.UpdateKPIs(st, kpis), nil
	})
}

// SetReward sets the custom weekly reward.
func (s *Service) SetReward(ctx context.Context, reward string) (Result, error) {
	return s.apply(ctx, "set_reward", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.SetReward(st, reward), nil
	})
}

// SetName renames the user.
func (s *Service) SetName(ctx context.Context, name string) (Result, error) {
	return s.apply(ctx, "set_name", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.SetName(st, name), nil
	})
}

// SetTheme switches the UI theme.
func (s *Service) SetTheme(ctx context.Context, theme progress.Theme) (Result, error) {
	return s.apply(ctx, "set_theme", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.SetTheme(st, theme), nil
	})
}

// CompleteTutorial marks the tutorial as seen.
func (s *Service) CompleteTutorial(ctx context.Context) (Result, error) {
	return s.apply(ctx, "tutorial", stateOnly(progress.CompleteTutorial))
}

// AddReminder schedules a reminder with a fresh id. Invalid reminders are ignored.
func (s *Service) AddReminder(ctx context.Context, title, at string, days [7]bool) (Result, error) {
	return s.apply(ctx, "add_reminder", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.AddReminder(st, progress.Reminder{ID: s.newID(), Title: title, Time: at, Days: days})
	})
}

// DeleteReminder removes a reminder.
func (s *Service) DeleteReminder(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, "delete_reminder", func(st progress.State) (progress.State, []progress.Notice) {
		return progress.DeleteReminder(st, id), nil
	})
}

// DeliverDueReminders sends every reminder due this minute to the sink.
func (s *Service) DeliverDueReminders() ([]progress.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil, ErrNotOnboarded
	}
	due := progress.DueReminders(s.state.Reminders, s.now())
	for _, r := range due {
		s.sink.Notify("⏰ "+r.Title, r.Time)
	}
	return due, nil
}

func (s *Service) apply(ctx context.Context, event string, fn func(progress.State) (progress.State, []progress.Notice)) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return Result{}, ErrNotOnboarded
	}
	next, notices := fn(*s.state)
	return s.commitLocked(ctx, event, next, notices)
}

// commitLocked saves next and makes it current. The in-memory state only
// advances once the save succeeded.
func (s *Service) commitLocked(ctx context.Context, event string, next progress.State, notices []progress.Notice) (Result, error) {
	if err := s.store.Save(ctx, next); err != nil {
		return Result{}, fmt.Errorf("save state after %s: %w", event, err)
	}
	s.state = &next
	for _, n := range notices {
		s.sink.Notify(n.Title, n.Body)
	}
	s.logger.Debug("event applied",
		zap.String("event", event),
		zap.Int("total_xp", next.Snapshot.TotalXP),
		zap.Int("weekly_xp", next.Snapshot.WeeklyXP),
		zap.Int("level", next.Snapshot.LevelIndex),
		zap.Int("notices", len(notices)))
	return Result{State: next.Clone(), Notices: notices}, nil
}

func (s *Service) beginLocked(c concern) ticket {
	s.reqs[c]++
	return ticket{concern: c, id: s.reqs[c], gen: s.gen}
}

func (s *Service) currentLocked(t ticket) bool {
	if s.reqs[t.concern] == t.id && s.gen == t.gen {
		return true
	}
	s.logger.Debug("dropping stale response",
		zap.Stringer("concern", t.concern),
		zap.Uint64("request", t.id),
		zap.Uint64("latest", s.reqs[t.concern]))
	return false
}

func (s *Service) generatePlan(ctx context.Context, goals progress.Goals) (progress.Plan, []progress.Notice) {
	if s.planner == nil {
		return progress.DefaultPlan(), nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	plan, err := s.planner.GeneratePlan(ctx, goals)
	if err == nil {
		plan = plan.Sanitize()
		if plan.Empty() {
			err = errors.New("empty plan")
		}
	}
	if err != nil {
		s.logger.Warn("plan generation failed, using default plan", zap.Error(err))
		return progress.DefaultPlan(), []progress.Notice{progress.Info(PlanFallbackNotice)}
	}
	return plan, nil
}

func (s *Service) analyze(ctx context.Context, reflection string) progress.Sentiment {
	if s.sentiment == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sentiment, err := s.sentiment.AnalyzeSentiment(ctx, reflection)
	if err != nil {
		s.logger.Warn("sentiment analysis failed", zap.Error(err))
		return ""
	}
	return sentiment
}

// nudge asks the coach for a message when social media penalties keep
// coming back. At most one nudge is delivered per day.
func (s *Service) nudge(ctx context.Context) []progress.Notice {
	s.mu.Lock()
	if s.coach == nil || s.state == nil {
		s.mu.Unlock()
		return nil
	}
	now := s.now()
	today := progress.DateKey(now)
	if s.nudgedOn == today || !coach.ShouldNudge(s.state.Snapshot.PenaltyHistory, now) {
		s.mu.Unlock()
		return nil
	}
	goals := s.state.Snapshot.Goals
	t := s.beginLocked(concernProactive)
	s.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	msg, err := s.coach.ProactiveMessage(cctx, coach.TriggerSocialMedia, goals)
	if err != nil {
		s.logger.Warn("proactive message failed", zap.Error(err))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(t) {
		return nil
	}
	s.nudgedOn = today
	n := progress.Notice{Kind: progress.NoticeCoach, Title: "💬 Tu coach", Body: msg}
	s.sink.Notify(n.Title, n.Body)
	return []progress.Notice{n}
}

func stateOnly(fn func(progress.State) progress.State) func(progress.State) (progress.State, []progress.Notice) {
	return func(st progress.State) (progress.State, []progress.Notice) {
		return fn(st), nil
	}
}
