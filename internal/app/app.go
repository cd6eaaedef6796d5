// Package app is the root Bubble Tea model: router, header, footer and
// notification toasts.
package app

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/proyo/internal/notify"
	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/screens/home"
	"github.com/abhisek/proyo/internal/screens/onboarding"
	"github.com/abhisek/proyo/internal/screens/report"
	"github.com/abhisek/proyo/internal/screens/welcome"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/layout"
	"github.com/abhisek/proyo/internal/ui/theme"
)

const (
	toastTTL         = 6 * time.Second
	maxToasts        = 3
	reminderInterval = time.Minute
	tagline          = "Convierte tu día en una partida"
)

// Options configures the TUI.
type Options struct {
	Tracker *tracker.Service
	// Reporter enables the AI report entry when set.
	Reporter      report.Reporter
	ReportTimeout time.Duration
	// Notifications receives everything the tracker notifies; the app shows
	// it as toasts.
	Notifications *notify.Recorder
	Logger        *zap.Logger
	// SkipWelcome starts directly on the dashboard or onboarding.
	SkipWelcome bool
}

type toast struct {
	msg     notify.Message
	expires time.Time
}

type (
	reminderTickMsg time.Time
	toastTickMsg    time.Time
	remindersMsg    struct {
		n   int
		err error
	}
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
	stats  *layout.HeaderStats
	toasts []toast
	now    func() time.Time
	logger *zap.Logger
}

func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Notifications == nil {
		opts.Notifications = &notify.Recorder{}
	}
	m := AppModel{opts: opts, now: time.Now, logger: opts.Logger.Named("app")}

	var first screen.Screen
	if opts.SkipWelcome {
		first = m.start()
	} else {
		first = welcome.New(m.start, tagline)
	}
	m.router = router.New(first)
	m.refresh()
	return m
}

// start picks the dashboard or onboarding depending on whether a user exists.
func (m AppModel) start() screen.Screen {
	if m.opts.Tracker.Onboarded() {
		return m.dashboard()
	}
	return onboarding.New(m.opts.Tracker, m.dashboard)
}

func (m AppModel) dashboard() screen.Screen {
	return home.New(home.Options{
		Tracker:       m.opts.Tracker,
		Reporter:      m.opts.Reporter,
		ReportTimeout: m.opts.ReportTimeout,
		Restart:       m.start,
	})
}

// refresh syncs the header and theme with the tracker state.
func (m *AppModel) refresh() {
	st, err := m.opts.Tracker.State()
	if err != nil {
		m.stats = nil
		return
	}
	m.stats = &layout.HeaderStats{TotalXP: st.Snapshot.TotalXP, Streak: st.Snapshot.CurrentStreak}
	if string(st.Snapshot.Theme) != theme.Current() {
		theme.Set(string(st.Snapshot.Theme))
	}
}

func reminderTick() tea.Cmd {
	return tea.Tick(reminderInterval, func(t time.Time) tea.Msg { return reminderTickMsg(t) })
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return toastTickMsg(t) })
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), reminderTick())
}

// collect moves pending notifications into toasts. It returns a tick
// command when expiry tracking has to start.
func (m *AppModel) collect() tea.Cmd {
	msgs := m.opts.Notifications.Drain()
	if len(msgs) == 0 {
		return nil
	}
	idle := len(m.toasts) == 0
	expires := m.now().Add(toastTTL)
	for _, msg := range msgs {
		m.toasts = append(m.toasts, toast{msg: msg, expires: expires})
	}
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	if idle {
		return toastTick()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.router.Depth() == 1 && !m.capturing() {
				return m, tea.Quit
			}
		}

	case reminderTickMsg:
		t := m.opts.Tracker
		return m, tea.Batch(reminderTick(), func() tea.Msg {
			due, err := t.DeliverDueReminders()
			return remindersMsg{n: len(due), err: err}
		})

	case remindersMsg:
		if msg.err != nil && !errors.Is(msg.err, tracker.ErrNotOnboarded) {
			m.logger.Warn("reminder delivery failed", zap.Error(msg.err))
		}
		return m, m.collect()

	case toastTickMsg:
		now := time.Time(msg)
		kept := m.toasts[:0]
		for _, t := range m.toasts {
			if now.Before(t.expires) {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
		if len(m.toasts) > 0 {
			return m, toastTick()
		}
		return m, nil

	case screen.ResultMsg:
		cmd := m.router.Update(msg)
		m.refresh()
		return m, tea.Batch(cmd, m.collect())
	}

	cmd := m.router.Update(msg)
	m.refresh()
	return m, cmd
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.Capturing()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.stats, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(p.KeyHints(), hints...)
	}
	footer := layout.RenderFooter(hints, m.width)

	toasts := m.renderToasts()
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(toasts), 0)
	content := m.router.View(m.width, contentHeight)
	if toasts != "" {
		content = toasts + "\n" + content
	}

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	lines := make([]string, len(m.toasts))
	for i, t := range m.toasts {
		text := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(t.msg.Title)
		if t.msg.Body != "" {
			text += "  " + lipgloss.NewStyle().Foreground(theme.Text).Render(t.msg.Body)
		}
		lines[i] = text
	}
	return lipgloss.NewStyle().
		Width(m.width-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Gold).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	return err
}
