// Package report shows the coach's weekly progress report.
package report

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/components"
	"github.com/abhisek/proyo/internal/ui/theme"
)

// Reporter writes a progress report for a state.
type Reporter interface {
	ProgressReport(ctx context.Context, st progress.State) (string, error)
}

type reportMsg struct {
	text string
	err  error
}

// ReportScreen loads and shows one report.
type ReportScreen struct {
	tracker  *tracker.Service
	reporter Reporter
	timeout  time.Duration
	text     string
	err      error
	loaded   bool
}

var _ screen.Screen = (*ReportScreen)(nil)

// New creates a ReportScreen; timeout bounds the report request.
func New(t *tracker.Service, r Reporter, timeout time.Duration) *ReportScreen {
	return &ReportScreen{tracker: t, reporter: r, timeout: timeout}
}

func (s *ReportScreen) Init() tea.Cmd {
	if s.loaded {
		return nil
	}
	t, r, timeout := s.tracker, s.reporter, s.timeout
	return func() tea.Msg {
		st, err := t.State()
		if err != nil {
			return reportMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := r.ProgressReport(ctx, st)
		return reportMsg{text: text, err: err}
	}
}

func (s *ReportScreen) Title() string {
	return "Informe Semanal"
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		s.loaded = true
		s.text, s.err = msg.text, msg.err
	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ReportScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch {
	case !s.loaded:
		body = theme.Hint.Render("Tu coach está preparando el informe...")
	case s.err != nil:
		body = theme.Bad.Render("No se pudo generar el informe: " + s.err.Error())
	default:
		body = components.Card(lipgloss.NewStyle().Foreground(theme.Text).Width(cw-4).Render(s.text), cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
