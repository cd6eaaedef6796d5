// Package history shows the logbook of completed days.
package history

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/layout"
	"github.com/abhisek/proyo/internal/ui/theme"
)

// HistoryScreen lists log entries, newest first.
type HistoryScreen struct {
	tracker  *tracker.Service
	entries  []progress.LogEntry
	trend    []progress.SentimentPoint
	selected int
	expanded map[int]bool
	errMsg   string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates a new HistoryScreen.
func New(t *tracker.Service) *HistoryScreen {
	return &HistoryScreen{tracker: t, expanded: make(map[int]bool)}
}

func (s *HistoryScreen) Init() tea.Cmd {
	st, err := s.tracker.State()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.entries = st.Log
	s.trend = progress.SentimentTrend(st.Log)
	return nil
}

func (s *HistoryScreen) Title() string {
	return "Bitácora"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(style.Render(text))
	}
	if s.errMsg != "" {
		return center(theme.Bad, "\n\nError: "+s.errMsg)
	}
	if len(s.entries) == 0 {
		return center(theme.Hint, "\n\n  Aún no hay días registrados. ¡Haz tu primer check-out!")
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(s.trend) > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Ánimo: "+sparkline(s.trend)))
		b.WriteString("\n\n")
	}

	for i, e := range s.entries {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %+4d XP  %s  %s",
			prefix, e.Date.Format("Jan 02, 2006"), e.DailyXP, sentimentIcon(e.Sentiment), truncate(e.Reflection, 40))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(e) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(sentimentColor(e.Sentiment)).Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func details(e progress.LogEntry) []string {
	var out []string
	add := func(label, v string) {
		if v != "" {
			out = append(out, label+": "+v)
		}
	}
	add("Check-in", e.Checkin.CheckinTime)
	add("Prioridades", e.Checkin.Priorities)
	add("Estado", e.Checkin.Status)
	add("Meta", e.Checkin.DailyGoal)
	add("Mini misión", e.Checkin.MiniMission)
	add("Reflexión", e.Reflection)
	if len(out) == 0 {
		out = append(out, "Sin detalles")
	}
	return out
}

func sentimentIcon(s progress.Sentiment) string {
	switch s {
	case progress.SentimentPositive:
		return "😊"
	case progress.SentimentNeutral:
		return "😐"
	case progress.SentimentNegative:
		return "😞"
	default:
		return "  "
	}
}

func sentimentColor(s progress.Sentiment) color.Color {
	switch s {
	case progress.SentimentPositive:
		return theme.Success
	case progress.SentimentNegative:
		return theme.Error
	default:
		return theme.TextDim
	}
}

// sparkline renders the trend as one glyph per day, oldest first.
func sparkline(points []progress.SentimentPoint) string {
	var b strings.Builder
	for _, p := range points {
		switch {
		case p.Value > 0:
			b.WriteString("▇")
		case p.Value < 0:
			b.WriteString("▁")
		default:
			b.WriteString("▄")
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
