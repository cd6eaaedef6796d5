package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/tracker/trackertest"
)

type stubReporter struct{}

func (stubReporter) ProgressReport(context.Context, progress.State) (string, error) {
	return "bien", nil
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "stub" }

func key(s string) tea.KeyPressMsg {
	switch s {
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestMenuBeforeCheckIn(t *testing.T) {
	h := New(Options{Tracker: trackertest.Onboarded(t, "Ana")})
	h.Init()

	labels := h.MenuLabels()
	assert.Equal(t, "CHECK-IN", labels[0])
	assert.NotContains(t, labels, "TAREAS")
	assert.NotContains(t, labels, "INFORME IA")
	assert.Equal(t, "SALIR", labels[len(labels)-1])

	for _, it := range h.menu.Items {
		if it.Label == "CHECK-OUT" || it.Label == "SESIÓN DE FOCO" {
			assert.True(t, it.Disabled, it.Label)
		}
	}
}

func TestMenuAfterCheckIn(t *testing.T) {
	tr := trackertest.Onboarded(t, "Ana")
	_, err := tr.CheckIn(context.Background(), progress.CheckinData{Priorities: "leer"})
	require.NoError(t, err)

	h := New(Options{Tracker: tr, Reporter: stubReporter{}})
	h.Init()

	labels := h.MenuLabels()
	assert.Equal(t, "TAREAS", labels[0])
	assert.Contains(t, labels, "INFORME IA")
	for _, it := range h.menu.Items {
		assert.False(t, it.Disabled, it.Label)
	}
}

func TestHideTutorial(t *testing.T) {
	tr := trackertest.Onboarded(t, "Ana")
	h := New(Options{Tracker: tr})
	h.Init()
	require.Contains(t, h.View(100, 40), "Cómo funciona")

	_, cmd := h.Update(key("x"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(screen.ResultMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	h.Update(msg)

	st, err := tr.State()
	require.NoError(t, err)
	assert.True(t, st.Snapshot.TutorialCompleted)
	assert.NotContains(t, h.View(100, 40), "Cómo funciona")

	_, cmd = h.Update(key("x"))
	assert.Nil(t, cmd)
}

func TestSettingsAsksForConfirmation(t *testing.T) {
	tr := trackertest.Onboarded(t, "Ana")
	s := newSettings(tr, nil)
	s.Init()

	for range 3 {
		s.Update(key("down"))
	}
	require.Equal(t, "NUEVA SEMANA", s.menu.Items[s.menu.Selected].Label)

	_, cmd := s.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(100, 40), "confirmar")

	_, cmd = s.Update(key("enter"))
	require.NotNil(t, cmd)
	msg := cmd().(screen.ResultMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, "reset_week", msg.Event)
}

func TestLogoutRestarts(t *testing.T) {
	tr := trackertest.Onboarded(t, "Ana")
	restarted := &stubScreen{}
	s := newSettings(tr, func() screen.Screen { return restarted })
	s.Init()

	for range 5 {
		s.Update(key("down"))
	}
	s.Update(key("enter"))
	_, cmd := s.Update(key("enter"))
	require.NotNil(t, cmd)

	_, cmd = s.Update(cmd())
	require.NotNil(t, cmd)
	reset, ok := cmd().(router.ResetScreenMsg)
	require.True(t, ok)
	assert.Same(t, restarted, reset.Screen)
	assert.False(t, tr.Onboarded())
}

func TestParseDayLetters(t *testing.T) {
	days, err := parseDayLetters("lmx")
	require.NoError(t, err)
	assert.Equal(t, [7]bool{true, true, true, false, false, false, false}, days)

	_, err = parseDayLetters("")
	assert.Error(t, err)

	_, err = parseDayLetters("LZ")
	assert.Error(t, err)
}

func TestRemindersScreenListsEntries(t *testing.T) {
	tr := trackertest.Onboarded(t, "Ana")
	_, err := tr.AddReminder(context.Background(), "Entrenar", "07:30", [7]bool{true, false, true})
	require.NoError(t, err)

	s := remindersScreen(tr)
	s.Init()
	assert.Contains(t, s.View(100, 40), "07:30  Entrenar")
	assert.Contains(t, s.View(100, 40), "L·X····")
}
