package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/proyo/internal/notify"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/tracker/trackertest"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestStartsWithOnboardingWithoutUser(t *testing.T) {
	m := newAppModel(Options{Tracker: trackertest.New(t), SkipWelcome: true})
	assert.Equal(t, "Bienvenido a Proyecto YO", m.router.Active().Title())
	assert.Nil(t, m.stats)
}

func TestStartsWithDashboardForUser(t *testing.T) {
	m := newAppModel(Options{Tracker: trackertest.Onboarded(t, "Ana"), SkipWelcome: true})
	assert.Equal(t, "Inicio", m.router.Active().Title())
	require.NotNil(t, m.stats)
	assert.Equal(t, 0, m.stats.TotalXP)
}

func TestNotificationsBecomeToasts(t *testing.T) {
	rec := &notify.Recorder{}
	tr := trackertest.Onboarded(t, "Ana", tracker.WithSink(rec))
	rec.Drain()

	m := newAppModel(Options{Tracker: tr, Notifications: rec, SkipWelcome: true})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	rec.Notify("¡Logro!", "Primer paso")
	m, cmd := update(t, m, screen.ResultMsg{Event: "test"})
	assert.NotNil(t, cmd)
	require.Len(t, m.toasts, 1)
	assert.Contains(t, m.renderToasts(), "¡Logro!")

	m, _ = update(t, m, toastTickMsg(time.Now().Add(toastTTL+time.Second)))
	assert.Empty(t, m.toasts)
}

func TestToastsAreCapped(t *testing.T) {
	rec := &notify.Recorder{}
	m := newAppModel(Options{Tracker: trackertest.Onboarded(t, "Ana"), Notifications: rec, SkipWelcome: true})
	for range maxToasts + 2 {
		rec.Notify("n", "")
	}
	m, _ = update(t, m, screen.ResultMsg{})
	assert.Len(t, m.toasts, maxToasts)
}

func TestQuitOnlyFromRoot(t *testing.T) {
	m := newAppModel(Options{Tracker: trackertest.Onboarded(t, "Ana"), SkipWelcome: true})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitIgnoredWhileTyping(t *testing.T) {
	m := newAppModel(Options{Tracker: trackertest.New(t), SkipWelcome: true})
	m.router.Active().Init()
	require.True(t, m.capturing())

	m, _ = update(t, m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "Bienvenido a Proyecto YO", m.router.Active().Title())
}
