package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // weekly reward reached
	MascotAlert                     // day not opened yet
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ XP↑ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ XP↑ │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ XP↑ │
└─────┘`

// mascotFor picks the variant for a snapshot.
func mascotFor(checkedIn bool, weeklyXP, threshold int) MascotVariant {
	switch {
	case weeklyXP >= threshold:
		return MascotCelebrating
	case !checkedIn:
		return MascotAlert
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for v.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Gold
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
