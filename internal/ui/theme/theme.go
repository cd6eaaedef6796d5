// Package theme holds the dashboard palette and shared styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is one color scheme.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Gold      color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

// Dark is the default scheme.
var Dark = Palette{
	Primary:   lipgloss.Color("#8B5CF6"),
	Secondary: lipgloss.Color("#14B8A6"),
	Accent:    lipgloss.Color("#F97316"),
	Gold:      lipgloss.Color("#FACC15"),
	Success:   lipgloss.Color("#22C55E"),
	Error:     lipgloss.Color("#F43F5E"),
	Text:      lipgloss.Color("#F8FAFC"),
	TextDim:   lipgloss.Color("#94A3B8"),
	Bg:        lipgloss.Color("#0F172A"),
	BgCard:    lipgloss.Color("#1E293B"),
	Border:    lipgloss.Color("#334155"),
}

// Light is the scheme for light terminals.
var Light = Palette{
	Primary:   lipgloss.Color("#6D28D9"),
	Secondary: lipgloss.Color("#0F766E"),
	Accent:    lipgloss.Color("#C2410C"),
	Gold:      lipgloss.Color("#A16207"),
	Success:   lipgloss.Color("#15803D"),
	Error:     lipgloss.Color("#BE123C"),
	Text:      lipgloss.Color("#0F172A"),
	TextDim:   lipgloss.Color("#475569"),
	Bg:        lipgloss.Color("#F8FAFC"),
	BgCard:    lipgloss.Color("#E2E8F0"),
	Border:    lipgloss.Color("#94A3B8"),
}

// Active colors. Set swaps them as a group.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Gold      color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
)

// Shared styles, rebuilt by Set.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Good     lipgloss.Style
	Bad      lipgloss.Style
)

var current = "dark"

func init() {
	Set("dark")
}

// Set activates the named scheme ("light" or "dark"). Unknown names select dark.
func Set(name string) {
	p := Dark
	current = "dark"
	if name == "light" {
		p = Light
		current = "light"
	}

	Primary, Secondary, Accent, Gold = p.Primary, p.Secondary, p.Accent, p.Gold
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	Bg, BgCard, Border = p.Bg, p.BgCard, p.Border

	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Normal = lipgloss.NewStyle().Foreground(Text)
	Good = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Bad = lipgloss.NewStyle().Foreground(Error).Bold(true)
}

// Current returns the active scheme name.
func Current() string {
	return current
}
