package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/levels"
	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/ui/components"
	"github.com/abhisek/proyo/internal/ui/theme"
)

// renderLevelCard shows the current level, its title and focus.
func renderLevelCard(snap progress.Snapshot, cw int) string {
	lvl := snap.Level()
	name := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(lvl.Name)
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(lvl.Title)
	focus := theme.Hint.Render(lvl.Focus)

	next := "Nivel máximo"
	if !lvl.IsFinal() {
		next = fmt.Sprintf("%d / %d XP al siguiente nivel", snap.TotalXP, lvl.Threshold)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Render(strings.Join([]string{name, title, focus, lipgloss.NewStyle().Foreground(theme.TextDim).Render(next)}, "\n"))
}

// renderProgress shows the rank and weekly bars with today's XP.
func renderProgress(snap progress.Snapshot, cw int) string {
	rank := components.ProgressBar{
		Label:   "Rango ",
		Percent: levels.RankProgress(snap.TotalXP),
		Width:   cw - 4,
	}
	week := components.ProgressBar{
		Label:   "Semana",
		Percent: levels.WeeklyProgress(snap.WeeklyXP),
		Suffix:  fmt.Sprintf("%d/%d", snap.WeeklyXP, levels.WeeklyRewardThreshold),
		Width:   cw - 4,
		Fill:    theme.Gold,
	}

	stats := fmt.Sprintf("%s   %s   %s",
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("🔥 %d días", snap.CurrentStreak)),
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fmt.Sprintf("%+d XP hoy", snap.DailyXP)),
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("✦ %d pts", snap.SkillPoints)),
	)
	lines := []string{rank.View(), week.View(), "", stats}
	if snap.CustomWeeklyReward != "" {
		lines = append(lines, theme.Hint.Render("🎁 "+snap.CustomWeeklyReward))
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}

// renderTutorial is the first-run hint card.
func renderTutorial(cw int) string {
	text := strings.Join([]string{
		theme.Selected.Render("Cómo funciona"),
		"1. Haz check-in al empezar el día.",
		"2. Marca tus tareas y registra penalizaciones.",
		"3. Haz check-out con una reflexión para sumar racha.",
		"4. Cada 100 XP ganas un punto de habilidad.",
		theme.Hint.Render("Pulsa x para ocultar"),
	}, "\n")
	return components.Card(text, cw)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderMenu renders each menu item as a fixed-width button, in two columns
// when there is room.
func renderMenu(items []components.MenuItem, selected int, cw int) string {
	buttons := make([]string, len(items))
	for i, it := range items {
		buttons[i] = components.Button(it.Label, i == selected, buttonWidth)
	}
	if cw < 2*buttonWidth+6 {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(lipgloss.JoinVertical(lipgloss.Center, buttons...))
	}

	var rows []string
	for i := 0; i < len(buttons); i += 2 {
		if i+1 < len(buttons) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons[i], "  ", buttons[i+1]))
		} else {
			rows = append(rows, buttons[i])
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}
