// Package skillmap shows the skill tree and unlocks skills.
package skillmap

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/router"
	"github.com/abhisek/proyo/internal/screen"
	"github.com/abhisek/proyo/internal/skilltree"
	"github.com/abhisek/proyo/internal/tracker"
	"github.com/abhisek/proyo/internal/ui/layout"
	"github.com/abhisek/proyo/internal/ui/theme"
)

type rowKind int

const (
	rowCategoryHeader rowKind = iota
	rowSkill
)

type row struct {
	kind     rowKind
	category skilltree.Category
	skill    *skilltree.Skill
}

// SkillMapScreen lists the skill tree by category.
type SkillMapScreen struct {
	tracker      *tracker.Service
	rows         []row
	cursor       int
	scrollOffset int
	unlocked     []skilltree.ID
	points       int
	busy         bool
	errMsg       string
}

var (
	_ screen.Screen          = (*SkillMapScreen)(nil)
	_ screen.KeyHintProvider = (*SkillMapScreen)(nil)
)

// New creates a SkillMapScreen.
func New(t *tracker.Service) *SkillMapScreen {
	var rows []row
	for _, cat := range skilltree.AllCategories() {
		rows = append(rows, row{kind: rowCategoryHeader, category: cat})
		skills := skilltree.ByCategory(cat)
		for i := range skills {
			rows = append(rows, row{kind: rowSkill, category: cat, skill: &skills[i]})
		}
	}

	s := &SkillMapScreen{tracker: t, rows: rows}
	for i, r := range s.rows {
		if r.kind == rowSkill {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *SkillMapScreen) Init() tea.Cmd {
	s.refresh()
	return nil
}

func (s *SkillMapScreen) refresh() {
	st, err := s.tracker.State()
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.unlocked = st.Snapshot.UnlockedSkills
	s.points = st.Snapshot.SkillPoints
}

func (s *SkillMapScreen) Title() string {
	return "Árbol de Habilidades"
}

func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Unlock"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SkillMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ResultMsg:
		s.busy = false
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.refresh()
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "enter":
			return s, s.unlock()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// Selected returns the skill under the cursor.
func (s *SkillMapScreen) Selected() *skilltree.Skill {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	return s.rows[s.cursor].skill
}

func (s *SkillMapScreen) unlock() tea.Cmd {
	sk := s.Selected()
	if sk == nil || s.busy {
		return nil
	}
	if b := skilltree.Check(sk.ID, s.unlocked, s.points); b != skilltree.Unlockable {
		s.errMsg = fmt.Sprintf("No se puede desbloquear: %s", b)
		return nil
	}
	s.busy = true
	id, t := sk.ID, s.tracker
	return screen.Apply("unlock_skill", func(ctx context.Context) (tracker.Result, error) {
		return t.UnlockSkill(ctx, id)
	})
}

// moveCursor moves the cursor by delta, skipping category headers.
func (s *SkillMapScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowSkill {
			s.cursor = next
			s.errMsg = ""
			return
		}
		next += delta
	}
}

// adjustScroll keeps the cursor and its category header in view.
func (s *SkillMapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowCategoryHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *SkillMapScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	detail := s.renderDetail(width)
	listHeight := height - lipgloss.Height(detail) - 2
	s.adjustScroll(listHeight)

	points := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("  Puntos de habilidad: %d", s.points))
	lines := []string{points}
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= listHeight {
			break
		}
		switch r.kind {
		case rowCategoryHeader:
			lines = append(lines, renderCategoryHeader(r.category, width))
		case rowSkill:
			lines = append(lines, s.renderSkillRow(r, i == s.cursor, width))
		}
		visible++
	}

	return strings.Join(lines, "\n") + "\n\n" + detail
}

func renderCategoryHeader(c skilltree.Category, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(c.DisplayName()))
}

func (s *SkillMapScreen) renderSkillRow(r row, selected bool, width int) string {
	state := skilltree.StateOf(r.skill.ID, s.unlocked)

	nameWidth := max(width-4-3-8-10-4, 10)
	name := r.skill.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	var nameStyle, labelStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = theme.Selected
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case state == skilltree.StateUnlocked:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
		labelStyle = nameStyle
	case state == skilltree.StateAvailable:
		nameStyle = theme.Normal
		labelStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	default:
		nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		labelStyle = nameStyle
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		state.Icon(),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%d pt", r.skill.Cost)),
		labelStyle.Render(fmt.Sprintf("%9s", state.Label())),
	)
}

func (s *SkillMapScreen) renderDetail(width int) string {
	sk := s.Selected()
	if sk == nil {
		return ""
	}
	cw := min(width-8, 70)

	var b strings.Builder
	b.WriteString(theme.Selected.Render(sk.Name) + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw).Render(sk.Description) + "\n")
	if len(sk.Requires) > 0 {
		names := make([]string, len(sk.Requires))
		for i, id := range sk.Requires {
			req, _ := skilltree.Get(id)
			names[i] = req.Name
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Requiere: "+strings.Join(names, ", ")) + "\n")
	}
	if s.errMsg != "" {
		b.WriteString(theme.Bad.Render(s.errMsg))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		MarginLeft(2).
		Render(strings.TrimRight(b.String(), "\n"))
}
