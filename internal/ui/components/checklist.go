package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/proyo/internal/ui/theme"
)

// CheckItem is one row of a Checklist.
type CheckItem struct {
	Key     string // passed back on selection
	Label   string
	Detail  string // right-aligned, e.g. "+10 XP"
	Checked bool
	Group   string // rows with a new group get a heading
}

// ChosenMsg reports the key of the row selected with Enter or Space.
type ChosenMsg struct {
	Key string
}

// Checklist is a scrollable list of checkable rows.
type Checklist struct {
	Items    []CheckItem
	Selected int
	NoBoxes  bool // render without [x] boxes
}

// NewChecklist creates a checklist.
func NewChecklist(items []CheckItem) Checklist {
	return Checklist{Items: items}
}

// SetItems replaces the rows, keeping the cursor in range.
func (c *Checklist) SetItems(items []CheckItem) {
	c.Items = items
	if c.Selected >= len(items) {
		c.Selected = max(len(items)-1, 0)
	}
}

// Update handles navigation and selection.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Items) == 0 {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Items)-1 {
			c.Selected++
		}
	case "enter", "space", " ":
		key := c.Items[c.Selected].Key
		return c, func() tea.Msg { return ChosenMsg{Key: key} }
	}
	return c, nil
}

// View renders the rows within width.
func (c Checklist) View(width int) string {
	var b strings.Builder
	group := ""
	for i, it := range c.Items {
		if it.Group != "" && it.Group != group {
			group = it.Group
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(group))
			b.WriteString("\n")
		}

		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		box := ""
		if !c.NoBoxes {
			box = "[ ] "
			if it.Checked {
				box = "[x] "
			}
		}
		left := prefix + box + it.Label
		gap := max(width-lipgloss.Width(left)-lipgloss.Width(it.Detail), 1)
		line := left + strings.Repeat(" ", gap) + it.Detail

		style := theme.Normal
		switch {
		case i == c.Selected:
			style = theme.Selected
		case it.Checked:
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// XPDetail formats an XP amount for a row.
func XPDetail(xp int) string {
	return fmt.Sprintf("%+d XP", xp)
}
