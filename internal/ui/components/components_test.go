package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	var chosen string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b", Action: pick("b")},
		{Label: "c", Disabled: true},
		{Label: "d", Action: pick("d")},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(key("down"))
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(key("enter"))
	if chosen != "d" {
		t.Errorf("chosen = %q, want d", chosen)
	}
	m, _ = m.Update(key("up"))
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}
}

func TestChecklistChoose(t *testing.T) {
	c := NewChecklist([]CheckItem{
		{Key: "one", Label: "One", Detail: "+5 XP"},
		{Key: "two", Label: "Two", Detail: "+10 XP", Checked: true},
	})
	c, _ = c.Update(key("down"))
	c, cmd := c.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(ChosenMsg)
	if !ok || msg.Key != "two" {
		t.Errorf("got %#v, want ChosenMsg{two}", cmd())
	}

	view := c.View(40)
	if !strings.Contains(view, "[x] Two") || !strings.Contains(view, "[ ] One") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestChecklistSetItemsClampsCursor(t *testing.T) {
	c := NewChecklist([]CheckItem{{Key: "a"}, {Key: "b"}, {Key: "c"}})
	c.Selected = 2
	c.SetItems([]CheckItem{{Key: "a"}})
	if c.Selected != 0 {
		t.Errorf("Selected = %d, want 0", c.Selected)
	}
}

func TestProgressBarSuffix(t *testing.T) {
	bar := ProgressBar{Label: "Week", Percent: 0.5, Suffix: "40/80", Width: 40}
	if !strings.Contains(bar.View(), "40/80") {
		t.Error("missing suffix")
	}
	if !strings.Contains(NewProgressBar("", 0.25, 30).View(), "25%") {
		t.Error("missing percentage")
	}
}

func TestNumericInputAcceptsLeadingMinus(t *testing.T) {
	in := NewTextInput("XP", "", true, 5)
	in.Focus()
	in, _ = in.Update(key("-"))
	in, _ = in.Update(key("x"))
	in, _ = in.Update(key("7"))
	in, _ = in.Update(key("-"))
	if in.Value() != "-7" {
		t.Errorf("Value() = %q, want -7", in.Value())
	}
	if n, err := in.NumericValue(); err != nil || n != -7 {
		t.Errorf("NumericValue() = %d, %v", n, err)
	}
}
