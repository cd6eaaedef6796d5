package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeaderShowsStats(t *testing.T) {
	h := RenderHeader("Dashboard", &HeaderStats{TotalXP: 420, Streak: 3}, 100)
	for _, want := range []string{"Proyo", "Dashboard", "420 XP", "3"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if strings.Contains(RenderHeader("Welcome", nil, 100), "XP") {
		t.Error("header without stats should not show XP")
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("x", nil, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}
