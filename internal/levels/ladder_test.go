package levels

import "testing"

func TestLadder(t *testing.T) {
	ladder := Ladder("Ana")
	if len(ladder) != 4 {
		t.Fatalf("expected 4 levels, got %d", len(ladder))
	}

	wantNames := []string{"Ana 1.0", "Ana 2.0", "Ana 3.0", "Ana Élite"}
	wantThresholds := []int{500, 1500, 3000, Unbounded}
	for i, l := range ladder {
		if l.Index != i {
			t.Errorf("level %d has index %d", i, l.Index)
		}
		if l.Name != wantNames[i] {
			t.Errorf("level %d name = %q, want %q", i, l.Name, wantNames[i])
		}
		if l.Threshold != wantThresholds[i] {
			t.Errorf("level %d threshold = %d, want %d", i, l.Threshold, wantThresholds[i])
		}
	}
	if !ladder[3].IsFinal() {
		t.Error("last level should be final")
	}
	if ladder[0].IsFinal() {
		t.Error("first level should not be final")
	}
}

func TestLadder_RebuiltPerName(t *testing.T) {
	a := Ladder("Ana")
	b := Ladder("Luis")
	if a[0].Name == b[0].Name {
		t.Errorf("expected names to differ, both %q", a[0].Name)
	}
	if a[0].Title != b[0].Title {
		t.Errorf("titles should not depend on name: %q vs %q", a[0].Title, b[0].Title)
	}
}

func TestIndexFor(t *testing.T) {
	ladder := Ladder("x")
	tests := []struct {
		name    string
		current int
		totalXP int
		want    int
	}{
		{"start", 0, 0, 0},
		{"just below first", 0, 499, 0},
		{"at first threshold", 0, 500, 1},
		{"jump two levels", 0, 1500, 2},
		{"jump to final", 0, 10_000, 3},
		{"never past final", 3, 1_000_000, 3},
		{"drop one level", 2, 1499, 1},
		{"drop to zero", 3, 0, 0},
		{"stays", 1, 800, 1},
		{"out of range index", 9, 100, 0},
		{"negative index", -2, 600, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IndexFor(ladder, tt.current, tt.totalXP)
			if got != tt.want {
				t.Errorf("IndexFor(%d, %d) = %d, want %d", tt.current, tt.totalXP, got, tt.want)
			}
		})
	}
}

func TestIndexFor_ConsistentWithThresholds(t *testing.T) {
	ladder := Ladder("x")
	for xp := 0; xp <= 4000; xp += 7 {
		idx := IndexFor(ladder, 0, xp)
		if idx > 0 && xp < ladder[idx-1].Threshold {
			t.Fatalf("xp %d below previous threshold at index %d", xp, idx)
		}
		if xp >= ladder[idx].Threshold {
			t.Fatalf("xp %d reached threshold of index %d", xp, idx)
		}
	}
}

func TestCurrent_Clamps(t *testing.T) {
	ladder := Ladder("x")
	if got := Current(ladder, -1).Index; got != 0 {
		t.Errorf("Current(-1) = %d, want 0", got)
	}
	if got := Current(ladder, 42).Index; got != 3 {
		t.Errorf("Current(42) = %d, want 3", got)
	}
	if got := Current(nil, 1); got != (Level{}) {
		t.Errorf("Current(nil) = %+v, want zero", got)
	}
}

func TestProgress(t *testing.T) {
	if got := RankProgress(250); got != 0.5 {
		t.Errorf("RankProgress(250) = %v, want 0.5", got)
	}
	if got := RankProgress(300); got != 0 {
		t.Errorf("RankProgress(300) = %v, want 0", got)
	}
	if got := WeeklyProgress(40); got != 0.5 {
		t.Errorf("WeeklyProgress(40) = %v, want 0.5", got)
	}
	if got := WeeklyProgress(200); got != 1 {
		t.Errorf("WeeklyProgress(200) = %v, want 1", got)
	}
	if got := WeeklyProgress(-20); got != 0 {
		t.Errorf("WeeklyProgress(-20) = %v, want 0", got)
	}
}
