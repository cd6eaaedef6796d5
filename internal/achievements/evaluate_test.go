package achievements

import (
	"slices"
	"testing"
)

func TestEvaluate_Rules(t *testing.T) {
	tests := []struct {
		name  string
		facts Facts
		want  []ID
	}{
		{"nothing", Facts{}, nil},
		{"first step", Facts{LogEntries: 1}, []ID{FirstStep}},
		{"centurion", Facts{TotalXP: 100}, []ID{Centurion}},
		{"just below centurion", Facts{TotalXP: 99}, nil},
		{"hoarder implies centurion", Facts{TotalXP: 1000}, []ID{Centurion, XPHoarder1K}},
		{"streak 3", Facts{CurrentStreak: 3}, []ID{Streak3}},
		{"streak 7", Facts{CurrentStreak: 7}, []ID{Streak3, Streak7}},
		{"all kpis done", Facts{KPIsTotal: 2, KPIsCompleted: 2}, []ID{DisciplineMaster}},
		{"some kpis done", Facts{KPIsTotal: 2, KPIsCompleted: 1}, nil},
		{"no kpis", Facts{KPIsTotal: 0, KPIsCompleted: 0}, nil},
		{"early bird", Facts{EarlyBirdCheckins: 5}, []ID{EarlyBird}},
		{"planner", Facts{Reminders: 1}, []ID{Planner}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, newly := Evaluate(nil, tt.facts)
			if !slices.Equal(newly, tt.want) {
				t.Errorf("newly = %v, want %v", newly, tt.want)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("unlocked = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	f := Facts{LogEntries: 2, TotalXP: 150, CurrentStreak: 4, Reminders: 1}
	once, newly := Evaluate(nil, f)
	if len(newly) == 0 {
		t.Fatal("expected unlocks on first evaluation")
	}
	twice, again := Evaluate(once, f)
	if len(again) != 0 {
		t.Errorf("second evaluation unlocked %v", again)
	}
	if !slices.Equal(once, twice) {
		t.Errorf("evaluate(evaluate(s)) = %v, want %v", twice, once)
	}
}

func TestEvaluate_NeverRemoves(t *testing.T) {
	held := []ID{DisciplineMaster, Streak7}
	got, newly := Evaluate(held, Facts{KPIsTotal: 3, KPIsCompleted: 1})
	if len(newly) != 0 {
		t.Errorf("unexpected unlocks %v", newly)
	}
	if !slices.Equal(got, held) {
		t.Errorf("unlocked = %v, want %v", got, held)
	}
}

func TestEvaluate_DoesNotAliasInput(t *testing.T) {
	held := make([]ID, 1, 8)
	held[0] = FirstStep
	got, _ := Evaluate(held, Facts{TotalXP: 100})
	got[0] = "mutated"
	if held[0] != FirstStep {
		t.Error("Evaluate must not share the input backing array")
	}
}

func TestCatalog(t *testing.T) {
	all := All()
	if len(all) != len(rules) {
		t.Errorf("catalog has %d entries, rules cover %d", len(all), len(rules))
	}
	for _, r := range rules {
		a, ok := Get(r.id)
		if !ok {
			t.Errorf("rule %q has no catalog entry", r.id)
			continue
		}
		if a.Name == "" || a.Description == "" {
			t.Errorf("achievement %q missing text", r.id)
		}
		if r.id.Icon() == "🏆" {
			t.Errorf("achievement %q has no icon", r.id)
		}
	}
}
