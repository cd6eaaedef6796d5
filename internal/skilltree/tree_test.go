package skilltree

import (
	"strings"
	"testing"
)

func TestValidate_CatalogPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("catalog validation failed: %v", err)
	}
}

func TestValidateSkills_DetectsCycle(t *testing.T) {
	skills := []Skill{
		{ID: "a", Cost: 1, Requires: []ID{"b"}, Effect: Resistance{Target: "x", Value: 0.1}},
		{ID: "b", Cost: 1, Requires: []ID{"a"}, Effect: Resistance{Target: "x", Value: 0.1}},
	}
	err := validateSkills(skills)
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestValidateSkills_DetectsBadEffects(t *testing.T) {
	skills := []Skill{
		{ID: "a", Cost: 1, Effect: Resistance{Target: "x", Value: 1.5}},
		{ID: "b", Cost: 0, Effect: Resistance{Value: 0.2}},
		{ID: "c", Cost: 1, Requires: []ID{"missing"}},
	}
	err := validateSkills(skills)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"resistance must be", "cost must be", "no target", "no effect", "missing"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestTopologicalOrder_PrerequisitesFirst(t *testing.T) {
	order := TopologicalOrder()
	if len(order) != len(All()) {
		t.Fatalf("topological order has %d skills, catalog has %d", len(order), len(All()))
	}
	pos := make(map[ID]int, len(order))
	for i, s := range order {
		pos[s.ID] = i
	}
	for _, s := range order {
		for _, req := range s.Requires {
			if pos[req] >= pos[s.ID] {
				t.Errorf("skill %q appears before its prerequisite %q", s.ID, req)
			}
		}
	}
}

func TestResistanceOf(t *testing.T) {
	r, ok := ResistanceOf("steel_mind_1")
	if !ok {
		t.Fatal("steel_mind_1 should have a resistance effect")
	}
	if r.Target != PenaltySocialMedia || r.Value != 0.1 {
		t.Errorf("unexpected resistance %+v", r)
	}
	if _, ok := ResistanceOf("nope"); ok {
		t.Error("unknown skill should have no resistance")
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		id       ID
		unlocked []ID
		points   int
		want     Block
	}{
		{"unknown", "nope", nil, 10, BlockUnknown},
		{"root affordable", "steel_mind_1", nil, 1, Unlockable},
		{"root too expensive", "steel_mind_1", nil, 0, BlockInsufficientPoints},
		{"already unlocked", "steel_mind_1", []ID{"steel_mind_1"}, 5, BlockAlreadyUnlocked},
		{"missing prerequisite", "steel_mind_2", nil, 5, BlockMissingPrerequisite},
		{"prerequisite met", "steel_mind_2", []ID{"steel_mind_1"}, 2, Unlockable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.id, tt.unlocked, tt.points); got != tt.want {
				t.Errorf("Check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrerequisitesMet_MultiParent(t *testing.T) {
	saved := idx
	defer func() { idx = saved }()

	idx = buildTree([]Skill{
		{ID: "a", Cost: 1, Effect: Resistance{Target: "x", Value: 0.1}},
		{ID: "b", Cost: 1, Effect: Resistance{Target: "y", Value: 0.1}},
		{ID: "c", Cost: 1, Requires: []ID{"a", "b"}, Effect: Resistance{Target: "z", Value: 0.1}},
	})

	if PrerequisitesMet("c", []ID{"a"}) {
		t.Error("c should need both a and b")
	}
	if !PrerequisitesMet("c", []ID{"b", "a"}) {
		t.Error("c should be available once a and b are unlocked")
	}
	if got := StateOf("c", []ID{"a"}); got != StateLocked {
		t.Errorf("StateOf(c) = %v, want locked", got.Label())
	}
}

func TestStateOf(t *testing.T) {
	if got := StateOf("steel_mind_1", nil); got != StateAvailable {
		t.Errorf("root should be available, got %s", got.Label())
	}
	if got := StateOf("steel_mind_2", nil); got != StateLocked {
		t.Errorf("steel_mind_2 should be locked, got %s", got.Label())
	}
	if got := StateOf("steel_mind_1", []ID{"steel_mind_1"}); got != StateUnlocked {
		t.Errorf("steel_mind_1 should be unlocked, got %s", got.Label())
	}
}
