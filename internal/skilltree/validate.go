package skilltree

import (
	"fmt"
	"strings"
)

// validateSkills performs all structural checks on the given skill set.
// Returns a combined error describing all problems found, or nil if valid.
func validateSkills(skills []Skill) error {
	var errs []string

	idSet := make(map[ID]bool, len(skills))
	for _, s := range skills {
		if idSet[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		idSet[s.ID] = true
	}

	for _, s := range skills {
		for _, req := range s.Requires {
			if !idSet[req] {
				errs = append(errs, fmt.Sprintf("skill %q requires nonexistent skill %q", s.ID, req))
			}
		}
		if s.Cost <= 0 {
			errs = append(errs, fmt.Sprintf("skill %q: cost must be > 0, got %d", s.ID, s.Cost))
		}
		switch e := s.Effect.(type) {
		case Resistance:
			if e.Value <= 0 || e.Value >= 1 {
				errs = append(errs, fmt.Sprintf("skill %q: resistance must be in (0, 1), got %f", s.ID, e.Value))
			}
			if e.Target == "" {
				errs = append(errs, fmt.Sprintf("skill %q: resistance has no target", s.ID))
			}
		case nil:
			errs = append(errs, fmt.Sprintf("skill %q has no effect", s.ID))
		}
	}

	// Cycle check (Kahn's algorithm).
	inDegree := make(map[ID]int, len(skills))
	adj := make(map[ID][]ID)
	for _, s := range skills {
		inDegree[s.ID] = len(s.Requires)
		for _, req := range s.Requires {
			adj[req] = append(adj[req], s.ID)
		}
	}
	var queue []ID
	for _, s := range skills {
		if inDegree[s.ID] == 0 {
			queue = append(queue, s.ID)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range adj[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	if visited < len(skills) {
		var cycle []string
		for _, s := range skills {
			if inDegree[s.ID] > 0 {
				cycle = append(cycle, string(s.ID))
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving skills: %s", strings.Join(cycle, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("skill tree validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
