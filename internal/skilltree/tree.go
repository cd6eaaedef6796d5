package skilltree

import (
	"slices"
	"sort"
)

// tree holds the skill DAG with precomputed indices.
type tree struct {
	skills      []Skill
	byID        map[ID]*Skill
	byCategory  map[Category][]Skill
	dependents  map[ID][]ID
	topoOrder   []Skill
	resistances map[ID]Resistance
}

// idx is the package-level tree, set by init() in catalog.go.
var idx *tree

func buildTree(skills []Skill) *tree {
	tr := &tree{
		skills:      skills,
		byID:        make(map[ID]*Skill, len(skills)),
		byCategory:  make(map[Category][]Skill),
		dependents:  make(map[ID][]ID),
		resistances: make(map[ID]Resistance),
	}

	for i := range tr.skills {
		s := &tr.skills[i]
		tr.byID[s.ID] = s
		tr.byCategory[s.Category] = append(tr.byCategory[s.Category], *s)
		for _, req := range s.Requires {
			tr.dependents[req] = append(tr.dependents[req], s.ID)
		}
		if r, ok := s.Effect.(Resistance); ok {
			tr.resistances[s.ID] = r
		}
	}

	// Kahn's algorithm; sorted queues keep the order deterministic.
	inDegree := make(map[ID]int, len(skills))
	for _, s := range skills {
		inDegree[s.ID] = len(s.Requires)
	}
	var queue []ID
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sortIDs(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		tr.topoOrder = append(tr.topoOrder, *tr.byID[id])

		deps := slices.Clone(tr.dependents[id])
		sortIDs(deps)
		for _, dep := range deps {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	return tr
}

func sortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// Get returns a skill by ID.
func Get(id ID) (Skill, bool) {
	s, ok := idx.byID[id]
	if !ok {
		return Skill{}, false
	}
	return *s, true
}

// All returns all skills in catalog order.
func All() []Skill {
	return slices.Clone(idx.skills)
}

// ByCategory returns the skills of one category in catalog order.
func ByCategory(c Category) []Skill {
	return slices.Clone(idx.byCategory[c])
}

// TopologicalOrder returns all skills so that every skill follows its prerequisites.
func TopologicalOrder() []Skill {
	return slices.Clone(idx.topoOrder)
}

// ResistanceOf returns the resistance effect of a skill, if it has one.
func ResistanceOf(id ID) (Resistance, bool) {
	r, ok := idx.resistances[id]
	return r, ok
}

// PrerequisitesMet reports whether every prerequisite of id is unlocked.
func PrerequisitesMet(id ID, unlocked []ID) bool {
	s, ok := idx.byID[id]
	if !ok {
		return false
	}
	for _, req := range s.Requires {
		if !slices.Contains(unlocked, req) {
			return false
		}
	}
	return true
}

// Check reports whether id can be unlocked with the given unlocked set and points.
func Check(id ID, unlocked []ID, points int) Block {
	s, ok := idx.byID[id]
	switch {
	case !ok:
		return BlockUnknown
	case slices.Contains(unlocked, id):
		return BlockAlreadyUnlocked
	case points < s.Cost:
		return BlockInsufficientPoints
	case !PrerequisitesMet(id, unlocked):
		return BlockMissingPrerequisite
	}
	return Unlockable
}

// StateOf returns the state of a skill for display.
func StateOf(id ID, unlocked []ID) State {
	switch {
	case slices.Contains(unlocked, id):
		return StateUnlocked
	case PrerequisitesMet(id, unlocked):
		return StateAvailable
	default:
		return StateLocked
	}
}

// Validate checks the catalog for structural issues.
func Validate() error {
	return validateSkills(idx.skills)
}
