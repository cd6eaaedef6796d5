package skilltree

import "fmt"

// Penalty descriptions targeted by resistance skills. The default plan uses
// the same strings for its negative actions.
const (
	PenaltySocialMedia = "Uso excesivo de redes"
	PenaltyMissedGoal  = "No cumplir meta diaria"
)

func init() {
	idx = buildTree(catalog())
}

func catalog() []Skill {
	return []Skill{
		{
			ID:          "steel_mind_1",
			Name:        "Mente de Acero I",
			Description: fmt.Sprintf("Reduce la penalización de XP por %q en un 10%%.", PenaltySocialMedia),
			Category:    CategoryDiscipline,
			Cost:        1,
			Effect:      Resistance{Target: PenaltySocialMedia, Value: 0.1},
		},
		{
			ID:          "steel_mind_2",
			Name:        "Mente de Acero II",
			Description: fmt.Sprintf("Reduce la penalización de XP por %q en un 15%%.", PenaltyMissedGoal),
			Category:    CategoryDiscipline,
			Cost:        2,
			Requires:    []ID{"steel_mind_1"},
			Effect:      Resistance{Target: PenaltyMissedGoal, Value: 0.15},
		},
	}
}
