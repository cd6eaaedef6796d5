// Package skilltree is the static catalog of unlockable skills.
package skilltree

// ID identifies a skill.
type ID string

// Category groups skills for display.
type Category string

const (
	CategoryDiscipline Category = "discipline"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{CategoryDiscipline}
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryDiscipline:
		return "Disciplina"
	default:
		return string(c)
	}
}

// EffectKind tags the variant of an Effect.
type EffectKind string

const (
	EffectResistance EffectKind = "resistance"
)

// Effect is what an unlocked skill does. The set of variants is closed.
type Effect interface {
	Kind() EffectKind
	isEffect()
}

// Resistance scales the XP lost to a specific penalty by (1 - Value).
type Resistance struct {
	Target string  // penalty action description
	Value  float64 // fraction in (0, 1)
}

func (Resistance) Kind() EffectKind { return EffectResistance }
func (Resistance) isEffect()        {}

// Skill is a node of the skill tree.
type Skill struct {
	ID          ID
	Name        string
	Description string
	Category    Category
	Cost        int
	Requires    []ID // every listed skill must be unlocked first
	Effect      Effect
}

// State is a skill's state relative to the user.
type State int

const (
	StateLocked    State = iota // one or more prerequisites not unlocked
	StateAvailable              // prerequisites met, not yet unlocked
	StateUnlocked
)

// Icon returns the display icon for a skill state.
func (s State) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateAvailable:
		return "🔓"
	case StateUnlocked:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a skill state.
func (s State) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateAvailable:
		return "Available"
	case StateUnlocked:
		return "Unlocked"
	default:
		return "Unknown"
	}
}

// Block explains why a skill cannot be unlocked.
type Block int

const (
	Unlockable Block = iota
	BlockUnknown
	BlockAlreadyUnlocked
	BlockInsufficientPoints
	BlockMissingPrerequisite
)

func (b Block) String() string {
	switch b {
	case Unlockable:
		return "unlockable"
	case BlockUnknown:
		return "unknown skill"
	case BlockAlreadyUnlocked:
		return "already unlocked"
	case BlockInsufficientPoints:
		return "not enough skill points"
	case BlockMissingPrerequisite:
		return "prerequisite not unlocked"
	default:
		return "unknown"
	}
}
