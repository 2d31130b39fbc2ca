// Package facet defines the search dimensions, the per-facet stage
// configuration table, and the tagged predicate tree composed from user
// selections. It is a leaf package: catalog stores depend on it to lower
// predicates into their own query mechanism, the pipeline depends on it
// to drive stage transitions.
package facet

// Facet is one selectable dimension of the search.
type Facet string

const (
	Cuisine     Facet = "cuisine"
	MealType    Facet = "meal_type"
	Restriction Facet = "restriction"
	FoodItem    Facet = "food_item"
)

// Valid reports whether f is a known facet.
func (f Facet) Valid() bool {
	switch f {
	case Cuisine, MealType, Restriction, FoodItem:
		return true
	}
	return false
}

// StageConfig describes one wizard stage. The whole pipeline is driven
// by this table instead of one bespoke implementation per facet.
type StageConfig struct {
	// Facet selected at this stage.
	Facet Facet

	// Prompt shown to the user when the stage is active.
	Prompt string

	// Required forbids confirming the stage with an empty selection.
	Required bool

	// Exclusion flips the facet's semantics: an entity matches only if
	// it carries none of the selected values.
	Exclusion bool

	// Upstream lists the facets whose selections constrain this
	// stage's option list. Order matters for cascading refresh.
	Upstream []Facet
}

// Stages is the ordered wizard configuration:
// Cuisine → MealType → Restriction → FoodItem.
// Restriction is the only optional facet and the only exclusionary one.
var Stages = []StageConfig{
	{
		Facet:    Cuisine,
		Prompt:   "What kind(s) of cuisine do you want?",
		Required: true,
	},
	{
		Facet:    MealType,
		Prompt:   "What kind of meals are you looking for?",
		Required: true,
		Upstream: []Facet{Cuisine},
	},
	{
		Facet:     Restriction,
		Prompt:    "Select allergens or dietary restrictions (optional)",
		Exclusion: true,
	},
	{
		Facet:    FoodItem,
		Prompt:   "Select food items",
		Required: true,
		Upstream: []Facet{Cuisine, MealType, Restriction},
	},
}

// StageIndex returns the position of f in Stages, or -1.
func StageIndex(f Facet) int {
	for i, s := range Stages {
		if s.Facet == f {
			return i
		}
	}
	return -1
}

// StageFor returns the configuration of f's stage.
func StageFor(f Facet) (StageConfig, bool) {
	if i := StageIndex(f); i >= 0 {
		return Stages[i], true
	}
	return StageConfig{}, false
}
