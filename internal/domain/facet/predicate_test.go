package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_SkipsEmptyFacets(t *testing.T) {
	sel := NewSelections()
	sel.Set(Cuisine, []string{"Italian", "Japanese"})

	p := Compose(sel)

	require.Len(t, p.Clauses, 1)
	c := p.Clauses[0]
	assert.Equal(t, Cuisine, c.Facet)
	assert.False(t, c.Exclude)
	assert.Equal(t, MatchExact, c.Mode)
	assert.Equal(t, []string{"Italian", "Japanese"}, c.Values)
}

func TestCompose_ClauseTagging(t *testing.T) {
	sel := NewSelections()
	sel.Set(Cuisine, []string{"Italian"})
	sel.Set(MealType, []string{"Dinner"})
	sel.Set(Restriction, []string{"Dairy"})
	sel.Set(FoodItem, []string{"Pizza"})

	p := Compose(sel)
	require.Len(t, p.Clauses, 4)

	restriction, ok := p.Clause(Restriction)
	require.True(t, ok)
	assert.True(t, restriction.Exclude, "restriction is the only exclusion facet")

	food, ok := p.Clause(FoodItem)
	require.True(t, ok)
	assert.Equal(t, MatchContains, food.Mode, "food items match by substring")

	meal, ok := p.Clause(MealType)
	require.True(t, ok)
	assert.False(t, meal.Exclude)
	assert.Equal(t, MatchExact, meal.Mode)
}

func TestCompose_ClauseOrderFollowsStages(t *testing.T) {
	sel := NewSelections()
	sel.Set(FoodItem, []string{"Pizza"})
	sel.Set(Cuisine, []string{"Italian"})

	p := Compose(sel)
	require.Len(t, p.Clauses, 2)
	assert.Equal(t, Cuisine, p.Clauses[0].Facet)
	assert.Equal(t, FoodItem, p.Clauses[1].Facet)
}

func TestComposeUpstream(t *testing.T) {
	sel := NewSelections()
	sel.Set(Cuisine, []string{"Italian"})
	sel.Set(MealType, []string{"Dinner"})
	sel.Set(Restriction, []string{"Nuts"})
	sel.Set(FoodItem, []string{"Pizza"})

	tests := []struct {
		facet Facet
		want  []Facet
	}{
		{Cuisine, nil},
		{MealType, []Facet{Cuisine}},
		{Restriction, nil},
		{FoodItem, []Facet{Cuisine, MealType, Restriction}},
	}
	for _, tt := range tests {
		t.Run(string(tt.facet), func(t *testing.T) {
			p := ComposeUpstream(tt.facet, sel)
			var got []Facet
			for _, c := range p.Clauses {
				got = append(got, c.Facet)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelections_SetDeduplicates(t *testing.T) {
	sel := NewSelections()
	sel.Set(Cuisine, []string{"Thai", "Greek", "Thai", "", "Greek"})
	assert.Equal(t, []string{"Thai", "Greek"}, sel.Get(Cuisine))
}

func TestSelections_ClearAndClone(t *testing.T) {
	sel := NewSelections()
	sel.Set(Cuisine, []string{"Thai"})

	cp := sel.Clone()
	sel.Clear()

	assert.True(t, sel.Empty(Cuisine))
	assert.Equal(t, []string{"Thai"}, cp.Get(Cuisine))
}

func TestStageTable(t *testing.T) {
	assert.Equal(t, 0, StageIndex(Cuisine))
	assert.Equal(t, 3, StageIndex(FoodItem))
	assert.Equal(t, -1, StageIndex(Facet("price")))

	restriction, ok := StageFor(Restriction)
	require.True(t, ok)
	assert.False(t, restriction.Required, "restriction may be confirmed empty")
	assert.True(t, restriction.Exclusion)

	for _, st := range Stages {
		if st.Facet == Restriction {
			continue
		}
		assert.True(t, st.Required, "%s is a required facet", st.Facet)
		assert.False(t, st.Exclusion)
	}
}
