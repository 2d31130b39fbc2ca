package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodfinder/internal/domain/facet"
)

func composeFrom(t *testing.T, pairs map[facet.Facet][]string) facet.Predicate {
	t.Helper()
	sel := facet.NewSelections()
	for f, values := range pairs {
		sel.Set(f, values)
	}
	return facet.Compose(sel)
}

func TestApplyPredicateEmptyAddsNoConditions(t *testing.T) {
	q := applyPredicate(itemJoin("DISTINCT i.name"), facet.Predicate{})
	sql, args, err := q.ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestApplyPredicateInclusionClauses(t *testing.T) {
	pred := composeFrom(t, map[facet.Facet][]string{
		facet.Cuisine:  {"Italian", "Japanese"},
		facet.MealType: {"dinner"},
	})

	sql, args, err := applyPredicate(itemJoin("DISTINCT i.name"), pred).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "r.cuisine IN ($1,$2)")
	assert.Contains(t, sql, "m.meal_type IN ($3)")
	assert.Equal(t, []any{"Italian", "Japanese", "dinner"}, args)
}

func TestApplyPredicateRestrictionLowersToNotExists(t *testing.T) {
	pred := composeFrom(t, map[facet.Facet][]string{
		facet.Restriction: {"dairy", "gluten"},
	})

	sql, args, err := applyPredicate(itemJoin("DISTINCT i.name"), pred).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "NOT EXISTS")
	assert.Contains(t, sql, "a.name = ANY($1)")
	require.Len(t, args, 1)
	assert.Equal(t, []string{"dairy", "gluten"}, args[0])
}

func TestApplyPredicateFoodItemsLowerToILikeOr(t *testing.T) {
	pred := composeFrom(t, map[facet.Facet][]string{
		facet.FoodItem: {"pizza", "sushi"},
	})

	sql, args, err := applyPredicate(itemJoin("DISTINCT i.name"), pred).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "(i.name ILIKE $1 OR i.name ILIKE $2)")
	assert.Equal(t, []any{"%pizza%", "%sushi%"}, args)
}

func TestApplyPredicateClauseConjunction(t *testing.T) {
	pred := composeFrom(t, map[facet.Facet][]string{
		facet.Cuisine:     {"Italian"},
		facet.MealType:    {"dinner"},
		facet.Restriction: {"dairy"},
		facet.FoodItem:    {"pizza"},
	})

	sql, args, err := applyPredicate(itemJoin("DISTINCT i.name"), pred).ToSql()
	require.NoError(t, err)

	// Stage order is preserved in the generated conjunction.
	assert.Contains(t, sql, "r.cuisine IN ($1) AND m.meal_type IN ($2) AND NOT EXISTS")
	assert.Contains(t, sql, "i.name ILIKE $4")
	assert.Len(t, args, 4)
}

func TestParseOrderBy(t *testing.T) {
	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{"default", "", "name ASC", false},
		{"ascending", "cuisine", "cuisine ASC", false},
		{"descending", "-rating", "rating DESC", false},
		{"unknown column", "password_hash", "", true},
		{"injection attempt", "name; DROP TABLE restaurant", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOrderBy(tt.orderBy)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
