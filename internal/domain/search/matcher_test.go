package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/facet"
	"foodfinder/internal/domain/search"
	"foodfinder/internal/infrastructure/storage/memory"
)

// seedCatalog builds the fixture shared by the search tests:
//
//	Bella Napoli (Italian)  dinner: Margherita Pizza [gluten dairy], Pasta Carbonara [gluten dairy egg]
//	                        lunch:  Caprese Salad [dairy]
//	Green Leaf   (Italian)  lunch:  Pizza Bianca [gluten]
//	Tokyo Garden (Japanese) dinner: Salmon Sushi [fish], Veggie Ramen [gluten soy]
func seedCatalog(t *testing.T) *memory.CatalogStore {
	t.Helper()
	ctx := context.Background()
	store := memory.NewCatalogStore()

	type dish struct {
		name      string
		allergens []string
	}
	fixture := []struct {
		name    string
		cuisine string
		menus   map[string][]dish
	}{
		{"Bella Napoli", "Italian", map[string][]dish{
			"dinner": {{"Margherita Pizza", []string{"gluten", "dairy"}}, {"Pasta Carbonara", []string{"gluten", "dairy", "egg"}}},
			"lunch":  {{"Caprese Salad", []string{"dairy"}}},
		}},
		{"Green Leaf", "Italian", map[string][]dish{
			"lunch": {{"Pizza Bianca", []string{"gluten"}}},
		}},
		{"Tokyo Garden", "Japanese", map[string][]dish{
			"dinner": {{"Salmon Sushi", []string{"fish"}}, {"Veggie Ramen", []string{"gluten", "soy"}}},
		}},
	}

	for _, f := range fixture {
		r := catalog.NewRestaurant(f.name, f.cuisine, "$$", decimal.NewFromFloat(4.2), 40.0, -74.0)
		require.NoError(t, store.CreateRestaurant(ctx, r))
		for mealType, dishes := range f.menus {
			m := catalog.NewMenu(r.ID, mealType)
			require.NoError(t, store.CreateMenu(ctx, m))
			for _, d := range dishes {
				item := catalog.NewMenuItem(m.ID, d.name, "", d.allergens)
				require.NoError(t, store.CreateItem(ctx, item))
			}
		}
	}
	return store
}

// brokenStore fails every read. It proves code paths that must not
// touch the store.
type brokenStore struct{}

func (brokenStore) FacetOptions(context.Context, facet.Facet, facet.Selections) ([]string, error) {
	return nil, errors.New("store down")
}
func (brokenStore) MatchRestaurants(context.Context, facet.Predicate) ([]catalog.Restaurant, error) {
	return nil, errors.New("store down")
}
func (brokenStore) MatchingItems(context.Context, id.ID, facet.Predicate) ([]string, error) {
	return nil, errors.New("store down")
}

func TestMatcherEmptyFoodItemsMatchNothing(t *testing.T) {
	// The matcher must short-circuit before any store access.
	m := search.NewMatcher(brokenStore{})

	sel := facet.NewSelections()
	sel.Set(facet.Cuisine, []string{"Italian"})

	res, err := m.Match(context.Background(), sel)
	require.NoError(t, err)
	assert.Empty(t, res.Restaurants)
}

func TestMatcherComposedNarrowing(t *testing.T) {
	store := seedCatalog(t)
	m := search.NewMatcher(store)
	ctx := context.Background()

	sel := facet.NewSelections()
	sel.Set(facet.Cuisine, []string{"Italian"})
	sel.Set(facet.FoodItem, []string{"pizza"})

	res, err := m.Match(ctx, sel)
	require.NoError(t, err)
	require.Len(t, res.Restaurants, 2)

	assert.Equal(t, "Bella Napoli", res.Restaurants[0].Restaurant.Name)
	assert.Equal(t, []string{"Margherita Pizza"}, res.Restaurants[0].Items)
	assert.Equal(t, "Green Leaf", res.Restaurants[1].Restaurant.Name)
	assert.Equal(t, []string{"Pizza Bianca"}, res.Restaurants[1].Items)
}

func TestMatcherRestrictionExcludes(t *testing.T) {
	store := seedCatalog(t)
	m := search.NewMatcher(store)

	sel := facet.NewSelections()
	sel.Set(facet.Restriction, []string{"dairy"})
	sel.Set(facet.FoodItem, []string{"pizza"})

	res, err := m.Match(context.Background(), sel)
	require.NoError(t, err)
	require.Len(t, res.Restaurants, 1)
	assert.Equal(t, "Green Leaf", res.Restaurants[0].Restaurant.Name)
	assert.Equal(t, []string{"Pizza Bianca"}, res.Restaurants[0].Items)
}

func TestMatcherMonotonicity(t *testing.T) {
	store := seedCatalog(t)
	m := search.NewMatcher(store)
	ctx := context.Background()

	names := func(sel facet.Selections) []string {
		res, err := m.Match(ctx, sel)
		require.NoError(t, err)
		out := make([]string, 0, len(res.Restaurants))
		for _, r := range res.Restaurants {
			out = append(out, r.Restaurant.Name)
		}
		return out
	}

	t.Run("widening an inclusion facet never shrinks the result set", func(t *testing.T) {
		narrow := facet.NewSelections()
		narrow.Set(facet.FoodItem, []string{"pizza"})
		wide := narrow.Clone()
		wide.Set(facet.FoodItem, []string{"pizza", "sushi"})

		got, want := names(wide), names(narrow)
		assert.Subset(t, got, want)
		assert.Equal(t, []string{"Bella Napoli", "Green Leaf"}, want)
		assert.Equal(t, []string{"Bella Napoli", "Green Leaf", "Tokyo Garden"}, got)
	})

	t.Run("widening the exclusion facet never grows the result set", func(t *testing.T) {
		narrow := facet.NewSelections()
		narrow.Set(facet.FoodItem, []string{"pizza", "sushi", "salad"})
		narrow.Set(facet.Restriction, []string{"dairy"})
		wide := narrow.Clone()
		wide.Set(facet.Restriction, []string{"dairy", "gluten"})

		got, want := names(wide), names(narrow)
		assert.Subset(t, want, got)
		assert.Equal(t, []string{"Green Leaf", "Tokyo Garden"}, want)
		assert.Equal(t, []string{"Tokyo Garden"}, got)
	})
}

func TestMatcherStoreFailure(t *testing.T) {
	m := search.NewMatcher(brokenStore{})

	sel := facet.NewSelections()
	sel.Set(facet.FoodItem, []string{"pizza"})

	_, err := m.Match(context.Background(), sel)
	require.Error(t, err)
	assert.True(t, apperror.IsDataUnavailable(err))
}

func TestOptionProvider(t *testing.T) {
	store := seedCatalog(t)
	provider := search.NewOptionProvider(store)
	ctx := context.Background()

	t.Run("global cuisines sorted", func(t *testing.T) {
		opts, err := provider.Options(ctx, facet.Cuisine, facet.NewSelections())
		require.NoError(t, err)
		assert.Equal(t, []string{"Italian", "Japanese"}, opts)
	})

	t.Run("meal types narrowed by cuisine", func(t *testing.T) {
		sel := facet.NewSelections()
		sel.Set(facet.Cuisine, []string{"Japanese"})
		opts, err := provider.Options(ctx, facet.MealType, sel)
		require.NoError(t, err)
		assert.Equal(t, []string{"dinner"}, opts)
	})

	t.Run("empty upstream selection is an open filter", func(t *testing.T) {
		opts, err := provider.Options(ctx, facet.MealType, facet.NewSelections())
		require.NoError(t, err)
		assert.Equal(t, []string{"dinner", "lunch"}, opts)
	})

	t.Run("restrictions come from the global vocabulary", func(t *testing.T) {
		sel := facet.NewSelections()
		sel.Set(facet.Cuisine, []string{"Japanese"})
		sel.Set(facet.MealType, []string{"dinner"})
		opts, err := provider.Options(ctx, facet.Restriction, sel)
		require.NoError(t, err)
		assert.Equal(t, []string{"dairy", "egg", "fish", "gluten", "soy"}, opts)
	})

	t.Run("food items narrowed by full upstream", func(t *testing.T) {
		sel := facet.NewSelections()
		sel.Set(facet.Cuisine, []string{"Italian"})
		sel.Set(facet.MealType, []string{"dinner"})
		sel.Set(facet.Restriction, []string{"egg"})
		opts, err := provider.Options(ctx, facet.FoodItem, sel)
		require.NoError(t, err)
		assert.Equal(t, []string{"Margherita Pizza"}, opts)
	})

	t.Run("unknown facet rejected", func(t *testing.T) {
		_, err := provider.Options(ctx, facet.Facet("price"), facet.NewSelections())
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("store failure wrapped", func(t *testing.T) {
		broken := search.NewOptionProvider(brokenStore{})
		_, err := broken.Options(ctx, facet.Cuisine, facet.NewSelections())
		require.Error(t, err)
		assert.True(t, apperror.IsDataUnavailable(err))
	})
}
