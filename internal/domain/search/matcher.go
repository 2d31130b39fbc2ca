package search

import (
	"context"
	"sort"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/facet"
)

// RestaurantMatch is one result entry: a restaurant together with the
// names of its menu items that satisfied the composed predicate.
type RestaurantMatch struct {
	Restaurant catalog.Restaurant `json:"restaurant"`
	Items      []string           `json:"items"`
}

// MatchResult is the ordered outcome of a completed narrowing run.
type MatchResult struct {
	Restaurants []RestaurantMatch `json:"restaurants"`
}

// Matcher resolves a confirmed selection set into the final result
// list. It owns the one asymmetry the composer does not express: a
// run that confirmed no food items matches nothing at all, rather
// than everything.
type Matcher struct {
	store catalog.Store
}

// NewMatcher creates a matcher over store.
func NewMatcher(store catalog.Store) *Matcher {
	return &Matcher{store: store}
}

// Match composes the predicate from sel and returns every restaurant
// with at least one satisfying menu item, each entry carrying the
// matching item names. An empty food item selection short-circuits to
// an empty result without touching the store.
func (m *Matcher) Match(ctx context.Context, sel facet.Selections) (MatchResult, error) {
	if sel.Empty(facet.FoodItem) {
		return MatchResult{Restaurants: []RestaurantMatch{}}, nil
	}

	pred := facet.Compose(sel)

	restaurants, err := m.store.MatchRestaurants(ctx, pred)
	if err != nil {
		return MatchResult{}, apperror.NewDataUnavailable("results", err)
	}
	sort.SliceStable(restaurants, func(i, j int) bool {
		if restaurants[i].Name != restaurants[j].Name {
			return restaurants[i].Name < restaurants[j].Name
		}
		return restaurants[i].ID.String() < restaurants[j].ID.String()
	})

	out := MatchResult{Restaurants: make([]RestaurantMatch, 0, len(restaurants))}
	for _, r := range restaurants {
		items, err := m.store.MatchingItems(ctx, r.ID, pred)
		if err != nil {
			return MatchResult{}, apperror.NewDataUnavailable("results", err)
		}
		sort.Strings(items)
		out.Restaurants = append(out.Restaurants, RestaurantMatch{Restaurant: r, Items: items})
	}
	return out, nil
}
