package catalog

import (
	"context"

	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/facet"
)

// Store is the read boundary the search core consumes. Implementations
// lower facet predicates into their own query mechanism; the core never
// sees store-specific syntax.
//
// All methods must be deterministic for a fixed catalog snapshot and
// fixed arguments: option lists and match results are returned in a
// stable, implementation-defined order.
type Store interface {
	// FacetOptions returns the distinct candidate values of f, narrowed
	// by the selections of f's upstream facets. With no upstream
	// selections it returns the facet's global distinct value set; that
	// fallback is documented behavior, not an error.
	FacetOptions(ctx context.Context, f facet.Facet, upstream facet.Selections) ([]string, error)

	// MatchRestaurants returns the restaurants whose menu graph contains
	// at least one item satisfying p.
	MatchRestaurants(ctx context.Context, p facet.Predicate) ([]Restaurant, error)

	// MatchingItems returns the names of restaurantID's items satisfying
	// p, sorted.
	MatchingItems(ctx context.Context, restaurantID id.ID, p facet.Predicate) ([]string, error)
}

// ListFilter narrows administrative restaurant listings.
type ListFilter struct {
	// Search matches name or cuisine, case-insensitive substring.
	Search string

	// Cuisine restricts to an exact cuisine tag.
	Cuisine string

	// OrderBy names the sort column, "-" prefix for descending.
	OrderBy string

	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50, OrderBy: "name"}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// AdminRepository is the write boundary for catalog administration.
type AdminRepository interface {
	CreateRestaurant(ctx context.Context, r *Restaurant) error
	GetRestaurant(ctx context.Context, restaurantID id.ID) (*Restaurant, error)
	DeleteRestaurant(ctx context.Context, restaurantID id.ID) error
	ListRestaurants(ctx context.Context, filter ListFilter) (ListResult[*Restaurant], error)

	CreateMenu(ctx context.Context, m *Menu) error
	DeleteMenu(ctx context.Context, menuID id.ID) error
	MenusForRestaurant(ctx context.Context, restaurantID id.ID) ([]*Menu, error)

	CreateItem(ctx context.Context, item *MenuItem) error
	DeleteItem(ctx context.Context, itemID id.ID) error
	ItemsForMenu(ctx context.Context, menuID id.ID) ([]*MenuItem, error)
}
