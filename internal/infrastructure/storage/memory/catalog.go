// Package memory provides an in-memory catalog backend. It backs the
// demo mode of the server and the engine's test suites, and doubles as
// the executable reference for predicate semantics: the Postgres
// translation must agree with what this store computes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/facet"
)

// CatalogStore holds the whole catalog in maps guarded by one RWMutex.
// It implements both catalog.Store and catalog.AdminRepository.
type CatalogStore struct {
	mu          sync.RWMutex
	restaurants map[id.ID]catalog.Restaurant
	menus       map[id.ID]catalog.Menu
	items       map[id.ID]catalog.MenuItem
}

// NewCatalogStore creates an empty store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		restaurants: make(map[id.ID]catalog.Restaurant),
		menus:       make(map[id.ID]catalog.Menu),
		items:       make(map[id.ID]catalog.MenuItem),
	}
}

// evalItem reports whether the item, in the context of its menu and
// restaurant, satisfies every clause of p.
func evalItem(r catalog.Restaurant, m catalog.Menu, it catalog.MenuItem, p facet.Predicate) bool {
	for _, c := range p.Clauses {
		switch c.Facet {
		case facet.Cuisine:
			if !containsExact(c.Values, r.Cuisine) {
				return false
			}
		case facet.MealType:
			if !containsExact(c.Values, m.MealType) {
				return false
			}
		case facet.Restriction:
			for _, a := range it.Allergens {
				if containsExact(c.Values, a) {
					return false
				}
			}
		case facet.FoodItem:
			if !containsSubstring(c.Values, it.Name) {
				return false
			}
		}
	}
	return true
}

func containsExact(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsSubstring(values []string, name string) bool {
	lowered := strings.ToLower(name)
	for _, candidate := range values {
		if strings.Contains(lowered, strings.ToLower(candidate)) {
			return true
		}
	}
	return false
}

// forEachItem calls fn for every (restaurant, menu, item) triple.
// Callers must hold the read lock.
func (s *CatalogStore) forEachItem(fn func(r catalog.Restaurant, m catalog.Menu, it catalog.MenuItem)) {
	for _, it := range s.items {
		m, ok := s.menus[it.MenuID]
		if !ok {
			continue
		}
		r, ok := s.restaurants[m.RestaurantID]
		if !ok {
			continue
		}
		fn(r, m, it)
	}
}

// FacetOptions implements catalog.Store.
func (s *CatalogStore) FacetOptions(_ context.Context, f facet.Facet, upstream facet.Selections) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pred := facet.ComposeUpstream(f, upstream)
	seen := make(map[string]struct{})

	switch f {
	case facet.Cuisine:
		for _, r := range s.restaurants {
			seen[r.Cuisine] = struct{}{}
		}
	case facet.MealType:
		for _, m := range s.menus {
			r, ok := s.restaurants[m.RestaurantID]
			if !ok {
				continue
			}
			if c, has := pred.Clause(facet.Cuisine); has && !containsExact(c.Values, r.Cuisine) {
				continue
			}
			seen[m.MealType] = struct{}{}
		}
	case facet.Restriction:
		// Restrictions are offered from the global allergen vocabulary;
		// they narrow results, they are not narrowed themselves.
		s.forEachItem(func(_ catalog.Restaurant, _ catalog.Menu, it catalog.MenuItem) {
			for _, a := range it.Allergens {
				seen[a] = struct{}{}
			}
		})
	case facet.FoodItem:
		s.forEachItem(func(r catalog.Restaurant, m catalog.Menu, it catalog.MenuItem) {
			if evalItem(r, m, it, pred) {
				seen[it.Name] = struct{}{}
			}
		})
	default:
		return nil, apperror.NewValidation("unknown facet").WithDetail("facet", string(f))
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// MatchRestaurants implements catalog.Store.
func (s *CatalogStore) MatchRestaurants(_ context.Context, p facet.Predicate) ([]catalog.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make(map[id.ID]catalog.Restaurant)
	s.forEachItem(func(r catalog.Restaurant, m catalog.Menu, it catalog.MenuItem) {
		if evalItem(r, m, it, p) {
			matched[r.ID] = r
		}
	})

	out := make([]catalog.Restaurant, 0, len(matched))
	for _, r := range matched {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// MatchingItems implements catalog.Store.
func (s *CatalogStore) MatchingItems(_ context.Context, restaurantID id.ID, p facet.Predicate) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	s.forEachItem(func(r catalog.Restaurant, m catalog.Menu, it catalog.MenuItem) {
		if r.ID == restaurantID && evalItem(r, m, it, p) {
			seen[it.Name] = struct{}{}
		}
	})

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// --- catalog.AdminRepository ---

// CreateRestaurant stores a restaurant. Names are unique.
func (s *CatalogStore) CreateRestaurant(_ context.Context, r *catalog.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.restaurants {
		if existing.Name == r.Name {
			return apperror.NewDuplicate("restaurant", "name", r.Name)
		}
	}
	s.restaurants[r.ID] = *r
	return nil
}

// GetRestaurant implements catalog.AdminRepository.
func (s *CatalogStore) GetRestaurant(_ context.Context, restaurantID id.ID) (*catalog.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.restaurants[restaurantID]
	if !ok {
		return nil, apperror.NewNotFound("restaurant", restaurantID)
	}
	out := r
	return &out, nil
}

// DeleteRestaurant removes a restaurant and cascades over its menus
// and items.
func (s *CatalogStore) DeleteRestaurant(_ context.Context, restaurantID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restaurants[restaurantID]; !ok {
		return apperror.NewNotFound("restaurant", restaurantID)
	}
	delete(s.restaurants, restaurantID)
	for mid, m := range s.menus {
		if m.RestaurantID != restaurantID {
			continue
		}
		delete(s.menus, mid)
		for iid, it := range s.items {
			if it.MenuID == mid {
				delete(s.items, iid)
			}
		}
	}
	return nil
}

// ListRestaurants implements catalog.AdminRepository.
func (s *CatalogStore) ListRestaurants(_ context.Context, filter catalog.ListFilter) (catalog.ListResult[*catalog.Restaurant], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	all := make([]*catalog.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		if filter.Cuisine != "" && r.Cuisine != filter.Cuisine {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Name), search) &&
			!strings.Contains(strings.ToLower(r.Cuisine), search) {
			continue
		}
		copied := r
		all = append(all, &copied)
	}

	orderBy := filter.OrderBy
	desc := strings.HasPrefix(orderBy, "-")
	orderBy = strings.TrimPrefix(orderBy, "-")
	sort.Slice(all, func(i, j int) bool {
		var less bool
		switch orderBy {
		case "cuisine":
			less = all[i].Cuisine < all[j].Cuisine
		case "rating":
			less = all[i].Rating.LessThan(all[j].Rating)
		default:
			less = all[i].Name < all[j].Name
		}
		if desc {
			return !less
		}
		return less
	})

	total := int64(len(all))
	if filter.Offset > 0 {
		if filter.Offset >= len(all) {
			all = nil
		} else {
			all = all[filter.Offset:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return catalog.ListResult[*catalog.Restaurant]{
		Items:      all,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// CreateMenu stores a menu for an existing restaurant.
func (s *CatalogStore) CreateMenu(_ context.Context, m *catalog.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restaurants[m.RestaurantID]; !ok {
		return apperror.NewNotFound("restaurant", m.RestaurantID)
	}
	s.menus[m.ID] = *m
	return nil
}

// DeleteMenu removes a menu and its items.
func (s *CatalogStore) DeleteMenu(_ context.Context, menuID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menus[menuID]; !ok {
		return apperror.NewNotFound("menu", menuID)
	}
	delete(s.menus, menuID)
	for iid, it := range s.items {
		if it.MenuID == menuID {
			delete(s.items, iid)
		}
	}
	return nil
}

// MenusForRestaurant implements catalog.AdminRepository.
func (s *CatalogStore) MenusForRestaurant(_ context.Context, restaurantID id.ID) ([]*catalog.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*catalog.Menu, 0)
	for _, m := range s.menus {
		if m.RestaurantID == restaurantID {
			copied := m
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MealType < out[j].MealType })
	return out, nil
}

// CreateItem stores a menu item for an existing menu.
func (s *CatalogStore) CreateItem(_ context.Context, item *catalog.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menus[item.MenuID]; !ok {
		return apperror.NewNotFound("menu", item.MenuID)
	}
	s.items[item.ID] = *item
	return nil
}

// DeleteItem implements catalog.AdminRepository.
func (s *CatalogStore) DeleteItem(_ context.Context, itemID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return apperror.NewNotFound("menu item", itemID)
	}
	delete(s.items, itemID)
	return nil
}

// ItemsForMenu implements catalog.AdminRepository.
func (s *CatalogStore) ItemsForMenu(_ context.Context, menuID id.ID) ([]*catalog.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*catalog.MenuItem, 0)
	for _, it := range s.items {
		if it.MenuID == menuID {
			copied := it
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
