// Package catalog holds the establishment/menu domain model and the
// store boundaries the search core and the administration surface
// consume.
package catalog

import (
	"github.com/shopspring/decimal"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/core/id"
)

// Restaurant is an establishment in the catalog. Instances are created
// by store reads and never mutated by the search core; administration
// replaces rows wholesale.
type Restaurant struct {
	ID      id.ID           `db:"id" json:"id"`
	Name    string          `db:"name" json:"name"`
	Cuisine string          `db:"cuisine" json:"cuisine"`
	Price   string          `db:"price" json:"price"`
	Rating  decimal.Decimal `db:"rating" json:"rating"`
	Lat     float64         `db:"lat" json:"lat"`
	Lon     float64         `db:"lon" json:"lon"`
}

// NewRestaurant creates a restaurant with a fresh ID.
func NewRestaurant(name, cuisine, price string, rating decimal.Decimal, lat, lon float64) *Restaurant {
	return &Restaurant{
		ID:      id.New(),
		Name:    name,
		Cuisine: cuisine,
		Price:   price,
		Rating:  rating,
		Lat:     lat,
		Lon:     lon,
	}
}

// Validate checks restaurant invariants.
func (r *Restaurant) Validate() error {
	if r.Name == "" {
		return apperror.NewValidation("restaurant name is required").WithDetail("field", "name")
	}
	if r.Cuisine == "" {
		return apperror.NewValidation("restaurant cuisine is required").WithDetail("field", "cuisine")
	}
	if r.Lat < -90 || r.Lat > 90 {
		return apperror.NewValidation("latitude out of range").WithDetail("field", "lat").WithDetail("value", r.Lat)
	}
	if r.Lon < -180 || r.Lon > 180 {
		return apperror.NewValidation("longitude out of range").WithDetail("field", "lon").WithDetail("value", r.Lon)
	}
	if r.Rating.IsNegative() || r.Rating.GreaterThan(decimal.NewFromInt(5)) {
		return apperror.NewValidation("rating must be between 0 and 5").WithDetail("field", "rating").WithDetail("value", r.Rating.String())
	}
	return nil
}

// Menu is one meal-typed section of a restaurant's offering.
type Menu struct {
	ID           id.ID  `db:"id" json:"id"`
	RestaurantID id.ID  `db:"restaurant_id" json:"restaurantId"`
	MealType     string `db:"meal_type" json:"mealType"`
}

// NewMenu creates a menu section with a fresh ID.
func NewMenu(restaurantID id.ID, mealType string) *Menu {
	return &Menu{ID: id.New(), RestaurantID: restaurantID, MealType: mealType}
}

// Validate checks menu invariants.
func (m *Menu) Validate() error {
	if id.IsNil(m.RestaurantID) {
		return apperror.NewValidation("menu requires a restaurant").WithDetail("field", "restaurantId")
	}
	if m.MealType == "" {
		return apperror.NewValidation("menu meal type is required").WithDetail("field", "mealType")
	}
	return nil
}

// MenuItem is a single dish on a menu, tagged with the ingredient and
// allergen names its recipe contains.
type MenuItem struct {
	ID     id.ID  `db:"id" json:"id"`
	MenuID id.ID  `db:"menu_id" json:"menuId"`
	Name   string `db:"name" json:"name"`
	Recipe string `db:"recipe" json:"recipe"`

	// Allergens is loaded from the item's tag relation, not a column.
	Allergens []string `db:"-" json:"allergens"`
}

// NewMenuItem creates a menu item with a fresh ID.
func NewMenuItem(menuID id.ID, name, recipe string, allergens []string) *MenuItem {
	return &MenuItem{ID: id.New(), MenuID: menuID, Name: name, Recipe: recipe, Allergens: allergens}
}

// Validate checks item invariants.
func (i *MenuItem) Validate() error {
	if id.IsNil(i.MenuID) {
		return apperror.NewValidation("item requires a menu").WithDetail("field", "menuId")
	}
	if i.Name == "" {
		return apperror.NewValidation("item name is required").WithDetail("field", "name")
	}
	return nil
}
