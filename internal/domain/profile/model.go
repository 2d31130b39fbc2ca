// Package profile provides user accounts and remembered facet
// preferences.
package profile

import (
	"strings"
	"time"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/facet"
)

// User is an account that can save facet preferences between visits.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	// Preference columns hold comma-joined value lists. The encoding is
	// private to this package; everything else works with Preferences.
	PrefCuisines     string `db:"pref_cuisines" json:"-"`
	PrefMealTypes    string `db:"pref_meal_types" json:"-"`
	PrefRestrictions string `db:"pref_restrictions" json:"-"`
	PrefFoodItems    string `db:"pref_food_items" json:"-"`
}

// NewUser creates a user with a fresh ID.
func NewUser(username, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           id.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks user invariants.
func (u *User) Validate() error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	return nil
}

// Preferences are the facet values a user wants pre-selected when a
// new narrowing session starts.
type Preferences struct {
	Cuisines     []string `json:"cuisines"`
	MealTypes    []string `json:"mealTypes"`
	Restrictions []string `json:"restrictions"`
	FoodItems    []string `json:"foodItems"`
}

// Selections converts the preferences into the selection shape the
// search pipeline seeds widgets from.
func (p Preferences) Selections() facet.Selections {
	sel := facet.NewSelections()
	sel.Set(facet.Cuisine, p.Cuisines)
	sel.Set(facet.MealType, p.MealTypes)
	sel.Set(facet.Restriction, p.Restrictions)
	sel.Set(facet.FoodItem, p.FoodItems)
	return sel
}

// Preferences decodes the user's stored preference columns.
func (u *User) Preferences() Preferences {
	return Preferences{
		Cuisines:     splitPrefs(u.PrefCuisines),
		MealTypes:    splitPrefs(u.PrefMealTypes),
		Restrictions: splitPrefs(u.PrefRestrictions),
		FoodItems:    splitPrefs(u.PrefFoodItems),
	}
}

// SetPreferences encodes p into the user's storage columns.
func (u *User) SetPreferences(p Preferences) {
	u.PrefCuisines = joinPrefs(p.Cuisines)
	u.PrefMealTypes = joinPrefs(p.MealTypes)
	u.PrefRestrictions = joinPrefs(p.Restrictions)
	u.PrefFoodItems = joinPrefs(p.FoodItems)
}

func splitPrefs(encoded string) []string {
	if encoded == "" {
		return nil
	}
	parts := strings.Split(encoded, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinPrefs(values []string) string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ",")
}
