package dto

import (
	"time"

	"foodfinder/internal/domain/profile"
)

// SignUpRequest registers a new account.
type SignUpRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// NewUserResponse maps a user to its public view.
func NewUserResponse(u *profile.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// PreferencesPayload carries saved facet preferences both ways, one
// list per facet.
type PreferencesPayload struct {
	Cuisines     []string `json:"cuisines"`
	MealTypes    []string `json:"mealTypes"`
	Restrictions []string `json:"restrictions"`
	FoodItems    []string `json:"foodItems"`
}
