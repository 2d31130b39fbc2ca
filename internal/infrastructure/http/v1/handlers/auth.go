package handlers

import (
	"github.com/gin-gonic/gin"

	"foodfinder/internal/domain/profile"
	"foodfinder/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves account endpoints.
type AuthHandler struct {
	BaseHandler
	profiles *profile.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(profiles *profile.Service) *AuthHandler {
	return &AuthHandler{profiles: profiles}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.profiles.SignUp(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, user.ID.String())
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, expiresAt, user, err := h.profiles.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewUserResponse(user))
}

// GetPreferences handles GET /auth/preferences.
func (h *AuthHandler) GetPreferences(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	prefs, err := h.profiles.Preferences(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.PreferencesPayload{
		Cuisines:     prefs.Cuisines,
		MealTypes:    prefs.MealTypes,
		Restrictions: prefs.Restrictions,
		FoodItems:    prefs.FoodItems,
	})
}

// SavePreferences handles PUT /auth/preferences.
func (h *AuthHandler) SavePreferences(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.PreferencesPayload
	if !h.BindJSON(c, &req) {
		return
	}

	err := h.profiles.SavePreferences(c.Request.Context(), userID, profile.Preferences{
		Cuisines:     req.Cuisines,
		MealTypes:    req.MealTypes,
		Restrictions: req.Restrictions,
		FoodItems:    req.FoodItems,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SuccessResponse{Success: true, Message: "preferences saved"})
}
