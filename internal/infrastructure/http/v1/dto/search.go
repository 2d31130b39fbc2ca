package dto

import "foodfinder/internal/domain/search"

// CreateSessionRequest starts a narrowing session. UsePreferences asks
// for the signed-in user's saved facet values to be pre-selected.
type CreateSessionRequest struct {
	UsePreferences bool `json:"usePreferences"`
}

// SessionResponse carries the session handle and the current stage.
type SessionResponse struct {
	SessionID string           `json:"sessionId"`
	View      search.StageView `json:"view"`
}

// FilterRequest sets the current stage's substring filter.
type FilterRequest struct {
	Text string `json:"text"`
}

// ToggleRequest flips one option's chosen flag.
type ToggleRequest struct {
	Value string `json:"value" binding:"required"`
}

// PageRequest moves the paged view.
type PageRequest struct {
	Direction string `json:"direction" binding:"required,oneof=next prev"`
}

// JumpRequest returns to an earlier stage.
type JumpRequest struct {
	Facet string `json:"facet" binding:"required"`
}
