package handlers

import (
	"github.com/gin-gonic/gin"

	"foodfinder/internal/core/apperror"
	appctx "foodfinder/internal/core/context"
	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/facet"
	"foodfinder/internal/domain/profile"
	"foodfinder/internal/domain/search"
	"foodfinder/internal/infrastructure/http/v1/dto"
)

// SearchHandler serves the narrowing session endpoints.
type SearchHandler struct {
	BaseHandler
	registry *search.Registry
	profiles *profile.Service
}

// NewSearchHandler creates a search handler. profiles may be nil when
// accounts are disabled; sessions then always start without saved
// preferences.
func NewSearchHandler(registry *search.Registry, profiles *profile.Service) *SearchHandler {
	return &SearchHandler{registry: registry, profiles: profiles}
}

// CreateSession handles POST /search/sessions.
func (h *SearchHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	saved := facet.NewSelections()
	if req.UsePreferences && h.profiles != nil {
		user := appctx.GetUser(ctx)
		if user == nil {
			h.Error(c, apperror.NewUnauthorized("sign in to use saved preferences"))
			return
		}
		userID, err := id.Parse(user.UserID)
		if err != nil {
			h.Error(c, apperror.NewUnauthorized("invalid token subject"))
			return
		}
		prefs, err := h.profiles.Preferences(ctx, userID)
		if err != nil {
			h.Error(c, err)
			return
		}
		saved = prefs.Selections()
	}

	sid, pipeline, err := h.registry.Create(ctx, saved)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SessionResponse{SessionID: sid, View: pipeline.View()})
}

// pipeline resolves the session from the path parameter.
func (h *SearchHandler) pipeline(c *gin.Context) (*search.Pipeline, bool) {
	p, err := h.registry.Get(c.Param("sid"))
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return p, true
}

// view responds with the session's current stage snapshot.
func (h *SearchHandler) view(c *gin.Context, p *search.Pipeline) {
	h.OK(c, dto.SessionResponse{SessionID: c.Param("sid"), View: p.View()})
}

// State handles GET /search/sessions/:sid.
func (h *SearchHandler) State(c *gin.Context) {
	p, ok := h.pipeline(c)
	if !ok {
		return
	}
	h.view(c, p)
}

// SetFilter handles POST /search/sessions/:sid/filter.
func (h *SearchHandler) SetFilter(c *gin.Context) {
	p, ok := h.pipeline(c)
	if !ok {
		return
	}
	var req dto.FilterRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := p.SetFilterText(req.Text); err != nil {
		h.Error(c, err)
		return
	}
	h.view(c, p)
}

// Toggle handles POST /search/sessions/:sid/toggle.
func (h *SearchHandler) Toggle(c *gin.Context) {
	p, ok := h.pipeline(c)
	if !ok {
		return
	}
	var req dto.ToggleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := p.Toggle(req.Value); err != nil {
		h.Error(c, err)
		return
	}
	h.view(c, p)
}

// Page handles POST /search/sessions/:sid/page.
func (h *SearchHandler) Page(c *gin.Context) {
	p, ok := h.pipeline(c)
	if !ok {
		return
	}
	var req dto.PageRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var err error
	if req.Direction == "next" {
		err = p.NextPage()
	} else {
		err = p.PrevPage()
	}
	if err != nil {
		h.Error(c, err)
		return
	}
	h.view(c, p)
}

// Confirm handles POST /search/sessions/:sid/confirm.
func (h *SearchHandler) Confirm(c *gin.Context) {
	p, ok := h.pipeline(c)
	if !ok {
		return
	}
	if err := p.Confirm(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.view(c, p)
}

// Back handles POST /search/sessions/:sid/back.
func (h *SearchHandler) Back(c *gin.Context) {
	p, ok := h.pipeline(c)
	if !ok {
		return
	}
	if err := p.Back(); err != nil {
		h.Error(c, err)
		return
	}
	h.view(c, p)
}

// Jump handles POST /search/sessions/:sid/jump.
func (h *SearchHandler) Jump(c *gin.Context) {
	p, ok := h.pipeline(c)
	if !ok {
		return
	}
	var req dto.JumpRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := p.JumpBack(facet.Facet(req.Facet)); err != nil {
		h.Error(c, err)
		return
	}
	h.view(c, p)
}

// Restart handles POST /search/sessions/:sid/restart.
func (h *SearchHandler) Restart(c *gin.Context) {
	p, ok := h.pipeline(c)
	if !ok {
		return
	}
	if err := p.Restart(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.view(c, p)
}

// Results handles GET /search/sessions/:sid/results.
func (h *SearchHandler) Results(c *gin.Context) {
	p, ok := h.pipeline(c)
	if !ok {
		return
	}
	res, err := p.Results(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, res)
}

// DeleteSession handles DELETE /search/sessions/:sid.
func (h *SearchHandler) DeleteSession(c *gin.Context) {
	h.registry.Remove(c.Param("sid"))
	h.NoContent(c)
}
