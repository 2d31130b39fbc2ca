package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/infrastructure/http/v1/dto"
)

// AdminHandler serves the catalog administration endpoints.
type AdminHandler struct {
	BaseHandler
	admin *catalog.AdminService
	audit catalog.AuditReader
}

// NewAdminHandler creates an admin handler. audit may be nil when no
// audit log is configured.
func NewAdminHandler(admin *catalog.AdminService, audit catalog.AuditReader) *AdminHandler {
	return &AdminHandler{admin: admin, audit: audit}
}

// CreateRestaurant handles POST /admin/restaurants.
func (h *AdminHandler) CreateRestaurant(c *gin.Context) {
	var req dto.CreateRestaurantRequest
	if !h.BindJSON(c, &req) {
		return
	}

	r := catalog.NewRestaurant(req.Name, req.Cuisine, req.Price,
		decimal.NewFromFloat(req.Rating), req.Lat, req.Lon)
	if err := h.admin.CreateRestaurant(c.Request.Context(), r); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, r.ID.String())
}

// GetRestaurant handles GET /admin/restaurants/:id.
func (h *AdminHandler) GetRestaurant(c *gin.Context) {
	restaurantID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	r, err := h.admin.GetRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, r)
}

// DeleteRestaurant handles DELETE /admin/restaurants/:id.
func (h *AdminHandler) DeleteRestaurant(c *gin.Context) {
	restaurantID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteRestaurant(c.Request.Context(), restaurantID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ListRestaurants handles GET /admin/restaurants.
func (h *AdminHandler) ListRestaurants(c *gin.Context) {
	var q dto.ListRestaurantsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.admin.ListRestaurants(c.Request.Context(), catalog.ListFilter{
		Search:  q.Search,
		Cuisine: q.Cuisine,
		OrderBy: q.OrderBy,
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// CreateMenu handles POST /admin/restaurants/:id/menus.
func (h *AdminHandler) CreateMenu(c *gin.Context) {
	restaurantID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateMenuRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m := catalog.NewMenu(restaurantID, req.MealType)
	if err := h.admin.CreateMenu(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, m.ID.String())
}

// ListMenus handles GET /admin/restaurants/:id/menus.
func (h *AdminHandler) ListMenus(c *gin.Context) {
	restaurantID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	menus, err := h.admin.MenusForRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, menus)
}

// DeleteMenu handles DELETE /admin/menus/:id.
func (h *AdminHandler) DeleteMenu(c *gin.Context) {
	menuID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteMenu(c.Request.Context(), menuID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// CreateItem handles POST /admin/menus/:id/items.
func (h *AdminHandler) CreateItem(c *gin.Context) {
	menuID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := catalog.NewMenuItem(menuID, req.Name, req.Recipe, req.Allergens)
	if err := h.admin.CreateItem(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, item.ID.String())
}

// ListItems handles GET /admin/menus/:id/items.
func (h *AdminHandler) ListItems(c *gin.Context) {
	menuID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.admin.ItemsForMenu(c.Request.Context(), menuID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

var auditedEntities = map[string]bool{
	"restaurant": true,
	"menu":       true,
	"menu_item":  true,
}

// EntityHistory handles GET /admin/audit/:entity/:id.
func (h *AdminHandler) EntityHistory(c *gin.Context) {
	entity := c.Param("entity")
	if !auditedEntities[entity] {
		h.Error(c, apperror.NewValidation("unknown audit entity").WithDetail("entity", entity))
		return
	}
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if h.audit == nil {
		h.Error(c, apperror.NewNotFound("audit log", entity))
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	records, err := h.audit.EntityHistory(c.Request.Context(), entity, entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	if records == nil {
		records = []catalog.AuditRecord{}
	}
	h.OK(c, records)
}

// DeleteItem handles DELETE /admin/items/:id.
func (h *AdminHandler) DeleteItem(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteItem(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
