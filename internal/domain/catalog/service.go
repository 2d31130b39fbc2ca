package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodfinder/internal/core/id"
	"foodfinder/internal/core/tx"
	"foodfinder/pkg/logger"
)

// Auditor records administrative mutations. Implementations may
// compress or batch; recording failures must not fail the mutation.
type Auditor interface {
	Record(ctx context.Context, entity string, entityID id.ID, action string, payload any) error
}

// AuditRecord is one stored audit entry with its payload inflated.
type AuditRecord struct {
	ID        id.ID           `json:"id"`
	Entity    string          `json:"entity"`
	EntityID  id.ID           `json:"entityId"`
	Action    string          `json:"action"`
	UserID    string          `json:"userId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// AuditReader reads back an entity's audit trail, newest first.
type AuditReader interface {
	EntityHistory(ctx context.Context, entity string, entityID id.ID, limit int) ([]AuditRecord, error)
}

// AdminService provides catalog administration: creating and removing
// restaurants, menus and items. Every mutation runs in a transaction and
// is recorded in the audit log.
type AdminService struct {
	repo    AdminRepository
	txm     tx.Manager
	auditor Auditor
}

// NewAdminService creates the administration service. auditor may be
// nil to disable audit recording.
func NewAdminService(repo AdminRepository, txm tx.Manager, auditor Auditor) *AdminService {
	return &AdminService{repo: repo, txm: txm, auditor: auditor}
}

func (s *AdminService) audit(ctx context.Context, entity string, entityID id.ID, action string, payload any) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Record(ctx, entity, entityID, action, payload); err != nil {
		logger.Warn(ctx, "audit record failed", "entity", entity, "action", action, "error", err)
	}
}

// CreateRestaurant validates and stores a new restaurant.
func (s *AdminService) CreateRestaurant(ctx context.Context, r *Restaurant) error {
	if err := r.Validate(); err != nil {
		return err
	}
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateRestaurant(ctx, r); err != nil {
			return fmt.Errorf("create restaurant: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.audit(ctx, "restaurant", r.ID, "create", r)
	return nil
}

// GetRestaurant returns one restaurant by ID.
func (s *AdminService) GetRestaurant(ctx context.Context, restaurantID id.ID) (*Restaurant, error) {
	return s.repo.GetRestaurant(ctx, restaurantID)
}

// DeleteRestaurant removes a restaurant with its menus and items.
func (s *AdminService) DeleteRestaurant(ctx context.Context, restaurantID id.ID) error {
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteRestaurant(ctx, restaurantID); err != nil {
			return fmt.Errorf("delete restaurant: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.audit(ctx, "restaurant", restaurantID, "delete", nil)
	return nil
}

// ListRestaurants lists restaurants with filtering and pagination.
func (s *AdminService) ListRestaurants(ctx context.Context, filter ListFilter) (ListResult[*Restaurant], error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListFilter().Limit
	}
	return s.repo.ListRestaurants(ctx, filter)
}

// CreateMenu validates and stores a new menu section.
func (s *AdminService) CreateMenu(ctx context.Context, m *Menu) error {
	if err := m.Validate(); err != nil {
		return err
	}
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateMenu(ctx, m); err != nil {
			return fmt.Errorf("create menu: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.audit(ctx, "menu", m.ID, "create", m)
	return nil
}

// DeleteMenu removes a menu section and its items.
func (s *AdminService) DeleteMenu(ctx context.Context, menuID id.ID) error {
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteMenu(ctx, menuID); err != nil {
			return fmt.Errorf("delete menu: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.audit(ctx, "menu", menuID, "delete", nil)
	return nil
}

// MenusForRestaurant lists a restaurant's menu sections.
func (s *AdminService) MenusForRestaurant(ctx context.Context, restaurantID id.ID) ([]*Menu, error) {
	return s.repo.MenusForRestaurant(ctx, restaurantID)
}

// CreateItem validates and stores a new menu item with its allergen tags.
func (s *AdminService) CreateItem(ctx context.Context, item *MenuItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.audit(ctx, "menu_item", item.ID, "create", item)
	return nil
}

// DeleteItem removes a menu item.
func (s *AdminService) DeleteItem(ctx context.Context, itemID id.ID) error {
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteItem(ctx, itemID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.audit(ctx, "menu_item", itemID, "delete", nil)
	return nil
}

// ItemsForMenu lists a menu's items with their allergen tags.
func (s *AdminService) ItemsForMenu(ctx context.Context, menuID id.ID) ([]*MenuItem, error) {
	return s.repo.ItemsForMenu(ctx, menuID)
}
