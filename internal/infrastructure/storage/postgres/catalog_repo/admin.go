package catalog_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/catalog"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// listOrderColumns whitelists ListRestaurants sort columns.
var listOrderColumns = map[string]bool{
	"name":    true,
	"cuisine": true,
	"rating":  true,
}

// CreateRestaurant implements catalog.AdminRepository.
func (r *Repository) CreateRestaurant(ctx context.Context, rest *catalog.Restaurant) error {
	q := builder().
		Insert("restaurant").
		SetMap(map[string]any{
			"id":      rest.ID,
			"name":    rest.Name,
			"cuisine": rest.Cuisine,
			"price":   rest.Price,
			"rating":  rest.Rating,
			"lat":     rest.Lat,
			"lon":     rest.Lon,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("restaurant", "name", rest.Name)
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// GetRestaurant implements catalog.AdminRepository.
func (r *Repository) GetRestaurant(ctx context.Context, restaurantID id.ID) (*catalog.Restaurant, error) {
	q := builder().
		Select("id", "name", "cuisine", "price", "rating", "lat", "lon").
		From("restaurant").
		Where(squirrel.Eq{"id": restaurantID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rest catalog.Restaurant
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rest, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("restaurant", restaurantID)
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return &rest, nil
}

// DeleteRestaurant implements catalog.AdminRepository. Menus, items
// and allergen links go with it via ON DELETE CASCADE.
func (r *Repository) DeleteRestaurant(ctx context.Context, restaurantID id.ID) error {
	sql, args, err := builder().
		Delete("restaurant").
		Where(squirrel.Eq{"id": restaurantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("restaurant", restaurantID)
	}
	return nil
}

// ListRestaurants implements catalog.AdminRepository.
func (r *Repository) ListRestaurants(ctx context.Context, filter catalog.ListFilter) (catalog.ListResult[*catalog.Restaurant], error) {
	result := catalog.ListResult[*catalog.Restaurant]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := builder().
		Select("id", "name", "cuisine", "price", "rating", "lat", "lon").
		From("restaurant")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"cuisine": pattern},
		})
	}
	if filter.Cuisine != "" {
		q = q.Where(squirrel.Eq{"cuisine": filter.Cuisine})
	}

	countQ := builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list restaurants: %w", err)
	}
	return result, nil
}

// parseOrderBy validates the sort column against the whitelist and
// maps a "-" prefix to descending order.
func parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		return "name ASC", nil
	}
	direction := "ASC"
	col := orderBy
	if strings.HasPrefix(col, "-") {
		direction = "DESC"
		col = strings.TrimPrefix(col, "-")
	}
	if !listOrderColumns[col] {
		return "", apperror.NewValidation("invalid sort column").WithDetail("orderBy", orderBy)
	}
	return col + " " + direction, nil
}

// CreateMenu implements catalog.AdminRepository.
func (r *Repository) CreateMenu(ctx context.Context, m *catalog.Menu) error {
	sql, args, err := builder().
		Insert("menu").
		SetMap(map[string]any{
			"id":            m.ID,
			"restaurant_id": m.RestaurantID,
			"meal_type":     m.MealType,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("menu", "meal_type", m.MealType)
		}
		return fmt.Errorf("insert menu: %w", err)
	}
	return nil
}

// DeleteMenu implements catalog.AdminRepository.
func (r *Repository) DeleteMenu(ctx context.Context, menuID id.ID) error {
	sql, args, err := builder().
		Delete("menu").
		Where(squirrel.Eq{"id": menuID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("menu", menuID)
	}
	return nil
}

// MenusForRestaurant implements catalog.AdminRepository.
func (r *Repository) MenusForRestaurant(ctx context.Context, restaurantID id.ID) ([]*catalog.Menu, error) {
	sql, args, err := builder().
		Select("id", "restaurant_id", "meal_type").
		From("menu").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("meal_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*catalog.Menu
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return out, nil
}

// CreateItem implements catalog.AdminRepository. Allergen names are
// upserted into the vocabulary and linked to the item.
func (r *Repository) CreateItem(ctx context.Context, item *catalog.MenuItem) error {
	sql, args, err := builder().
		Insert("menu_item").
		SetMap(map[string]any{
			"id":      item.ID,
			"menu_id": item.MenuID,
			"name":    item.Name,
			"recipe":  item.Recipe,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}

	for _, name := range item.Allergens {
		_, err := querier.Exec(ctx,
			`INSERT INTO allergen (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			id.New(), name)
		if err != nil {
			return fmt.Errorf("upsert allergen: %w", err)
		}
	}
	if len(item.Allergens) > 0 {
		_, err := querier.Exec(ctx,
			`INSERT INTO menu_item_allergen (menu_item_id, allergen_id)
			 SELECT $1, a.id FROM allergen a WHERE a.name = ANY($2)
			 ON CONFLICT DO NOTHING`,
			item.ID, item.Allergens)
		if err != nil {
			return fmt.Errorf("link allergens: %w", err)
		}
	}
	return nil
}

// DeleteItem implements catalog.AdminRepository.
func (r *Repository) DeleteItem(ctx context.Context, itemID id.ID) error {
	sql, args, err := builder().
		Delete("menu_item").
		Where(squirrel.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("menu item", itemID)
	}
	return nil
}

// ItemsForMenu implements catalog.AdminRepository.
func (r *Repository) ItemsForMenu(ctx context.Context, menuID id.ID) ([]*catalog.MenuItem, error) {
	sql := `
		SELECT i.id, i.menu_id, i.name, i.recipe,
		       COALESCE(array_agg(a.name ORDER BY a.name) FILTER (WHERE a.name IS NOT NULL), '{}') AS allergens
		FROM menu_item i
		LEFT JOIN menu_item_allergen ia ON ia.menu_item_id = i.id
		LEFT JOIN allergen a ON a.id = ia.allergen_id
		WHERE i.menu_id = $1
		GROUP BY i.id, i.menu_id, i.name, i.recipe
		ORDER BY i.name
	`

	type itemRow struct {
		ID        id.ID    `db:"id"`
		MenuID    id.ID    `db:"menu_id"`
		Name      string   `db:"name"`
		Recipe    string   `db:"recipe"`
		Allergens []string `db:"allergens"`
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, menuID); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	out := make([]*catalog.MenuItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, &catalog.MenuItem{
			ID:        row.ID,
			MenuID:    row.MenuID,
			Name:      row.Name,
			Recipe:    row.Recipe,
			Allergens: row.Allergens,
		})
	}
	return out, nil
}
