// Package catalog_repo provides the PostgreSQL implementation of the
// catalog store and administration repositories.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/facet"
	"foodfinder/internal/infrastructure/storage/postgres"
)

// restaurantCols are the restaurant columns selected by reads, aliased
// to the item-grain join.
var restaurantCols = []string{"r.id", "r.name", "r.cuisine", "r.price", "r.rating", "r.lat", "r.lon"}

var (
	_ catalog.Store           = (*Repository)(nil)
	_ catalog.AdminRepository = (*Repository)(nil)
)

// Repository implements catalog.Store and catalog.AdminRepository over
// PostgreSQL.
type Repository struct {
	txm *postgres.TxManager
}

// NewRepository creates a catalog repository.
func NewRepository(txm *postgres.TxManager) *Repository {
	return &Repository{txm: txm}
}

// builder returns a squirrel builder with PostgreSQL placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// itemJoin selects cols from the item-grain join the predicate clauses
// are written against: menu_item i / menu m / restaurant r.
func itemJoin(cols ...string) squirrel.SelectBuilder {
	return builder().
		Select(cols...).
		From("menu_item i").
		Join("menu m ON m.id = i.menu_id").
		Join("restaurant r ON r.id = m.restaurant_id")
}

// applyPredicate lowers the predicate tree onto the item-grain join.
// Inclusion clauses become IN / ILIKE-any, the exclusion clause becomes
// NOT EXISTS over the allergen tags.
func applyPredicate(q squirrel.SelectBuilder, p facet.Predicate) squirrel.SelectBuilder {
	for _, c := range p.Clauses {
		switch c.Facet {
		case facet.Cuisine:
			q = q.Where(squirrel.Eq{"r.cuisine": c.Values})
		case facet.MealType:
			q = q.Where(squirrel.Eq{"m.meal_type": c.Values})
		case facet.Restriction:
			q = q.Where(squirrel.Expr(
				`NOT EXISTS (
					SELECT 1 FROM menu_item_allergen ia
					JOIN allergen a ON a.id = ia.allergen_id
					WHERE ia.menu_item_id = i.id AND a.name = ANY(?)
				)`, c.Values))
		case facet.FoodItem:
			or := make(squirrel.Or, 0, len(c.Values))
			for _, v := range c.Values {
				or = append(or, squirrel.ILike{"i.name": "%" + v + "%"})
			}
			q = q.Where(or)
		}
	}
	return q
}

// selectStrings runs q and scans a single string column.
func (r *Repository) selectStrings(ctx context.Context, q squirrel.SelectBuilder) ([]string, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []string
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// FacetOptions implements catalog.Store.
func (r *Repository) FacetOptions(ctx context.Context, f facet.Facet, upstream facet.Selections) ([]string, error) {
	pred := facet.ComposeUpstream(f, upstream)

	var q squirrel.SelectBuilder
	switch f {
	case facet.Cuisine:
		q = builder().
			Select("DISTINCT cuisine").
			From("restaurant").
			OrderBy("cuisine")
	case facet.MealType:
		q = builder().
			Select("DISTINCT m.meal_type").
			From("menu m").
			Join("restaurant r ON r.id = m.restaurant_id").
			OrderBy("m.meal_type")
		if c, ok := pred.Clause(facet.Cuisine); ok {
			q = q.Where(squirrel.Eq{"r.cuisine": c.Values})
		}
	case facet.Restriction:
		// Restrictions offer the whole allergen vocabulary; they are
		// never narrowed by upstream stages.
		q = builder().
			Select("DISTINCT name").
			From("allergen").
			OrderBy("name")
	case facet.FoodItem:
		q = applyPredicate(itemJoin("DISTINCT i.name"), pred).
			OrderBy("i.name")
	default:
		return nil, apperror.NewValidation("unknown facet").WithDetail("facet", string(f))
	}

	return r.selectStrings(ctx, q)
}

// MatchRestaurants implements catalog.Store.
func (r *Repository) MatchRestaurants(ctx context.Context, p facet.Predicate) ([]catalog.Restaurant, error) {
	cols := append([]string{}, restaurantCols...)
	cols[0] = "DISTINCT r.id"
	q := applyPredicate(itemJoin(cols...), p).
		OrderBy("r.name", "r.id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []catalog.Restaurant
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("match restaurants: %w", err)
	}
	if out == nil {
		out = []catalog.Restaurant{}
	}
	return out, nil
}

// MatchingItems implements catalog.Store.
func (r *Repository) MatchingItems(ctx context.Context, restaurantID id.ID, p facet.Predicate) ([]string, error) {
	q := applyPredicate(itemJoin("DISTINCT i.name"), p).
		Where(squirrel.Eq{"r.id": restaurantID}).
		OrderBy("i.name")
	return r.selectStrings(ctx, q)
}
