// Package profile_repo provides the PostgreSQL implementation of the
// user account repository.
package profile_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/profile"
	"foodfinder/internal/infrastructure/storage/postgres"
)

const uniqueViolation = "23505"

var userCols = []string{
	"id", "username", "password_hash", "is_admin",
	"pref_cuisines", "pref_meal_types", "pref_restrictions", "pref_food_items",
	"created_at", "updated_at",
}

var _ profile.Repository = (*Repository)(nil)

// Repository implements profile.Repository over PostgreSQL.
type Repository struct {
	txm *postgres.TxManager
}

// NewRepository creates a user repository.
func NewRepository(txm *postgres.TxManager) *Repository {
	return &Repository{txm: txm}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create implements profile.Repository.
func (r *Repository) Create(ctx context.Context, u *profile.User) error {
	sql, args, err := builder().
		Insert("app_user").
		SetMap(map[string]any{
			"id":                u.ID,
			"username":          u.Username,
			"password_hash":     u.PasswordHash,
			"is_admin":          u.IsAdmin,
			"pref_cuisines":     u.PrefCuisines,
			"pref_meal_types":   u.PrefMealTypes,
			"pref_restrictions": u.PrefRestrictions,
			"pref_food_items":   u.PrefFoodItems,
			"created_at":        u.CreatedAt,
			"updated_at":        u.UpdatedAt,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperror.NewDuplicate("user", "username", u.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repository) getBy(ctx context.Context, cond squirrel.Eq, notFoundKey any) (*profile.User, error) {
	sql, args, err := builder().
		Select(userCols...).
		From("app_user").
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u profile.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", notFoundKey)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByID implements profile.Repository.
func (r *Repository) GetByID(ctx context.Context, userID id.ID) (*profile.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": userID}, userID)
}

// GetByUsername implements profile.Repository.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*profile.User, error) {
	return r.getBy(ctx, squirrel.Eq{"username": username}, username)
}

// Exists implements profile.Repository.
func (r *Repository) Exists(ctx context.Context, username string) (bool, error) {
	sql, args, err := builder().
		Select("1").
		From("app_user").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return true, nil
}

// Update implements profile.Repository.
func (r *Repository) Update(ctx context.Context, u *profile.User) error {
	sql, args, err := builder().
		Update("app_user").
		SetMap(map[string]any{
			"password_hash":     u.PasswordHash,
			"is_admin":          u.IsAdmin,
			"pref_cuisines":     u.PrefCuisines,
			"pref_meal_types":   u.PrefMealTypes,
			"pref_restrictions": u.PrefRestrictions,
			"pref_food_items":   u.PrefFoodItems,
			"updated_at":        u.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", u.ID)
	}
	return nil
}
