package profile

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/core/id"
	"foodfinder/internal/core/tx"
	"foodfinder/pkg/logger"
)

// ServiceConfig holds profile service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{PasswordMinLength: 8}
}

// Service provides account and preference logic.
type Service struct {
	repo       Repository
	txManager  tx.Manager
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new profile service.
func NewService(repo Repository, txManager tx.Manager, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		repo:       repo,
		txManager:  txManager,
		jwtService: jwtService,
		config:     config,
	}
}

// SignUp registers a new user.
func (s *Service) SignUp(ctx context.Context, username, password string) (*User, error) {
	if username == "" {
		return nil, apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if len(password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.repo.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "username", username)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(username, string(passwordHash))
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login authenticates a user and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (string, time.Time, *User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID.String(), user.Username, user.IsAdmin)
	if err != nil {
		return "", time.Time{}, nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID)
	return token, expiresAt, user, nil
}

// Get returns the user by id.
func (s *Service) Get(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// SavePreferences replaces the user's remembered facet values.
func (s *Service) SavePreferences(ctx context.Context, userID id.ID, prefs Preferences) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.SetPreferences(prefs)
	user.UpdatedAt = time.Now()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	logger.Debug(ctx, "preferences saved", "user_id", userID)
	return nil
}

// Preferences returns the user's remembered facet values.
func (s *Service) Preferences(ctx context.Context, userID id.ID) (Preferences, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	return user.Preferences(), nil
}
