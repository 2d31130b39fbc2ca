package memory

import (
	"context"
	"sync"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/core/id"
	"foodfinder/internal/domain/profile"
)

// UserRepository is an in-memory profile.Repository.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[id.ID]profile.User
	byName map[string]id.ID
}

// NewUserRepository creates an empty user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[id.ID]profile.User),
		byName: make(map[string]id.ID),
	}
}

// Create implements profile.Repository.
func (r *UserRepository) Create(_ context.Context, u *profile.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[u.Username]; taken {
		return apperror.NewDuplicate("user", "username", u.Username)
	}
	r.users[u.ID] = *u
	r.byName[u.Username] = u.ID
	return nil
}

// GetByID implements profile.Repository.
func (r *UserRepository) GetByID(_ context.Context, userID id.ID) (*profile.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID)
	}
	out := u
	return &out, nil
}

// GetByUsername implements profile.Repository.
func (r *UserRepository) GetByUsername(_ context.Context, username string) (*profile.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uid, ok := r.byName[username]
	if !ok {
		return nil, apperror.NewNotFound("user", username)
	}
	out := r.users[uid]
	return &out, nil
}

// Exists implements profile.Repository.
func (r *UserRepository) Exists(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[username]
	return ok, nil
}

// Update implements profile.Repository.
func (r *UserRepository) Update(_ context.Context, u *profile.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return apperror.NewNotFound("user", u.ID)
	}
	r.users[u.ID] = *u
	return nil
}
