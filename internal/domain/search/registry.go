package search

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/facet"

	"github.com/google/uuid"
)

// DefaultRegistrySize bounds the number of live narrowing sessions.
// Least recently used sessions are evicted once the bound is reached.
const DefaultRegistrySize = 1024

// Registry keeps live pipelines keyed by session id. Eviction is
// silent: an evicted session simply reports not found and the client
// starts a new one.
type Registry struct {
	store catalog.Store
	cache *lru.Cache[string, *Pipeline]
}

// NewRegistry creates a registry over store holding at most size
// sessions. A non-positive size falls back to DefaultRegistrySize.
func NewRegistry(store catalog.Store, size int) (*Registry, error) {
	if size <= 0 {
		size = DefaultRegistrySize
	}
	cache, err := lru.New[string, *Pipeline](size)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &Registry{store: store, cache: cache}, nil
}

// Create starts a new narrowing session, optionally seeded with saved
// facet preferences, and returns its id together with the pipeline.
func (r *Registry) Create(ctx context.Context, saved facet.Selections) (string, *Pipeline, error) {
	var opts []PipelineOption
	for _, values := range saved {
		if len(values) > 0 {
			opts = append(opts, WithSavedPreferences(saved))
			break
		}
	}
	p, err := NewPipeline(ctx, r.store, opts...)
	if err != nil {
		return "", nil, err
	}
	sid := uuid.NewString()
	r.cache.Add(sid, p)
	return sid, p, nil
}

// Get returns the pipeline for sid, or a not-found error when the
// session never existed or has been evicted.
func (r *Registry) Get(sid string) (*Pipeline, error) {
	p, ok := r.cache.Get(sid)
	if !ok {
		return nil, apperror.NewNotFound("session", sid)
	}
	return p, nil
}

// Remove drops the session for sid if present.
func (r *Registry) Remove(sid string) {
	r.cache.Remove(sid)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.Len()
}
