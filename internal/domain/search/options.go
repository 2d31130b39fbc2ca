// Package search implements the facet-narrowing engine: the option
// provider and result matcher over a catalog store, and the wizard
// pipeline that drives them through ordered stages.
package search

import (
	"context"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/facet"
)

// OptionProvider computes the candidate values of a facet given the
// selections confirmed upstream. It is pure with respect to pipeline
// state: it only reads from the catalog store.
type OptionProvider struct {
	store catalog.Store
}

// NewOptionProvider creates a provider over store.
func NewOptionProvider(store catalog.Store) *OptionProvider {
	return &OptionProvider{store: store}
}

// Options returns the distinct candidate values of f constrained by the
// upstream selections in sel. Facets without upstream constraints, and
// constraining facets with empty selection sets, fall back to the
// facet's global distinct value set.
//
// The store contract already promises distinct, deterministically
// ordered values; duplicates are dropped here anyway so a misbehaving
// backend cannot violate the option-list invariant of the widget.
func (p *OptionProvider) Options(ctx context.Context, f facet.Facet, sel facet.Selections) ([]string, error) {
	cfg, ok := facet.StageFor(f)
	if !ok {
		return nil, apperror.NewValidation("unknown facet").WithDetail("facet", string(f))
	}

	upstream := sel.Subset(cfg.Upstream...)
	values, err := p.store.FacetOptions(ctx, f, upstream)
	if err != nil {
		return nil, apperror.NewDataUnavailable(string(f), err)
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
