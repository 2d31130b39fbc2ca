package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/facet"
	"foodfinder/internal/domain/search"
)

// flakyStore delegates to a real store but fails option reads for one
// facet on demand.
type flakyStore struct {
	catalog.Store
	failFacet facet.Facet
	failing   bool
}

func (s *flakyStore) FacetOptions(ctx context.Context, f facet.Facet, upstream facet.Selections) ([]string, error) {
	if s.failing && f == s.failFacet {
		return nil, errors.New("store down")
	}
	return s.Store.FacetOptions(ctx, f, upstream)
}

func confirmWith(t *testing.T, p *search.Pipeline, values ...string) {
	t.Helper()
	for _, v := range values {
		require.NoError(t, p.Toggle(v))
	}
	require.NoError(t, p.Confirm(context.Background()))
}

func TestPipelineHappyPath(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)

	view := p.View()
	assert.Equal(t, "cuisine", view.Stage)
	assert.True(t, view.Required)
	assert.Equal(t, []string{"Italian", "Japanese"}, view.Visible)

	confirmWith(t, p, "Italian")
	view = p.View()
	assert.Equal(t, "meal_type", view.Stage)
	assert.Equal(t, []string{"dinner", "lunch"}, view.Visible)

	confirmWith(t, p, "dinner")
	view = p.View()
	assert.Equal(t, "restriction", view.Stage)
	assert.False(t, view.Required)

	// The restriction stage may be confirmed without a selection.
	require.NoError(t, p.Confirm(ctx))
	view = p.View()
	assert.Equal(t, "food_item", view.Stage)
	assert.Equal(t, []string{"Margherita Pizza", "Pasta Carbonara"}, view.Visible)

	confirmWith(t, p, "Margherita Pizza")
	view = p.View()
	assert.Equal(t, "results", view.Stage)

	res, err := p.Results(ctx)
	require.NoError(t, err)
	require.Len(t, res.Restaurants, 1)
	assert.Equal(t, "Bella Napoli", res.Restaurants[0].Restaurant.Name)
	assert.Equal(t, []string{"Margherita Pizza"}, res.Restaurants[0].Items)
}

func TestPipelineRequiredSelection(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)

	err = p.Confirm(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsSelectionRequired(err))
	assert.Equal(t, "cuisine", p.View().Stage)
}

func TestPipelineConfirmFetchesBeforeAdvancing(t *testing.T) {
	store := &flakyStore{Store: seedCatalog(t), failFacet: facet.MealType}
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)

	store.failing = true
	require.NoError(t, p.Toggle("Italian"))
	err = p.Confirm(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsDataUnavailable(err))

	// Stage and selection are untouched, the transition is retryable.
	view := p.View()
	assert.Equal(t, "cuisine", view.Stage)
	assert.Equal(t, []string{"Italian"}, view.Selected)

	store.failing = false
	require.NoError(t, p.Confirm(ctx))
	assert.Equal(t, "meal_type", p.View().Stage)
}

func TestPipelineBackRetainsSelections(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)

	confirmWith(t, p, "Italian")
	confirmWith(t, p, "dinner")

	require.NoError(t, p.Back())
	view := p.View()
	assert.Equal(t, "meal_type", view.Stage)
	assert.Equal(t, []string{"dinner"}, view.Selected)

	require.NoError(t, p.Back())
	assert.Equal(t, "cuisine", p.View().Stage)
	assert.Equal(t, []string{"Italian"}, p.View().Selected)

	err = p.Back()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeStageOrder, appErr.Code)
}

func TestPipelineUpstreamRevisionCarriesSurvivors(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)

	confirmWith(t, p, "Italian", "Japanese")
	confirmWith(t, p, "dinner", "lunch")

	// Narrow the cuisine upstream; the meal type list is recomputed and
	// surviving chosen values stay chosen.
	require.NoError(t, p.JumpBack(facet.Cuisine))
	require.NoError(t, p.Toggle("Italian"))
	require.NoError(t, p.Confirm(ctx))

	view := p.View()
	assert.Equal(t, "meal_type", view.Stage)
	assert.Equal(t, []string{"dinner"}, view.Visible)
	assert.Equal(t, []string{"dinner"}, view.Selected)
}

func TestPipelineJumpBackOnlyBackward(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)
	confirmWith(t, p, "Italian")

	err = p.JumpBack(facet.MealType)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeStageOrder, appErr.Code)

	err = p.JumpBack(facet.Facet("price"))
	require.Error(t, err)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	require.NoError(t, p.JumpBack(facet.Cuisine))
	assert.Equal(t, "cuisine", p.View().Stage)
}

func TestPipelineRestart(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)
	confirmWith(t, p, "Italian")
	confirmWith(t, p, "dinner")

	require.NoError(t, p.Restart(ctx))
	view := p.View()
	assert.Equal(t, "cuisine", view.Stage)
	assert.Empty(t, view.Selected)
	assert.Empty(t, view.Confirmed)
	assert.Equal(t, []string{"Italian", "Japanese"}, view.Visible)
}

func TestPipelineResultsOnlyAtTerminalStage(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)

	_, err = p.Results(ctx)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeStageOrder, appErr.Code)
}

func TestPipelineWidgetOpsClosedAtResults(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)
	confirmWith(t, p, "Italian")
	confirmWith(t, p, "dinner")
	require.NoError(t, p.Confirm(ctx))
	confirmWith(t, p, "Margherita Pizza")

	require.Error(t, p.Toggle("anything"))
	require.Error(t, p.SetFilterText("x"))
	require.Error(t, p.NextPage())
}

func TestPipelineSavedPreferences(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	saved := facet.NewSelections()
	saved.Set(facet.Cuisine, []string{"Italian", "Thai"})
	saved.Set(facet.Restriction, []string{"dairy"})

	p, err := search.NewPipeline(ctx, store, search.WithSavedPreferences(saved))
	require.NoError(t, err)

	// Thai is not a live option and is dropped silently.
	assert.Equal(t, []string{"Italian"}, p.View().Selected)

	require.NoError(t, p.Confirm(ctx))
	confirmWith(t, p, "dinner")
	assert.Equal(t, "restriction", p.View().Stage)
	assert.Equal(t, []string{"dairy"}, p.View().Selected)
}

func TestPipelineSavedPreferenceStaysDeselected(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	saved := facet.NewSelections()
	saved.Set(facet.Restriction, []string{"dairy"})

	p, err := search.NewPipeline(ctx, store, search.WithSavedPreferences(saved))
	require.NoError(t, err)
	confirmWith(t, p, "Italian")
	confirmWith(t, p, "dinner")
	require.Equal(t, []string{"dairy"}, p.View().Selected)

	// The user unchecks the remembered value and confirms the stage empty.
	require.NoError(t, p.Toggle("dairy"))
	require.NoError(t, p.Confirm(ctx))

	// Re-confirming an upstream stage repopulates the restriction list;
	// the deselected preference must not come back.
	require.NoError(t, p.Back())
	require.NoError(t, p.Back())
	require.NoError(t, p.Confirm(ctx))
	view := p.View()
	require.Equal(t, "restriction", view.Stage)
	assert.Empty(t, view.Selected)
}

func TestPipelineBackThenForwardKeepsDownstreamOptions(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	p, err := search.NewPipeline(ctx, store)
	require.NoError(t, err)

	confirmWith(t, p, "Italian")
	mealOptions := p.View().Visible
	confirmWith(t, p, "dinner")
	restrictionOptions := p.View().Visible
	require.NoError(t, p.Confirm(ctx))
	foodOptions := p.View().Visible

	// Walking back to the start and re-confirming the same selections
	// must reproduce every downstream option list exactly.
	require.NoError(t, p.JumpBack(facet.Cuisine))
	require.NoError(t, p.Confirm(ctx))
	assert.Equal(t, mealOptions, p.View().Visible)
	require.NoError(t, p.Confirm(ctx))
	assert.Equal(t, restrictionOptions, p.View().Visible)
	require.NoError(t, p.Confirm(ctx))
	require.Equal(t, "food_item", p.View().Stage)
	assert.Equal(t, foodOptions, p.View().Visible)
}

func TestPipelineInitialLoadFailure(t *testing.T) {
	store := &flakyStore{Store: seedCatalog(t), failFacet: facet.Cuisine, failing: true}

	_, err := search.NewPipeline(context.Background(), store)
	require.Error(t, err)
	assert.True(t, apperror.IsDataUnavailable(err))
}

func TestRegistry(t *testing.T) {
	store := seedCatalog(t)
	ctx := context.Background()

	reg, err := search.NewRegistry(store, 2)
	require.NoError(t, err)

	sid, p, err := reg.Create(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	got, err := reg.Get(sid)
	require.NoError(t, err)
	assert.Same(t, p, got)

	_, err = reg.Get("missing")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	// Oldest session falls out once the bound is exceeded.
	_, _, err = reg.Create(ctx, nil)
	require.NoError(t, err)
	_, _, err = reg.Create(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	_, err = reg.Get(sid)
	assert.True(t, apperror.IsNotFound(err))

	reg.Remove(sid)
}
