package search

import (
	"context"
	"sync"

	"foodfinder/internal/core/apperror"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/facet"
	"foodfinder/internal/domain/selection"
)

// ResultsStage is the terminal pseudo-stage reached after the last
// facet is confirmed. It is one past the index of the final facet.
var ResultsStage = len(facet.Stages)

// StageView is a read snapshot of the pipeline for presentation. It
// combines positional stage data with the active widget's paged view.
type StageView struct {
	Stage         string              `json:"stage"`
	Prompt        string              `json:"prompt,omitempty"`
	Required      bool                `json:"required"`
	StageIndex    int                 `json:"stage_index"`
	StageCount    int                 `json:"stage_count"`
	Visible       []string            `json:"visible"`
	FilterText    string              `json:"filter_text"`
	FilteredCount int                 `json:"filtered_count"`
	Page          int                 `json:"page"`
	PageCount     int                 `json:"page_count"`
	Selected      []string            `json:"selected"`
	Confirmed     map[string][]string `json:"confirmed"`
}

// Pipeline is the staged narrowing wizard. It owns one widget per
// facet for its whole lifetime so that chosen flags survive upstream
// revisions, and serializes every transition and view mutation behind
// a single mutex.
type Pipeline struct {
	mu        sync.Mutex
	provider  *OptionProvider
	matcher   *Matcher
	stage     int
	widgets   []*selection.Widget
	seeded    []bool
	confirmed facet.Selections
	saved     facet.Selections
}

// PipelineOption configures a pipeline at construction time.
type PipelineOption func(*Pipeline)

// WithSavedPreferences seeds each stage's widget with a remembered
// selection the first time that stage is populated. Values absent
// from the live option list are dropped silently.
func WithSavedPreferences(sel facet.Selections) PipelineOption {
	return func(p *Pipeline) {
		p.saved = sel.Clone()
	}
}

// NewPipeline creates a pipeline over store and loads the first
// stage's options. A store failure during the initial load aborts
// construction with a data-unavailable error.
func NewPipeline(ctx context.Context, store catalog.Store, opts ...PipelineOption) (*Pipeline, error) {
	p := &Pipeline{
		provider:  NewOptionProvider(store),
		matcher:   NewMatcher(store),
		widgets:   make([]*selection.Widget, len(facet.Stages)),
		seeded:    make([]bool, len(facet.Stages)),
		confirmed: facet.NewSelections(),
		saved:     facet.NewSelections(),
	}
	for i := range p.widgets {
		p.widgets[i] = selection.NewWidget(nil)
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.populate(ctx, 0); err != nil {
		return nil, err
	}
	return p, nil
}

// populate refreshes the option list of the stage at idx from the
// confirmed upstream selections. Remembered preference values are
// applied only on the stage's first successful population; after that
// the widget's own chosen set is authoritative, so a deliberately
// emptied stage is not silently re-seeded on upstream re-confirms.
func (p *Pipeline) populate(ctx context.Context, idx int) error {
	cfg := facet.Stages[idx]
	values, err := p.provider.Options(ctx, cfg.Facet, p.confirmed)
	if err != nil {
		p.widgets[idx].SetOptions(nil)
		return err
	}
	p.widgets[idx].SetOptions(values)
	if !p.seeded[idx] {
		p.seeded[idx] = true
		if remembered := p.saved.Get(cfg.Facet); len(remembered) > 0 {
			p.widgets[idx].ApplyExternalSelection(remembered)
		}
	}
	return nil
}

// Confirm locks in the current stage's selection and advances. The
// next stage's options are fetched before the stage pointer moves, so
// a store failure leaves the pipeline on the current stage with the
// selection intact and the downstream list empty.
func (p *Pipeline) Confirm(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stage >= ResultsStage {
		return apperror.NewStageOrder("already at results")
	}
	cfg := facet.Stages[p.stage]
	chosen := p.widgets[p.stage].SelectedOptions()
	if cfg.Required && len(chosen) == 0 {
		return apperror.NewSelectionRequired(string(cfg.Facet))
	}
	p.confirmed.Set(cfg.Facet, chosen)

	if p.stage+1 < ResultsStage {
		if err := p.populate(ctx, p.stage+1); err != nil {
			return err
		}
	}
	p.stage++
	return nil
}

// Back moves to the previous stage, keeping every confirmed selection
// and every widget's chosen set.
func (p *Pipeline) Back() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stage == 0 {
		return apperror.NewStageOrder("already at the first stage")
	}
	p.stage--
	return nil
}

// JumpBack moves directly to an earlier facet stage. Jumping to the
// current or a later stage is rejected.
func (p *Pipeline) JumpBack(f facet.Facet) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := facet.StageIndex(f)
	if idx < 0 {
		return apperror.NewValidation("unknown facet").WithDetail("facet", string(f))
	}
	if idx >= p.stage {
		return apperror.NewStageOrder("jump target must be an earlier stage")
	}
	p.stage = idx
	return nil
}

// Restart clears all confirmed selections and widget state and
// reloads the first stage. Remembered preferences are not re-applied;
// a restart is an explicit reset.
func (p *Pipeline) Restart(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.confirmed.Clear()
	p.saved = facet.NewSelections()
	for i := range p.widgets {
		p.widgets[i] = selection.NewWidget(nil)
		p.seeded[i] = false
	}
	p.stage = 0
	return p.populate(ctx, 0)
}

// Results recomputes the match set from the confirmed selections. It
// is only valid at the terminal stage.
func (p *Pipeline) Results(ctx context.Context) (MatchResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stage != ResultsStage {
		return MatchResult{}, apperror.NewStageOrder("results are only available after the last stage")
	}
	return p.matcher.Match(ctx, p.confirmed)
}

// Confirmed returns a copy of the selections locked in so far.
func (p *Pipeline) Confirmed() facet.Selections {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.confirmed.Clone()
}

// View returns a snapshot of the current stage and its widget state.
func (p *Pipeline) View() StageView {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := StageView{
		StageIndex: p.stage,
		StageCount: ResultsStage,
		Confirmed:  make(map[string][]string, len(p.confirmed)),
	}
	for f, values := range p.confirmed {
		if len(values) == 0 {
			continue
		}
		v.Confirmed[string(f)] = append([]string(nil), values...)
	}
	if p.stage >= ResultsStage {
		v.Stage = "results"
		v.Visible = []string{}
		v.Selected = []string{}
		return v
	}
	cfg := facet.Stages[p.stage]
	w := p.widgets[p.stage]
	v.Stage = string(cfg.Facet)
	v.Prompt = cfg.Prompt
	v.Required = cfg.Required
	v.Visible = w.VisibleOptions()
	v.FilterText = w.FilterText()
	v.FilteredCount = len(w.FilteredOptions())
	v.Page = w.Page()
	v.PageCount = w.PageCount()
	v.Selected = w.SelectedOptions()
	return v
}

// widget returns the active stage's widget, or a stage-order error at
// the terminal stage. Callers must hold p.mu.
func (p *Pipeline) widget() (*selection.Widget, error) {
	if p.stage >= ResultsStage {
		return nil, apperror.NewStageOrder("no selectable options at the results stage")
	}
	return p.widgets[p.stage], nil
}

// SetFilterText applies a substring filter to the current stage's
// option list.
func (p *Pipeline) SetFilterText(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, err := p.widget()
	if err != nil {
		return err
	}
	w.SetFilterText(text)
	return nil
}

// Toggle flips the chosen flag of value on the current stage.
func (p *Pipeline) Toggle(value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, err := p.widget()
	if err != nil {
		return err
	}
	w.Toggle(value)
	return nil
}

// NextPage advances the current stage's paged view.
func (p *Pipeline) NextPage() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, err := p.widget()
	if err != nil {
		return err
	}
	w.NextPage()
	return nil
}

// PrevPage rewinds the current stage's paged view.
func (p *Pipeline) PrevPage() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, err := p.widget()
	if err != nil {
		return err
	}
	w.PrevPage()
	return nil
}
