package facet

// MatchMode defines how a clause's values are compared against entity
// attributes.
type MatchMode string

const (
	// MatchExact compares the attribute verbatim.
	MatchExact MatchMode = "exact"

	// MatchContains performs case-insensitive substring containment.
	MatchContains MatchMode = "contains"
)

// Clause is one node of the predicate tree: a facet tagged with its
// semantics and the selected value set. Inclusion clauses match when the
// entity carries any of the values (OR); exclusion clauses match when it
// carries none of them.
type Clause struct {
	Facet   Facet
	Exclude bool
	Mode    MatchMode
	Values  []string
}

// Predicate is the AND of its clauses. It carries no store-specific
// syntax; translation layers lower it into whatever query mechanism the
// chosen catalog backend exposes.
type Predicate struct {
	Clauses []Clause
}

// Clause returns the clause for f, if present.
func (p Predicate) Clause(f Facet) (Clause, bool) {
	for _, c := range p.Clauses {
		if c.Facet == f {
			return c, true
		}
	}
	return Clause{}, false
}

// Empty reports whether the predicate imposes no constraint at all.
func (p Predicate) Empty() bool {
	return len(p.Clauses) == 0
}

// modeFor returns the comparison mode a facet's values use. Food item
// matching is driven by name containment; the structured facets match
// exactly.
func modeFor(f Facet) MatchMode {
	if f == FoodItem {
		return MatchContains
	}
	return MatchExact
}

// Compose builds the predicate for the given selections. An empty
// selection set contributes no clause: it is an open filter, never "match
// nothing". Food items at the results stage are the one exception, and
// the result matcher enforces that one; it is a property of result
// production, not of the predicate.
func Compose(sel Selections) Predicate {
	var p Predicate
	for _, st := range Stages {
		values := sel.Get(st.Facet)
		if len(values) == 0 {
			continue
		}
		p.Clauses = append(p.Clauses, Clause{
			Facet:   st.Facet,
			Exclude: st.Exclusion,
			Mode:    modeFor(st.Facet),
			Values:  values,
		})
	}
	return p
}

// ComposeUpstream builds the predicate constraining a stage's option
// list: only the selections of the stage's configured upstream facets
// contribute clauses.
func ComposeUpstream(f Facet, sel Selections) Predicate {
	cfg, ok := StageFor(f)
	if !ok || len(cfg.Upstream) == 0 {
		return Predicate{}
	}
	return Compose(sel.Subset(cfg.Upstream...))
}
