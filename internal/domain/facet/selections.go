package facet

// Selections holds the confirmed selection set of every facet. Values
// within a facet are unique and keep their insertion order so that
// displayed lists are stable; filtering semantics ignore the order.
type Selections map[Facet][]string

// NewSelections returns an empty selection set for every stage.
func NewSelections() Selections {
	s := make(Selections, len(Stages))
	for _, st := range Stages {
		s[st.Facet] = nil
	}
	return s
}

// Set overwrites the selection set of f, dropping duplicates while
// preserving first-seen order.
func (s Selections) Set(f Facet, values []string) {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	s[f] = out
}

// Get returns the selection set of f. The returned slice must not be
// mutated by callers.
func (s Selections) Get(f Facet) []string {
	return s[f]
}

// Empty reports whether f has no confirmed values.
func (s Selections) Empty(f Facet) bool {
	return len(s[f]) == 0
}

// Clear drops every facet's selection.
func (s Selections) Clear() {
	for f := range s {
		s[f] = nil
	}
}

// Subset returns a copy restricted to the given facets, used to
// parameterize option queries by upstream stages only.
func (s Selections) Subset(facets ...Facet) Selections {
	out := make(Selections, len(facets))
	for _, f := range facets {
		out[f] = s[f]
	}
	return out
}

// Clone returns a deep copy.
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for f, vals := range s {
		cp := make([]string, len(vals))
		copy(cp, vals)
		out[f] = cp
	}
	return out
}
