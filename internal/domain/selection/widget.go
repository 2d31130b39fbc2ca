// Package selection provides the presentation-independent state of a
// searchable, paginated, multi-select option list. One Widget backs each
// wizard stage; it owns which options are chosen, the live substring
// filter, and the current page, and it survives option-list refreshes
// without losing choices that remain valid.
package selection

import "strings"

// DefaultPageSize is the fixed view window: 3 rows by 4 columns.
const DefaultPageSize = 12

// Widget tracks chosen state for a displayed option list.
//
// Invariant: the chosen map's key set is always exactly the current
// option list. Keys for options that disappear on refresh are dropped,
// not retained.
type Widget struct {
	pageSize int
	options  []string
	chosen   map[string]bool
	filter   string
	filtered []string
	page     int
}

// NewWidget creates a widget over the given options with the default
// page size. Duplicate options are dropped, keeping first occurrence.
func NewWidget(options []string) *Widget {
	w := &Widget{pageSize: DefaultPageSize, chosen: map[string]bool{}}
	w.SetOptions(options)
	return w
}

// NewWidgetWithPageSize creates a widget with a custom page size.
func NewWidgetWithPageSize(options []string, pageSize int) *Widget {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	w := &Widget{pageSize: pageSize, chosen: map[string]bool{}}
	w.SetOptions(options)
	return w
}

// SetOptions replaces the working option list. Chosen flags of options
// present in both the old and new list carry over; new options default
// to unchosen, vanished options are forgotten. The filter text is
// re-applied to the new list and the page resets to 0.
func (w *Widget) SetOptions(options []string) {
	next := make([]string, 0, len(options))
	nextChosen := make(map[string]bool, len(options))
	for _, opt := range options {
		if _, dup := nextChosen[opt]; dup {
			continue
		}
		nextChosen[opt] = w.chosen[opt]
		next = append(next, opt)
	}
	w.options = next
	w.chosen = nextChosen
	w.page = 0
	w.applyFilter()
}

// Options returns the full current option list in display order.
func (w *Widget) Options() []string {
	out := make([]string, len(w.options))
	copy(out, w.options)
	return out
}

// SetFilterText recomputes the filtered view: the subsequence of options
// containing text case-insensitively. Resets the page to 0.
func (w *Widget) SetFilterText(text string) {
	w.filter = strings.TrimSpace(text)
	w.page = 0
	w.applyFilter()
}

// FilterText returns the active filter text.
func (w *Widget) FilterText() string {
	return w.filter
}

func (w *Widget) applyFilter() {
	needle := strings.ToLower(w.filter)
	w.filtered = w.filtered[:0]
	for _, opt := range w.options {
		if needle == "" || strings.Contains(strings.ToLower(opt), needle) {
			w.filtered = append(w.filtered, opt)
		}
	}
}

// FilteredOptions returns the options passing the current filter.
func (w *Widget) FilteredOptions() []string {
	out := make([]string, len(w.filtered))
	copy(out, w.filtered)
	return out
}

// PageCount returns ceil(len(filtered)/pageSize).
func (w *Widget) PageCount() int {
	return (len(w.filtered) + w.pageSize - 1) / w.pageSize
}

// Page returns the current zero-based page index.
func (w *Widget) Page() int {
	return w.page
}

// NextPage advances one page; a no-op on the last page.
func (w *Widget) NextPage() {
	if (w.page+1)*w.pageSize < len(w.filtered) {
		w.page++
	}
}

// PrevPage retreats one page; a no-op on page 0.
func (w *Widget) PrevPage() {
	if w.page > 0 {
		w.page--
	}
}

// VisibleOptions returns the current page of the filtered view.
func (w *Widget) VisibleOptions() []string {
	start := w.page * w.pageSize
	if start >= len(w.filtered) {
		return nil
	}
	end := start + w.pageSize
	if end > len(w.filtered) {
		end = len(w.filtered)
	}
	out := make([]string, end-start)
	copy(out, w.filtered[start:end])
	return out
}

// Toggle flips the chosen flag of option. Unknown options are ignored:
// a toggle arriving after the list was refreshed underneath the caller
// is a benign race, not an error.
func (w *Widget) Toggle(option string) {
	if _, ok := w.chosen[option]; !ok {
		return
	}
	w.chosen[option] = !w.chosen[option]
}

// IsChosen reports whether option is currently chosen.
func (w *Widget) IsChosen(option string) bool {
	return w.chosen[option]
}

// SelectedOptions returns every chosen option in display order,
// including ones hidden by the current filter or page: selection state
// is independent of the view window.
func (w *Widget) SelectedOptions() []string {
	var out []string
	for _, opt := range w.options {
		if w.chosen[opt] {
			out = append(out, opt)
		}
	}
	return out
}

// ApplyExternalSelection sets chosen=true for every option of values
// that exists in the current list and false for all others. Values no
// longer present in the store-derived option list are silently dropped.
func (w *Widget) ApplyExternalSelection(values []string) {
	wanted := make(map[string]struct{}, len(values))
	for _, v := range values {
		wanted[v] = struct{}{}
	}
	for _, opt := range w.options {
		_, ok := wanted[opt]
		w.chosen[opt] = ok
	}
}
