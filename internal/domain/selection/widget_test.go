package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOptions_PreservesCommonSelections(t *testing.T) {
	w := NewWidget([]string{"a", "b", "c"})
	w.Toggle("a")

	w.SetOptions([]string{"a", "b", "d"})

	assert.True(t, w.IsChosen("a"), "a survives the refresh")
	assert.False(t, w.IsChosen("b"))
	assert.False(t, w.IsChosen("d"))
	assert.Equal(t, []string{"a"}, w.SelectedOptions())
}

func TestSetOptions_ForgetsVanishedOptions(t *testing.T) {
	w := NewWidget([]string{"a", "b", "c"})
	w.Toggle("c")

	w.SetOptions([]string{"a", "b"})
	// c was chosen, disappeared, and must not resurrect when it comes back.
	w.SetOptions([]string{"a", "b", "c"})

	assert.False(t, w.IsChosen("c"))
	assert.Empty(t, w.SelectedOptions())
}

func TestSetOptions_RepeatedRefreshKeepsState(t *testing.T) {
	w := NewWidget([]string{"Pizza", "Pasta", "Salad"})
	w.Toggle("Pizza")
	w.Toggle("Salad")

	for i := 0; i < 10; i++ {
		w.SetOptions([]string{"Pizza", "Pasta", "Salad"})
	}

	assert.Equal(t, []string{"Pizza", "Salad"}, w.SelectedOptions())
}

func TestSetOptions_DropsDuplicates(t *testing.T) {
	w := NewWidget([]string{"a", "a", "b"})
	assert.Equal(t, []string{"a", "b"}, w.Options())
}

func TestSetFilterText_SubstringCaseInsensitive(t *testing.T) {
	w := NewWidget([]string{"Pizza", "Sushi"})
	w.SetFilterText("zz")
	assert.Equal(t, []string{"Pizza"}, w.FilteredOptions(), "pizza contains zz")

	w = NewWidget([]string{"Pizza", "Pasta"})
	w.SetFilterText("za")
	assert.Equal(t, []string{"Pizza"}, w.FilteredOptions())

	w.SetFilterText("PA")
	assert.Equal(t, []string{"Pasta"}, w.FilteredOptions())

	w.SetFilterText("")
	assert.Equal(t, []string{"Pizza", "Pasta"}, w.FilteredOptions())
}

func TestSetFilterText_ResetsPage(t *testing.T) {
	opts := manyOptions(30)
	w := NewWidget(opts)
	w.NextPage()
	require.Equal(t, 1, w.Page())

	w.SetFilterText("option")
	assert.Equal(t, 0, w.Page())
}

func TestPagination_Bounds(t *testing.T) {
	w := NewWidget(manyOptions(13))

	assert.Equal(t, 2, w.PageCount(), "13 options at page size 12")

	w.PrevPage()
	assert.Equal(t, 0, w.Page(), "prev at page 0 stays")

	w.NextPage()
	assert.Equal(t, 1, w.Page())
	w.NextPage()
	assert.Equal(t, 1, w.Page(), "next at last page stays")

	assert.Len(t, w.VisibleOptions(), 1, "last page shows the remainder")
}

func TestPagination_EmptyFilteredView(t *testing.T) {
	w := NewWidget([]string{"Pizza"})
	w.SetFilterText("zzz")

	assert.Equal(t, 0, w.PageCount())
	assert.Empty(t, w.VisibleOptions())
	w.NextPage()
	assert.Equal(t, 0, w.Page())
}

func TestToggle_UnknownOptionIgnored(t *testing.T) {
	w := NewWidget([]string{"a", "b"})
	w.Toggle("ghost")

	assert.Empty(t, w.SelectedOptions())
	assert.False(t, w.IsChosen("ghost"))
}

func TestSelectedOptions_IndependentOfView(t *testing.T) {
	w := NewWidget([]string{"Pizza", "Pasta", "Sushi"})
	w.Toggle("Pizza")
	w.Toggle("Sushi")

	w.SetFilterText("past") // hides both chosen options
	require.Equal(t, []string{"Pasta"}, w.FilteredOptions())

	assert.Equal(t, []string{"Pizza", "Sushi"}, w.SelectedOptions())
}

func TestApplyExternalSelection(t *testing.T) {
	w := NewWidget([]string{"a", "b", "c"})
	w.Toggle("b")

	w.ApplyExternalSelection([]string{"a", "c", "ghost"})

	assert.True(t, w.IsChosen("a"))
	assert.False(t, w.IsChosen("b"), "bulk set clears options outside the set")
	assert.True(t, w.IsChosen("c"))
	assert.Equal(t, []string{"a", "c"}, w.SelectedOptions())
}

func TestApplyExternalSelection_RoundTrip(t *testing.T) {
	w := NewWidget([]string{"a", "b", "c", "d"})
	w.Toggle("b")
	w.Toggle("d")

	selected := w.SelectedOptions()
	w.ApplyExternalSelection(selected)

	assert.Equal(t, selected, w.SelectedOptions())
}

func TestNewWidgetWithPageSize(t *testing.T) {
	w := NewWidgetWithPageSize(manyOptions(5), 2)
	assert.Equal(t, 3, w.PageCount())

	w = NewWidgetWithPageSize(manyOptions(5), 0)
	assert.Equal(t, 1, w.PageCount(), "non-positive page size falls back to default")
}

func manyOptions(n int) []string {
	opts := make([]string, n)
	for i := range opts {
		opts[i] = fmt.Sprintf("option %02d", i)
	}
	return opts
}
