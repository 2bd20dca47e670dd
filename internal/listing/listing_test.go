package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID     string
	Name   string
	Dept   string
	Status string
	At     time.Time
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

var items = []item{
	{"A-1", "Central Park Renovation", "Parks", "On Track", day(2023, 11, 28, 9)},
	{"A-2", "Bridge Repair", "Infrastructure", "Delayed", day(2023, 11, 25, 14)},
	{"A-3", "Library Expansion", "Education", "Completed", day(2023, 11, 22, 11)},
	{"A-4", "Traffic System", "Transportation", "On Track", day(2023, 11, 20, 16)},
	{"A-5", "Health Center", "Health", "On Track", day(2023, 11, 18, 10)},
	{"A-6", "Housing", "Housing", "On Hold", day(2023, 11, 15, 19)},
	{"A-7", "Solar Power", "Energy", "On Track", day(2023, 11, 12, 8)},
	{"A-8", "Park Cleanup", "Parks", "Delayed", day(2023, 11, 28, 21)},
}

var spec = Spec[item]{
	Text:     []func(item) string{func(i item) string { return i.Name }, func(i item) string { return i.Dept }},
	Category: func(i item) string { return i.Status },
	Date:     func(i item) time.Time { return i.At },
	PageSize: 5,
}

func ids(rs []item) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestMatch_EmptyFilterMatchesEverything(t *testing.T) {
	for _, r := range items {
		assert.True(t, spec.Match(r, Filter{}), r.ID)
		assert.True(t, spec.Match(r, Filter{Category: "all"}), r.ID)
		assert.True(t, spec.Match(r, Filter{Category: "Any"}), r.ID)
	}
	assert.True(t, Filter{Category: All}.IsZero())
}

func TestMatch_TextIsCaseInsensitiveAcrossFields(t *testing.T) {
	got := spec.Apply(items, Filter{Search: "PARK"})
	assert.Equal(t, []string{"A-1", "A-8"}, ids(got))

	got = spec.Apply(items, Filter{Search: "education"})
	assert.Equal(t, []string{"A-3"}, ids(got))

	assert.Empty(t, spec.Apply(items, Filter{Search: "zzz"}))
}

func TestMatch_CategoryIsExact(t *testing.T) {
	got := spec.Apply(items, Filter{Category: "Delayed"})
	assert.Equal(t, []string{"A-2", "A-8"}, ids(got))

	assert.Empty(t, spec.Apply(items, Filter{Category: "delayed"}))
}

func TestMatch_DateComparesCalendarDay(t *testing.T) {
	d := day(2023, 11, 28, 0)
	got := spec.Apply(items, Filter{Date: &d})
	assert.Equal(t, []string{"A-1", "A-8"}, ids(got))
}

func TestMatch_ClausesAreAnded(t *testing.T) {
	d := day(2023, 11, 28, 0)
	got := spec.Apply(items, Filter{Search: "park", Category: "Delayed", Date: &d})
	assert.Equal(t, []string{"A-8"}, ids(got))
}

func TestMatch_UnconfiguredClausesAreIgnored(t *testing.T) {
	textOnly := Spec[item]{Text: spec.Text}
	d := day(1999, 1, 1, 0)
	got := textOnly.Apply(items, Filter{Search: "park", Category: "nope", Date: &d})
	assert.Equal(t, []string{"A-1", "A-8"}, ids(got))
}

func TestApply_Idempotent(t *testing.T) {
	for _, s := range []string{"", "a", "park", "ON", "zzz", "ea"} {
		f := Filter{Search: s}
		once := spec.Apply(items, f)
		twice := spec.Apply(once, f)
		assert.Equal(t, ids(once), ids(twice), s)
	}
}

func TestPaginate_FirstAndLastPageSizes(t *testing.T) {
	for n := 0; n <= 23; n++ {
		for _, size := range []int{1, 3, 5, 10} {
			seq := make([]int, n)
			first := Paginate(seq, 1, size)
			assert.Len(t, first.Items, min(n, size))

			last := Paginate(seq, first.TotalPages, size)
			want := n % size
			if want == 0 && n > 0 {
				want = size
			}
			assert.Len(t, last.Items, want, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginate_EmptySequence(t *testing.T) {
	p := Paginate([]int{}, 3, 5)
	assert.True(t, p.Empty())
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Start())
	assert.Equal(t, 0, p.End())
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrev())
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	seq := []int{1, 2, 3, 4, 5, 6, 7, 8}

	p := Paginate(seq, 0, 5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Items)

	p = Paginate(seq, 99, 5)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, []int{6, 7, 8}, p.Items)
	assert.Equal(t, 6, p.Start())
	assert.Equal(t, 8, p.End())
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func TestPaginate_DefaultSize(t *testing.T) {
	p := Paginate(make([]int, 25), 1, 0)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 3, p.TotalPages)
}

func TestState_FilterChangeResetsPage(t *testing.T) {
	st := NewState()
	st.Next(spec.Query(items, st.Filter, st.Page).TotalPages)
	require.Equal(t, 2, st.Page)

	st.SetSearch("p")
	assert.Equal(t, 1, st.Page)

	st.Page = 2
	st.SetCategory("On Track")
	assert.Equal(t, 1, st.Page)

	st.Page = 2
	st.SetDate(day(2023, 11, 28, 0))
	assert.Equal(t, 1, st.Page)

	st.Page = 2
	st.ClearDate()
	assert.Equal(t, 1, st.Page)
	assert.Nil(t, st.Filter.Date)
}

func TestState_NavigationClamps(t *testing.T) {
	st := NewState()
	st.Prev(2)
	assert.Equal(t, 1, st.Page)
	st.Next(2)
	st.Next(2)
	assert.Equal(t, 2, st.Page)
	st.Goto(-4, 2)
	assert.Equal(t, 1, st.Page)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-11-28")
	require.NoError(t, err)
	assert.Equal(t, day(2023, 11, 28, 0), d)

	d, err = ParseDate("2023-11-28T09:30:00Z")
	require.NoError(t, err)
	assert.True(t, SameDay(d, day(2023, 11, 28, 0)))

	_, err = ParseDate("28/11/2023")
	assert.Error(t, err)
}
