// Package listing filters and paginates in-memory record sets.
//
// Every data view in the dashboard is the same pattern: a fixed, ordered
// slice of records narrowed by a search box, an optional category dropdown and
// an optional date picker, then cut into fixed-size pages. A view describes
// itself once as a Spec and reuses Match, Apply and Query.
package listing

import (
	"fmt"
	"strings"
	"time"
)

// Category values that disable the category clause.
const (
	All = "all"
	Any = "any"
)

// DateLayout is the calendar-day format used in query strings.
const DateLayout = "2006-01-02"

// Filter is the user-controlled narrowing of a record set.
type Filter struct {
	Search   string
	Category string
	Date     *time.Time
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Search == "" && anyCategory(f.Category) && f.Date == nil
}

// Spec configures the filter clauses a view supports.
// A nil Category or Date selector omits that clause entirely.
type Spec[T any] struct {
	Text     []func(T) string
	Category func(T) string
	Date     func(T) time.Time
	PageSize int
}

// Match reports whether r satisfies every clause configured on the spec.
func (s Spec[T]) Match(r T, f Filter) bool {
	return s.matchText(r, f.Search) && s.matchCategory(r, f.Category) && s.matchDate(r, f.Date)
}

func (s Spec[T]) matchText(r T, search string) bool {
	if search == "" || len(s.Text) == 0 {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range s.Text {
		if strings.Contains(strings.ToLower(field(r)), needle) {
			return true
		}
	}
	return false
}

func (s Spec[T]) matchCategory(r T, category string) bool {
	if s.Category == nil || anyCategory(category) {
		return true
	}
	return s.Category(r) == category
}

func (s Spec[T]) matchDate(r T, day *time.Time) bool {
	if s.Date == nil || day == nil {
		return true
	}
	return SameDay(s.Date(r), *day)
}

// Apply returns the records matching f, preserving store order.
func (s Spec[T]) Apply(records []T, f Filter) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if s.Match(r, f) {
			out = append(out, r)
		}
	}
	return out
}

// Query filters records and returns the requested page of the result.
func (s Spec[T]) Query(records []T, f Filter, page int) Page[T] {
	return Paginate(s.Apply(records, f), page, s.PageSize)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDate accepts YYYY-MM-DD or RFC3339.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
}

func anyCategory(c string) bool {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "", All, Any:
		return true
	}
	return false
}
