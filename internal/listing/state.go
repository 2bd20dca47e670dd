package listing

import "time"

// State is the filter plus page position of one mounted view.
// Every filter mutation sends the view back to page 1.
type State struct {
	Filter Filter
	Page   int
}

func NewState() *State {
	return &State{Page: 1}
}

func (s *State) SetSearch(q string) {
	s.Filter.Search = q
	s.Page = 1
}

func (s *State) SetCategory(c string) {
	s.Filter.Category = c
	s.Page = 1
}

func (s *State) SetDate(d time.Time) {
	s.Filter.Date = &d
	s.Page = 1
}

func (s *State) ClearDate() {
	s.Filter.Date = nil
	s.Page = 1
}

// Reset clears all criteria.
func (s *State) Reset() {
	s.Filter = Filter{}
	s.Page = 1
}

// Goto moves to page n, clamped to [1, totalPages].
func (s *State) Goto(n, totalPages int) {
	s.Page = Clamp(n, totalPages)
}

func (s *State) Next(totalPages int) { s.Goto(s.Page+1, totalPages) }
func (s *State) Prev(totalPages int) { s.Goto(s.Page-1, totalPages) }
