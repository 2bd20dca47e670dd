// Package badge maps closed status enumerations to display style tokens.
package badge

// Style tokens. The stylesheet defines one class per token.
const (
	Neutral = "badge-gray"
	Green   = "badge-green"
	Blue    = "badge-blue"
	Yellow  = "badge-yellow"
	Red     = "badge-red"
	Purple  = "badge-purple"
	Orange  = "badge-orange"
)

// Palette maps status values to style tokens. Values missing from the
// palette render with the neutral style.
type Palette map[string]string

// Style returns the token for status, falling back to Neutral.
func (p Palette) Style(status string) string {
	if s, ok := p[status]; ok {
		return s
	}
	return Neutral
}

// Known reports whether status belongs to the enumeration.
func (p Palette) Known(status string) bool {
	_, ok := p[status]
	return ok
}

var (
	ProjectStatus = Palette{
		"On Track":  Green,
		"Delayed":   Yellow,
		"Completed": Blue,
		"On Hold":   Red,
	}

	ExpenditureStatus = Palette{
		"Completed":   Green,
		"In Progress": Blue,
		"Planned":     Yellow,
	}

	DecisionStatus = Palette{
		"Proposed":     Yellow,
		"Under Review": Blue,
		"Approved":     Green,
		"Implemented":  Purple,
		"Rejected":     Red,
	}

	ActivityType = Palette{
		"login":    Blue,
		"report":   Yellow,
		"comment":  Green,
		"view":     Purple,
		"download": Orange,
	}

	ActivityStatus = Palette{
		"pending":  Blue,
		"resolved": Green,
		"rejected": Red,
	}
)
