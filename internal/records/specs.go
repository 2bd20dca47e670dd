package records

import (
	"time"

	"opengov/internal/listing"
)

// Per-view filter configuration.
var (
	ExpenditureSpec = listing.Spec[Expenditure]{
		Text: []func(Expenditure) string{
			func(e Expenditure) string { return e.Department },
			func(e Expenditure) string { return e.Project },
			func(e Expenditure) string { return e.ID },
		},
		Category: func(e Expenditure) string { return e.Department },
		PageSize: 10,
	}

	ProjectSpec = listing.Spec[Project]{
		Text: []func(Project) string{
			func(p Project) string { return p.Name },
			func(p Project) string { return p.Department },
			func(p Project) string { return p.Location },
		},
		Category: func(p Project) string { return p.Status },
		PageSize: 10,
	}

	ActivitySpec = listing.Spec[Activity]{
		Text: []func(Activity) string{
			func(a Activity) string { return a.Description },
		},
		Category: func(a Activity) string { return a.Type },
		Date:     func(a Activity) time.Time { return a.Date },
		PageSize: 5,
	}

	DecisionSpec = listing.Spec[Decision]{
		Text: []func(Decision) string{
			func(d Decision) string { return d.Title },
			func(d Decision) string { return d.Description },
			func(d Decision) string { return d.Department },
		},
		Category: func(d Decision) string { return d.Status },
		PageSize: 10,
	}

	TimelineSpec = listing.Spec[TimelineProject]{
		Text: []func(TimelineProject) string{
			func(p TimelineProject) string { return p.Name },
			func(p TimelineProject) string { return p.Department },
		},
		Category: func(p TimelineProject) string { return p.Status },
		PageSize: 10,
	}
)

// Closed enumerations offered in the filter dropdowns.
var (
	ProjectStatuses     = []string{"On Track", "Delayed", "Completed", "On Hold"}
	ExpenditureStatuses = []string{"Completed", "In Progress", "Planned"}
	DecisionStatuses    = []string{"Proposed", "Under Review", "Approved", "Implemented", "Rejected"}
	ActivityTypes       = []string{"login", "report", "comment", "view", "download"}
	ActivityStatuses    = []string{"pending", "resolved", "rejected"}
)
