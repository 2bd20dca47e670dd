package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"opengov/internal/listing"
)

// WriteExpendituresCSV writes expenditures with a header row.
func WriteExpendituresCSV(w io.Writer, items []Expenditure) error {
	return writeCSV(w, []string{"id", "department", "project", "amount", "date", "status"}, items,
		func(e Expenditure) []string {
			return []string{
				e.ID, e.Department, e.Project,
				strconv.FormatInt(e.Amount, 10),
				e.Date.Format(listing.DateLayout),
				e.Status,
			}
		})
}

// WriteProjectsCSV writes projects with a header row.
func WriteProjectsCSV(w io.Writer, items []Project) error {
	return writeCSV(w, []string{"id", "name", "department", "location", "budget", "start_date", "end_date", "progress", "status"}, items,
		func(p Project) []string {
			return []string{
				p.ID, p.Name, p.Department, p.Location,
				strconv.FormatInt(p.Budget, 10),
				p.StartDate.Format(listing.DateLayout),
				p.EndDate.Format(listing.DateLayout),
				strconv.Itoa(p.Progress),
				p.Status,
			}
		})
}

// WriteActivitiesCSV writes activities with a header row.
func WriteActivitiesCSV(w io.Writer, items []Activity) error {
	return writeCSV(w, []string{"id", "type", "description", "date", "status"}, items,
		func(a Activity) []string {
			return []string{a.ID, a.Type, a.Description, a.Date.Format(listing.DateLayout), a.Status}
		})
}

// WriteDecisionsCSV writes decisions with a header row.
func WriteDecisionsCSV(w io.Writer, items []Decision) error {
	return writeCSV(w, []string{"id", "title", "department", "date", "status", "documents"}, items,
		func(d Decision) []string {
			return []string{d.ID, d.Title, d.Department, d.Date.Format(listing.DateLayout), d.Status, strconv.Itoa(len(d.Documents))}
		})
}

func writeCSV[T any](w io.Writer, header []string, items []T, row func(T) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, it := range items {
		if err := cw.Write(row(it)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
