// Package records holds the fixed datasets behind every dashboard view.
//
// The datasets are compiled into the binary. A Catalog is built once at
// startup and never mutated afterwards, so it is shared by all requests
// without locking.
package records

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/*.json
var dataFS embed.FS

// Catalog is the full set of record stores.
type Catalog struct {
	Expenditures []Expenditure
	Projects     []Project
	Activities   []Activity
	Decisions    []Decision
	Timeline     []TimelineProject
	Budget       []BudgetAllocation
	Stats        Stats
}

// Embedded decodes the datasets shipped with the binary.
func Embedded() (*Catalog, error) {
	var c Catalog
	files := []struct {
		name string
		dst  any
	}{
		{"expenditures.json", &c.Expenditures},
		{"projects.json", &c.Projects},
		{"activities.json", &c.Activities},
		{"decisions.json", &c.Decisions},
		{"timeline.json", &c.Timeline},
		{"budget.json", &c.Budget},
		{"stats.json", &c.Stats},
	}
	for _, f := range files {
		if err := decode(f.name, f.dst); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func decode(name string, dst any) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Departments lists the distinct expenditure departments in store order.
func (c *Catalog) Departments() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range c.Expenditures {
		if !seen[e.Department] {
			seen[e.Department] = true
			out = append(out, e.Department)
		}
	}
	return out
}

// Largest returns the allocation with the biggest share.
func (c *Catalog) Largest() (BudgetAllocation, bool) {
	if len(c.Budget) == 0 {
		return BudgetAllocation{}, false
	}
	top := c.Budget[0]
	for _, b := range c.Budget[1:] {
		if b.Percentage > top.Percentage {
			top = b
		}
	}
	return top, true
}

// TimelineByID finds a timeline project.
func (c *Catalog) TimelineByID(id string) (TimelineProject, bool) {
	for _, p := range c.Timeline {
		if p.ID == id {
			return p, true
		}
	}
	return TimelineProject{}, false
}
