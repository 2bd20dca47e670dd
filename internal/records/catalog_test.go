package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opengov/internal/badge"
	"opengov/internal/listing"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Embedded()
	require.NoError(t, err)
	return c
}

func TestEmbedded_LoadsEveryStore(t *testing.T) {
	c := loadCatalog(t)

	assert.Len(t, c.Expenditures, 7)
	assert.Len(t, c.Projects, 7)
	assert.Len(t, c.Activities, 8)
	assert.Len(t, c.Decisions, 5)
	assert.Len(t, c.Timeline, 3)
	assert.Len(t, c.Budget, 5)
	assert.Len(t, c.Stats.Data, 3)
	assert.Len(t, c.Stats.Projects, 3)

	assert.Equal(t, "EXP-001", c.Expenditures[0].ID)
	assert.Equal(t, int64(4500000), c.Expenditures[0].Amount)
	assert.Equal(t, time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC), c.Expenditures[0].Date)
	assert.Equal(t, []string{"PRJ-001", "PRJ-004", "PRJ-003"}, []string{c.Timeline[0].ID, c.Timeline[1].ID, c.Timeline[2].ID})
}

func TestEmbedded_IDsAreUniquePerStore(t *testing.T) {
	c := loadCatalog(t)

	seen := map[string]bool{}
	for _, e := range c.Expenditures {
		assert.False(t, seen[e.ID], e.ID)
		seen[e.ID] = true
	}
	seen = map[string]bool{}
	for _, p := range c.Projects {
		assert.False(t, seen[p.ID], p.ID)
		seen[p.ID] = true
	}
}

func TestEmbedded_StatusesBelongToTheirEnumerations(t *testing.T) {
	c := loadCatalog(t)

	for _, p := range c.Projects {
		assert.True(t, badge.ProjectStatus.Known(p.Status), p.Status)
	}
	for _, e := range c.Expenditures {
		assert.True(t, badge.ExpenditureStatus.Known(e.Status), e.Status)
	}
	for _, d := range c.Decisions {
		assert.True(t, badge.DecisionStatus.Known(d.Status), d.Status)
	}
	for _, a := range c.Activities {
		assert.True(t, badge.ActivityType.Known(a.Type), a.Type)
		if a.Status != "" {
			assert.True(t, badge.ActivityStatus.Known(a.Status), a.Status)
		}
	}
}

func TestExpenditureSearch(t *testing.T) {
	c := loadCatalog(t)

	got := ExpenditureSpec.Apply(c.Expenditures, listing.Filter{Search: "Education"})
	require.Len(t, got, 1)
	assert.Equal(t, "EXP-001", got[0].ID)

	got = ExpenditureSpec.Apply(c.Expenditures, listing.Filter{Search: "exp-00"})
	assert.Len(t, got, 7)

	page := ExpenditureSpec.Query(c.Expenditures, listing.Filter{Search: "zzz"}, 1)
	assert.True(t, page.Empty())
	assert.Equal(t, 1, page.TotalPages)

	got = ExpenditureSpec.Apply(c.Expenditures, listing.Filter{Category: "Healthcare"})
	require.Len(t, got, 1)
	assert.Equal(t, "EXP-002", got[0].ID)
}

func TestProjectStatusFilter(t *testing.T) {
	c := loadCatalog(t)

	got := ProjectSpec.Apply(c.Projects, listing.Filter{Category: "On Track"})
	assert.Len(t, got, 4)

	got = ProjectSpec.Apply(c.Projects, listing.Filter{Search: "side", Category: "On Hold"})
	require.Len(t, got, 1)
	assert.Equal(t, "PRJ-006", got[0].ID)
}

func TestActivityFilters(t *testing.T) {
	c := loadCatalog(t)

	page := ActivitySpec.Query(c.Activities, listing.Filter{}, 1)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 2, page.TotalPages)

	page = ActivitySpec.Query(c.Activities, listing.Filter{}, 2)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 6, page.Start())
	assert.Equal(t, 8, page.End())

	got := ActivitySpec.Apply(c.Activities, listing.Filter{Category: "report"})
	assert.Len(t, got, 3)

	d := time.Date(2023, 11, 15, 0, 0, 0, 0, time.UTC)
	got = ActivitySpec.Apply(c.Activities, listing.Filter{Date: &d})
	require.Len(t, got, 1)
	assert.Equal(t, "ACT-006", got[0].ID)
}

func TestCatalogHelpers(t *testing.T) {
	c := loadCatalog(t)

	top, ok := c.Largest()
	require.True(t, ok)
	assert.Equal(t, "Education", top.Department)

	assert.Equal(t, "Education", c.Departments()[0])
	assert.Len(t, c.Departments(), 7)

	p, ok := c.TimelineByID("PRJ-003")
	require.True(t, ok)
	assert.Equal(t, 6, p.CompletedMilestones())

	_, ok = c.TimelineByID("PRJ-999")
	assert.False(t, ok)

	sum := 0
	for _, b := range c.Budget {
		sum += b.Percentage
	}
	assert.Equal(t, 100, sum)
}
