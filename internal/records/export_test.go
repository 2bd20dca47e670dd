package records

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opengov/internal/listing"
)

func TestWriteExpendituresCSV(t *testing.T) {
	c := loadCatalog(t)
	filtered := ExpenditureSpec.Apply(c.Expenditures, listing.Filter{Search: "education"})

	var buf bytes.Buffer
	require.NoError(t, WriteExpendituresCSV(&buf, filtered))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "department", "project", "amount", "date", "status"}, rows[0])
	assert.Equal(t, []string{"EXP-001", "Education", "School Renovation Program", "4500000", "2023-08-15", "In Progress"}, rows[1])
}

func TestWriteProjectsCSV_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProjectsCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "start_date", rows[0][5])
}

func TestWriteActivitiesAndDecisionsCSV(t *testing.T) {
	c := loadCatalog(t)

	var buf bytes.Buffer
	require.NoError(t, WriteActivitiesCSV(&buf, c.Activities))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, len(c.Activities)+1)

	buf.Reset()
	require.NoError(t, WriteDecisionsCSV(&buf, c.Decisions))
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, len(c.Decisions)+1)
}
