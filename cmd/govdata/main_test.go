package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"opengov/internal/records"
)

func embedded(context.Context) (*records.Catalog, error) {
	return records.Embedded()
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(embedded)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListTable(t *testing.T) {
	out, err := run(t, "list", "expenditures", "--query", "education")
	require.NoError(t, err)
	assert.Contains(t, out, "School Renovation Program")
	assert.Contains(t, out, "$4,500,000")
	assert.NotContains(t, out, "Highway Expansion")
	assert.Contains(t, out, "Showing 1 to 1 of 1 (page 1 of 1)")
}

func TestListNoMatch(t *testing.T) {
	out, err := run(t, "list", "projects", "--query", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found.")
}

func TestListJSON(t *testing.T) {
	out, err := run(t, "list", "activities", "--page", "2", "--format", "json")
	require.NoError(t, err)

	var doc pageOutput[records.Activity]
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Data, 3)
	assert.Equal(t, 2, doc.Pagination.Page)
	assert.Equal(t, 8, doc.Pagination.Total)
	assert.Equal(t, 2, doc.Pagination.TotalPages)
}

func TestListYAML(t *testing.T) {
	out, err := run(t, "list", "decisions", "--status", "Approved", "-o", "yaml")
	require.NoError(t, err)

	var doc pageOutput[records.Decision]
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.NotEmpty(t, doc.Data)
	for _, d := range doc.Data {
		assert.Equal(t, "Approved", d.Status)
	}
}

func TestListCSV(t *testing.T) {
	out, err := run(t, "list", "activities", "--status", "report", "--format", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	// Header plus every report, unpaginated.
	assert.Len(t, rows, 4)
}

func TestListDate(t *testing.T) {
	out, err := run(t, "list", "activities", "--date", "2023-11-25")
	require.NoError(t, err)
	assert.Contains(t, out, "ACT-002")
	assert.NotContains(t, out, "ACT-001")
}

func TestListErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"unknown kind":   {"list", "budgets"},
		"missing kind":   {"list"},
		"unknown format": {"list", "projects", "--format", "xml"},
		"bad date":       {"list", "activities", "--date", "yesterday"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestBudget(t *testing.T) {
	out, err := run(t, "budget")
	require.NoError(t, err)
	assert.Contains(t, out, "Education")
	assert.Contains(t, out, "28%")
	assert.Contains(t, out, "Education receives the largest share.")
}
