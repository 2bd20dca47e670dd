package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opengov/internal/assistant"
	"opengov/internal/records"
	"opengov/internal/session"
)

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	return callWith(t, context.Background(), h, args)
}

func callWith(t *testing.T, ctx context.Context, h server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func catalog(t *testing.T) *records.Catalog {
	t.Helper()
	c, err := records.Embedded()
	require.NoError(t, err)
	return c
}

func TestSearchExpenditures(t *testing.T) {
	c := catalog(t)
	h := handleSearch(c.Expenditures, records.ExpenditureSpec, "department")

	res := call(t, h, map[string]any{"query": "education"})
	require.False(t, res.IsError)

	var page PageResult[records.Expenditure]
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "EXP-001", page.Data[0].ID)
	assert.Equal(t, 1, page.Pagination.Total)
}

func TestSearchActivities_DateAndPaging(t *testing.T) {
	c := catalog(t)
	h := handleSearch(c.Activities, records.ActivitySpec, "type")

	var page PageResult[records.Activity]
	res := call(t, h, map[string]any{"page": 2})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &page))
	assert.Len(t, page.Data, 3)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	res = call(t, h, map[string]any{"date": "2023-11-15"})
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "ACT-006", page.Data[0].ID)

	res = call(t, h, map[string]any{"date": "15/11/2023"})
	assert.True(t, res.IsError)
}

func TestSearchActivities_RequiresSession(t *testing.T) {
	c := catalog(t)
	h := requireSignedIn(handleSearch(c.Activities, records.ActivitySpec, "type"))

	res := call(t, h, map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "sign in required")

	anon := session.WithUser(context.Background(), session.Anonymous, nil)
	assert.True(t, callWith(t, anon, h, map[string]any{}).IsError)

	signedIn := session.WithUser(context.Background(), session.Authenticated, &session.User{ID: session.DemoUserID, SessionID: "s1"})
	res = callWith(t, signedIn, h, map[string]any{"type": "login"})
	require.False(t, res.IsError)
	var page PageResult[records.Activity]
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &page))
	assert.NotEmpty(t, page.Data)
}

func TestGetProjectTimeline(t *testing.T) {
	h := handleGetTimeline(catalog(t))

	res := call(t, h, map[string]any{"id": "PRJ-003"})
	require.False(t, res.IsError)
	var p records.TimelineProject
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &p))
	assert.Equal(t, "Public Library Expansion", p.Name)
	assert.Equal(t, 6, p.CompletedMilestones())

	assert.True(t, call(t, h, map[string]any{"id": "PRJ-999"}).IsError)
	assert.True(t, call(t, h, map[string]any{}).IsError)
}

func TestBudgetAllocation(t *testing.T) {
	res := call(t, handleBudget(catalog(t)), nil)
	var b BudgetResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &b))
	require.Len(t, b.Allocations, 5)

	sum := 0
	for _, a := range b.Allocations {
		sum += a.Percentage
	}
	assert.Equal(t, 100, sum)
}

func TestAskAssistant(t *testing.T) {
	h := handleAsk(assistant.NewResponder())

	res := call(t, h, map[string]any{"question": "how do I report a pothole?"})
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), "anonymously")

	assert.True(t, call(t, h, map[string]any{}).IsError)
}

func TestNewServer(t *testing.T) {
	s := NewServer(catalog(t), assistant.NewResponder())
	assert.NotNil(t, s)
}
