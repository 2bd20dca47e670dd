package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"opengov/internal/assistant"
	"opengov/internal/listing"
	"opengov/internal/records"
	"opengov/internal/session"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server exposing the public records read-only
func NewServer(catalog *records.Catalog, responder *assistant.Responder) *server.MCPServer {
	s := server.NewMCPServer(
		"OpenGovTools",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Tool: search_projects - Filter public works projects
	s.AddTool(
		mcp.NewTool("search_projects",
			mcp.WithDescription("Search public works projects by name, department or location, optionally filtered by status. Results are paginated 10 per page."),
			mcp.WithString("query",
				mcp.Description("Optional: Case-insensitive text matched against name, department and location"),
			),
			mcp.WithString("status",
				mcp.Description("Optional: One of 'On Track', 'Delayed', 'Completed', 'On Hold' (default: all)"),
			),
			mcp.WithNumber("page",
				mcp.Description("Page number, starting at 1 (default: 1)"),
			),
		),
		handleSearch(catalog.Projects, records.ProjectSpec, "status"),
	)

	// Tool: search_expenditures - Filter government spending
	s.AddTool(
		mcp.NewTool("search_expenditures",
			mcp.WithDescription("Search government expenditures by department, project or ID, optionally restricted to one department. Results are paginated 10 per page."),
			mcp.WithString("query",
				mcp.Description("Optional: Case-insensitive text matched against department, project and ID"),
			),
			mcp.WithString("department",
				mcp.Description("Optional: Exact department name (default: all)"),
			),
			mcp.WithNumber("page",
				mcp.Description("Page number, starting at 1 (default: 1)"),
			),
		),
		handleSearch(catalog.Expenditures, records.ExpenditureSpec, "department"),
	)

	// Tool: search_activities - Filter account activity history (signed-in only)
	s.AddTool(
		mcp.NewTool("search_activities",
			mcp.WithDescription("Search the account activity history by description, type and day. Requires a signed-in session cookie. Results are paginated 5 per page."),
			mcp.WithString("query",
				mcp.Description("Optional: Case-insensitive text matched against the description"),
			),
			mcp.WithString("type",
				mcp.Description("Optional: One of 'login', 'report', 'comment', 'view', 'download' (default: all)"),
			),
			mcp.WithString("date",
				mcp.Description("Optional: Only activities on this day (ISO format: YYYY-MM-DD or RFC3339)"),
			),
			mcp.WithNumber("page",
				mcp.Description("Page number, starting at 1 (default: 1)"),
			),
		),
		requireSignedIn(handleSearch(catalog.Activities, records.ActivitySpec, "type")),
	)

	// Tool: list_decisions - Policy decisions and their documents
	s.AddTool(
		mcp.NewTool("list_decisions",
			mcp.WithDescription("List policy decisions with their status and supporting documents. Use this to follow a decision from proposal to implementation."),
			mcp.WithString("query",
				mcp.Description("Optional: Case-insensitive text matched against title, description and department"),
			),
			mcp.WithString("status",
				mcp.Description("Optional: One of 'Proposed', 'Under Review', 'Approved', 'Implemented', 'Rejected'"),
			),
			mcp.WithNumber("page",
				mcp.Description("Page number, starting at 1 (default: 1)"),
			),
		),
		handleSearch(catalog.Decisions, records.DecisionSpec, "status"),
	)

	// Tool: get_project_timeline - Milestones of one project
	s.AddTool(
		mcp.NewTool("get_project_timeline",
			mcp.WithDescription("Get the milestone schedule of a project. Use search_projects first if you do not know the ID."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The project ID (e.g., 'PRJ-001')"),
			),
		),
		handleGetTimeline(catalog),
	)

	// Tool: budget_allocation - Departmental shares of the budget
	s.AddTool(
		mcp.NewTool("budget_allocation",
			mcp.WithDescription("Get each department's percentage share of the annual budget and the headline budget figures."),
		),
		handleBudget(catalog),
	)

	// Tool: ask_assistant - Same answers as the chat view
	s.AddTool(
		mcp.NewTool("ask_assistant",
			mcp.WithDescription("Ask the citizen assistant a question. Returns the markdown answer shown in the chat view."),
			mcp.WithString("question",
				mcp.Required(),
				mcp.Description("The question, in plain language"),
			),
		),
		handleAsk(responder),
	)

	return s
}

// PageResult is a page of records in tool responses
type PageResult[T any] struct {
	Data       []T          `json:"data"`
	Pagination listing.Meta `json:"pagination"`
}

// BudgetResult is the budget overview
type BudgetResult struct {
	Allocations []records.BudgetAllocation `json:"allocations"`
	Highlights  []records.StatCard         `json:"highlights"`
}

func handleSearch[T any](items []T, spec listing.Spec[T], categoryParam string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f := listing.Filter{
			Search:   req.GetString("query", ""),
			Category: req.GetString(categoryParam, ""),
		}

		// Parse date filter
		if date := req.GetString("date", ""); date != "" && spec.Date != nil {
			t, err := listing.ParseDate(date)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid 'date' format: %v", err)), nil
			}
			f.Date = &t
		}

		page := spec.Query(items, f, req.GetInt("page", 1))
		return jsonResult(PageResult[T]{Data: page.Items, Pagination: page.Meta()})
	}
}

// requireSignedIn refuses the call unless the HTTP request that carried it
// had a valid session. The session middleware wraps the MCP endpoint, so
// the tool context is derived from the request context.
func requireSignedIn(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if state, _ := session.FromContext(ctx); state != session.Authenticated {
			return mcp.NewToolResultError("sign in required: account activity is private"), nil
		}
		return next(ctx, req)
	}
}

func handleGetTimeline(catalog *records.Catalog) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		p, ok := catalog.TimelineByID(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no timeline for project %s", id)), nil
		}
		return jsonResult(p)
	}
}

func handleBudget(catalog *records.Catalog) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(BudgetResult{
			Allocations: catalog.Budget,
			Highlights:  catalog.Stats.Data,
		})
	}
}

func handleAsk(responder *assistant.Responder) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError("question is required"), nil
		}

		_, reply, err := responder.Ask(question)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to answer: %v", err)), nil
		}
		return mcp.NewToolResultText(reply.Content), nil
	}
}

// Helper functions

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
