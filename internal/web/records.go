package web

import (
	"net/http"
	"net/url"
	"strconv"

	"opengov/internal/badge"
	"opengov/internal/format"
	"opengov/internal/listing"
	"opengov/internal/records"
	"opengov/views/components"
	"opengov/views/models"
)

// listView describes how one record store is filtered and shown.
type listView struct {
	fragment   string // HTMX endpoint
	target     string // DOM id of the results region
	param      string // category query parameter
	allLabel   string
	queryLabel string
	noun       string
	empty      string
	export     string
}

var (
	expenditureView = listView{
		fragment: "/fragments/expenditures", target: "expenditure-results", param: "department",
		allLabel: "All Departments", queryLabel: "Search expenditures...", noun: "expenditures",
		empty: "No expenditures found matching your search.", export: "/api/expenditures.csv",
	}
	projectView = listView{
		fragment: "/fragments/projects", target: "project-results", param: "status",
		allLabel: "All Statuses", queryLabel: "Search projects...", noun: "projects",
		empty: "No projects found matching your search.", export: "/api/projects.csv",
	}
	activityView = listView{
		fragment: "/fragments/activities", target: "activity-results", param: "type",
		allLabel: "All Types", queryLabel: "Search activities...", noun: "activities",
		empty: "No activities found matching your criteria.",
	}
	decisionView = listView{
		fragment: "/fragments/decisions", target: "decision-results", param: "status",
		allLabel: "All Statuses", queryLabel: "Search decisions...", noun: "decisions",
		empty: "No decisions found matching your search.",
	}
	timelineView = listView{
		fragment: "/fragments/timeline", target: "timeline-results", param: "status",
		allLabel: "All Statuses", queryLabel: "Search projects...", noun: "projects",
		empty: "No projects found matching your search.",
	}
)

// filterFrom reads q, the category parameter and date from the query.
// An unparseable date is ignored.
func (v listView) filterFrom(r *http.Request) listing.Filter {
	q := r.URL.Query()
	f := listing.Filter{
		Search:   q.Get("q"),
		Category: q.Get(v.param),
	}
	if d := q.Get("date"); d != "" {
		if t, err := listing.ParseDate(d); err == nil {
			f.Date = &t
		}
	}
	return f
}

func (v listView) query(f listing.Filter, page int) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if f.Category != "" && f.Category != listing.All {
		q.Set(v.param, f.Category)
	}
	if f.Date != nil {
		q.Set("date", f.Date.Format(listing.DateLayout))
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

func (v listView) url(base string, f listing.Filter, page int) string {
	if q := v.query(f, page).Encode(); q != "" {
		return base + "?" + q
	}
	return base
}

func (v listView) filters(f listing.Filter, categories []string, withDate bool) models.Filters {
	current := f.Category
	if current == "" {
		current = listing.All
	}
	opts := []models.Option{{Value: listing.All, Label: v.allLabel, Selected: current == listing.All}}
	for _, c := range categories {
		opts = append(opts, models.Option{Value: c, Label: format.Label(c), Selected: c == current})
	}

	out := models.Filters{
		Action:     v.fragment,
		Target:     v.target,
		Query:      f.Search,
		QueryLabel: v.queryLabel,
		Category:   v.param,
		Options:    opts,
		ShowDate:   withDate,
	}
	if f.Date != nil {
		out.Date = f.Date.Format(listing.DateLayout)
	}
	if v.export != "" {
		out.ExportURL = v.url(v.export, f, 1)
	}
	return out
}

func pager[T any](v listView, p listing.Page[T], f listing.Filter) models.Pager {
	out := models.Pager{
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Start:      p.Start(),
		End:        p.End(),
		Total:      p.Total,
		Noun:       v.noun,
		Target:     v.target,
	}
	if p.HasPrev() {
		out.PrevURL = v.url(v.fragment, f, p.Page-1)
	}
	if p.HasNext() {
		out.NextURL = v.url(v.fragment, f, p.Page+1)
	}
	return out
}

func table[T, R any](v listView, p listing.Page[T], f listing.Filter, filters models.Filters, row func(T) R) models.Table[R] {
	rows := make([]R, len(p.Items))
	for i, it := range p.Items {
		rows[i] = row(it)
	}
	return models.Table[R]{
		Filters: filters,
		Rows:    rows,
		Pager:   pager(v, p, f),
		Empty:   v.empty,
	}
}

// --- View model converters ---

func statusBadge(p badge.Palette, status string) models.Badge {
	return models.Badge{Label: format.Label(status), Class: p.Style(status)}
}

func expenditureRow(e records.Expenditure) models.ExpenditureRow {
	return models.ExpenditureRow{
		ID:         e.ID,
		Department: e.Department,
		Project:    e.Project,
		Amount:     format.Dollars(e.Amount),
		Date:       format.Date(e.Date),
		Status:     statusBadge(badge.ExpenditureStatus, e.Status),
	}
}

func projectRow(p records.Project) models.ProjectRow {
	return models.ProjectRow{
		ID:         p.ID,
		Name:       p.Name,
		Department: p.Department,
		Location:   p.Location,
		Budget:     format.Dollars(p.Budget),
		Period:     format.Date(p.StartDate) + " - " + format.Date(p.EndDate),
		Progress:   p.Progress,
		Status:     statusBadge(badge.ProjectStatus, p.Status),
	}
}

func activityRow(a records.Activity) models.ActivityRow {
	row := models.ActivityRow{
		ID:          a.ID,
		Type:        statusBadge(badge.ActivityType, a.Type),
		Description: a.Description,
		Date:        format.DateTime(a.Date),
	}
	if a.Status != "" {
		st := statusBadge(badge.ActivityStatus, a.Status)
		row.Status = &st
	}
	return row
}

func (h *Handler) decisionItem(d records.Decision) models.DecisionView {
	docs := make([]models.DocumentLink, len(d.Documents))
	for i, doc := range d.Documents {
		docs[i] = models.DocumentLink{Name: doc.Name, URL: doc.URL}
	}
	return models.DecisionView{
		ID:              d.ID,
		Title:           d.Title,
		DescriptionHTML: h.decisions[d.ID],
		Date:            format.LongDate(d.Date),
		Department:      d.Department,
		Status:          statusBadge(badge.DecisionStatus, d.Status),
		Documents:       docs,
	}
}

func timelineItem(p records.TimelineProject) models.TimelineView {
	ms := make([]models.MilestoneView, len(p.Milestones))
	for i, m := range p.Milestones {
		ms[i] = models.MilestoneView{
			Date:        format.Date(m.Date),
			Title:       m.Title,
			Description: m.Description,
			Completed:   m.Completed,
		}
	}
	return models.TimelineView{
		ID:         p.ID,
		Name:       p.Name,
		Department: p.Department,
		Period:     format.Date(p.StartDate) + " - " + format.Date(p.EndDate),
		Status:     statusBadge(badge.ProjectStatus, p.Status),
		Completed:  p.CompletedMilestones(),
		Milestones: ms,
	}
}

func statCards(cards []records.StatCard) []models.StatCard {
	out := make([]models.StatCard, len(cards))
	for i, c := range cards {
		out[i] = models.StatCard{Title: c.Title, Value: c.Value, Description: c.Description}
	}
	return out
}

func budgetBars(allocs []records.BudgetAllocation) []models.BudgetBar {
	out := make([]models.BudgetBar, len(allocs))
	for i, a := range allocs {
		out[i] = models.BudgetBar{Department: a.Department, Percentage: a.Percentage, Color: a.Color}
	}
	return out
}

// --- Table builders shared by pages and fragments ---

func (h *Handler) expenditureTable(r *http.Request) models.Table[models.ExpenditureRow] {
	f := expenditureView.filterFrom(r)
	p := records.ExpenditureSpec.Query(h.catalog.Expenditures, f, h.parseInt(r.URL.Query().Get("page"), 1))
	return table(expenditureView, p, f, expenditureView.filters(f, h.catalog.Departments(), false), expenditureRow)
}

func (h *Handler) projectTable(r *http.Request) models.Table[models.ProjectRow] {
	f := projectView.filterFrom(r)
	p := records.ProjectSpec.Query(h.catalog.Projects, f, h.parseInt(r.URL.Query().Get("page"), 1))
	return table(projectView, p, f, projectView.filters(f, records.ProjectStatuses, false), projectRow)
}

func (h *Handler) activityTable(r *http.Request) models.Table[models.ActivityRow] {
	f := activityView.filterFrom(r)
	p := records.ActivitySpec.Query(h.catalog.Activities, f, h.parseInt(r.URL.Query().Get("page"), 1))
	return table(activityView, p, f, activityView.filters(f, records.ActivityTypes, true), activityRow)
}

func (h *Handler) decisionTable(r *http.Request) models.Table[models.DecisionView] {
	f := decisionView.filterFrom(r)
	p := records.DecisionSpec.Query(h.catalog.Decisions, f, h.parseInt(r.URL.Query().Get("page"), 1))
	return table(decisionView, p, f, decisionView.filters(f, records.DecisionStatuses, false), h.decisionItem)
}

func (h *Handler) timelineTable(r *http.Request) models.Table[models.TimelineView] {
	f := timelineView.filterFrom(r)
	p := records.TimelineSpec.Query(h.catalog.Timeline, f, h.parseInt(r.URL.Query().Get("page"), 1))
	return table(timelineView, p, f, timelineView.filters(f, records.ProjectStatuses, false), timelineItem)
}

// --- HTMX fragment handlers ---

// ExpendituresFragment handles GET /fragments/expenditures
func (h *Handler) ExpendituresFragment(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, components.ExpenditureTable(h.expenditureTable(r)))
}

// ProjectsFragment handles GET /fragments/projects
func (h *Handler) ProjectsFragment(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, components.ProjectTable(h.projectTable(r)))
}

// ActivitiesFragment handles GET /fragments/activities
func (h *Handler) ActivitiesFragment(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, components.ActivityTable(h.activityTable(r)))
}

// DecisionsFragment handles GET /fragments/decisions
func (h *Handler) DecisionsFragment(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, components.DecisionList(h.decisionTable(r)))
}

// TimelineFragment handles GET /fragments/timeline
func (h *Handler) TimelineFragment(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, components.TimelineList(h.timelineTable(r)))
}

// --- REST API Handlers ---

// listResponse is a page of records with its pagination metadata.
type listResponse[T any] struct {
	Data       []T          `json:"data"`
	Pagination listing.Meta `json:"pagination"`
}

func listJSON[T any](h *Handler, w http.ResponseWriter, r *http.Request, v listView, spec listing.Spec[T], items []T) {
	f := v.filterFrom(r)
	p := spec.Query(items, f, h.parseInt(r.URL.Query().Get("page"), 1))
	data := p.Items
	if data == nil {
		data = []T{}
	}
	h.jsonResponse(w, listResponse[T]{Data: data, Pagination: p.Meta()}, http.StatusOK)
}

// ListExpenditures handles GET /api/expenditures
func (h *Handler) ListExpenditures(w http.ResponseWriter, r *http.Request) {
	listJSON(h, w, r, expenditureView, records.ExpenditureSpec, h.catalog.Expenditures)
}

// ListProjects handles GET /api/projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	listJSON(h, w, r, projectView, records.ProjectSpec, h.catalog.Projects)
}

// ListActivities handles GET /api/activities
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	listJSON(h, w, r, activityView, records.ActivitySpec, h.catalog.Activities)
}

// ListDecisions handles GET /api/decisions
func (h *Handler) ListDecisions(w http.ResponseWriter, r *http.Request) {
	listJSON(h, w, r, decisionView, records.DecisionSpec, h.catalog.Decisions)
}

// ListTimeline handles GET /api/timeline
func (h *Handler) ListTimeline(w http.ResponseWriter, r *http.Request) {
	listJSON(h, w, r, timelineView, records.TimelineSpec, h.catalog.Timeline)
}

// Budget handles GET /api/budget
func (h *Handler) Budget(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, map[string]any{
		"allocations": h.catalog.Budget,
		"stats":       h.catalog.Stats,
	}, http.StatusOK)
}

// ExportExpenditures handles GET /api/expenditures.csv
func (h *Handler) ExportExpenditures(w http.ResponseWriter, r *http.Request) {
	items := records.ExpenditureSpec.Apply(h.catalog.Expenditures, expenditureView.filterFrom(r))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expenditures.csv"`)
	if err := records.WriteExpendituresCSV(w, items); err != nil {
		h.log.Error("failed to export expenditures", "error", err)
	}
}

// ExportProjects handles GET /api/projects.csv
func (h *Handler) ExportProjects(w http.ResponseWriter, r *http.Request) {
	items := records.ProjectSpec.Apply(h.catalog.Projects, projectView.filterFrom(r))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="projects.csv"`)
	if err := records.WriteProjectsCSV(w, items); err != nil {
		h.log.Error("failed to export projects", "error", err)
	}
}
