package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"opengov/internal/assistant"
	"opengov/internal/feedback"
	"opengov/internal/forms"
	"opengov/internal/session"
	"opengov/views/models"
	"opengov/views/pages"

	"github.com/a-h/templ"
)

func tabs(base, current string, entries [][2]string) []models.Tab {
	out := make([]models.Tab, len(entries))
	for i, e := range entries {
		out[i] = models.Tab{Label: e[1], URL: base + "?tab=" + e[0], Active: e[0] == current}
	}
	return out
}

// pickTab returns the requested tab when it is one of entries, else the first.
func pickTab(r *http.Request, entries [][2]string) string {
	want := r.URL.Query().Get("tab")
	for _, e := range entries {
		if e[0] == want {
			return want
		}
	}
	return entries[0][0]
}

var (
	dataTabs     = [][2]string{{"budget", "Budget"}, {"expenditure", "Expenditure"}, {"decisions", "Decisions"}}
	projectTabs  = [][2]string{{"map", "Map View"}, {"list", "List View"}, {"timeline", "Timeline"}}
	settingsTabs = [][2]string{{"account", "Account"}, {"notifications", "Notifications"}, {"privacy", "Privacy"}}
)

// HomePage handles GET /
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.render(w, r, http.StatusNotFound, pages.NotFound(h.shell(w, r, "Not found", "")))
		return
	}

	state, _ := session.FromContext(r.Context())
	recent := h.catalog.Projects
	if len(recent) > 3 {
		recent = recent[:3]
	}
	rows := make([]models.ProjectRow, len(recent))
	for i, p := range recent {
		rows[i] = projectRow(p)
	}

	h.render(w, r, http.StatusOK, pages.Home(h.shell(w, r, "", "home"), models.HomePage{
		SignedIn: state == session.Authenticated,
		Budget:   budgetBars(h.catalog.Budget),
		Projects: rows,
	}))
}

// DataPage handles GET /data
func (h *Handler) DataPage(w http.ResponseWriter, r *http.Request) {
	tab := pickTab(r, dataTabs)
	page := models.DataPage{
		Stats:        statCards(h.catalog.Stats.Data),
		Tabs:         tabs("/data", tab, dataTabs),
		Tab:          tab,
		Budget:       budgetBars(h.catalog.Budget),
		Expenditures: h.expenditureTable(r),
		Decisions:    h.decisionTable(r),
	}
	if top, ok := h.catalog.Largest(); ok {
		page.Largest = top.Department
	}
	h.render(w, r, http.StatusOK, pages.Data(h.shell(w, r, "Data Explorer", "data"), page))
}

// ProjectsPage handles GET /projects
func (h *Handler) ProjectsPage(w http.ResponseWriter, r *http.Request) {
	tab := pickTab(r, projectTabs)
	pins := make([]models.ProjectRow, len(h.catalog.Projects))
	for i, p := range h.catalog.Projects {
		pins[i] = projectRow(p)
	}
	page := models.ProjectsPage{
		Stats:    statCards(h.catalog.Stats.Projects),
		Tabs:     tabs("/projects", tab, projectTabs),
		Tab:      tab,
		Map:      pins,
		Projects: h.projectTable(r),
		Timeline: h.timelineTable(r),
	}
	h.render(w, r, http.StatusOK, pages.Projects(h.shell(w, r, "Project Tracking", "projects"), page))
}

// ChatPage handles GET /chat
func (h *Handler) ChatPage(w http.ResponseWriter, r *http.Request) {
	page := h.keywordChat(r)
	if h.widget != nil {
		script, err := h.widget.EmbedScript(pages.ChatContainer)
		if err != nil {
			h.serverError(w, r, "failed to build chat widget", err)
			return
		}
		page.Widget = true
		page.WidgetScript = script
		page.Messages = nil
	}
	h.render(w, r, http.StatusOK, pages.Chat(h.shell(w, r, "AI Assistant", "chat"), page, models.Form{}))
}

// keywordChat is the chat page opened with the assistant's greeting.
func (h *Handler) keywordChat(r *http.Request) models.ChatPage {
	page := models.ChatPage{Topics: assistant.Topics}
	for _, f := range assistant.FAQs {
		page.FAQs = append(page.FAQs, models.FAQView{Question: f.Question, Answer: f.Answer})
	}
	greeting, err := h.responder.Reply(assistant.Greeting)
	if err != nil {
		h.log.Error("failed to render greeting", "path", r.URL.Path, "error", err)
		return page
	}
	page.Messages = []models.MessageView{messageView(greeting)}
	return page
}

// ChatFragment handles POST /fragments/chat. It answers with the user's
// bubble followed by the assistant's.
func (h *Handler) ChatFragment(w http.ResponseWriter, r *http.Request) {
	if h.widget != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	question := strings.TrimSpace(r.PostForm.Get("message"))
	if question == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	asked, reply, err := h.responder.Ask(question)
	if err != nil {
		h.serverError(w, r, "failed to answer", err)
		return
	}
	h.render(w, r, http.StatusOK, pages.ChatExchange(messageView(asked), messageView(reply)))
}

func messageView(m assistant.Message) models.MessageView {
	return models.MessageView{
		ID:   m.ID,
		HTML: m.HTML,
		Text: m.Content,
		Bot:  m.Sender == assistant.Bot,
		Time: m.Timestamp.Format("3:04 PM"),
	}
}

// SubmitFeedback handles POST /chat/feedback
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var (
		in  forms.Feedback
		ack feedback.Ack
	)
	err := forms.Decode(r.PostForm, &in)
	form := formFrom(forms.Encode(in), nil)

	userID := ""
	if _, u := session.FromContext(r.Context()); u != nil {
		userID = u.SessionID
	}

	if err == nil {
		_, ack, err = h.feedback.Submit(r.Context(), userID, in)
	}
	var errs forms.Errors
	switch {
	case errors.As(err, &errs):
		form.Errors = errs
		h.respond(w, r, http.StatusUnprocessableEntity, pages.FeedbackCard(false, form), func(s models.Shell) templ.Component {
			return pages.Chat(s, h.keywordChat(r), form)
		}, "AI Assistant", "chat", nil)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.cancelled(w, r, err)
		return
	case err != nil:
		h.serverError(w, r, "failed to submit feedback", err)
		return
	}

	toast := models.Toast{Title: ack.Title, Description: ack.Description}
	if !isHTMX(r) {
		h.redirect(w, r, "/chat", &toast)
		return
	}
	h.respond(w, r, http.StatusOK, pages.FeedbackCard(true, form), nil, "", "", &toast)
}

// ListFeedback handles GET /api/feedback. Visitors only see their own.
func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	items, err := h.feedback.Recent(r.Context(), u.SessionID, h.parseInt(r.URL.Query().Get("limit"), 20))
	if err != nil {
		h.log.Error("failed to list feedback", "error", err)
		h.jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.jsonResponse(w, items, http.StatusOK)
}

// Session handles GET /api/session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	state, u := session.FromContext(r.Context())
	h.jsonResponse(w, map[string]any{
		"state": state.String(),
		"user":  u,
	}, http.StatusOK)
}
