// Package web serves the dashboard: HTML pages, HTMX fragments, the JSON
// API and CSV downloads.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"

	"opengov/internal/account"
	"opengov/internal/assistant"
	"opengov/internal/feedback"
	"opengov/internal/forms"
	"opengov/internal/records"
	"opengov/internal/session"
	"opengov/views/components"
	"opengov/views/models"
	"opengov/views/pages"
)

// Deps are the collaborators a Handler is built from.
type Deps struct {
	Catalog     *records.Catalog
	Sessions    *session.Manager
	Accounts    *account.Service
	Feedback    *feedback.Service
	Responder   *assistant.Responder
	Widget      *assistant.Widget // nil selects the keyword assistant
	Forms       *forms.Validator
	SignUpDelay time.Duration
	Log         *slog.Logger
}

type Handler struct {
	catalog     *records.Catalog
	sessions    *session.Manager
	accounts    *account.Service
	feedback    *feedback.Service
	responder   *assistant.Responder
	widget      *assistant.Widget
	forms       *forms.Validator
	signUpDelay time.Duration
	decisions   map[string]string // decision ID to rendered description
	log         *slog.Logger
}

func NewHandler(d Deps) (*Handler, error) {
	h := &Handler{
		catalog:     d.Catalog,
		sessions:    d.Sessions,
		accounts:    d.Accounts,
		feedback:    d.Feedback,
		responder:   d.Responder,
		widget:      d.Widget,
		forms:       d.Forms,
		signUpDelay: d.SignUpDelay,
		decisions:   make(map[string]string, len(d.Catalog.Decisions)),
		log:         d.Log,
	}

	md := goldmark.New()
	for _, dec := range d.Catalog.Decisions {
		var buf bytes.Buffer
		if err := md.Convert([]byte(dec.Description), &buf); err != nil {
			return nil, fmt.Errorf("render decision %s: %w", dec.ID, err)
		}
		h.decisions[dec.ID] = buf.String()
	}
	return h, nil
}

// Register mounts every dashboard route on mux. The session middleware
// must wrap mux for the protected routes to see the visitor.
func (h *Handler) Register(mux *http.ServeMux) {
	protect := session.RequireAuth("/auth/signin", http.HandlerFunc(h.LoadingPage))
	private := func(fn http.HandlerFunc) http.Handler { return protect(fn) }

	// HTMX Web UI
	mux.HandleFunc("GET /", h.HomePage)
	mux.HandleFunc("GET /data", h.DataPage)
	mux.HandleFunc("GET /projects", h.ProjectsPage)
	mux.HandleFunc("GET /chat", h.ChatPage)
	mux.HandleFunc("GET /auth/signin", h.SignInPage)
	mux.HandleFunc("GET /auth/signup", h.SignUpPage)
	mux.HandleFunc("POST /auth/signin", h.SignIn)
	mux.HandleFunc("POST /auth/signup", h.SignUp)
	mux.HandleFunc("POST /auth/signout", h.SignOut)
	mux.HandleFunc("POST /auth/oauth/{provider}", h.OAuth)
	mux.Handle("GET /profile", private(h.ProfilePage))
	mux.Handle("POST /profile", private(h.UpdateProfile))
	mux.Handle("POST /profile/password", private(h.ChangePassword))
	mux.Handle("GET /settings", private(h.SettingsPage))
	mux.Handle("POST /settings/account", private(h.SaveAccount))
	mux.Handle("POST /settings/notifications", private(h.SaveNotifications))
	mux.Handle("POST /settings/privacy", private(h.SavePrivacy))
	mux.HandleFunc("POST /chat/feedback", h.SubmitFeedback)

	// Fragments
	mux.HandleFunc("GET /fragments/expenditures", h.ExpendituresFragment)
	mux.HandleFunc("GET /fragments/projects", h.ProjectsFragment)
	mux.HandleFunc("GET /fragments/decisions", h.DecisionsFragment)
	mux.HandleFunc("GET /fragments/timeline", h.TimelineFragment)
	mux.Handle("GET /fragments/activities", private(h.ActivitiesFragment))
	mux.HandleFunc("POST /fragments/chat", h.ChatFragment)

	// REST API endpoints
	mux.HandleFunc("GET /api/expenditures", h.ListExpenditures)
	mux.HandleFunc("GET /api/expenditures.csv", h.ExportExpenditures)
	mux.HandleFunc("GET /api/projects", h.ListProjects)
	mux.HandleFunc("GET /api/projects.csv", h.ExportProjects)
	mux.HandleFunc("GET /api/decisions", h.ListDecisions)
	mux.HandleFunc("GET /api/timeline", h.ListTimeline)
	mux.HandleFunc("GET /api/budget", h.Budget)
	mux.HandleFunc("GET /api/session", h.Session)
	mux.Handle("GET /api/activities", private(h.ListActivities))
	mux.Handle("GET /api/feedback", private(h.ListFeedback))
}

// --- Helper methods ---

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *Handler) parseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.log.Error("failed to render", "path", r.URL.Path, "error", err)
	}
}

// shell builds the page frame for the current visitor and drains any
// pending flash toast.
func (h *Handler) shell(w http.ResponseWriter, r *http.Request, title, active string, toasts ...models.Toast) models.Shell {
	s := models.Shell{Title: title, Active: active}
	if _, u := session.FromContext(r.Context()); u != nil {
		v := userView(u)
		s.User = &v
	}
	if t, ok := takeFlash(w, r); ok {
		s.Toasts = append(s.Toasts, t)
	}
	s.Toasts = append(s.Toasts, toasts...)
	return s
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// respond answers a form post. HTMX requests get the swapped fragment and
// the toast out of band; plain posts get the whole page.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, fragment templ.Component, page func(models.Shell) templ.Component, title, active string, toast *models.Toast) {
	if isHTMX(r) {
		h.render(w, r, status, components.WithToast(fragment, toast))
		return
	}
	var toasts []models.Toast
	if toast != nil {
		toasts = append(toasts, *toast)
	}
	h.render(w, r, status, page(h.shell(w, r, title, active, toasts...)))
}

// redirect sends the browser to url, carrying toast to the next page.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, url string, toast *models.Toast) {
	if toast != nil {
		setFlash(w, *toast)
	}
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.Error(msg, "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// cancelled answers a request whose context ended before the work did.
// The client has usually gone; the status is for proxies and logs.
func (h *Handler) cancelled(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Warn("request cancelled", "path", r.URL.Path, "error", err)
	http.Error(w, "request cancelled", http.StatusServiceUnavailable)
}

// LoadingPage is served while the session is unresolved.
func (h *Handler) LoadingPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.Loading(models.Shell{Title: "Loading"}))
}

func userView(u *session.User) models.UserView {
	return models.UserView{
		Name:     u.Name,
		Email:    u.Email,
		Image:    u.Image,
		Initials: initials(u.Name),
	}
}

// initials takes the first letter of up to two words of name.
func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		first, _ := utf8.DecodeRuneInString(part)
		out = append(out, unicode.ToUpper(first))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
