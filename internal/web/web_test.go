package web

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opengov/internal/account"
	"opengov/internal/assistant"
	"opengov/internal/config"
	"opengov/internal/feedback"
	"opengov/internal/forms"
	"opengov/internal/listing"
	"opengov/internal/records"
	"opengov/internal/session"
)

type testServer struct {
	handler  http.Handler
	mux      *http.ServeMux
	sessions *session.Manager
	accounts *account.Service
	feedback *feedback.MemoryRepo
}

func newTestServer(t *testing.T, widget *assistant.Widget) *testServer {
	t.Helper()
	return newDelayedServer(t, widget, 0)
}

// newDelayedServer makes every save wait delay before it is acknowledged.
func newDelayedServer(t *testing.T, widget *assistant.Widget, delay time.Duration) *testServer {
	t.Helper()

	catalog, err := records.Embedded()
	require.NoError(t, err)

	validator := forms.NewValidator()
	sessions := session.NewManager(config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "user",
		TTL:        time.Hour,
	})
	accounts := account.NewService(account.NewMemoryStore(), validator, delay)
	repo := feedback.NewMemoryRepo()

	h, err := NewHandler(Deps{
		Catalog:   catalog,
		Sessions:  sessions,
		Accounts:  accounts,
		Feedback:  feedback.NewService(repo, validator, delay),
		Responder: assistant.NewResponder(),
		Widget:    widget,
		Forms:     validator,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	h.Register(mux)
	return &testServer{
		handler:  sessions.Middleware(mux),
		mux:      mux,
		sessions: sessions,
		accounts: accounts,
		feedback: repo,
	}
}

func (s *testServer) do(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, r)
	return rec
}

func (s *testServer) get(target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return s.do(r)
}

func postForm(target string, values url.Values, htmx bool, cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		r.Header.Set("HX-Request", "true")
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

// signIn returns the session cookie of a signed-in visitor.
func (s *testServer) signIn(t *testing.T) *http.Cookie {
	t.Helper()
	return s.signInAs(t, "a@b.com")
}

func (s *testServer) signInAs(t *testing.T, email string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	_, err := s.sessions.SignIn(t.Context(), rec, email, "x")
	require.NoError(t, err)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

// sessionID is the key the visitor behind cookie saves under.
func (s *testServer) sessionID(t *testing.T, cookie *http.Cookie) string {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	state, u := s.sessions.Resolve(r)
	require.Equal(t, session.Authenticated, state)
	return u.SessionID
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestPages(t *testing.T) {
	s := newTestServer(t, nil)

	for _, tc := range []struct {
		path string
		want string
	}{
		{"/", "OpenGovTools"},
		{"/data", "Data Explorer"},
		{"/data?tab=expenditure", "School Renovation Program"},
		{"/data?tab=decisions", "Urban Development Plan 2025"},
		{"/projects", "Project Tracking"},
		{"/projects?tab=list", "Central Park Renovation"},
		{"/projects?tab=timeline", "Project Kickoff"},
		{"/auth/signin", "Sign in"},
		{"/auth/signup", "Create an account"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			rec := s.get(tc.path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}

	t.Run("unknown path", func(t *testing.T) {
		rec := s.get("/nowhere")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestExpendituresFragment(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("search narrows to one row", func(t *testing.T) {
		rec := s.get("/fragments/expenditures?q=Education")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "School Renovation Program")
		assert.NotContains(t, body, "Highway Expansion")
		assert.Contains(t, body, "Showing 1 to 1 of 1 expenditures")
		assert.NotContains(t, body, "<html")
	})

	t.Run("no match shows the empty row", func(t *testing.T) {
		rec := s.get("/fragments/expenditures?q=zzz")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "No expenditures found matching your search.")
		assert.Contains(t, body, "Page 1 of 1")
	})

	t.Run("department filter", func(t *testing.T) {
		rec := s.get("/fragments/expenditures?department=Healthcare")
		body := rec.Body.String()
		assert.Contains(t, body, "Medical Equipment Purchase")
		assert.NotContains(t, body, "School Renovation Program")
	})
}

func TestListAPI(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := s.signIn(t)

	t.Run("expenditures", func(t *testing.T) {
		rec := s.get("/api/expenditures")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp listResponse[records.Expenditure]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp.Data, 7)
		assert.Equal(t, listing.Meta{Page: 1, PageSize: 10, Total: 7, TotalPages: 1}, resp.Pagination)
	})

	t.Run("no match is an empty array", func(t *testing.T) {
		rec := s.get("/api/projects?q=zzz")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("activities paginate by five", func(t *testing.T) {
		rec := s.get("/api/activities?page=2", cookie)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp listResponse[records.Activity]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp.Data, 3)
		assert.Equal(t, listing.Meta{Page: 2, PageSize: 5, Total: 8, TotalPages: 2}, resp.Pagination)
	})

	t.Run("page past the end is clamped", func(t *testing.T) {
		rec := s.get("/api/activities?page=9", cookie)
		var resp listResponse[records.Activity]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 2, resp.Pagination.Page)
	})

	t.Run("activities filter by date", func(t *testing.T) {
		rec := s.get("/api/activities?date=2023-11-25", cookie)
		var resp listResponse[records.Activity]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "ACT-002", resp.Data[0].ID)
	})

	t.Run("budget", func(t *testing.T) {
		rec := s.get("/api/budget")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"allocations"`)
	})
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get("/api/expenditures.csv?q=Education")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "expenditures.csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "EXP-001", rows[1][0])
}

func TestSignIn(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("any non-empty credentials succeed", func(t *testing.T) {
		rec := s.do(postForm("/auth/signin", url.Values{"email": {"a@b.com"}, "password": {"x"}}, false))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		c := findCookie(rec, "user")
		require.NotNil(t, c)
		assert.NotEmpty(t, c.Value)
		assert.NotNil(t, findCookie(rec, flashCookie))

		// The welcome toast shows once on the next page.
		home := s.get("/", c, findCookie(rec, flashCookie))
		assert.Contains(t, home.Body.String(), "Sign in successful")
		assert.Contains(t, home.Body.String(), "a@b.com")
	})

	t.Run("htmx sign in redirects through the header", func(t *testing.T) {
		rec := s.do(postForm("/auth/signin", url.Values{"email": {"a@b.com"}, "password": {"x"}}, true))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))
	})

	t.Run("empty email fails", func(t *testing.T) {
		rec := s.do(postForm("/auth/signin", url.Values{"email": {""}, "password": {"x"}}, true))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Sign in failed")
		assert.Contains(t, rec.Body.String(), "Please enter a valid email address.")
		assert.Nil(t, findCookie(rec, "user"))
	})

	t.Run("empty password fails", func(t *testing.T) {
		rec := s.do(postForm("/auth/signin", url.Values{"email": {"a@b.com"}}, false))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Password is required.")
		assert.Nil(t, findCookie(rec, "user"))
	})
}

func TestSignUp(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("valid form signs in", func(t *testing.T) {
		rec := s.do(postForm("/auth/signup", url.Values{
			"name":            {"Jane Citizen"},
			"email":           {"jane@example.com"},
			"password":        {"password1"},
			"confirmPassword": {"password1"},
			"terms":           {"on"},
		}, false))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.NotNil(t, findCookie(rec, "user"))
	})

	t.Run("mismatched passwords", func(t *testing.T) {
		rec := s.do(postForm("/auth/signup", url.Values{
			"name":            {"Jane Citizen"},
			"email":           {"jane@example.com"},
			"password":        {"password1"},
			"confirmPassword": {"password2"},
			"terms":           {"on"},
		}, true))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Passwords do not match.")
		assert.Nil(t, findCookie(rec, "user"))
	})

	t.Run("terms required", func(t *testing.T) {
		rec := s.do(postForm("/auth/signup", url.Values{
			"name":            {"Jane Citizen"},
			"email":           {"jane@example.com"},
			"password":        {"password1"},
			"confirmPassword": {"password1"},
		}, true))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "You must accept the terms and conditions.")
	})
}

func TestSignOut(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(postForm("/auth/signout", url.Values{}, false, s.signIn(t)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	c := findCookie(rec, "user")
	require.NotNil(t, c)
	assert.Less(t, c.MaxAge, 0)
}

func TestOAuth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(postForm("/auth/oauth/GitHub", url.Values{}, true))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "GitHub authentication coming soon")
	assert.Contains(t, rec.Body.String(), `hx-swap-oob="beforeend"`)

	rec = s.do(postForm("/auth/oauth/Facebook", url.Values{}, true))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/profile", "/settings", "/api/activities", "/fragments/activities"} {
		t.Run(path, func(t *testing.T) {
			rec := s.get(path)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/auth/signin", rec.Header().Get("Location"))
		})
	}

	t.Run("htmx gets a redirect header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/fragments/activities", nil)
		r.Header.Set("HX-Request", "true")
		rec := s.do(r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/auth/signin", rec.Header().Get("HX-Redirect"))
	})

	t.Run("signed in", func(t *testing.T) {
		cookie := s.signIn(t)
		rec := s.get("/profile", cookie)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Demo User")
		assert.Contains(t, body, "Logged in from Chrome on Windows")
		assert.Contains(t, body, "Showing 1 to 5 of 8 activities")
	})
}

func TestSettings(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := s.signIn(t)

	t.Run("page shows stored defaults", func(t *testing.T) {
		rec := s.get("/settings?tab=notifications", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Notification Channels")
	})

	t.Run("htmx save acknowledges once", func(t *testing.T) {
		rec := s.do(postForm("/settings/privacy", url.Values{"dataSharing": {"on"}}, true, cookie))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, 1, strings.Count(body, "Privacy settings updated"))
		assert.Contains(t, body, `id="privacy-form"`)

		st, err := s.accounts.Get(t.Context(), s.sessionID(t, cookie))
		require.NoError(t, err)
		assert.True(t, st.Privacy.DataSharing)
		assert.False(t, st.Privacy.CookieConsent)
	})

	t.Run("plain save redirects back to the tab", func(t *testing.T) {
		rec := s.do(postForm("/settings/account", url.Values{"fontSize": {"18"}, "language": {"french"}, "sessionTimeout": {"60"}}, false, cookie))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/settings?tab=account", rec.Header().Get("Location"))

		st, err := s.accounts.Get(t.Context(), s.sessionID(t, cookie))
		require.NoError(t, err)
		assert.Equal(t, 18, st.Preferences.FontSize)
		assert.Equal(t, "french", st.Preferences.Language)
	})

	t.Run("bad frequency is rejected", func(t *testing.T) {
		rec := s.do(postForm("/settings/notifications", url.Values{"email": {"on"}, "frequency": {"hourly"}}, true, cookie))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please choose a notification frequency.")
	})

	t.Run("font size out of range is rejected", func(t *testing.T) {
		rec := s.do(postForm("/settings/account", url.Values{"fontSize": {"40"}}, true, cookie))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestProfile(t *testing.T) {
	s := newTestServer(t, nil)
	cookie := s.signIn(t)

	t.Run("update", func(t *testing.T) {
		rec := s.do(postForm("/profile", url.Values{"name": {"Jane Citizen"}, "email": {"jane@example.com"}, "city": {"Springfield"}}, true, cookie))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Profile updated")

		st, err := s.accounts.Get(t.Context(), s.sessionID(t, cookie))
		require.NoError(t, err)
		assert.Equal(t, "Springfield", st.Profile.City)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := s.do(postForm("/profile", url.Values{"name": {"Jane Citizen"}, "email": {"nope"}}, true, cookie))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please enter a valid email address.")
	})

	t.Run("password mismatch", func(t *testing.T) {
		rec := s.do(postForm("/profile/password", url.Values{
			"currentPassword": {"old"},
			"newPassword":     {"password1"},
			"confirmPassword": {"password2"},
		}, true, cookie))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Passwords do not match.")
	})

	t.Run("password changed", func(t *testing.T) {
		rec := s.do(postForm("/profile/password", url.Values{
			"currentPassword": {"old"},
			"newPassword":     {"password1"},
			"confirmPassword": {"password1"},
		}, true, cookie))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Password updated")
		assert.NotContains(t, rec.Body.String(), "password1")
	})
}

func TestChat(t *testing.T) {
	t.Run("keyword mode", func(t *testing.T) {
		s := newTestServer(t, nil)

		rec := s.get("/chat")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "How can I help you today?")

		rec = s.do(postForm("/fragments/chat", url.Values{"message": {"Where can I see the budget?"}}, true))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Where can I see the budget?")
		assert.Equal(t, 2, strings.Count(body, "<time"))

		rec = s.do(postForm("/fragments/chat", url.Values{"message": {"   "}}, true))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("widget mode", func(t *testing.T) {
		s := newTestServer(t, &assistant.Widget{URL: "https://chat.example.com/embed"})

		rec := s.get("/chat")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), assistant.FrameID)

		rec = s.do(postForm("/fragments/chat", url.Values{"message": {"hello"}}, true))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestFeedback(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(postForm("/chat/feedback", url.Values{"rating": {"sideways"}}, true))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please choose whether the answer was helpful.")

	cookie := s.signIn(t)
	rec = s.do(postForm("/chat/feedback", url.Values{"rating": {"positive"}, "comment": {"Useful"}}, true, cookie))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank You!")
	assert.Contains(t, rec.Body.String(), "Feedback submitted")

	items, err := s.feedback.Recent(t.Context(), s.sessionID(t, cookie), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, feedback.Positive, items[0].Rating)

	rec = s.get("/api/feedback", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Useful")

	rec = s.get("/api/feedback", s.signInAs(t, "other@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Useful")
}

func TestVisitorsDoNotShareAccounts(t *testing.T) {
	s := newTestServer(t, nil)
	alice := s.signInAs(t, "alice@example.com")
	bob := s.signInAs(t, "bob@example.com")

	rec := s.do(postForm("/profile", url.Values{
		"name":  {"Alice Secret"},
		"email": {"alice@example.com"},
		"bio":   {"alice private bio"},
	}, true, alice))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(postForm("/settings/privacy", url.Values{"dataSharing": {"on"}}, true, alice))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.get("/profile", bob)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Alice Secret")
	assert.NotContains(t, rec.Body.String(), "alice private bio")
	assert.Contains(t, rec.Body.String(), "bob@example.com")

	st, err := s.accounts.Get(t.Context(), s.sessionID(t, bob))
	require.NoError(t, err)
	assert.False(t, st.Privacy.DataSharing)

	rec = s.get("/profile", alice)
	assert.Contains(t, rec.Body.String(), "Alice Secret")
	assert.Contains(t, rec.Body.String(), "alice private bio")
}

func TestSave_LoadingThenSingleAck(t *testing.T) {
	const delay = 40 * time.Millisecond
	s := newDelayedServer(t, nil, delay)
	cookie := s.signIn(t)

	page := s.get("/settings?tab=privacy", cookie)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), `hx-disabled-elt="this"`)
	assert.Contains(t, page.Body.String(), "Saving...")

	// Two visitors saving at once are each acknowledged once.
	cookies := []*http.Cookie{cookie, s.signInAs(t, "other@example.com")}
	bodies := make([]string, len(cookies))
	start := time.Now()
	var wg sync.WaitGroup
	for i, c := range cookies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := s.do(postForm("/settings/privacy", url.Values{"dataSharing": {"on"}}, true, c))
			if rec.Code == http.StatusOK {
				bodies[i] = rec.Body.String()
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, time.Since(start), delay)
	for _, body := range bodies {
		assert.Equal(t, 1, strings.Count(body, "Privacy settings updated"))
		assert.Contains(t, body, `id="privacy-form"`)
	}
}

func TestCancelledRequests(t *testing.T) {
	s := newTestServer(t, nil)

	cancelled := func(r *http.Request, u *session.User) *http.Request {
		ctx, cancel := context.WithCancel(r.Context())
		cancel()
		state := session.Anonymous
		if u != nil {
			state = session.Authenticated
		}
		return r.WithContext(session.WithUser(ctx, state, u))
	}
	visitor := &session.User{ID: session.DemoUserID, SessionID: "cancelled-visitor", Email: "a@b.com"}

	for name, r := range map[string]*http.Request{
		"sign up": cancelled(postForm("/auth/signup", url.Values{
			"name":            {"Jane Citizen"},
			"email":           {"jane@example.com"},
			"password":        {"password1"},
			"confirmPassword": {"password1"},
			"terms":           {"on"},
		}, true), nil),
		"settings save": cancelled(postForm("/settings/privacy", url.Values{"dataSharing": {"on"}}, true), visitor),
		"feedback":      cancelled(postForm("/chat/feedback", url.Values{"rating": {"positive"}}, true), nil),
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.mux.ServeHTTP(rec, r)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Contains(t, rec.Body.String(), "request cancelled")
			assert.Nil(t, findCookie(rec, "user"))
		})
	}

	st, err := s.accounts.Get(t.Context(), visitor.SessionID)
	require.NoError(t, err)
	assert.False(t, st.Privacy.DataSharing)
}

func TestSessionAPI(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.get("/api/session")
	assert.Contains(t, rec.Body.String(), `"state":"anonymous"`)

	rec = s.get("/api/session", s.signIn(t))
	assert.Contains(t, rec.Body.String(), `"state":"authenticated"`)
	assert.Contains(t, rec.Body.String(), "a@b.com")
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "DU", initials("Demo User"))
	assert.Equal(t, "J", initials("jane"))
	assert.Equal(t, "", initials(""))
	assert.Equal(t, "ÉZ", initials("émile zola"))
	assert.Equal(t, "ÅØ", initials("Åse Øvergaard Berg"))

	got := initials("Łukasz")
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Ł", got)
}
