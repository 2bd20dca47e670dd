package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opengov/internal/config"
)

func newManager() *Manager {
	return NewManager(config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "user",
		TTL:        time.Hour,
	})
}

// requestWith copies the cookies set on rec into a fresh request.
func requestWith(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSignIn(t *testing.T) {
	m := newManager()

	t.Run("non-empty credentials authenticate", func(t *testing.T) {
		rec := httptest.NewRecorder()
		u, err := m.SignIn(context.Background(), rec, "a@b.com", "x")
		require.NoError(t, err)
		assert.Equal(t, DemoUserID, u.ID)
		assert.Equal(t, "a@b.com", u.Email)

		state, got := m.Resolve(requestWith(rec))
		assert.Equal(t, Authenticated, state)
		require.NotNil(t, got)
		assert.Equal(t, *u, *got)
	})

	t.Run("empty email fails", func(t *testing.T) {
		rec := httptest.NewRecorder()
		_, err := m.SignIn(context.Background(), rec, "", "x")
		assert.ErrorIs(t, err, ErrMissingCredentials)
		assert.Empty(t, rec.Result().Cookies())

		state, _ := m.Resolve(requestWith(rec))
		assert.Equal(t, Anonymous, state)
	})

	t.Run("empty password fails", func(t *testing.T) {
		_, err := m.SignIn(context.Background(), httptest.NewRecorder(), "a@b.com", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := m.SignIn(ctx, httptest.NewRecorder(), "a@b.com", "x")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSignIn_SessionIDPerVisitor(t *testing.T) {
	m := newManager()

	alice := httptest.NewRecorder()
	a, err := m.SignIn(context.Background(), alice, "alice@example.com", "x")
	require.NoError(t, err)
	bob := httptest.NewRecorder()
	b, err := m.SignIn(context.Background(), bob, "bob@example.com", "x")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEmpty(t, a.SessionID)
	assert.NotEqual(t, a.SessionID, b.SessionID)

	_, got := m.Resolve(requestWith(alice))
	require.NotNil(t, got)
	assert.Equal(t, a.SessionID, got.SessionID)
}

func TestResolve_TokenWithoutSessionID(t *testing.T) {
	m := newManager()
	value, err := m.codec.encode(User{ID: DemoUserID, Email: "a@b.com"})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "user", Value: value})
	state, _ := m.Resolve(r)
	assert.Equal(t, Anonymous, state)
}

func TestSignOut(t *testing.T) {
	m := newManager()
	rec := httptest.NewRecorder()
	m.SignOut(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "user", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestResolve(t *testing.T) {
	m := newManager()

	t.Run("no cookie is anonymous", func(t *testing.T) {
		state, u := m.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, Anonymous, state)
		assert.Nil(t, u)
	})

	t.Run("garbage cookie is anonymous", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "user", Value: `{"id":"user-1"}`})
		state, _ := m.Resolve(r)
		assert.Equal(t, Anonymous, state)
	})

	t.Run("cookie signed with another secret is anonymous", func(t *testing.T) {
		other := NewManager(config.SessionConfig{Secret: "other", CookieName: "user", TTL: time.Hour})
		rec := httptest.NewRecorder()
		_, err := other.SignIn(context.Background(), rec, "a@b.com", "x")
		require.NoError(t, err)

		state, _ := m.Resolve(requestWith(rec))
		assert.Equal(t, Anonymous, state)
	})

	t.Run("expired cookie is anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		_, err := m.SignIn(context.Background(), rec, "a@b.com", "x")
		require.NoError(t, err)

		later := *m
		later.codec.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		state, _ := later.Resolve(requestWith(rec))
		assert.Equal(t, Anonymous, state)
	})

	t.Run("cancelled request is unknown", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		state, _ := m.Resolve(r)
		assert.Equal(t, Unknown, state)
	})
}

func TestRequireAuth(t *testing.T) {
	m := newManager()
	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, u := FromContext(r.Context())
		w.Write([]byte("hello " + u.Email))
	})
	loading := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("loading"))
	})
	h := m.Middleware(RequireAuth("/auth/signin", loading)(protected))

	t.Run("anonymous is redirected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/signin", rec.Header().Get("Location"))
	})

	t.Run("htmx request gets HX-Redirect", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/settings", nil)
		r.Header.Set("HX-Request", "true")
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/auth/signin", rec.Header().Get("HX-Redirect"))
	})

	t.Run("authenticated passes through", func(t *testing.T) {
		signin := httptest.NewRecorder()
		_, err := m.SignIn(context.Background(), signin, "a@b.com", "x")
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestWith(signin))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello a@b.com", rec.Body.String())
	})

	t.Run("unknown renders loading", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAuth("/auth/signin", loading)(protected).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))
		assert.Equal(t, "loading", rec.Body.String())
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "anonymous", Anonymous.String())
}
