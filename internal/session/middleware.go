package session

import (
	"context"
	"net/http"
)

type ctxKey struct{}

type entry struct {
	state State
	user  *User
}

// WithUser returns a context carrying the resolved session.
func WithUser(ctx context.Context, state State, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry{state: state, user: u})
}

// FromContext returns the session attached by Middleware.
// A context without one is Unknown.
func FromContext(ctx context.Context) (State, *User) {
	e, ok := ctx.Value(ctxKey{}).(entry)
	if !ok {
		return Unknown, nil
	}
	return e.state, e.user
}

// Middleware resolves the session once per request.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, u := m.Resolve(r)
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), state, u)))
	})
}

// RequireAuth redirects anonymous visitors to signInPath and serves loading
// while the session is still unknown.
func RequireAuth(signInPath string, loading http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, _ := FromContext(r.Context())
			switch state {
			case Authenticated:
				next.ServeHTTP(w, r)
			case Anonymous:
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", signInPath)
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				http.Redirect(w, r, signInPath, http.StatusSeeOther)
			default:
				loading.ServeHTTP(w, r)
			}
		})
	}
}
