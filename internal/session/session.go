// Package session tracks whether a visitor is signed in.
//
// There is no credential check: signing in with any non-empty email and
// password succeeds and stores a demo identity under a single cookie. The
// cookie is signed so that a hand-edited value reads as anonymous.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"opengov/internal/config"
)

// State of the session gate.
type State int

const (
	Unknown State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

var ErrMissingCredentials = errors.New("email and password are required")

// User is the stored identity record. ID is the shared demo identity shown
// in the UI; SessionID is unique per sign-in and keys everything the
// visitor saves.
type User struct {
	ID        string `json:"id"`
	SessionID string `json:"-"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Image     string `json:"image,omitempty"`
}

// Demo identity handed out on sign-in.
const (
	DemoUserID    = "user-1"
	DemoUserName  = "Demo User"
	DemoUserImage = "/static/placeholder.svg"
)

// Manager owns the session cookie. Create one at startup and inject it.
type Manager struct {
	codec  codec
	cookie string
	ttl    time.Duration
	secure bool
}

func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		codec:  codec{secret: []byte(cfg.Secret), ttl: cfg.TTL, now: time.Now},
		cookie: cfg.CookieName,
		ttl:    cfg.TTL,
		secure: cfg.Secure,
	}
}

// SignIn stores a demo identity when both email and password are present.
func (m *Manager) SignIn(ctx context.Context, w http.ResponseWriter, email, password string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	u := &User{
		ID:        DemoUserID,
		SessionID: uuid.NewString(),
		Name:      DemoUserName,
		Email:     email,
		Image:     DemoUserImage,
	}
	if err := m.Store(w, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Store writes u into the session cookie.
func (m *Manager) Store(w http.ResponseWriter, u *User) error {
	value, err := m.codec.encode(*u)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// SignOut removes the session cookie.
func (m *Manager) SignOut(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Resolve reads the session from r. It reports Unknown when the request
// was cancelled before the check could finish.
func (m *Manager) Resolve(r *http.Request) (State, *User) {
	if r.Context().Err() != nil {
		return Unknown, nil
	}
	c, err := r.Cookie(m.cookie)
	if err != nil || c.Value == "" {
		return Anonymous, nil
	}
	u, err := m.codec.decode(c.Value)
	if err != nil {
		return Anonymous, nil
	}
	return Authenticated, u
}
