package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"opengov/views/models"
)

const flashCookie = "flash"

// setFlash stores a toast to be shown on the next rendered page.
func setFlash(w http.ResponseWriter, t models.Toast) {
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash returns the pending toast, if any, and clears it.
func takeFlash(w http.ResponseWriter, r *http.Request) (models.Toast, bool) {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return models.Toast{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return models.Toast{}, false
	}
	var t models.Toast
	if err := json.Unmarshal(raw, &t); err != nil || t.Title == "" {
		return models.Toast{}, false
	}
	return t, true
}
