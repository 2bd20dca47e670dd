package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"opengov/internal/account"
	"opengov/internal/forms"
	"opengov/internal/session"
	"opengov/views/models"
	"opengov/views/pages"
)

// formFrom turns posted or encoded values into a view form.
func formFrom(values url.Values, errs forms.Errors) models.Form {
	form := models.Form{
		Values: make(map[string]string, len(values)),
		Checks: make(map[string]bool),
		Errors: map[string]string(errs),
	}
	for name := range values {
		v := values.Get(name)
		form.Values[name] = v
		if v == "true" || v == "on" {
			form.Checks[name] = true
		}
	}
	return form
}

func currentUser(r *http.Request) *session.User {
	_, u := session.FromContext(r.Context())
	return u
}

// profileForm prefills an unsaved profile from the signed-in identity.
func profileForm(u *session.User, p forms.Profile) models.Form {
	if p.Name == "" {
		p.Name = u.Name
	}
	if p.Email == "" {
		p.Email = u.Email
	}
	return formFrom(forms.Encode(p), nil)
}

// ProfilePage handles GET /profile
func (h *Handler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	st, err := h.accounts.Get(r.Context(), u.SessionID)
	if err != nil {
		h.serverError(w, r, "failed to load settings", err)
		return
	}
	h.render(w, r, http.StatusOK, pages.Profile(h.shell(w, r, "Profile", "profile"), h.profilePage(r, u, profileForm(u, st.Profile), models.Form{})))
}

func (h *Handler) profilePage(r *http.Request, u *session.User, profile, password models.Form) models.ProfilePage {
	return models.ProfilePage{
		User:       userView(u),
		Profile:    profile,
		Password:   password,
		Activities: h.activityTable(r),
	}
}

// UpdateProfile handles POST /profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	u := currentUser(r)
	var (
		in  forms.Profile
		ack account.Ack
	)
	err := forms.Decode(r.PostForm, &in)
	if err == nil {
		ack, err = h.accounts.UpdateProfile(r.Context(), u.SessionID, in)
	}
	form := formFrom(forms.Encode(in), nil)
	status, ok := h.saveFailed(w, r, err, &form)
	if !ok {
		return
	}
	if status != http.StatusOK {
		h.respond(w, r, status, pages.ProfileForm(form), func(s models.Shell) templ.Component {
			return pages.Profile(s, h.profilePage(r, u, form, models.Form{}))
		}, "Profile", "profile", nil)
		return
	}
	h.saved(w, r, "/profile", pages.ProfileForm(form), ack)
}

// ChangePassword handles POST /profile/password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	u := currentUser(r)
	var (
		in  forms.Password
		ack account.Ack
	)
	err := forms.Decode(r.PostForm, &in)
	if err == nil {
		ack, err = h.accounts.ChangePassword(r.Context(), in)
	}
	// Passwords are never echoed back.
	form := models.Form{}
	status, ok := h.saveFailed(w, r, err, &form)
	if !ok {
		return
	}
	if status != http.StatusOK {
		h.respond(w, r, status, pages.PasswordForm(form), func(s models.Shell) templ.Component {
			st, err := h.accounts.Get(r.Context(), u.SessionID)
			if err != nil {
				st = account.Defaults(u.SessionID)
			}
			return pages.Profile(s, h.profilePage(r, u, profileForm(u, st.Profile), form))
		}, "Profile", "profile", nil)
		return
	}
	h.saved(w, r, "/profile", pages.PasswordForm(form), ack)
}

// SettingsPage handles GET /settings
func (h *Handler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	st, err := h.accounts.Get(r.Context(), u.SessionID)
	if err != nil {
		h.serverError(w, r, "failed to load settings", err)
		return
	}
	tab := pickTab(r, settingsTabs)
	h.render(w, r, http.StatusOK, pages.Settings(h.shell(w, r, "Settings", "settings"), settingsPage(tab, st)))
}

func settingsPage(tab string, st *account.Settings) models.SettingsPage {
	return models.SettingsPage{
		Tab:           tab,
		Tabs:          tabs("/settings", tab, settingsTabs),
		Account:       formFrom(forms.Encode(st.Preferences), nil),
		Notifications: formFrom(forms.Encode(st.Notifications), nil),
		Privacy:       formFrom(forms.Encode(st.Privacy), nil),
	}
}

// SaveAccount handles POST /settings/account
func (h *Handler) SaveAccount(w http.ResponseWriter, r *http.Request) {
	var in account.Preferences
	h.saveSettings(w, r, "account", &in, pages.AccountForm, func(ctx context.Context, userID string) (account.Ack, error) {
		return h.accounts.SavePreferences(ctx, userID, in)
	})
}

// SaveNotifications handles POST /settings/notifications
func (h *Handler) SaveNotifications(w http.ResponseWriter, r *http.Request) {
	var in account.Notifications
	h.saveSettings(w, r, "notifications", &in, pages.NotificationsForm, func(ctx context.Context, userID string) (account.Ack, error) {
		return h.accounts.SaveNotifications(ctx, userID, in)
	})
}

// SavePrivacy handles POST /settings/privacy
func (h *Handler) SavePrivacy(w http.ResponseWriter, r *http.Request) {
	var in account.Privacy
	h.saveSettings(w, r, "privacy", &in, pages.PrivacyForm, func(ctx context.Context, userID string) (account.Ack, error) {
		return h.accounts.SavePrivacy(ctx, userID, in)
	})
}

// saveSettings decodes the posted tab into in, stores it with save and
// answers with the re-rendered tab form.
func (h *Handler) saveSettings(w http.ResponseWriter, r *http.Request, tab string, in any, fragment func(models.Form) templ.Component, save func(context.Context, string) (account.Ack, error)) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	u := currentUser(r)
	var ack account.Ack
	err := forms.Decode(r.PostForm, in)
	if err == nil {
		ack, err = save(r.Context(), u.SessionID)
	}
	form := formFrom(forms.Encode(in), nil)
	status, ok := h.saveFailed(w, r, err, &form)
	if !ok {
		return
	}
	if status != http.StatusOK {
		h.respond(w, r, status, fragment(form), func(s models.Shell) templ.Component {
			st, err := h.accounts.Get(r.Context(), u.SessionID)
			if err != nil {
				st = account.Defaults(u.SessionID)
			}
			page := settingsPage(tab, st)
			switch tab {
			case "notifications":
				page.Notifications = form
			case "privacy":
				page.Privacy = form
			default:
				page.Account = form
			}
			return pages.Settings(s, page)
		}, "Settings", "settings", nil)
		return
	}
	h.saved(w, r, "/settings?tab="+tab, fragment(form), ack)
}

// saveFailed classifies err from a save. It reports ok=false when the
// response was already written, and 422 with form errors set when the
// input was rejected. A save abandoned by its request answers 503.
func (h *Handler) saveFailed(w http.ResponseWriter, r *http.Request, err error, form *models.Form) (int, bool) {
	var errs forms.Errors
	switch {
	case err == nil:
		return http.StatusOK, true
	case errors.As(err, &errs):
		form.Errors = errs
	case errors.Is(err, account.ErrInvalidFrequency):
		form.Errors = map[string]string{"frequency": "Please choose a notification frequency."}
	case errors.Is(err, account.ErrInvalidFontSize):
		form.Errors = map[string]string{"fontSize": "Please choose a font size between 12 and 24 pixels."}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.cancelled(w, r, err)
		return 0, false
	default:
		h.serverError(w, r, "failed to save", err)
		return 0, false
	}
	return http.StatusUnprocessableEntity, true
}

// saved acknowledges a successful save exactly once: out of band for
// HTMX, through the flash after a redirect otherwise.
func (h *Handler) saved(w http.ResponseWriter, r *http.Request, back string, fragment templ.Component, ack account.Ack) {
	toast := models.Toast{Title: ack.Title, Description: ack.Description}
	if !isHTMX(r) {
		h.redirect(w, r, back, &toast)
		return
	}
	h.respond(w, r, http.StatusOK, fragment, nil, "", "", &toast)
}
