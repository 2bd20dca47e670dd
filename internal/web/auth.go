package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"opengov/internal/forms"
	"opengov/internal/session"
	"opengov/internal/simulate"
	"opengov/views/components"
	"opengov/views/models"
	"opengov/views/pages"
)

var (
	signInFailed = models.Toast{
		Title:       "Sign in failed",
		Description: "Please check your credentials and try again.",
		Error:       true,
	}
	signInError = models.Toast{
		Title:       "An error occurred",
		Description: "Please try again later.",
		Error:       true,
	}
)

var oauthProviders = map[string]bool{"GitHub": true, "Google": true}

// SignInPage handles GET /auth/signin
func (h *Handler) SignInPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.SignIn(h.shell(w, r, "Sign in", ""), models.Form{}))
}

// SignUpPage handles GET /auth/signup
func (h *Handler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.SignUp(h.shell(w, r, "Sign up", ""), models.Form{}))
}

// SignIn handles POST /auth/signin
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var in forms.SignIn
	err := forms.Decode(r.PostForm, &in)

	fail := func(errs forms.Errors, toast models.Toast) {
		form := formFrom(r.PostForm, errs)
		delete(form.Values, "password")
		h.respond(w, r, http.StatusUnprocessableEntity, pages.SignInForm(form), func(s models.Shell) templ.Component {
			return pages.SignIn(s, form)
		}, "Sign in", "", &toast)
	}

	if err == nil {
		err = h.forms.Validate(&in)
	}
	if err != nil {
		var errs forms.Errors
		if !errors.As(err, &errs) {
			h.serverError(w, r, "failed to validate sign in", err)
			return
		}
		fail(errs, signInFailed)
		return
	}

	_, err = h.sessions.SignIn(r.Context(), w, in.Email, in.Password)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.cancelled(w, r, err)
		return
	case errors.Is(err, session.ErrMissingCredentials):
		fail(nil, signInFailed)
		return
	case err != nil:
		h.log.Error("failed to sign in", "error", err)
		fail(nil, signInError)
		return
	}

	h.log.Info("signed in", "email", in.Email)
	h.redirect(w, r, "/", &models.Toast{
		Title:       "Sign in successful",
		Description: "Welcome back to OpenGovTools!",
	})
}

// SignUp handles POST /auth/signup. Creating an account takes a moment
// and then signs the visitor in.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var in forms.SignUp
	err := forms.Decode(r.PostForm, &in)

	fail := func(errs forms.Errors, toast *models.Toast) {
		form := formFrom(r.PostForm, errs)
		delete(form.Values, "password")
		delete(form.Values, "confirmPassword")
		h.respond(w, r, http.StatusUnprocessableEntity, pages.SignUpForm(form), func(s models.Shell) templ.Component {
			return pages.SignUp(s, form)
		}, "Sign up", "", toast)
	}

	if err == nil {
		err = h.forms.Validate(&in)
	}
	if err != nil {
		var errs forms.Errors
		if !errors.As(err, &errs) {
			h.serverError(w, r, "failed to validate sign up", err)
			return
		}
		fail(errs, nil)
		return
	}

	if err := simulate.Wait(r.Context(), h.signUpDelay); err != nil {
		h.cancelled(w, r, err)
		return
	}

	if _, err := h.sessions.SignIn(r.Context(), w, in.Email, in.Password); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			h.cancelled(w, r, err)
			return
		}
		h.log.Error("failed to create account", "error", err)
		t := models.Toast{
			Title:       "Something went wrong",
			Description: "Your account could not be created. Please try again.",
			Error:       true,
		}
		fail(nil, &t)
		return
	}

	h.log.Info("account created", "email", in.Email)
	h.redirect(w, r, "/", &models.Toast{
		Title:       "Account created successfully",
		Description: "Welcome to OpenGovTools!",
	})
}

// SignOut handles POST /auth/signout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut(w)
	h.redirect(w, r, "/", &models.Toast{
		Title:       "Signed out",
		Description: "You have been signed out.",
	})
}

// OAuth handles POST /auth/oauth/{provider}. Providers are announced but
// not connected.
func (h *Handler) OAuth(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	if !oauthProviders[provider] {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK, components.OOBToast(models.Toast{
		Title:       provider + " authentication coming soon",
		Description: "This feature will be available in a future update.",
	}))
}
