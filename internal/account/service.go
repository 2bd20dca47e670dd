// Package account manages profile and settings for signed-in users.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opengov/internal/forms"
	"opengov/internal/simulate"
)

var (
	ErrInvalidFrequency = errors.New("frequency must be realtime, daily or weekly")
	ErrInvalidFontSize  = errors.New("font size must be between 12 and 24")
)

type Service struct {
	store   Store
	forms   *forms.Validator
	latency simulate.Latency
	now     func() time.Time
}

func NewService(store Store, validator *forms.Validator, delay time.Duration) *Service {
	return &Service{
		store:   store,
		forms:   validator,
		latency: simulate.Latency(delay),
		now:     time.Now,
	}
}

// Get returns the user's settings, or the defaults if none were saved.
func (s *Service) Get(ctx context.Context, userID string) (*Settings, error) {
	st, err := s.store.Get(ctx, userID)
	if errors.Is(err, ErrSettingsNotFound) {
		return Defaults(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// SaveNotifications stores notification preferences.
func (s *Service) SaveNotifications(ctx context.Context, userID string, n Notifications) (Ack, error) {
	switch n.Frequency {
	case FrequencyRealtime, FrequencyDaily, FrequencyWeekly:
	default:
		return Ack{}, ErrInvalidFrequency
	}
	return s.update(ctx, userID, func(st *Settings) { st.Notifications = n }, Ack{
		Title:       "Notification settings updated",
		Description: "Your notification preferences have been saved successfully.",
	})
}

// SavePrivacy stores privacy preferences.
func (s *Service) SavePrivacy(ctx context.Context, userID string, p Privacy) (Ack, error) {
	return s.update(ctx, userID, func(st *Settings) { st.Privacy = p }, Ack{
		Title:       "Privacy settings updated",
		Description: "Your privacy preferences have been saved successfully.",
	})
}

// SavePreferences stores appearance, accessibility and data preferences.
func (s *Service) SavePreferences(ctx context.Context, userID string, p Preferences) (Ack, error) {
	if p.FontSize < 12 || p.FontSize > 24 {
		return Ack{}, fmt.Errorf("%w: got %d", ErrInvalidFontSize, p.FontSize)
	}
	return s.update(ctx, userID, func(st *Settings) { st.Preferences = p }, Ack{
		Title:       "Settings saved",
		Description: "Your settings have been updated successfully.",
	})
}

// UpdateProfile validates and stores the profile form.
func (s *Service) UpdateProfile(ctx context.Context, userID string, p forms.Profile) (Ack, error) {
	if err := s.forms.Validate(&p); err != nil {
		return Ack{}, err
	}
	return s.update(ctx, userID, func(st *Settings) { st.Profile = p }, Ack{
		Title:       "Profile updated",
		Description: "Your profile information has been updated successfully.",
	})
}

// ChangePassword validates the form. Passwords are never stored.
func (s *Service) ChangePassword(ctx context.Context, p forms.Password) (Ack, error) {
	if err := s.forms.Validate(&p); err != nil {
		return Ack{}, err
	}
	err := s.latency.Do(ctx, func() error { return nil })
	if err != nil {
		return Ack{}, err
	}
	return Ack{
		Title:       "Password updated",
		Description: "Your password has been updated successfully.",
	}, nil
}

func (s *Service) update(ctx context.Context, userID string, apply func(*Settings), ack Ack) (Ack, error) {
	err := s.latency.Do(ctx, func() error {
		st, err := s.Get(ctx, userID)
		if err != nil {
			return err
		}
		apply(st)
		st.UpdatedAt = s.now()
		return s.store.Put(ctx, st)
	})
	if err != nil {
		return Ack{}, err
	}
	return ack, nil
}
