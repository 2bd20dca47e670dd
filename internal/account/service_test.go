package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"opengov/internal/forms"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newService(delay time.Duration) (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store, forms.NewValidator(), delay), store
}

func TestGet_ReturnsDefaults(t *testing.T) {
	svc, _ := newService(0)

	st, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, Defaults("user-1"), st)
	assert.True(t, st.Notifications.Email)
	assert.False(t, st.Notifications.SMS)
	assert.Equal(t, FrequencyDaily, st.Notifications.Frequency)
	assert.Equal(t, 16, st.Preferences.FontSize)
}

func TestSaveNotifications_WaitsThenAcks(t *testing.T) {
	svc, store := newService(40 * time.Millisecond)
	ctx := context.Background()

	st, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	n := st.Notifications
	n.SMS = true

	start := time.Now()
	ack, err := svc.SaveNotifications(ctx, "user-1", n)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	assert.Equal(t, "Notification settings updated", ack.Title)

	saved, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, saved.Notifications.SMS)
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestSave_KeyedPerVisitor(t *testing.T) {
	svc, _ := newService(0)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "alice-session", forms.Profile{Name: "Alice Secret", Email: "alice@example.com"})
	require.NoError(t, err)

	bob, err := svc.Get(ctx, "bob-session")
	require.NoError(t, err)
	assert.Empty(t, bob.Profile.Name)
	assert.Equal(t, "bob-session", bob.UserID)
}

func TestSaveNotifications_RejectsUnknownFrequency(t *testing.T) {
	svc, _ := newService(0)
	_, err := svc.SaveNotifications(context.Background(), "user-1", Notifications{Frequency: "hourly"})
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestSave_CancelledContext(t *testing.T) {
	svc, store := newService(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SavePrivacy(ctx, "user-1", Privacy{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestSavePrivacyAndPreferences(t *testing.T) {
	svc, _ := newService(0)
	ctx := context.Background()

	ack, err := svc.SavePrivacy(ctx, "user-1", Privacy{DataSharing: true})
	require.NoError(t, err)
	assert.Equal(t, "Privacy settings updated", ack.Title)

	prefs := Defaults("user-1").Preferences
	prefs.HighContrast = true
	ack, err = svc.SavePreferences(ctx, "user-1", prefs)
	require.NoError(t, err)
	assert.Equal(t, "Settings saved", ack.Title)

	st, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, st.Privacy.DataSharing)
	assert.True(t, st.Preferences.HighContrast)

	prefs.FontSize = 40
	_, err = svc.SavePreferences(ctx, "user-1", prefs)
	assert.ErrorIs(t, err, ErrInvalidFontSize)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newService(0)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "user-1", forms.Profile{Name: "X", Email: "bad"})
	var errs forms.Errors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("name"))
	assert.True(t, errs.Has("email"))

	ack, err := svc.UpdateProfile(ctx, "user-1", forms.Profile{Name: "Demo User", Email: "demo@example.com", City: "Springfield"})
	require.NoError(t, err)
	assert.Equal(t, "Profile updated", ack.Title)

	st, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Springfield", st.Profile.City)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newService(0)

	_, err := svc.ChangePassword(context.Background(), forms.Password{CurrentPassword: "a", NewPassword: "12345678", ConfirmPassword: "87654321"})
	var errs forms.Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "Passwords do not match.", errs["confirmPassword"])

	ack, err := svc.ChangePassword(context.Background(), forms.Password{CurrentPassword: "a", NewPassword: "12345678", ConfirmPassword: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "Password updated", ack.Title)
}
