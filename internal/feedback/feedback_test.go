package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"opengov/internal/forms"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubmit(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, forms.NewValidator(), 10*time.Millisecond)
	ctx := context.Background()

	f, ack, err := svc.Submit(ctx, "user-1", forms.Feedback{Rating: Positive, Comment: "clear answer"})
	require.NoError(t, err)
	assert.Equal(t, "Feedback submitted", ack.Title)
	assert.Equal(t, "Thank you for helping us improve our AI assistant.", ack.Description)
	_, err = uuid.Parse(f.ID)
	assert.NoError(t, err)

	recent, err := svc.Recent(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "clear answer", recent[0].Comment)
	assert.Equal(t, "user-1", recent[0].UserID)
}

func TestSubmit_InvalidRating(t *testing.T) {
	svc := NewService(NewMemoryRepo(), forms.NewValidator(), 0)

	_, _, err := svc.Submit(context.Background(), "", forms.Feedback{Rating: "meh"})
	var errs forms.Errors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("rating"))
}

func TestSubmit_Cancelled(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, forms.NewValidator(), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Submit(ctx, "", forms.Feedback{Rating: Negative})
	assert.ErrorIs(t, err, context.Canceled)

	recent, err := repo.Recent(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestMemoryRepo_RecentNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Insert(ctx, &Feedback{ID: id, UserID: "u", Rating: Positive}))
	}

	recent, err := repo.Recent(ctx, "u", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
}

func TestMemoryRepo_RecentScopedToVisitor(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &Feedback{ID: "a", UserID: "alice", Rating: Positive}))
	require.NoError(t, repo.Insert(ctx, &Feedback{ID: "b", UserID: "bob", Rating: Negative}))

	recent, err := repo.Recent(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "b", recent[0].ID)
}
