package simulate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWait(t *testing.T) {
	start := time.Now()
	assert.NoError(t, Wait(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	assert.NoError(t, Wait(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Wait(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, Wait(ctx, 0), context.Canceled)
}

func TestLatency_Do(t *testing.T) {
	l := Latency(20 * time.Millisecond)
	start := time.Now()
	called := false
	assert.NoError(t, l.Do(context.Background(), func() error { called = true; return nil }))
	assert.True(t, called)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestLatency_PropagatesErrors(t *testing.T) {
	l := Latency(time.Millisecond)
	boom := errors.New("boom")
	assert.ErrorIs(t, l.Do(context.Background(), func() error { return boom }), boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := l.Do(ctx, func() error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
