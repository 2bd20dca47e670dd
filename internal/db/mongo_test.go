package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type indexerFunc func(ctx context.Context) error

func (f indexerFunc) EnsureIndexes(ctx context.Context) error { return f(ctx) }

func TestEnsureIndexes(t *testing.T) {
	var calls int
	ok := indexerFunc(func(context.Context) error { calls++; return nil })
	errA := errors.New("feedback index")
	errB := errors.New("records index")

	assert.NoError(t, EnsureIndexes(context.Background(), ok, ok))
	assert.Equal(t, 2, calls)

	err := EnsureIndexes(context.Background(),
		indexerFunc(func(context.Context) error { return errA }),
		ok,
		indexerFunc(func(context.Context) error { return errB }),
	)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, 3, calls)
}
