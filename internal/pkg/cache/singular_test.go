package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingular(t *testing.T) {
	ctx := context.Background()
	c := NewSingular[payload]("test")

	var got payload
	assert.ErrorIs(t, c.Get(ctx, &got), ErrNotFound)

	require.NoError(t, c.Set(ctx, payload{Count: 1}, time.Minute))
	require.NoError(t, c.Get(ctx, &got))
	assert.Equal(t, 1, got.Count)

	require.NoError(t, c.Delete(ctx))
	assert.ErrorIs(t, c.Get(ctx, &got), ErrNotFound)
}

func TestSingularMutexGetSetComputesOnce(t *testing.T) {
	ctx := context.Background()
	c := NewSingular[payload]("test")

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		calls int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got payload
			err := c.MutexGetSet(ctx, &got, func() (payload, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				return payload{Count: 42}, nil
			}, time.Minute)
			assert.NoError(t, err)
			assert.Equal(t, 42, got.Count)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}

func TestSingularMutexGetSetError(t *testing.T) {
	c := NewSingular[payload]("test")
	boom := errors.New("boom")

	var got payload
	err := c.MutexGetSet(context.Background(), &got, func() (payload, error) {
		return payload{}, boom
	}, time.Minute)

	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, c.Get(context.Background(), &got), ErrNotFound)
}

func TestSingularMutexGetSetKeepsConcurrentSet(t *testing.T) {
	ctx := context.Background()
	c := NewSingular[payload]("test")

	var got payload
	err := c.MutexGetSet(ctx, &got, func() (payload, error) {
		require.NoError(t, c.Set(ctx, payload{Count: 2}, time.Minute))
		return payload{Count: 1}, nil
	}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)

	require.NoError(t, c.Get(ctx, &got))
	assert.Equal(t, 2, got.Count)
}
