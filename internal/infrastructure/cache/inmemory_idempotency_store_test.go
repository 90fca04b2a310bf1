package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_Reserve(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	t.Run("first reservation wins", func(t *testing.T) {
		ok, err := store.Reserve(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Reserve(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok, "a repeated key must be rejected")
	})

	t.Run("expired reservation can be taken again", func(t *testing.T) {
		ok, err := store.Reserve(ctx, "key-2", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		now = now.Add(2 * time.Minute)
		ok, err = store.Reserve(ctx, "key-2", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("released key can be reserved", func(t *testing.T) {
		ok, err := store.Reserve(ctx, "key-3", time.Hour)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, store.Release(ctx, "key-3"))
		ok, err = store.Reserve(ctx, "key-3", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryIdempotencyStore_ConcurrentReserve(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Reserve(context.Background(), "same-key", time.Hour)
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, _ = store.Reserve(ctx, "short", time.Minute)
	_, _ = store.Reserve(ctx, "long", time.Hour)
	assert.Equal(t, 2, store.Size())

	now = now.Add(10 * time.Minute)
	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
