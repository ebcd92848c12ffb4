package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore(newTestCatalog(t), time.Minute)

	a := store.Create()
	b := store.Create()
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.Do(a, func(e *Engine) error {
		_, err := e.AddToCart(1)
		return err
	}))

	var items int
	require.NoError(t, store.Do(b, func(e *Engine) error {
		items = e.TotalItemCount()
		return nil
	}))
	assert.Equal(t, 0, items, "sessions do not share state")

	err := store.Do(uuid.New(), func(*Engine) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.True(t, store.Delete(a))
	assert.False(t, store.Delete(a))
	err = store.Do(a, func(*Engine) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreSerializesEvents(t *testing.T) {
	store := NewStore(newTestCatalog(t), 0)
	id := store.Create()

	const n = MaxQuantity
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Do(id, func(e *Engine) error {
				_, err := e.AddToCart(3)
				return err
			})
		}()
	}
	wg.Wait()

	require.NoError(t, store.Do(id, func(e *Engine) error {
		line, ok := e.State().Line(3)
		assert.True(t, ok)
		assert.Equal(t, n, line.Quantity)
		return nil
	}))
}

func TestStoreSweep(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	store := NewStore(newTestCatalog(t), 10*time.Minute)
	store.now = func() time.Time { return now }

	stale := store.Create()
	now = start.Add(8 * time.Minute)
	fresh := store.Create()

	now = start.Add(11 * time.Minute)
	assert.Equal(t, 1, store.Sweep(now))
	assert.Equal(t, 1, store.Len())
	assert.ErrorIs(t, store.Do(stale, func(*Engine) error { return nil }), ErrSessionNotFound)

	// Touching a session keeps it alive.
	require.NoError(t, store.Do(fresh, func(*Engine) error { return nil }))
	assert.Equal(t, 0, store.Sweep(start.Add(19*time.Minute)))
	assert.Equal(t, 1, store.Sweep(start.Add(22*time.Minute)))

	disabled := NewStore(newTestCatalog(t), 0)
	disabled.Create()
	assert.Equal(t, 0, disabled.Sweep(time.Now().Add(24*time.Hour)))
}

func TestStoreEventOnSweptSession(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(newTestCatalog(t), time.Minute)
	store.now = func() time.Time { return start }
	id := store.Create()

	// The entry is found, then the session expires before the event runs.
	e, err := store.lookup(id)
	require.NoError(t, err)
	require.Equal(t, 1, store.Sweep(start.Add(2*time.Minute)))

	called := false
	err = store.run(id, e, func(*Engine) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.False(t, called)

	t.Run("deleted session", func(t *testing.T) {
		id := store.Create()
		e, err := store.lookup(id)
		require.NoError(t, err)
		require.True(t, store.Delete(id))

		err = store.run(id, e, func(*Engine) error { return nil })
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestStoreRollsBackFailedEvents(t *testing.T) {
	store := NewStore(newTestCatalog(t), 0)
	id := store.Create()
	require.NoError(t, store.Do(id, func(e *Engine) error {
		_, err := e.AddToCart(1)
		return err
	}))

	boom := errors.New("boom")
	err := store.Do(id, func(e *Engine) error {
		e.UpdateQuantity(1, 7)
		e.OpenCart()
		_, _ = e.ToggleWishlist(2)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, store.Do(id, func(e *Engine) error {
		line, ok := e.State().Line(1)
		assert.True(t, ok)
		assert.Equal(t, 1, line.Quantity)
		assert.False(t, e.State().CartOpen())
		assert.Empty(t, e.State().Wishlist())
		return nil
	}))
}

func TestStoreRunSweeperStops(t *testing.T) {
	store := NewStore(newTestCatalog(t), time.Nanosecond)
	store.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	swept := make(chan int, 1)
	go func() {
		done <- store.RunSweeper(ctx, time.Millisecond, func(n int) {
			select {
			case swept <- n:
			default:
			}
		})
	}()

	select {
	case n := <-swept:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not run")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
