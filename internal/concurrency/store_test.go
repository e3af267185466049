package concurrency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AcquireIsExclusive(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "attendance:1", "owner-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Acquire(ctx, "attendance:1", "owner-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second owner must not acquire a held lock")

	// Different key is independent
	ok, err = store.Acquire(ctx, "attendance:2", "owner-b", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_ReleaseRequiresOwner(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "purchase:1", "owner-a", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// Wrong owner: release is a no-op
	require.NoError(t, store.Release(ctx, "purchase:1", "owner-b"))
	ok, err = store.Acquire(ctx, "purchase:1", "owner-c", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "lock must survive a release by a non-owner")

	// Right owner frees it
	require.NoError(t, store.Release(ctx, "purchase:1", "owner-a"))
	ok, err = store.Acquire(ctx, "purchase:1", "owner-c", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_LeaseExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	ok, err := store.Acquire(ctx, "attendance:1", "owner-a", 10*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// Still within the lease
	current = current.Add(9 * time.Second)
	ok, err = store.Acquire(ctx, "attendance:1", "owner-b", 10*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	// Lease elapsed: takeover allowed
	current = current.Add(2 * time.Second)
	ok, err = store.Acquire(ctx, "attendance:1", "owner-b", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}
