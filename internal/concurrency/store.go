package concurrency

import (
	"context"
	"sync"
	"time"
)

// Store is the backing primitive for named locks. Implementations must make
// Acquire an atomic acquire-if-absent with a TTL so a crashed holder never
// blocks a key past its lease.
type Store interface {
	// Acquire attempts to take the lock for key on behalf of owner.
	// It returns true when the lock was taken, false when another live
	// owner holds it. An error means the store itself is unreachable.
	Acquire(ctx context.Context, key, owner string, lease time.Duration) (bool, error)

	// Release frees the lock for key if owner still holds it. Releasing a
	// lock that expired and was taken over by someone else is a no-op.
	Release(ctx context.Context, key, owner string) error
}

type memoryEntry struct {
	owner     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store keyed by lock name. It serves
// single-node deployments and tests; multi-node deployments use the
// Postgres-backed store.
type MemoryStore struct {
	mu    sync.Mutex
	locks map[string]memoryEntry
	now   func() time.Time
}

// NewMemoryStore creates a new MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		locks: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

// Acquire implements Store
func (s *MemoryStore) Acquire(_ context.Context, key, owner string, lease time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, ok := s.locks[key]; ok && now.Before(entry.expiresAt) {
		return false, nil
	}

	s.locks[key] = memoryEntry{owner: owner, expiresAt: now.Add(lease)}
	return true, nil
}

// Release implements Store
func (s *MemoryStore) Release(_ context.Context, key, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.locks[key]; ok && entry.owner == owner {
		delete(s.locks, key)
	}
	return nil
}
