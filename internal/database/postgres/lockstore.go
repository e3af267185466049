package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LockStore is the Postgres-backed named lock store. One row per held lock;
// acquisition is an upsert that only wins when the row is absent or its
// lease has lapsed, evaluated in a single statement so two competing
// acquirers can never both win.
type LockStore struct {
	db *pgxpool.Pool
}

// NewLockStore creates a new LockStore
func NewLockStore(db *pgxpool.Pool) *LockStore {
	return &LockStore{db: db}
}

// Acquire implements the concurrency store contract
func (s *LockStore) Acquire(ctx context.Context, key, owner string, lease time.Duration) (bool, error) {
	ownerUUID, err := uuid.Parse(owner)
	if err != nil {
		return false, fmt.Errorf("invalid lock owner: %w", err)
	}

	tag, err := s.db.Exec(ctx,
		`INSERT INTO named_locks (lock_key, owner_id, expires_at)
		 VALUES ($1, $2, NOW() + $3::interval)
		 ON CONFLICT (lock_key) DO UPDATE
		 SET owner_id = EXCLUDED.owner_id, expires_at = EXCLUDED.expires_at
		 WHERE named_locks.expires_at <= NOW()`,
		key, ownerUUID, lease.String())
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToAcquireLock, err)
	}
	return tag.RowsAffected() == 1, nil
}

// Release frees the lock if owner still holds it
func (s *LockStore) Release(ctx context.Context, key, owner string) error {
	ownerUUID, err := uuid.Parse(owner)
	if err != nil {
		return fmt.Errorf("invalid lock owner: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`DELETE FROM named_locks WHERE lock_key = $1 AND owner_id = $2`,
		key, ownerUUID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToReleaseLock, err)
	}
	return nil
}
