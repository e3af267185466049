package concurrency

import "time"

// Acquisition polling and release bounds
const (
	// DefaultRetryInterval is the pause between acquisition attempts while waiting
	DefaultRetryInterval = 20 * time.Millisecond

	// ReleaseTimeout bounds the store call that frees a lock
	ReleaseTimeout = 2 * time.Second
)

// Log messages
const (
	LogMsgLockWaitExhausted = "Lock wait time exhausted"
	LogMsgLockReleaseFailed = "Failed to release lock"
)
