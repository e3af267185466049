package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Mail job statuses
const (
	JobStatusQueued   = "queued"
	JobStatusInflight = "inflight"
	JobStatusDead     = "dlq"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgInvalidUserID             = "invalid user id"
	ErrMsgFailedToInsertUser        = "failed to insert user"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToGetUserByUsername = "failed to get user by username"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToInsertEntry = "failed to insert ledger entry"
	ErrMsgFailedToSumAmounts  = "failed to sum ledger amounts"
	ErrMsgFailedToListEntries = "failed to list ledger entries"
)

// Error Messages - Attendance Operations
const (
	ErrMsgFailedToGetRecord    = "failed to get attendance record"
	ErrMsgFailedToInsertRecord = "failed to insert attendance record"
	ErrMsgFailedToListRecords  = "failed to list attendance records"
)

// Error Messages - Shop Operations
const (
	ErrMsgFailedToGetItem         = "failed to get item"
	ErrMsgFailedToListItems       = "failed to list items"
	ErrMsgFailedToGetOwnedItem    = "failed to get owned item"
	ErrMsgFailedToListOwnedItems  = "failed to list owned items"
	ErrMsgFailedToInsertOwnedItem = "failed to insert owned item"
	ErrMsgFailedToUpdateEquipped  = "failed to update equipped flag"
)

// Error Messages - Lock Operations
const (
	ErrMsgFailedToAcquireLock = "failed to acquire lock"
	ErrMsgFailedToReleaseLock = "failed to release lock"
)

// Error Messages - Mail Queue Operations
const (
	ErrMsgFailedToEnqueueJob = "failed to enqueue mail job"
	ErrMsgFailedToDequeueJob = "failed to dequeue mail job"
	ErrMsgFailedToSettleJob  = "failed to settle mail job"
	ErrMsgFailedToListDead   = "failed to list dead letters"
)
