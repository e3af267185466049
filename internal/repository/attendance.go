package repository

import (
	"context"
	"time"

	"github.com/devjjun/commu/internal/domain"
)

// Attendance defines the data access interface for daily check-in records.
// Records are insert-only; the (user_id, date) uniqueness lives in the store
// as defense in depth behind the attendance lock.
type Attendance interface {
	// GetRecord returns the record for the given day, nil when absent
	GetRecord(ctx context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error)

	// InsertRecord creates the day's record. A concurrent duplicate insert
	// surfaces as domain.ErrAlreadyExists via the unique constraint.
	InsertRecord(ctx context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error)

	// ListRecent returns the newest records first, at most limit
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error)

	BeginTx(ctx context.Context) (AttendanceTx, error)
}

// AttendanceTx groups the operations of a check-in into one transaction. It
// embeds LedgerTx so the day's record and its point awards commit or roll
// back together.
type AttendanceTx interface {
	LedgerTx
	InsertRecord(ctx context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error)
}
