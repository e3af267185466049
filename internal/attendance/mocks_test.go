package attendance

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/repository"
)

var (
	anyCtx  = mock.Anything
	anyTime = mock.AnythingOfType("time.Time")
)

var (
	_ repository.Attendance   = (*MockAttendanceRepo)(nil)
	_ repository.AttendanceTx = (*MockAttendanceTx)(nil)
)

// MockAttendanceRepo is a mock implementation of repository.Attendance
type MockAttendanceRepo struct {
	mock.Mock
}

func (m *MockAttendanceRepo) GetRecord(ctx context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	args := m.Called(ctx, userID, date)
	if rec := args.Get(0); rec != nil {
		return rec.(*domain.AttendanceRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAttendanceRepo) InsertRecord(ctx context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	args := m.Called(ctx, userID, date)
	if rec := args.Get(0); rec != nil {
		return rec.(*domain.AttendanceRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAttendanceRepo) ListRecent(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error) {
	args := m.Called(ctx, userID, limit)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.AttendanceRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAttendanceRepo) BeginTx(ctx context.Context) (repository.AttendanceTx, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repository.AttendanceTx), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAttendanceTx is a mock implementation of repository.AttendanceTx
type MockAttendanceTx struct {
	mock.Mock
}

func (m *MockAttendanceTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAttendanceTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAttendanceTx) InsertEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if e := args.Get(0); e != nil {
		return e.(*domain.LedgerEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAttendanceTx) SumAmounts(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockAttendanceTx) InsertRecord(ctx context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	args := m.Called(ctx, userID, date)
	if rec := args.Get(0); rec != nil {
		return rec.(*domain.AttendanceRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAttendanceTx) ListRecent(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error) {
	args := m.Called(ctx, userID, limit)
	if recs := args.Get(0); recs != nil {
		return recs.([]domain.AttendanceRecord), args.Error(1)
	}
	return nil, args.Error(1)
}
