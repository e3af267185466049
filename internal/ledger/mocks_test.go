package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/repository"
)

// MockRepository implements repository.Ledger for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockRepository) SumAmounts(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListEntries(ctx context.Context, userID string, filter domain.HistoryFilter, offset, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockRepository) CountEntriesByTypeAndDay(ctx context.Context, userID string, entryType domain.EntryType, day string) (int, error) {
	args := m.Called(ctx, userID, entryType, day)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.LedgerTx), args.Error(1)
}

// MockTx implements repository.LedgerTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) InsertEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockTx) SumAmounts(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
