package handler

import (
	"context"

	"github.com/devjjun/commu/internal/attendance"
	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/ledger"
	"github.com/devjjun/commu/internal/repository"
	"github.com/devjjun/commu/internal/shop"
	"github.com/devjjun/commu/internal/user"
	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify mocks for the service interfaces the handlers consume.

type MockUserService struct {
	mock.Mock
}

var _ user.Service = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, username, email string) (*domain.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

type MockAttendanceService struct {
	mock.Mock
}

var _ attendance.Service = (*MockAttendanceService)(nil)

func (m *MockAttendanceService) CheckIn(ctx context.Context, userID string) (*attendance.CheckInResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendance.CheckInResult), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

var _ ledger.Service = (*MockLedgerService)(nil)

func (m *MockLedgerService) Award(ctx context.Context, userID string, entryType domain.EntryType, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryType, amount, description, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) AwardCapped(ctx context.Context, userID string, entryType domain.EntryType, amount int, description, referenceID string, dailyCap int) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryType, amount, description, referenceID, dailyCap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Spend(ctx context.Context, userID string, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, amount, description, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Penalize(ctx context.Context, userID string, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, amount, description, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) SpendWithTx(ctx context.Context, tx repository.LedgerTx, userID string, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, userID, amount, description, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) AwardWithTx(ctx context.Context, tx repository.LedgerTx, userID string, entryType domain.EntryType, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, userID, entryType, amount, description, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Balance(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) History(ctx context.Context, userID string, filter domain.HistoryFilter, page, pageSize int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

type MockShopService struct {
	mock.Mock
}

var _ shop.Service = (*MockShopService)(nil)

func (m *MockShopService) Catalog(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockShopService) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockShopService) Inventory(ctx context.Context, userID string) ([]domain.OwnedItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnedItem), args.Error(1)
}

func (m *MockShopService) Purchase(ctx context.Context, userID string, itemID int) (*shop.PurchaseResult, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.PurchaseResult), args.Error(1)
}

func (m *MockShopService) Equip(ctx context.Context, userID string, itemID int) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockShopService) Unequip(ctx context.Context, userID string, itemID int) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}
