package repository

import (
	"context"

	"github.com/devjjun/commu/internal/domain"
)

// Ledger defines the data access interface for the point ledger.
// The entries table is append-only; there are no update or delete operations.
type Ledger interface {
	InsertEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	SumAmounts(ctx context.Context, userID string) (int, error)
	ListEntries(ctx context.Context, userID string, filter domain.HistoryFilter, offset, limit int) ([]domain.LedgerEntry, error)
	CountEntriesByTypeAndDay(ctx context.Context, userID string, entryType domain.EntryType, day string) (int, error)
	BeginTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx is the transactional subset of ledger operations. A balance read
// followed by a debit insert inside one LedgerTx is atomic at the store.
type LedgerTx interface {
	Tx
	InsertEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	SumAmounts(ctx context.Context, userID string) (int, error)
}
