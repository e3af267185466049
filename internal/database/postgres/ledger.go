package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/repository"
)

// LedgerRepository implements the point ledger repository for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// LedgerTx implements repository.LedgerTx
type LedgerTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &LedgerTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *LedgerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *LedgerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *LedgerRepository) InsertEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	return insertEntry(ctx, r.db, entry)
}

func (t *LedgerTx) InsertEntry(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	return insertEntry(ctx, t.tx, entry)
}

func (r *LedgerRepository) SumAmounts(ctx context.Context, userID string) (int, error) {
	return sumAmounts(ctx, r.db, userID)
}

func (t *LedgerTx) SumAmounts(ctx context.Context, userID string) (int, error) {
	return sumAmounts(ctx, t.tx, userID)
}

func insertEntry(ctx context.Context, q queryer, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	userUUID, err := parseUserUUID(entry.UserID)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx,
		`INSERT INTO point_ledger (user_id, entry_type, amount, description, reference_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING entry_id, created_at`,
		userUUID, string(entry.Type), entry.Amount, entry.Description, entry.ReferenceID, entry.CreatedAt)

	inserted := *entry
	if err := row.Scan(&inserted.ID, &inserted.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertEntry, err)
	}
	return &inserted, nil
}

func sumAmounts(ctx context.Context, q queryer, userID string) (int, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var sum int
	row := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM point_ledger WHERE user_id = $1`, userUUID)
	if err := row.Scan(&sum); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSumAmounts, err)
	}
	return sum, nil
}

// ListEntries returns entries newest first
func (r *LedgerRepository) ListEntries(ctx context.Context, userID string, filter domain.HistoryFilter, offset, limit int) ([]domain.LedgerEntry, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	query := `SELECT entry_id, entry_type, amount, description, reference_id, created_at
		 FROM point_ledger WHERE user_id = $1`
	switch filter {
	case domain.HistoryCredits:
		query += ` AND amount > 0`
	case domain.HistoryDebits:
		query += ` AND amount < 0`
	}
	query += ` ORDER BY entry_id DESC OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, userUUID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry := domain.LedgerEntry{UserID: userID}
		var entryType string
		if err := rows.Scan(&entry.ID, &entryType, &entry.Amount, &entry.Description, &entry.ReferenceID, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
		}
		entry.Type = domain.EntryType(entryType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
	}
	return entries, nil
}

// CountEntriesByTypeAndDay counts entries of one type created on the given
// calendar day (UTC). The daily activity reward cap is enforced with this.
func (r *LedgerRepository) CountEntriesByTypeAndDay(ctx context.Context, userID string, entryType domain.EntryType, day string) (int, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}

	var count int
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM point_ledger
		 WHERE user_id = $1 AND entry_type = $2 AND (created_at AT TIME ZONE 'UTC')::date = $3::date`,
		userUUID, string(entryType), day)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToListEntries, err)
	}
	return count, nil
}
