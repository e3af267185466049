package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/logger"
	"github.com/devjjun/commu/internal/metrics"
	"github.com/devjjun/commu/internal/repository"
)

// Service defines the interface for point ledger operations.
// The ledger is the single source of truth for balances: every balance is
// computed from the durable entry log, never from a cached counter.
type Service interface {
	Award(ctx context.Context, userID string, entryType domain.EntryType, amount int, description, referenceID string) (*domain.LedgerEntry, error)
	AwardCapped(ctx context.Context, userID string, entryType domain.EntryType, amount int, description, referenceID string, dailyCap int) (*domain.LedgerEntry, error)
	Spend(ctx context.Context, userID string, amount int, description, referenceID string) (*domain.LedgerEntry, error)
	Penalize(ctx context.Context, userID string, amount int, description, referenceID string) (*domain.LedgerEntry, error)
	SpendWithTx(ctx context.Context, tx repository.LedgerTx, userID string, amount int, description, referenceID string) (*domain.LedgerEntry, error)
	AwardWithTx(ctx context.Context, tx repository.LedgerTx, userID string, entryType domain.EntryType, amount int, description, referenceID string) (*domain.LedgerEntry, error)
	Balance(ctx context.Context, userID string) (int, error)
	History(ctx context.Context, userID string, filter domain.HistoryFilter, page, pageSize int) ([]domain.LedgerEntry, error)
}

type service struct {
	repo repository.Ledger
	now  func() time.Time
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

// Award appends a credit entry. Callers whose award is conditioned on a
// uniqueness check (attendance, purchase) must hold the matching lock.
func (s *service) Award(ctx context.Context, userID string, entryType domain.EntryType, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if !entryType.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", domain.ErrInvalidInput, entryType)
	}

	entry, err := s.repo.InsertEntry(ctx, &domain.LedgerEntry{
		UserID:      userID,
		Type:        entryType,
		Amount:      amount,
		Description: description,
		ReferenceID: referenceID,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert credit entry: %w", err)
	}

	metrics.PointsAwarded.WithLabelValues(string(entryType)).Add(float64(amount))
	logger.FromContext(ctx).Info(LogMsgPointsAwarded, "userID", userID, "type", entryType, "amount", amount)
	return entry, nil
}

// AwardCapped appends a credit entry unless the user already has dailyCap
// entries of the same type today. Used for activity rewards (post and
// comment writing) so repeated submissions stop paying out.
func (s *service) AwardCapped(ctx context.Context, userID string, entryType domain.EntryType, amount int, description, referenceID string, dailyCap int) (*domain.LedgerEntry, error) {
	if dailyCap <= 0 {
		return nil, fmt.Errorf("%w: daily cap must be positive", domain.ErrInvalidInput)
	}

	day := domain.AttendanceDay(s.now()).Format("2006-01-02")
	count, err := s.repo.CountEntriesByTypeAndDay(ctx, userID, entryType, day)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries for cap check: %w", err)
	}
	if count >= dailyCap {
		logger.FromContext(ctx).Info(LogMsgDailyCapReached, "userID", userID, "type", entryType, "cap", dailyCap)
		return nil, nil
	}

	return s.Award(ctx, userID, entryType, amount, description, referenceID)
}

// Spend appends a debit entry only when the balance covers it. The balance
// read and the debit insert share one transaction so a concurrent spend can
// never observe the balance between them.
func (s *service) Spend(ctx context.Context, userID string, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	entry, err := s.SpendWithTx(ctx, tx, userID, amount, description, referenceID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entry, nil
}

// Penalize appends an unconditional PENALTY debit. Unlike Spend it skips the
// balance check: a sanction applies even when it drives the balance negative.
func (s *service) Penalize(ctx context.Context, userID string, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	entry, err := s.repo.InsertEntry(ctx, &domain.LedgerEntry{
		UserID:      userID,
		Type:        domain.EntryPenalty,
		Amount:      -amount,
		Description: description,
		ReferenceID: referenceID,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert penalty entry: %w", err)
	}

	metrics.PointsSpent.Add(float64(amount))
	logger.FromContext(ctx).Info(LogMsgPointsPenalized, "userID", userID, "amount", amount)
	return entry, nil
}

// SpendWithTx runs the balance check and debit insert on a caller-provided
// transaction. The purchase flow uses this so the debit commits together
// with the ownership record.
func (s *service) SpendWithTx(ctx context.Context, tx repository.LedgerTx, userID string, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	balance, err := tx.SumAmounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}
	if balance < amount {
		return nil, fmt.Errorf("%w: balance %d, needed %d", domain.ErrInsufficientPoints, balance, amount)
	}

	entry, err := tx.InsertEntry(ctx, &domain.LedgerEntry{
		UserID:      userID,
		Type:        domain.EntryPurchase,
		Amount:      -amount,
		Description: description,
		ReferenceID: referenceID,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert debit entry: %w", err)
	}

	metrics.PointsSpent.Add(float64(amount))
	logger.FromContext(ctx).Info(LogMsgPointsSpent, "userID", userID, "amount", amount)
	return entry, nil
}

// AwardWithTx appends a credit entry on a caller-provided transaction
func (s *service) AwardWithTx(ctx context.Context, tx repository.LedgerTx, userID string, entryType domain.EntryType, amount int, description, referenceID string) (*domain.LedgerEntry, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if !entryType.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", domain.ErrInvalidInput, entryType)
	}

	entry, err := tx.InsertEntry(ctx, &domain.LedgerEntry{
		UserID:      userID,
		Type:        entryType,
		Amount:      amount,
		Description: description,
		ReferenceID: referenceID,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert credit entry: %w", err)
	}

	metrics.PointsAwarded.WithLabelValues(string(entryType)).Add(float64(amount))
	return entry, nil
}

// Balance returns the sum of all entries for the user
func (s *service) Balance(ctx context.Context, userID string) (int, error) {
	balance, err := s.repo.SumAmounts(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute balance: %w", err)
	}
	return balance, nil
}

// History returns a page of ledger entries, newest first
func (s *service) History(ctx context.Context, userID string, filter domain.HistoryFilter, page, pageSize int) ([]domain.LedgerEntry, error) {
	if filter == "" {
		filter = domain.HistoryAll
	}
	if !filter.Valid() {
		return nil, fmt.Errorf("%w: unknown history filter %q", domain.ErrInvalidInput, filter)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxHistoryPageSize {
		pageSize = DefaultHistoryPageSize
	}

	entries, err := s.repo.ListEntries(ctx, userID, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

func validateAmount(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}
	return nil
}
