package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devjjun/commu/internal/concurrency"
	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/ledger"
	"github.com/devjjun/commu/internal/logger"
	"github.com/devjjun/commu/internal/repository"
)

// CheckInResult is the outcome of a daily check-in
type CheckInResult struct {
	AlreadyCheckedIn bool      `json:"already_checked_in"`
	Date             time.Time `json:"date"`
	BaseAwarded      int       `json:"base_awarded"`
	StreakBonus      int       `json:"streak_bonus"`
	TotalAwarded     int       `json:"total_awarded"`
	StreakDays       int       `json:"streak_days"`
}

// Config holds the reward tuning for check-ins
type Config struct {
	BaseAmount   int
	BonusAmount  int
	StreakLength int
}

// Service defines the interface for attendance operations
type Service interface {
	CheckIn(ctx context.Context, userID string) (*CheckInResult, error)
}

type service struct {
	repo      repository.Attendance
	users     repository.User
	ledgerSvc ledger.Service
	locks     *concurrency.LockService
	cfg       Config
	now       func() time.Time
}

// NewService creates a new attendance service
func NewService(repo repository.Attendance, users repository.User, ledgerSvc ledger.Service, locks *concurrency.LockService, cfg Config) Service {
	return &service{
		repo:      repo,
		users:     users,
		ledgerSvc: ledgerSvc,
		locks:     locks,
		cfg:       cfg,
		now:       time.Now,
	}
}

// CheckIn performs the daily idempotent check-in. The per-user attendance
// lock makes the existence check and the record+award writes atomic, so two
// concurrent check-ins from the same user can never both pay out. A repeat
// check-in on the same day is a normal no-op outcome, not an error.
func (s *service) CheckIn(ctx context.Context, userID string) (*CheckInResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}

	var result *CheckInResult
	err = s.locks.WithLock(ctx, concurrency.AttendanceKey(userID), func(ctx context.Context) error {
		result, err = s.checkInLocked(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyCheckedIn {
		log.Info(LogMsgAlreadyCheckedIn, "userID", userID, "date", result.Date)
	} else {
		log.Info(LogMsgCheckInComplete, "userID", userID, "awarded", result.TotalAwarded, "streak", result.StreakDays)
	}
	return result, nil
}

// checkInLocked runs the record insert and both awards on one transaction.
// A check-in either fully commits (record plus every entry it earned) or
// leaves nothing behind, so a failed award never burns the day.
func (s *service) checkInLocked(ctx context.Context, userID string) (*CheckInResult, error) {
	today := domain.AttendanceDay(s.now())

	existing, err := s.repo.GetRecord(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to check attendance record: %w", err)
	}
	if existing != nil {
		return &CheckInResult{AlreadyCheckedIn: true, Date: today}, nil
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin check-in transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.InsertRecord(ctx, userID, today); err != nil {
		// The unique (user_id, date) index backs up the lock. If another
		// writer slipped in anyway, fold it into the idempotent outcome.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return &CheckInResult{AlreadyCheckedIn: true, Date: today}, nil
		}
		return nil, fmt.Errorf("failed to insert attendance record: %w", err)
	}

	refID := today.Format(DateRefFormat)
	if _, err := s.ledgerSvc.AwardWithTx(ctx, tx, userID, domain.EntryDailyLogin, s.cfg.BaseAmount, "daily attendance", refID); err != nil {
		return nil, fmt.Errorf("failed to award attendance points: %w", err)
	}

	result := &CheckInResult{
		Date:         today,
		BaseAwarded:  s.cfg.BaseAmount,
		TotalAwarded: s.cfg.BaseAmount,
		StreakDays:   1,
	}

	streak, err := s.streakEndingAt(ctx, tx, userID, today)
	if err != nil {
		return nil, err
	}
	result.StreakDays = streak

	if s.cfg.BonusAmount > 0 && streak == s.cfg.StreakLength {
		if _, err := s.ledgerSvc.AwardWithTx(ctx, tx, userID, domain.EntryStreakBonus, s.cfg.BonusAmount, fmt.Sprintf("%d-day attendance streak", streak), refID); err != nil {
			return nil, fmt.Errorf("failed to award streak bonus: %w", err)
		}
		result.StreakBonus = s.cfg.BonusAmount
		result.TotalAwarded += s.cfg.BonusAmount
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}
	return result, nil
}

// recordLister is the read side of the streak scan; the check-in passes its
// own transaction so the scan sees the record it just inserted.
type recordLister interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error)
}

// streakEndingAt counts consecutive attendance days ending at day, derived
// from the records themselves rather than a separately maintained counter.
// The scan is bounded to one streak length plus a day, enough to tell an
// exact streak from a longer run.
func (s *service) streakEndingAt(ctx context.Context, lister recordLister, userID string, day time.Time) (int, error) {
	records, err := lister.ListRecent(ctx, userID, s.cfg.StreakLength+1)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance records: %w", err)
	}

	streak := 0
	expected := day
	for _, rec := range records {
		if !rec.Date.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}
