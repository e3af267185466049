package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/repository"
)

// AttendanceRepository implements the attendance repository for PostgreSQL
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// AttendanceTx implements repository.AttendanceTx. It carries the ledger
// operations of the same transaction so the day's record and its awards
// commit together.
type AttendanceTx struct {
	LedgerTx
}

// BeginTx starts a new transaction
func (r *AttendanceRepository) BeginTx(ctx context.Context) (repository.AttendanceTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &AttendanceTx{LedgerTx: LedgerTx{tx: tx}}, nil
}

func (r *AttendanceRepository) GetRecord(ctx context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	record := domain.AttendanceRecord{UserID: userID}
	row := r.db.QueryRow(ctx,
		`SELECT record_id, attended_on, created_at FROM attendance_records
		 WHERE user_id = $1 AND attended_on = $2::date`,
		userUUID, date)
	if err := row.Scan(&record.ID, &record.Date, &record.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetRecord, err)
	}
	record.Date = domain.AttendanceDay(record.Date)
	return &record, nil
}

func (r *AttendanceRepository) InsertRecord(ctx context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	return insertAttendanceRecord(ctx, r.db, userID, date)
}

func (t *AttendanceTx) InsertRecord(ctx context.Context, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	return insertAttendanceRecord(ctx, t.tx, userID, date)
}

// ListRecent returns the newest records first, at most limit
func (r *AttendanceRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error) {
	return listRecentRecords(ctx, r.db, userID, limit)
}

func (t *AttendanceTx) ListRecent(ctx context.Context, userID string, limit int) ([]domain.AttendanceRecord, error) {
	return listRecentRecords(ctx, t.tx, userID, limit)
}

func insertAttendanceRecord(ctx context.Context, q queryer, userID string, date time.Time) (*domain.AttendanceRecord, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	record := domain.AttendanceRecord{UserID: userID, Date: domain.AttendanceDay(date)}
	row := q.QueryRow(ctx,
		`INSERT INTO attendance_records (user_id, attended_on)
		 VALUES ($1, $2::date)
		 RETURNING record_id, created_at`,
		userUUID, date)
	if err := row.Scan(&record.ID, &record.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: attendance for %s", domain.ErrAlreadyExists, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertRecord, err)
	}
	return &record, nil
}

func listRecentRecords(ctx context.Context, q queryer, userID string, limit int) ([]domain.AttendanceRecord, error) {
	userUUID, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx,
		`SELECT record_id, attended_on, created_at FROM attendance_records
		 WHERE user_id = $1 ORDER BY attended_on DESC LIMIT $2`,
		userUUID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRecords, err)
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		record := domain.AttendanceRecord{UserID: userID}
		if err := rows.Scan(&record.ID, &record.Date, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRecords, err)
		}
		record.Date = domain.AttendanceDay(record.Date)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListRecords, err)
	}
	return records, nil
}
