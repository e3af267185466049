package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devjjun/commu/internal/domain"
)

// MailQueue is the Postgres-backed durable mail queue. Claiming a job flips
// it to inflight with a lease under FOR UPDATE SKIP LOCKED, so concurrent
// consumers never claim the same job and a consumer that dies mid-delivery
// only delays its job until the lease lapses.
type MailQueue struct {
	db           *pgxpool.Pool
	pollInterval time.Duration
	lease        time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewMailQueue creates a new MailQueue. pollInterval is how often a blocked
// Dequeue re-checks for work; lease is how long a claimed job stays
// invisible before it is redelivered.
func NewMailQueue(db *pgxpool.Pool, pollInterval, lease time.Duration) *MailQueue {
	return &MailQueue{
		db:           db,
		pollInterval: pollInterval,
		lease:        lease,
		done:         make(chan struct{}),
	}
}

func (q *MailQueue) Enqueue(ctx context.Context, job domain.MailJob) error {
	if q.isClosed() {
		return domain.ErrQueueClosed
	}

	jobUUID, err := uuid.Parse(job.JobID)
	if err != nil {
		return fmt.Errorf("invalid job id: %w", err)
	}

	_, err = q.db.Exec(ctx,
		`INSERT INTO mail_jobs (job_id, destination, subject, body, attempt, status, last_attempt_at, last_error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		jobUUID, job.Destination, job.Subject, job.Body, job.Attempt, JobStatusQueued,
		timeToTimestamptz(job.LastAttemptAt), job.LastError, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEnqueueJob, err)
	}
	return nil
}

// Dequeue claims the oldest visible job, polling until one appears, ctx is
// done, or the queue is closed.
func (q *MailQueue) Dequeue(ctx context.Context) (domain.MailJob, error) {
	ticker := time.NewTicker(q.pollInterval)
	defer ticker.Stop()

	for {
		if q.isClosed() {
			return domain.MailJob{}, domain.ErrQueueClosed
		}

		job, ok, err := q.claim(ctx)
		if err != nil {
			return domain.MailJob{}, err
		}
		if ok {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return domain.MailJob{}, ctx.Err()
		case <-q.done:
			return domain.MailJob{}, domain.ErrQueueClosed
		case <-ticker.C:
		}
	}
}

func (q *MailQueue) claim(ctx context.Context) (domain.MailJob, bool, error) {
	var job domain.MailJob
	var jobUUID uuid.UUID
	var lastAttemptAt *time.Time

	row := q.db.QueryRow(ctx,
		`UPDATE mail_jobs SET status = $1, lease_until = NOW() + $2::interval
		 WHERE job_id = (
		     SELECT job_id FROM mail_jobs
		     WHERE status = $3 OR (status = $1 AND lease_until <= NOW())
		     ORDER BY enqueued_seq
		     LIMIT 1
		     FOR UPDATE SKIP LOCKED
		 )
		 RETURNING job_id, destination, subject, body, attempt, last_attempt_at, last_error, created_at`,
		JobStatusInflight, q.lease.String(), JobStatusQueued)
	err := row.Scan(&jobUUID, &job.Destination, &job.Subject, &job.Body, &job.Attempt, &lastAttemptAt, &job.LastError, &job.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.MailJob{}, false, nil
		}
		return domain.MailJob{}, false, fmt.Errorf("%s: %w", ErrMsgFailedToDequeueJob, err)
	}

	job.JobID = jobUUID.String()
	job.LastAttemptAt = lastAttemptAt
	return job, true, nil
}

func (q *MailQueue) Complete(ctx context.Context, jobID string) error {
	jobUUID, err := uuid.Parse(jobID)
	if err != nil {
		return fmt.Errorf("invalid job id: %w", err)
	}

	tag, err := q.db.Exec(ctx,
		`DELETE FROM mail_jobs WHERE job_id = $1 AND status = $2`,
		jobUUID, JobStatusInflight)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSettleJob, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	return nil
}

// Retry returns the failed copy to the tail of the queue. The fresh
// enqueued_seq places it behind everything already waiting.
func (q *MailQueue) Retry(ctx context.Context, job domain.MailJob) error {
	jobUUID, err := uuid.Parse(job.JobID)
	if err != nil {
		return fmt.Errorf("invalid job id: %w", err)
	}

	tag, err := q.db.Exec(ctx,
		`UPDATE mail_jobs
		 SET status = $2, lease_until = NULL, attempt = $3, last_attempt_at = $4, last_error = $5,
		     enqueued_seq = nextval('mail_jobs_enqueued_seq_seq')
		 WHERE job_id = $1 AND status = $6`,
		jobUUID, JobStatusQueued, job.Attempt, timeToTimestamptz(job.LastAttemptAt), job.LastError, JobStatusInflight)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSettleJob, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, job.JobID)
	}
	return nil
}

func (q *MailQueue) MoveToDeadLetter(ctx context.Context, job domain.MailJob) error {
	jobUUID, err := uuid.Parse(job.JobID)
	if err != nil {
		return fmt.Errorf("invalid job id: %w", err)
	}

	tag, err := q.db.Exec(ctx,
		`UPDATE mail_jobs
		 SET status = $2, lease_until = NULL, attempt = $3, last_attempt_at = $4, last_error = $5
		 WHERE job_id = $1 AND status = $6`,
		jobUUID, JobStatusDead, job.Attempt, timeToTimestamptz(job.LastAttemptAt), job.LastError, JobStatusInflight)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSettleJob, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, job.JobID)
	}
	return nil
}

// DeadLetters lists parked jobs, oldest first
func (q *MailQueue) DeadLetters(ctx context.Context) ([]domain.MailJob, error) {
	rows, err := q.db.Query(ctx,
		`SELECT job_id, destination, subject, body, attempt, last_attempt_at, last_error, created_at
		 FROM mail_jobs WHERE status = $1 ORDER BY enqueued_seq`,
		JobStatusDead)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDead, err)
	}
	defer rows.Close()

	var jobs []domain.MailJob
	for rows.Next() {
		var job domain.MailJob
		var jobUUID uuid.UUID
		var lastAttemptAt *time.Time
		if err := rows.Scan(&jobUUID, &job.Destination, &job.Subject, &job.Body, &job.Attempt, &lastAttemptAt, &job.LastError, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDead, err)
		}
		job.JobID = jobUUID.String()
		job.LastAttemptAt = lastAttemptAt
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListDead, err)
	}
	return jobs, nil
}

// Len counts visible jobs: queued plus inflight jobs whose lease lapsed
func (q *MailQueue) Len(ctx context.Context) (int, error) {
	var count int
	row := q.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM mail_jobs
		 WHERE status = $1 OR (status = $2 AND lease_until <= NOW())`,
		JobStatusQueued, JobStatusInflight)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDequeueJob, err)
	}
	return count, nil
}

// Close stops the queue in this process. Jobs stay in the table; another
// process can keep consuming them.
func (q *MailQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.done)
	}
	return nil
}

func (q *MailQueue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
