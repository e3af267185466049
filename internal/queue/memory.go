package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/devjjun/commu/internal/domain"
)

// MemoryQueue is an in-process Queue for tests and single-node runs. Jobs
// survive only as long as the process; the Postgres queue is the durable one.
type MemoryQueue struct {
	mu       sync.Mutex
	jobs     []domain.MailJob
	inflight map[string]domain.MailJob
	dead     []domain.MailJob
	closed   bool

	// notify wakes one blocked Dequeue; closing done wakes them all
	notify chan struct{}
	done   chan struct{}
}

// NewMemoryQueue creates an empty in-process queue
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		inflight: make(map[string]domain.MailJob),
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, job domain.MailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return domain.ErrQueueClosed
	}
	q.jobs = append(q.jobs, job)
	q.wake()
	return nil
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (domain.MailJob, error) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return domain.MailJob{}, domain.ErrQueueClosed
		}
		if len(q.jobs) > 0 {
			job := q.jobs[0]
			q.jobs = q.jobs[1:]
			q.inflight[job.JobID] = job
			if len(q.jobs) > 0 {
				q.wake()
			}
			q.mu.Unlock()
			return job, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return domain.MailJob{}, ctx.Err()
		case <-q.done:
			return domain.MailJob{}, domain.ErrQueueClosed
		case <-q.notify:
		}
	}
}

func (q *MemoryQueue) Complete(_ context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.inflight[jobID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	delete(q.inflight, jobID)
	return nil
}

func (q *MemoryQueue) Retry(_ context.Context, job domain.MailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.inflight[job.JobID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, job.JobID)
	}
	delete(q.inflight, job.JobID)
	q.jobs = append(q.jobs, job)
	q.wake()
	return nil
}

func (q *MemoryQueue) MoveToDeadLetter(_ context.Context, job domain.MailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.inflight[job.JobID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrJobNotFound, job.JobID)
	}
	delete(q.inflight, job.JobID)
	q.dead = append(q.dead, job)
	return nil
}

func (q *MemoryQueue) DeadLetters(_ context.Context) ([]domain.MailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.MailJob, len(q.dead))
	copy(out, q.dead)
	return out, nil
}

func (q *MemoryQueue) Len(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs), nil
}

// Close marks the queue closed and wakes every blocked Dequeue. Enqueue and
// Dequeue fail afterwards; settling already-dequeued jobs still works so a
// draining worker can finish its current job.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.done)
	}
	return nil
}

func (q *MemoryQueue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
