package queue

import (
	"context"

	"github.com/devjjun/commu/internal/domain"
)

// Queue is a durable at-least-once FIFO of mail jobs. A dequeued job is
// exclusive to its consumer until the consumer settles it with Complete,
// Retry, or MoveToDeadLetter; an unsettled job whose lease lapses becomes
// visible again.
type Queue interface {
	// Enqueue appends the job to the tail of the queue
	Enqueue(ctx context.Context, job domain.MailJob) error

	// Dequeue pops the oldest visible job, blocking until one is available
	// or ctx is done. A queue closed while waiting returns ErrQueueClosed.
	Dequeue(ctx context.Context) (domain.MailJob, error)

	// Complete settles a delivered job, removing it permanently
	Complete(ctx context.Context, jobID string) error

	// Retry puts the failed copy back at the tail of the queue
	Retry(ctx context.Context, job domain.MailJob) error

	// MoveToDeadLetter removes the job from the primary queue and parks its
	// final failed copy in the dead letter queue
	MoveToDeadLetter(ctx context.Context, job domain.MailJob) error

	// DeadLetters lists parked jobs, oldest first
	DeadLetters(ctx context.Context) ([]domain.MailJob, error)

	// Len reports the number of visible jobs in the primary queue
	Len(ctx context.Context) (int, error)

	// Close stops the queue; blocked Dequeue calls return ErrQueueClosed
	Close() error
}
