package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devjjun/commu/internal/domain"
)

func newJob(subject string) domain.MailJob {
	return domain.MailJob{
		JobID:       uuid.NewString(),
		Destination: "user@example.com",
		Subject:     subject,
		Body:        "hello",
		CreatedAt:   time.Now(),
	}
}

func TestMemoryQueue_FIFO(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	first := newJob("first")
	second := newJob("second")
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	got, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.JobID, got.JobID)

	got, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.JobID, got.JobID)
}

func TestMemoryQueue_DequeueBlocksUntilEnqueue(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	job := newJob("late arrival")
	got := make(chan domain.MailJob, 1)
	go func() {
		j, err := q.Dequeue(ctx)
		if err == nil {
			got <- j
		}
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Enqueue(ctx, job))

	select {
	case j := <-got:
		assert.Equal(t, job.JobID, j.JobID)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not wake on enqueue")
	}
}

func TestMemoryQueue_DequeueHonorsContext(t *testing.T) {
	q := NewMemoryQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueue_InflightIsExclusive(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	job := newJob("exclusive")
	require.NoError(t, q.Enqueue(ctx, job))

	_, err := q.Dequeue(ctx)
	require.NoError(t, err)

	// The job is in flight: nothing visible remains
	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	ctx2, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	_, err = q.Dequeue(ctx2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryQueue_CompleteRemovesJob(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	job := newJob("done")
	require.NoError(t, q.Enqueue(ctx, job))
	_, err := q.Dequeue(ctx)
	require.NoError(t, err)

	require.NoError(t, q.Complete(ctx, job.JobID))
	assert.ErrorIs(t, q.Complete(ctx, job.JobID), domain.ErrJobNotFound)
}

func TestMemoryQueue_RetryRequeuesAtTail(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	failing := newJob("failing")
	other := newJob("other")
	require.NoError(t, q.Enqueue(ctx, failing))
	require.NoError(t, q.Enqueue(ctx, other))

	got, err := q.Dequeue(ctx)
	require.NoError(t, err)

	retry := got.WithFailure(time.Now(), errors.New("smtp unreachable"))
	require.NoError(t, q.Retry(ctx, retry))

	got, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, other.JobID, got.JobID, "retried job goes behind the existing tail")

	got, err = q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, failing.JobID, got.JobID)
	assert.Equal(t, 1, got.Attempt, "retry carries the incremented attempt")
	assert.Equal(t, "smtp unreachable", got.LastError)
}

func TestMemoryQueue_MoveToDeadLetter(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	job := newJob("poison")
	require.NoError(t, q.Enqueue(ctx, job))
	got, err := q.Dequeue(ctx)
	require.NoError(t, err)

	final := got.WithFailure(time.Now(), errors.New("mailbox rejected"))
	require.NoError(t, q.MoveToDeadLetter(ctx, final))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "dead lettered job leaves the primary queue")

	dead, err := q.DeadLetters(ctx)
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, job.JobID, dead[0].JobID)
	assert.Equal(t, "mailbox rejected", dead[0].LastError)
}

func TestMemoryQueue_SettleUnknownJob(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	job := newJob("never dequeued")
	assert.ErrorIs(t, q.Retry(ctx, job), domain.ErrJobNotFound)
	assert.ErrorIs(t, q.MoveToDeadLetter(ctx, job), domain.ErrJobNotFound)
}

func TestMemoryQueue_CloseWakesBlockedDequeue(t *testing.T) {
	q := NewMemoryQueue()

	errCh := make(chan error, 1)
	go func() {
		_, err := q.Dequeue(context.Background())
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Close())

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, domain.ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("dequeue did not wake on close")
	}

	assert.ErrorIs(t, q.Enqueue(context.Background(), newJob("late")), domain.ErrQueueClosed)
}
