package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/logger"
	"github.com/devjjun/commu/internal/mail"
	"github.com/devjjun/commu/internal/metrics"
	"github.com/devjjun/commu/internal/queue"
)

// MailWorker drains the mail queue and drives each job through delivery,
// retry, and dead lettering. A job that fails is put back at the tail with
// its attempt counter incremented; once the counter reaches maxAttempts the
// job is parked in the dead letter queue and never retried again.
type MailWorker struct {
	queue       queue.Queue
	sender      mail.Sender
	maxAttempts int
	consumers   int

	cancel context.CancelFunc
	wg     sync.WaitGroup
	now    func() time.Time
}

// NewMailWorker creates a new mail worker with the given consumer count
func NewMailWorker(q queue.Queue, sender mail.Sender, maxAttempts, consumers int) *MailWorker {
	if consumers < 1 {
		consumers = 1
	}
	return &MailWorker{
		queue:       q,
		sender:      sender,
		maxAttempts: maxAttempts,
		consumers:   consumers,
		now:         time.Now,
	}
}

// Start launches the consumer loops
func (w *MailWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	for i := 0; i < w.consumers; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
	logger.FromContext(ctx).Info(LogMsgMailWorkerStarted, "consumers", w.consumers, "maxAttempts", w.maxAttempts)
}

// Stop cancels the consumer loops and waits for in-flight deliveries
func (w *MailWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.FromContext(ctx).Info(LogMsgMailWorkerStopped)
		return nil
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgMailWorkerStopTimeout)
		return ctx.Err()
	}
}

func (w *MailWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrQueueClosed) {
				return
			}
			logger.FromContext(ctx).Error(LogMsgDequeueFailed, "error", err)
			continue
		}
		w.process(ctx, job)
	}
}

// process settles exactly one outcome for the dequeued job. Settling uses a
// background context so a shutdown mid-delivery cannot strand the job in
// flight.
func (w *MailWorker) process(ctx context.Context, job domain.MailJob) {
	log := logger.FromContext(ctx)

	sendErr := w.sender.Send(ctx, job)

	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SettleTimeout)
	defer cancel()

	if sendErr == nil {
		if err := w.queue.Complete(settleCtx, job.JobID); err != nil {
			log.Error(LogMsgSettleFailed, "jobID", job.JobID, "error", err)
			return
		}
		metrics.JobsProcessed.WithLabelValues(metrics.ResultSuccess).Inc()
		return
	}

	failed := job.WithFailure(w.now(), sendErr)

	if failed.Attempt < w.maxAttempts {
		log.Warn(LogMsgDeliveryRetry, "jobID", job.JobID, "attempt", failed.Attempt, "maxAttempts", w.maxAttempts, "error", sendErr)
		if err := w.queue.Retry(settleCtx, failed); err != nil {
			log.Error(LogMsgSettleFailed, "jobID", job.JobID, "error", err)
			return
		}
		metrics.JobsProcessed.WithLabelValues(metrics.ResultRetry).Inc()
		return
	}

	log.Error(LogMsgDeliveryDeadLettered, "jobID", job.JobID, "attempts", failed.Attempt, "error", sendErr)
	if err := w.queue.MoveToDeadLetter(settleCtx, failed); err != nil {
		log.Error(LogMsgSettleFailed, "jobID", job.JobID, "error", err)
		return
	}
	metrics.JobsProcessed.WithLabelValues(metrics.ResultFailure).Inc()
	metrics.JobsDeadLettered.Inc()
}
