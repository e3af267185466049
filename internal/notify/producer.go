package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/logger"
	"github.com/devjjun/commu/internal/queue"
	"github.com/devjjun/commu/internal/repository"
)

// Producer composes notification mails and enqueues them for the mail
// worker. Enqueueing is best effort: a notification that cannot be queued is
// logged and dropped rather than failing the operation that triggered it.
type Producer struct {
	queue queue.Queue
	users repository.User
	now   func() time.Time
}

// NewProducer creates a new notification producer
func NewProducer(q queue.Queue, users repository.User) *Producer {
	return &Producer{queue: q, users: users, now: time.Now}
}

// SendWelcome queues the welcome mail for a newly registered user
func (p *Producer) SendWelcome(ctx context.Context, user domain.User) {
	if user.Email == "" {
		return
	}
	p.enqueue(ctx, domain.MailJob{
		JobID:       uuid.NewString(),
		Destination: user.Email,
		Subject:     SubjectWelcome,
		Body:        fmt.Sprintf(BodyWelcome, user.Username),
		CreatedAt:   p.now(),
	})
}

// SendReceipt queues the purchase receipt. It satisfies the shop service's
// receipt hook.
func (p *Producer) SendReceipt(ctx context.Context, userID string, item domain.Item, pricePaid int) {
	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgNotifyLookupFailed, "userID", userID, "error", err)
		return
	}
	if user == nil || user.Email == "" {
		return
	}
	p.enqueue(ctx, domain.MailJob{
		JobID:       uuid.NewString(),
		Destination: user.Email,
		Subject:     SubjectReceipt,
		Body:        fmt.Sprintf(BodyReceipt, user.Username, item.Name, pricePaid),
		CreatedAt:   p.now(),
	})
}

func (p *Producer) enqueue(ctx context.Context, job domain.MailJob) {
	if err := p.queue.Enqueue(ctx, job); err != nil {
		logger.FromContext(ctx).Error(LogMsgNotifyEnqueueFailed, "jobID", job.JobID, "subject", job.Subject, "error", err)
		return
	}
	logger.FromContext(ctx).Info(LogMsgNotifyQueued, "jobID", job.JobID, "subject", job.Subject)
}
