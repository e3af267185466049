package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devjjun/commu/internal/domain"
	"github.com/devjjun/commu/internal/queue"
	"github.com/devjjun/commu/internal/testing/memrepo"
)

func TestProducer_SendWelcome(t *testing.T) {
	q := queue.NewMemoryQueue()
	store := memrepo.NewStore()
	p := NewProducer(q, store.Users())

	p.SendWelcome(context.Background(), domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"})

	job, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", job.Destination)
	assert.Equal(t, SubjectWelcome, job.Subject)
	assert.Contains(t, job.Body, "alice")
	assert.NotEmpty(t, job.JobID)
	assert.Zero(t, job.Attempt)
}

func TestProducer_SendWelcome_NoEmail(t *testing.T) {
	q := queue.NewMemoryQueue()
	p := NewProducer(q, memrepo.NewStore().Users())

	p.SendWelcome(context.Background(), domain.User{ID: "u1", Username: "alice"})

	n, err := q.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "no mail without an address")
}

func TestProducer_SendReceipt(t *testing.T) {
	q := queue.NewMemoryQueue()
	store := memrepo.NewStore()
	store.AddUser(domain.User{ID: "u1", Username: "bob", Email: "bob@example.com"})
	p := NewProducer(q, store.Users())

	p.SendReceipt(context.Background(), "u1", domain.Item{ID: 3, Name: "gold badge"}, 120)

	job, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", job.Destination)
	assert.Equal(t, SubjectReceipt, job.Subject)
	assert.Contains(t, job.Body, "gold badge")
	assert.Contains(t, job.Body, "120")
}

func TestProducer_SendReceipt_UnknownUser(t *testing.T) {
	q := queue.NewMemoryQueue()
	p := NewProducer(q, memrepo.NewStore().Users())

	p.SendReceipt(context.Background(), "ghost", domain.Item{ID: 1, Name: "x"}, 10)

	n, err := q.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
