package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingTask struct {
	executed *int32
}

func (c *countingTask) Process(_ context.Context) error {
	atomic.AddInt32(c.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start(context.Background())

	task := &countingTask{executed: &executed}
	pool.Enqueue(task)
	pool.Enqueue(task)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == 2
	}, time.Second, 10*time.Millisecond)

	pool.Stop()
}
