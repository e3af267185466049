package worker

import (
	"context"
	"fmt"

	"github.com/devjjun/commu/internal/metrics"
	"github.com/devjjun/commu/internal/queue"
)

// QueueStatsTask samples the queue depths into gauges. The scheduler runs it
// at a fixed interval.
type QueueStatsTask struct {
	queue queue.Queue
}

// NewQueueStatsTask creates a task sampling the given queue
func NewQueueStatsTask(q queue.Queue) *QueueStatsTask {
	return &QueueStatsTask{queue: q}
}

func (t *QueueStatsTask) Process(ctx context.Context) error {
	depth, err := t.queue.Len(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queue depth: %w", err)
	}
	metrics.QueueDepth.Set(float64(depth))

	dead, err := t.queue.DeadLetters(ctx)
	if err != nil {
		return fmt.Errorf("failed to read dead letters: %w", err)
	}
	metrics.DeadLetterDepth.Set(float64(len(dead)))
	return nil
}
