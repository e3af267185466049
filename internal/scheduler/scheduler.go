package scheduler

import (
	"sync"
	"time"

	"github.com/devjjun/commu/internal/worker"
)

// Scheduler runs tasks at fixed intervals through a worker pool
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a task to run at a fixed interval. The tick blocks on a
// full pool, so a slow pool skips ticks rather than piling up work.
func (s *Scheduler) Schedule(interval time.Duration, task worker.Task) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.workerPool.Enqueue(task)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled tasks
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
