package worker

import (
	"context"
	"sync"

	"github.com/devjjun/commu/internal/logger"
)

// Task is a unit of work executed by the pool
type Task interface {
	Process(ctx context.Context) error
}

// Pool is a fixed-size worker pool. Enqueue blocks when every worker is busy
// and the buffer is full, which bounds how much work sits in memory.
type Pool struct {
	workers   int
	taskQueue chan Task
	wg        sync.WaitGroup
	quit      chan struct{}
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:   workers,
		taskQueue: make(chan Task, queueSize),
		quit:      make(chan struct{}),
	}
}

// Start launches the workers. ctx is the base context every task runs under.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case task := <-p.taskQueue:
			if err := task.Process(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgWorkerTaskFailed, "error", err)
			}
		case <-p.quit:
			return
		}
	}
}

// Enqueue hands a task to the pool, blocking while the buffer is full
func (p *Pool) Enqueue(task Task) {
	p.taskQueue <- task
}

// Stop stops the workers after their current task and waits for them
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
