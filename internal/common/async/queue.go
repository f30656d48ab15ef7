// Package async runs best-effort side effects on a bounded pool of workers.
package async

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultWorkers = 4
	DefaultSize    = 256
	DefaultTimeout = 5 * time.Second
)

//go:generate mockgen -package=mocks -destination=mocks/mock_submitter.go github.com/KirkDiggler/scribble/internal/common/async Submitter

// Submitter accepts side effects without blocking the caller
type Submitter interface {
	// Submit queues fn under name. It reports false when the task was dropped.
	Submit(name string, fn func(ctx context.Context) error) bool
}

// Config holds configuration for the queue
type Config struct {
	// Workers is the number of goroutines draining the queue
	Workers int

	// Size is how many tasks may wait before new ones are dropped
	Size int

	// Timeout bounds a single task
	Timeout time.Duration
}

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Queue is a bounded task queue. Failed tasks are logged and discarded.
type Queue struct {
	mu      sync.RWMutex
	closed  bool
	tasks   chan task
	wg      sync.WaitGroup
	timeout time.Duration
	log     zerolog.Logger
}

// New starts a queue and its workers
func New(cfg *Config) *Queue {
	workers, size, timeout := DefaultWorkers, DefaultSize, DefaultTimeout
	if cfg != nil {
		if cfg.Workers > 0 {
			workers = cfg.Workers
		}
		if cfg.Size > 0 {
			size = cfg.Size
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}

	q := &Queue{
		tasks:   make(chan task, size),
		timeout: timeout,
		log:     log.With().Str("component", "async").Logger(),
	}

	q.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go q.work()
	}

	return q
}

// Submit queues fn under name. It never blocks: a full or closed queue drops the task.
func (q *Queue) Submit(name string, fn func(ctx context.Context) error) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.log.Warn().Str("task", name).Msg("queue closed, task dropped")
		return false
	}

	select {
	case q.tasks <- task{name: name, fn: fn}:
		return true
	default:
		q.log.Warn().Str("task", name).Msg("queue full, task dropped")
		return false
	}
}

// Close stops accepting tasks and waits for queued ones to finish
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) work() {
	defer q.wg.Done()

	for t := range q.tasks {
		q.run(t)
	}
}

func (q *Queue) run(t task) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error().Str("task", t.name).Interface("panic", r).Msg("task panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	if err := t.fn(ctx); err != nil {
		q.log.Warn().Err(err).Str("task", t.name).Msg("task failed")
	}
}
