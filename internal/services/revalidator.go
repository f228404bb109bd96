package services

import (
	"context"
	"sync"

	"inkwell/internal/logger"
)

// RefreshFunc regenerates whatever is cached under key.
type RefreshFunc func(ctx context.Context, key string)

// Revalidator runs cache refreshes on a single background worker.
// A key that is already queued is not queued again.
type Revalidator struct {
	queue   chan string
	pending map[string]bool
	mu      sync.Mutex
	refresh RefreshFunc
	log     *logger.Logger
	wg      sync.WaitGroup
}

func NewRevalidator(refresh RefreshFunc, log *logger.Logger, queueSize int) *Revalidator {
	return &Revalidator{
		queue:   make(chan string, queueSize),
		pending: make(map[string]bool),
		refresh: refresh,
		log:     log,
	}
}

// Start launches the worker. It stops when ctx is cancelled; Wait blocks until it has.
func (r *Revalidator) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.worker(ctx)
}

func (r *Revalidator) Wait() {
	r.wg.Wait()
}

// Schedule queues key for refresh without blocking. It reports whether the key was queued.
func (r *Revalidator) Schedule(key string) bool {
	r.mu.Lock()
	if r.pending[key] {
		r.mu.Unlock()
		return false
	}
	r.pending[key] = true
	r.mu.Unlock()

	select {
	case r.queue <- key:
		return true
	default:
		r.mu.Lock()
		delete(r.pending, key)
		r.mu.Unlock()
		r.log.Warn("revalidation queue full, skipping %s", key)
		return false
	}
}

func (r *Revalidator) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case key := <-r.queue:
			r.refresh(ctx, key)

			r.mu.Lock()
			delete(r.pending, key)
			r.mu.Unlock()
		}
	}
}
