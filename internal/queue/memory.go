package queue

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Memory schedules jobs on in-process timers. Pending timers are cancelled on
// Stop; durable recovery is the caller's concern.
type Memory struct {
	handler JobFunc
	timeout time.Duration

	mu      sync.Mutex
	nextID  uint64
	timers  map[uint64]*time.Timer
	stopped bool
}

// NewMemory builds a queue that invokes handler with a per-job timeout context.
func NewMemory(handler JobFunc, timeout time.Duration) *Memory {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Memory{
		handler: handler,
		timeout: timeout,
		timers:  make(map[uint64]*time.Timer),
	}
}

// Submit registers a job to fire at or after the given instant.
func (q *Memory) Submit(reminderID uint, at time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return fmt.Errorf("queue stopped")
	}

	// A target instant that just slipped into the past still satisfies the
	// at-or-after contract; fire immediately rather than refuse.
	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	id := q.nextID
	q.nextID++
	q.timers[id] = time.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.timers, id)
		stopped := q.stopped
		q.mu.Unlock()
		if stopped {
			return
		}
		q.run(reminderID)
	})
	return nil
}

func (q *Memory) run(reminderID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	q.handler(ctx, reminderID)
}

// Stop cancels all pending timers. Jobs already running are not interrupted.
func (q *Memory) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
}

// Pending reports how many timers are waiting to fire.
func (q *Memory) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}
