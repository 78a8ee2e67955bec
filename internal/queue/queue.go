package queue

import (
	"context"
	"time"
)

// Queue accepts delayed one-shot reminder jobs. Invocation is at-least-once
// for the process lifetime; the periodic sweep covers anything lost across
// restarts. Jobs never run before their target instant.
type Queue interface {
	Submit(reminderID uint, at time.Time) error
}

// JobFunc runs a delivery attempt for a reminder id. The handler re-reads all
// state itself; the queue carries nothing but the id.
type JobFunc func(ctx context.Context, reminderID uint)
