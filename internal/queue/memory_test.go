package queue

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	calls []uint
}

func (r *recorder) handle(_ context.Context, reminderID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, reminderID)
}

func (r *recorder) snapshot() []uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint(nil), r.calls...)
}

func TestMemoryFiresAtTarget(t *testing.T) {
	rec := &recorder{}
	q := NewMemory(rec.handle, time.Second)
	defer q.Stop()

	if err := q.Submit(42, time.Now().Add(100*time.Millisecond)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Must not fire early.
	time.Sleep(30 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("job fired before its target instant: %v", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if got := rec.snapshot(); len(got) == 1 {
			if got[0] != 42 {
				t.Fatalf("handler got id %d, want 42", got[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("job never fired")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestMemoryStopCancelsPending(t *testing.T) {
	rec := &recorder{}
	q := NewMemory(rec.handle, time.Second)

	if err := q.Submit(7, time.Now().Add(50*time.Millisecond)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}

	q.Stop()
	time.Sleep(100 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("cancelled job still fired: %v", got)
	}
	if err := q.Submit(8, time.Now().Add(time.Millisecond)); err == nil {
		t.Fatal("Submit after Stop should fail")
	}
}

func TestMemoryPastInstantFiresImmediately(t *testing.T) {
	rec := &recorder{}
	q := NewMemory(rec.handle, time.Second)
	defer q.Stop()

	if err := q.Submit(9, time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for len(rec.snapshot()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("job never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
