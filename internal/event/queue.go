package event

import (
	"errors"
	"sync/atomic"
)

// ErrQueueFull is returned by Queue.Emit when the event had to be dropped.
var ErrQueueFull = errors.New("event: queue full")

// Queue hands events from a producer goroutine to a consumer that applies
// them at its own safe points. Emit never blocks.
type Queue struct {
	ch      chan Event
	dropped atomic.Int64
}

// NewQueue creates a queue holding up to size pending events.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan Event, size)}
}

// Emit enqueues ev, or drops it when the queue is full.
func (q *Queue) Emit(ev Event) error {
	select {
	case q.ch <- ev:
		return nil
	default:
		q.dropped.Add(1)
		return ErrQueueFull
	}
}

// C exposes the receive side for use in a select.
func (q *Queue) C() <-chan Event {
	return q.ch
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Dropped returns how many events were discarded so far.
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}

// Drain dispatches every pending event through r without blocking and
// returns the errors the handlers reported.
func (q *Queue) Drain(r *Registry) []error {
	var errs []error
	for {
		select {
		case ev := <-q.ch:
			if err := r.Dispatch(ev); err != nil {
				errs = append(errs, err)
			}
		default:
			return errs
		}
	}
}
