package control

import (
	"log"
	"time"

	"IambicPaddle/clock"
)

const (
	// QueueDepth is the number of events buffered between the window and
	// the event loop.
	QueueDepth = 8

	// PutTimeout bounds how long Put waits for room before dropping.
	PutTimeout = 150 * time.Millisecond
)

// Queue is a bounded FIFO of input events with a blocking-with-timeout
// receive.
type Queue struct {
	clock  clock.Clock
	events chan Event
}

// NewQueue creates an empty queue of QueueDepth events.
func NewQueue(c clock.Clock) *Queue {
	return &Queue{clock: c, events: make(chan Event, QueueDepth)}
}

// Put enqueues ev. If the queue stays full for PutTimeout the event is
// dropped and logged so the window never blocks on a stalled loop.
// It reports whether the event was queued.
func (q *Queue) Put(ev Event) bool {
	select {
	case q.events <- ev:
		return true
	default:
	}

	select {
	case q.events <- ev:
		return true
	case <-q.clock.After(PutTimeout):
		log.Printf("Input queue full: dropping %v", ev)
		return false
	}
}

// Get waits up to timeout for the next event. ok is false if none arrived.
func (q *Queue) Get(timeout time.Duration) (ev Event, ok bool) {
	select {
	case ev = <-q.events:
		return ev, true
	default:
	}

	select {
	case ev = <-q.events:
		return ev, true
	case <-q.clock.After(timeout):
		return Event{}, false
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}
