package control

import (
	"sync"
	"time"

	"IambicPaddle/clock"
)

// LongPressDelay is how long a key must stay down to produce a LongPress.
const LongPressDelay = 500 * time.Millisecond

// Tracker converts raw key down/up notifications into events on a Queue.
// A key-down emits Press, holding it for LongPressDelay emits a single
// LongPress, and key-up emits Release. Repeated key-downs for a key that
// is already down are ignored, which absorbs keyboard auto-repeat.
type Tracker struct {
	queue *Queue
	clock clock.Clock

	mu   sync.Mutex
	held map[Key]*hold
}

type hold struct {
	timer *clock.Timer
}

// NewTracker creates a Tracker feeding q.
func NewTracker(q *Queue, c clock.Clock) *Tracker {
	return &Tracker{queue: q, clock: c, held: make(map[Key]*hold)}
}

// KeyDown records that k went down.
func (t *Tracker) KeyDown(k Key) {
	h := &hold{}
	t.mu.Lock()
	if _, ok := t.held[k]; ok {
		t.mu.Unlock()
		return
	}
	t.held[k] = h
	t.mu.Unlock()

	t.queue.Put(Event{Key: k, Type: Press})

	timer := t.clock.AfterFunc(LongPressDelay, func() { t.longPress(k, h) })

	t.mu.Lock()
	h.timer = timer
	released := t.held[k] != h
	t.mu.Unlock()
	if released {
		timer.Stop()
	}
}

// KeyUp records that k was released. A key-up without a matching key-down
// is ignored.
func (t *Tracker) KeyUp(k Key) {
	t.mu.Lock()
	h, ok := t.held[k]
	delete(t.held, k)
	var timer *clock.Timer
	if ok {
		timer = h.timer
	}
	t.mu.Unlock()
	if !ok {
		return
	}

	if timer != nil {
		timer.Stop()
	}
	t.queue.Put(Event{Key: k, Type: Release})
}

// Held reports whether k is currently down.
func (t *Tracker) Held(k Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.held[k]
	return ok
}

func (t *Tracker) longPress(k Key, h *hold) {
	t.mu.Lock()
	current := t.held[k] == h
	t.mu.Unlock()
	if current {
		t.queue.Put(Event{Key: k, Type: LongPress})
	}
}
