// Package main wires the iambic paddle keyer together and runs the event
// loop that feeds it.
//
// Maintenance notes:
//   - Two goroutines touch keyer state for the whole session: Session.Run
//     (this file) and the keying worker it starts. The keyer.State cell is
//     the only thing they share; keep every access to it a single
//     Get/Apply call so no lock is ever held across a sleep or audio call.
//   - The window only ever enqueues events (see ui) and reads state for
//     drawing. It never mutates keyer state itself.
//   - Run must stop and join the worker before returning. Anything the
//     worker touches (the speaker in particular) may only be torn down
//     after Run is done.
package main

import (
	"context"
	"log"
	"time"

	"IambicPaddle/clock"
	"IambicPaddle/control"
	"IambicPaddle/keyer"
)

// RefreshInterval bounds the wait for input; the display is refreshed at
// least this often even when no key is touched.
const RefreshInterval = 100 * time.Millisecond

// Display is the render sink for the session's state.
type Display interface {
	Refresh()
}

// Session is one run of the keyer: the shared paddle state, the worker
// that keys it, and the queue of input events that drives it.
type Session struct {
	state   *keyer.State
	worker  *keyer.Worker
	events  *control.Queue
	tracker *control.Tracker
	display Display

	// Verbose logs every applied transition.
	Verbose bool
}

// NewSession creates a session keying sounder, timed by c.
func NewSession(sounder keyer.Sounder, c clock.Clock) *Session {
	state := keyer.NewState()
	events := control.NewQueue(c)
	return &Session{
		state:   state,
		worker:  keyer.NewWorker(state, sounder, c),
		events:  events,
		tracker: control.NewTracker(events, c),
	}
}

// SetDisplay sets the render sink. Call it before Run.
func (s *Session) SetDisplay(d Display) {
	s.display = d
}

// SetVerbose turns on per-event and per-iteration logging.
func (s *Session) SetVerbose(v bool) {
	s.Verbose = v
	s.worker.Verbose = v
}

// State returns the shared paddle state. Callers outside the event loop
// must treat it as read-only.
func (s *Session) State() *keyer.State {
	return s.state
}

// Input returns the tracker that raw key notifications should go to.
func (s *Session) Input() *control.Tracker {
	return s.tracker
}

// Audible reports whether the keying worker holds the audio device.
func (s *Session) Audible() bool {
	return s.worker.Audible()
}

// Silent reports whether sound was given up for this session.
func (s *Session) Silent() bool {
	return s.worker.Silent()
}

// Run starts the keying worker and processes input until the exit key is
// long-pressed or ctx is cancelled. The worker has been stopped and joined
// when Run returns.
func (s *Session) Run(ctx context.Context) {
	s.worker.Start(ctx)
	defer func() {
		s.worker.Stop()
		log.Println("Session ended.")
	}()

	for ctx.Err() == nil {
		ev, ok := s.events.Get(RefreshInterval)
		if ok && !s.handle(ev) {
			return
		}
		s.refresh()
	}
}

// handle applies one event and reports whether the loop should continue.
func (s *Session) handle(ev control.Event) bool {
	if ev.IsExit() {
		log.Printf("%v: exiting", ev)
		return false
	}

	p, edge, ok := ev.Paddle()
	if !ok {
		return true
	}
	c := s.state.Apply(p, edge)
	if s.Verbose {
		log.Printf("%v -> %v", ev, c)
	}
	return true
}

func (s *Session) refresh() {
	if s.display != nil {
		s.display.Refresh()
	}
}
