// Package keyer implements an iambic (squeeze) paddle keyer: the paddle
// state machine, the state cell shared by the event loop and the keying
// worker, and the worker that turns the current state into timed sidetone.
//
// Maintenance notes:
//   - State is the only value shared between the event loop and the
//     worker. Keep its critical sections free of sleeps and audio calls;
//     the worker's sleeps are the only timing source for the Morse output.
//   - A change made while an element is sounding is picked up at the next
//     iteration, so the worst-case latency is a dah plus its gap.
//   - Stop is cooperative: the worker finishes the sleep it is in and
//     exits at the next iteration boundary. Do not interrupt the sleeps,
//     a cut-short element is worse than a late stop.
package keyer

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"IambicPaddle/clock"
)

const (
	// DitLength is one Morse unit. Every tone and gap is a whole
	// multiple of it.
	DitLength = 200 * time.Millisecond

	SidetoneFrequency = 440.0 // Hz
	SidetoneVolume    = 1.0

	// AcquireTimeout bounds how long the worker waits for the audio
	// device before giving up on sound for the session.
	AcquireTimeout = time.Second
)

// Sounder is the audio device the worker keys.
type Sounder interface {
	// Acquire takes exclusive use of the device, waiting at most
	// timeout. It reports false if the device is busy or missing.
	Acquire(timeout time.Duration) bool
	Start(frequency, volume float64)
	Stop()
	Release()
}

// Worker keys a Sounder from the combination held in a State until it is
// stopped.
type Worker struct {
	state   *State
	sounder Sounder
	clock   clock.Clock

	// Verbose logs the observed combination on every iteration.
	Verbose bool

	audible atomic.Bool
	silent  atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorker creates a worker reading state and keying sounder, timed by c.
func NewWorker(state *State, sounder Sounder, c clock.Clock) *Worker {
	return &Worker{state: state, sounder: sounder, clock: c}
}

// Start launches the worker goroutine. Calling Start on a worker that has
// already been started does nothing.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done != nil {
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.run(ctx, w.done)
}

// Stop signals the worker and waits for it to return. The audio device
// has been stopped and released by the time Stop returns. It is safe to
// call Stop more than once, or on a worker that was never started.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()
	if done == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed once the worker goroutine has returned. It is nil before
// Start.
func (w *Worker) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// Audible reports whether the worker currently holds the audio device.
func (w *Worker) Audible() bool {
	return w.audible.Load()
}

// Silent reports whether the worker gave up on sound because the audio
// device could not be acquired.
func (w *Worker) Silent() bool {
	return w.silent.Load()
}

func (w *Worker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	log.Println("Keying worker starting...")
	if !w.sounder.Acquire(AcquireTimeout) {
		log.Println("Unable to acquire audio device, keying will be silent.")
		w.silent.Store(true)
		return
	}
	w.audible.Store(true)
	defer func() {
		w.sounder.Stop()
		w.sounder.Release()
		w.audible.Store(false)
		log.Println("Keying worker stopped.")
	}()

	memory := AlternationReset
	for ctx.Err() == nil {
		c := w.state.Get()
		if w.Verbose {
			log.Printf("keyer: %v", c)
		}

		var element Element
		element, memory = Next(c, memory)
		if element.Tone {
			w.sounder.Start(SidetoneFrequency, SidetoneVolume)
			w.clock.Sleep(time.Duration(element.Units) * DitLength)
			w.sounder.Stop()
		}
		w.clock.Sleep(DitLength)
	}
}
