// Package clock lets the keyer's timing code run against either the wall
// clock or a fake clock that only moves when a test advances it.
//
// Anything that sleeps or waits takes a Clock instead of calling the time
// package directly:
//
//	w := keyer.NewWorker(state, sounder, clock.Real())
//
// and in tests:
//
//	c := clock.Fake(epoch)
//	w := keyer.NewWorker(state, sounder, c)
//	c.WaitForSleepers(1)
//	c.Advance(keyer.DitLength)
package clock

import "time"

// Clock is the time source used by the worker, the event queue and the
// key tracker.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives once d has elapsed. If
	// d <= 0 the channel is ready immediately.
	After(d time.Duration) <-chan time.Time

	// AfterFunc calls f once d has elapsed. The returned Timer can
	// cancel the call.
	AfterFunc(d time.Duration, f func()) *Timer

	// Sleep blocks the calling goroutine for at least d.
	Sleep(d time.Duration)
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stop func() bool
}

// Stop cancels the pending call. It reports false if the call already
// happened or was already cancelled.
func (t *Timer) Stop() bool { return t.stop() }

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	t := time.AfterFunc(d, f)
	return &Timer{stop: t.Stop}
}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
