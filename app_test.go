package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"IambicPaddle/clock"
	"IambicPaddle/control"
	"IambicPaddle/keyer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// silentSounder never gets the device.
type silentSounder struct{}

func (silentSounder) Acquire(time.Duration) bool { return false }
func (silentSounder) Start(float64, float64)     {}
func (silentSounder) Stop()                      {}
func (silentSounder) Release()                   {}

type countingSounder struct {
	mu                      sync.Mutex
	starts, stops, releases int
}

func (c *countingSounder) Acquire(time.Duration) bool { return true }
func (c *countingSounder) Start(float64, float64)     { c.mu.Lock(); c.starts++; c.mu.Unlock() }
func (c *countingSounder) Stop()                      { c.mu.Lock(); c.stops++; c.mu.Unlock() }
func (c *countingSounder) Release()                   { c.mu.Lock(); c.releases++; c.mu.Unlock() }

// recordingDisplay remembers the state seen on every refresh.
type recordingDisplay struct {
	state *keyer.State

	mu   sync.Mutex
	seen []keyer.Combination
}

func (d *recordingDisplay) Refresh() {
	c := d.state.Get()
	d.mu.Lock()
	d.seen = append(d.seen, c)
	d.mu.Unlock()
}

// distinct returns the refreshed states with repeats collapsed.
func (d *recordingDisplay) distinct() []keyer.Combination {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []keyer.Combination
	for _, c := range d.seen {
		if len(out) == 0 || out[len(out)-1] != c {
			out = append(out, c)
		}
	}
	return out
}

func runSession(ctx context.Context, s *Session) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	return done
}

// waitDone advances the fake clock until done is closed.
func waitDone(t *testing.T, fake *clock.FakeClock, done <-chan struct{}) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-done:
			return
		case <-deadline:
			t.Fatal("session did not end")
		case <-time.After(time.Millisecond):
			fake.Advance(RefreshInterval)
		}
	}
}

func TestSessionSqueezeScenarioAndExit(t *testing.T) {
	fake := clock.Fake(epoch)
	s := NewSession(silentSounder{}, fake)
	display := &recordingDisplay{state: s.State()}
	s.SetDisplay(display)

	in := s.Input()
	in.KeyDown(control.KeyLeft)
	in.KeyDown(control.KeyRight)
	in.KeyUp(control.KeyLeft)
	in.KeyUp(control.KeyRight)
	in.KeyDown(control.KeyBack)

	done := runSession(context.Background(), s)
	waitDone(t, fake, done)

	assert.Equal(t, []keyer.Combination{
		keyer.DitHeld, keyer.SqueezeDitFirst, keyer.DahHeld, keyer.Idle,
	}, display.distinct())
	assert.Equal(t, keyer.Idle, s.State().Get())
	assert.False(t, s.Audible())
	assert.True(t, s.Silent())
}

func TestSessionRefreshesWithoutInput(t *testing.T) {
	fake := clock.Fake(epoch)
	s := NewSession(silentSounder{}, fake)
	display := &recordingDisplay{state: s.State()}
	s.SetDisplay(display)

	ctx, cancel := context.WithCancel(context.Background())
	done := runSession(ctx, s)

	for i := 0; i < 3; i++ {
		fake.WaitForSleepers(1)
		fake.Advance(RefreshInterval)
	}
	fake.WaitForSleepers(1)

	display.mu.Lock()
	refreshes := len(display.seen)
	display.mu.Unlock()
	assert.Equal(t, 3, refreshes)

	cancel()
	waitDone(t, fake, done)
}

func TestSessionStopsWorkerOnExit(t *testing.T) {
	fake := clock.Fake(epoch)
	sounder := &countingSounder{}
	s := NewSession(sounder, fake)

	in := s.Input()
	in.KeyDown(control.KeyRight)

	done := runSession(context.Background(), s)
	fake.WaitForSleepers(1)
	in.KeyDown(control.KeyBack)

	waitDone(t, fake, done)

	sounder.mu.Lock()
	defer sounder.mu.Unlock()
	assert.Equal(t, 1, sounder.releases)
	assert.GreaterOrEqual(t, sounder.starts, 1)
	assert.Equal(t, sounder.starts+1, sounder.stops)
	assert.False(t, s.Audible())
}

func TestSessionIgnoresNonPaddleKeys(t *testing.T) {
	s := NewSession(silentSounder{}, clock.Real())
	require.True(t, s.handle(control.Event{Key: control.KeyOk, Type: control.Press}))
	require.True(t, s.handle(control.Event{Key: control.KeyLeft, Type: control.LongPress}))
	assert.Equal(t, keyer.Idle, s.State().Get())

	require.True(t, s.handle(control.Event{Key: control.KeyRight, Type: control.Press}))
	assert.Equal(t, keyer.DahHeld, s.State().Get())
	assert.False(t, s.handle(control.Event{Key: control.KeyBack, Type: control.LongPress}))
}
