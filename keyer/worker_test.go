package keyer

import (
	"context"
	"sync"
	"testing"
	"time"

	"IambicPaddle/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type call struct {
	op string
	at time.Duration // offset from epoch, in units of DitLength
}

// recordingSounder logs every device call with the fake time it happened.
type recordingSounder struct {
	clock   *clock.FakeClock
	acquire bool

	mu    sync.Mutex
	calls []call
}

func (r *recordingSounder) record(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{op: op, at: r.clock.Now().Sub(epoch) / DitLength})
}

func (r *recordingSounder) Acquire(time.Duration) bool { r.record("acquire"); return r.acquire }
func (r *recordingSounder) Start(float64, float64)     { r.record("start") }
func (r *recordingSounder) Stop()                      { r.record("stop") }
func (r *recordingSounder) Release()                   { r.record("release") }

func (r *recordingSounder) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func newTestWorker(c Combination, acquire bool) (*Worker, *State, *recordingSounder, *clock.FakeClock) {
	fake := clock.Fake(epoch)
	state := NewState()
	state.Set(c)
	sounder := &recordingSounder{clock: fake, acquire: acquire}
	return NewWorker(state, sounder, fake), state, sounder, fake
}

// advance steps the fake clock one unit at a time, waiting for the worker
// to be asleep before each step, and returns once the worker has gone back
// to sleep after the last step.
func advance(c *clock.FakeClock, n int) {
	for i := 0; i < n; i++ {
		c.WaitForSleepers(1)
		c.Advance(DitLength)
	}
	c.WaitForSleepers(1)
}

func stopWorker(t *testing.T, w *Worker, c *clock.FakeClock) {
	t.Helper()
	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-stopped:
			return
		case <-deadline:
			t.Fatal("worker did not stop")
		case <-time.After(time.Millisecond):
			c.Advance(DitLength)
		}
	}
}

// tones pairs start/stop calls into (tone length, following gap) in units.
func tones(calls []call) (lengths, gaps []time.Duration) {
	var lastStart, lastStop time.Duration = -1, -1
	for _, c := range calls {
		switch c.op {
		case "start":
			if lastStop >= 0 {
				gaps = append(gaps, c.at-lastStop)
			}
			lastStart = c.at
		case "stop":
			if lastStart >= 0 {
				lengths = append(lengths, c.at-lastStart)
				lastStart = -1
			}
			lastStop = c.at
		}
	}
	return lengths, gaps
}

func TestWorkerDahHeldCadence(t *testing.T) {
	w, _, sounder, fake := newTestWorker(DahHeld, true)
	w.Start(context.Background())

	advance(fake, 12)

	assert.Equal(t, []call{
		{"acquire", 0},
		{"start", 0}, {"stop", 3},
		{"start", 4}, {"stop", 7},
		{"start", 8}, {"stop", 11},
		{"start", 12},
	}, sounder.snapshot())
	assert.True(t, w.Audible())
	assert.False(t, w.Silent())

	stopWorker(t, w, fake)
}

func TestWorkerSqueezeDitFirstCadence(t *testing.T) {
	w, _, sounder, fake := newTestWorker(SqueezeDitFirst, true)
	w.Start(context.Background())

	advance(fake, 16)

	lengths, gaps := tones(sounder.snapshot())
	assert.Equal(t, []time.Duration{3, 1, 3, 1, 3}, lengths)
	assert.Equal(t, []time.Duration{1, 1, 1, 1, 1}, gaps)

	stopWorker(t, w, fake)
}

func TestWorkerSqueezeDahFirstStartsWithDit(t *testing.T) {
	w, _, sounder, fake := newTestWorker(SqueezeDahFirst, true)
	w.Start(context.Background())

	advance(fake, 12)

	lengths, _ := tones(sounder.snapshot())
	assert.Equal(t, []time.Duration{1, 3, 1, 3}, lengths)

	stopWorker(t, w, fake)
}

func TestWorkerIdleIsSilent(t *testing.T) {
	w, _, sounder, fake := newTestWorker(Idle, true)
	w.Start(context.Background())

	advance(fake, 5)
	assert.Equal(t, []call{{"acquire", 0}}, sounder.snapshot())

	stopWorker(t, w, fake)
}

func TestWorkerPicksUpChangesAtIterationBoundary(t *testing.T) {
	w, state, sounder, fake := newTestWorker(Idle, true)
	w.Start(context.Background())

	advance(fake, 2)
	state.Set(DitHeld)
	advance(fake, 1)

	calls := sounder.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, call{"start", 3}, calls[1])

	stopWorker(t, w, fake)
}

func TestWorkerStopReleasesOnce(t *testing.T) {
	w, _, sounder, fake := newTestWorker(DahHeld, true)
	w.Start(context.Background())

	advance(fake, 1) // mid-dah
	stopWorker(t, w, fake)

	calls := sounder.snapshot()
	require.GreaterOrEqual(t, len(calls), 3)
	assert.Equal(t, "stop", calls[len(calls)-2].op)
	assert.Equal(t, "release", calls[len(calls)-1].op)

	starts, stops, releases := 0, 0, 0
	for _, c := range calls {
		switch c.op {
		case "start":
			starts++
		case "stop":
			stops++
		case "release":
			releases++
		}
	}
	assert.Equal(t, 1, releases)
	assert.Equal(t, starts+1, stops, "every tone stopped, plus the shutdown stop")
	assert.False(t, w.Audible())

	// A second Stop returns immediately.
	w.Stop()
	assert.Len(t, sounder.snapshot(), len(calls))
}

func TestWorkerWithoutAudioDevice(t *testing.T) {
	w, state, sounder, _ := newTestWorker(DitHeld, false)
	w.Start(context.Background())

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker kept running without an audio device")
	}
	assert.Equal(t, []call{{"acquire", 0}}, sounder.snapshot())
	assert.False(t, w.Audible())
	assert.True(t, w.Silent())

	// Paddle state still updates.
	assert.Equal(t, SqueezeDitFirst, state.Apply(Dah, Press))
	w.Stop()
}

func TestWorkerStopBeforeStart(t *testing.T) {
	w, _, sounder, _ := newTestWorker(Idle, true)
	w.Stop()
	assert.Nil(t, w.Done())
	assert.Empty(t, sounder.snapshot())
}

func TestWorkerStartTwice(t *testing.T) {
	w, _, sounder, fake := newTestWorker(Idle, true)
	w.Start(context.Background())
	first := w.Done()
	w.Start(context.Background())
	assert.Equal(t, first, w.Done())

	advance(fake, 1)
	stopWorker(t, w, fake)

	acquires := 0
	for _, c := range sounder.snapshot() {
		if c.op == "acquire" {
			acquires++
		}
	}
	assert.Equal(t, 1, acquires)
}
