package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// rampTime is the attack and release of the keying envelope. Switching
// the sine on and off with no ramp clicks audibly.
const rampTime = 5 * time.Millisecond

// Tone is an endless sine streamer that can be keyed on and off. Key and
// Unkey must be called with the speaker locked when the tone is playing.
type Tone struct {
	sampleRate beep.SampleRate
	frequency  float64
	volume     float64
	keyed      bool

	level float64 // envelope, 0..1
	step  float64 // envelope change per sample
	phase float64 // 0..1
}

// NewTone returns an unkeyed tone for the given sample rate.
func NewTone(sr beep.SampleRate) *Tone {
	n := sr.N(rampTime)
	if n < 1 {
		n = 1
	}
	return &Tone{sampleRate: sr, step: 1 / float64(n)}
}

// Key starts the tone at frequency Hz and volume 0..1.
func (t *Tone) Key(frequency, volume float64) {
	if t.level == 0 {
		t.phase = 0
	}
	t.frequency = frequency
	t.volume = math.Max(0, math.Min(1, volume))
	t.keyed = true
}

// Unkey lets the tone ramp down to silence.
func (t *Tone) Unkey() {
	t.keyed = false
}

// Sounding reports whether the tone is keyed or still ramping down.
func (t *Tone) Sounding() bool {
	return t.keyed || t.level > 0
}

// Stream implements beep.Streamer. It never runs out.
func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	advance := t.frequency / float64(t.sampleRate)
	for i := range samples {
		if t.keyed {
			t.level = math.Min(1, t.level+t.step)
		} else {
			t.level = math.Max(0, t.level-t.step)
		}

		var v float64
		if t.level > 0 {
			v = t.volume * t.level * math.Sin(2*math.Pi*t.phase)
			t.phase += advance
			t.phase -= math.Floor(t.phase)
		}
		samples[i][0], samples[i][1] = v, v
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (t *Tone) Err() error {
	return nil
}
