// Package audio is the sidetone output of the keyer, built on the beep
// speaker. A Speaker is owned by one user at a time; the first owner opens
// the output device.
package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"IambicPaddle/clock"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// ErrNotAcquired is returned by Close when the speaker was never opened.
var ErrNotAcquired = errors.New("audio: speaker not acquired")

// backend is the slice of the beep speaker package the Speaker uses.
type backend interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerBackend struct{}

func (speakerBackend) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (speakerBackend) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerBackend) Clear()                  { speaker.Clear() }
func (speakerBackend) Lock()                   { speaker.Lock() }
func (speakerBackend) Unlock()                 { speaker.Unlock() }

// Speaker keys a sine sidetone on the default audio output. It satisfies
// keyer.Sounder.
type Speaker struct {
	sampleRate beep.SampleRate
	buffer     time.Duration
	gain       float64
	backend    backend
	clock      clock.Clock

	owner chan struct{}

	mu     sync.Mutex
	opened bool
	tone   *Tone
}

// NewSpeaker prepares a speaker at sampleRate Hz with the given output
// buffer length. gain is a master volume in powers of two (0 leaves the
// level alone, -1 halves it). The device is not opened until Acquire.
func NewSpeaker(sampleRate int, buffer time.Duration, gain float64) *Speaker {
	return newSpeaker(speakerBackend{}, clock.Real(), sampleRate, buffer, gain)
}

func newSpeaker(b backend, c clock.Clock, sampleRate int, buffer time.Duration, gain float64) *Speaker {
	return &Speaker{
		sampleRate: beep.SampleRate(sampleRate),
		buffer:     buffer,
		gain:       gain,
		backend:    b,
		clock:      c,
		owner:      make(chan struct{}, 1),
	}
}

// Acquire takes the speaker, waiting up to timeout for the current owner
// to release it. It reports false if the speaker stayed busy or the output
// device could not be opened.
func (s *Speaker) Acquire(timeout time.Duration) bool {
	select {
	case s.owner <- struct{}{}:
	default:
		select {
		case s.owner <- struct{}{}:
		case <-s.clock.After(timeout):
			log.Printf("Speaker busy after %v", timeout)
			return false
		}
	}

	if err := s.open(); err != nil {
		log.Printf("Audio disabled: %v", err)
		<-s.owner
		return false
	}
	return true
}

func (s *Speaker) open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		if err := s.backend.Init(s.sampleRate, s.sampleRate.N(s.buffer)); err != nil {
			return fmt.Errorf("failed to initialize speaker: %w", err)
		}
		s.opened = true
	}

	s.tone = NewTone(s.sampleRate)
	s.backend.Play(&effects.Volume{
		Streamer: s.tone,
		Base:     2,
		Volume:   s.gain,
	})
	return nil
}

// Start keys the sidetone. It does nothing unless the speaker is acquired.
func (s *Speaker) Start(frequency, volume float64) {
	s.withTone(func(t *Tone) { t.Key(frequency, volume) })
}

// Stop unkeys the sidetone.
func (s *Speaker) Stop() {
	s.withTone(func(t *Tone) { t.Unkey() })
}

// Sounding reports whether the sidetone is keyed or still ramping down.
func (s *Speaker) Sounding() bool {
	sounding := false
	s.withTone(func(t *Tone) { sounding = t.Sounding() })
	return sounding
}

func (s *Speaker) withTone(f func(*Tone)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tone == nil {
		return
	}
	s.backend.Lock()
	f(s.tone)
	s.backend.Unlock()
}

// Release silences the speaker and gives it up for the next Acquire.
func (s *Speaker) Release() {
	s.mu.Lock()
	if s.tone != nil {
		s.backend.Clear()
		s.tone = nil
	}
	s.mu.Unlock()

	select {
	case <-s.owner:
	default:
	}
}

// Close clears anything still playing. Call it once at program exit.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return ErrNotAcquired
	}
	s.backend.Clear()
	s.tone = nil
	return nil
}
