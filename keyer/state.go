package keyer

import "sync"

// State is the combination shared between the event loop and the keying
// worker. Every access is a short critical section; callers only ever see
// a copy of the value.
type State struct {
	mu          sync.Mutex
	combination Combination
}

// NewState returns a State holding Idle.
func NewState() *State {
	return &State{combination: Idle}
}

// Get returns the current combination.
func (s *State) Get() Combination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.combination
}

// Set replaces the current combination.
func (s *State) Set(c Combination) {
	s.mu.Lock()
	s.combination = c
	s.mu.Unlock()
}

// Apply runs Transition against the current combination, stores the
// result and returns it.
func (s *State) Apply(p Paddle, e Edge) Combination {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.combination = Transition(s.combination, p, e)
	return s.combination
}
