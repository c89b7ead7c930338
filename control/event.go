// Package control carries input from the window to the event loop: the
// event model, the bounded queue between them, and the tracker that turns
// raw key down/up into press, long-press and release events.
package control

import (
	"fmt"

	"IambicPaddle/keyer"
)

// Key enumerates the logical buttons of the input device.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyOk
	KeyBack
)

// EventType enumerates what happened to a key.
type EventType int

const (
	Press EventType = iota
	Release
	LongPress
)

// Event is one input event.
type Event struct {
	Key  Key
	Type EventType
}

// Paddle classifies e as a paddle edge. Left is the dit paddle and Right
// the dah paddle; ok is false for every other key and for long presses.
func (e Event) Paddle() (p keyer.Paddle, edge keyer.Edge, ok bool) {
	switch e.Key {
	case KeyLeft:
		p = keyer.Dit
	case KeyRight:
		p = keyer.Dah
	default:
		return 0, 0, false
	}

	switch e.Type {
	case Press:
		edge = keyer.Press
	case Release:
		edge = keyer.Release
	default:
		return 0, 0, false
	}
	return p, edge, true
}

// IsExit reports whether e ends the session.
func (e Event) IsExit() bool {
	return e.Key == KeyBack && e.Type == LongPress
}

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyRight:
		return "Right"
	case KeyLeft:
		return "Left"
	case KeyOk:
		return "Ok"
	case KeyBack:
		return "Back"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

func (t EventType) String() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case LongPress:
		return "LongPress"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

func (e Event) String() string {
	return e.Key.String() + " " + e.Type.String()
}
