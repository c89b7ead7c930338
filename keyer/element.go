package keyer

import "fmt"

// Element is what the worker keys in one iteration: a tone of Units dit
// lengths, or nothing when Tone is false. The one-unit gap that follows
// every iteration is not part of the element.
type Element struct {
	Tone  bool
	Units int
}

var (
	silence = Element{}
	dit     = Element{Tone: true, Units: 1}
	dah     = Element{Tone: true, Units: 3}
)

// Alternation is the worker's memory of which element a held squeeze
// sounds next. It returns to AlternationReset whenever the paddles are not
// squeezed.
type Alternation bool

const (
	AlternationReset   Alternation = false
	AlternationFlipped Alternation = true
)

// Next plans the element for combination c given the alternation memory a
// and returns the memory to carry into the following iteration.
//
// The first squeezed element is the opposite of the paddle that closed
// first, which has already been keyed on its own: SqueezeDitFirst runs
// dah-dit-dah-dit and SqueezeDahFirst runs dit-dah-dit-dah.
//
// An unknown combination is a programming error and panics.
func Next(c Combination, a Alternation) (Element, Alternation) {
	switch c {
	case Idle:
		return silence, AlternationReset
	case DitHeld:
		return dit, AlternationReset
	case DahHeld:
		return dah, AlternationReset
	case SqueezeDitFirst:
		if a == AlternationReset {
			return dah, AlternationFlipped
		}
		return dit, AlternationReset
	case SqueezeDahFirst:
		if a == AlternationReset {
			return dit, AlternationFlipped
		}
		return dah, AlternationReset
	}
	panic(fmt.Sprintf("keyer: unreachable combination %v", c))
}
