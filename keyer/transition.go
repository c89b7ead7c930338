package keyer

// Transition returns the combination that follows c when paddle p sees
// edge e. Releasing one side of a squeeze leaves the other paddle held
// regardless of which side closed first; anything not listed leaves c
// unchanged.
func Transition(c Combination, p Paddle, e Edge) Combination {
	switch {
	case e == Press && p == Dit:
		switch c {
		case Idle:
			return DitHeld
		case DahHeld:
			return SqueezeDahFirst
		}
	case e == Press && p == Dah:
		switch c {
		case Idle:
			return DahHeld
		case DitHeld:
			return SqueezeDitFirst
		}
	case e == Release && p == Dit:
		switch c {
		case SqueezeDitFirst, SqueezeDahFirst:
			return DahHeld
		case DitHeld:
			return Idle
		}
	case e == Release && p == Dah:
		switch c {
		case SqueezeDitFirst, SqueezeDahFirst:
			return DitHeld
		case DahHeld:
			return Idle
		}
	}
	return c
}
