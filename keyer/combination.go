package keyer

import "fmt"

// Combination is the paddle state the keyer works from. The two squeeze
// variants remember which paddle closed first; there is no separate flag
// per paddle.
type Combination int

const (
	Idle Combination = iota
	DitHeld
	DahHeld
	SqueezeDitFirst // dit closed first, then dah
	SqueezeDahFirst // dah closed first, then dit
)

// Paddle identifies one of the two keyer contacts.
type Paddle int

const (
	Dit Paddle = iota
	Dah
)

// Edge is a contact closing or opening.
type Edge int

const (
	Press Edge = iota
	Release
)

func (c Combination) String() string {
	switch c {
	case Idle:
		return "Idle"
	case DitHeld:
		return "DitHeld"
	case DahHeld:
		return "DahHeld"
	case SqueezeDitFirst:
		return "SqueezeDitFirst"
	case SqueezeDahFirst:
		return "SqueezeDahFirst"
	}
	return fmt.Sprintf("Combination(%d)", int(c))
}

// Glyph returns the two-character form shown on screen.
func (c Combination) Glyph() string {
	switch c {
	case DitHeld:
		return ". "
	case DahHeld:
		return "_ "
	case SqueezeDitFirst:
		return "._"
	case SqueezeDahFirst:
		return "_."
	}
	return "  "
}

func (p Paddle) String() string {
	if p == Dit {
		return "Dit"
	}
	return "Dah"
}

func (e Edge) String() string {
	if e == Press {
		return "Press"
	}
	return "Release"
}
