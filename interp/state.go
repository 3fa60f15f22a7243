package interp

// PenMode is the pen's drawing mode, packed into the visibility-
// independent half of a render command's flag bits.
type PenMode int

const (
	Paint PenMode = iota
	Erase
	Reverse
)

// Pos is a turtle-space position, origin at canvas centre.
type Pos struct {
	X, Y float64
}

// State is the turtle's mutable pose, pen, and palette.
type State struct {
	Angle float64 // radians; 0 means pointing up-screen
	Pos   Pos

	PenColor    RGBA
	PenDown     bool
	PenMode     PenMode
	ScreenColor RGBA
}

// NewState returns a turtle at the origin, pen down, black on white.
func NewState() *State {
	return &State{
		PenColor:    DefaultPalette[0],
		PenDown:     true,
		ScreenColor: DefaultPalette[7],
	}
}
