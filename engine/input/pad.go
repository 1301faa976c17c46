package input

// Rect is a screen-space button region
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the screen point lies inside r
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region identifies which control a pointer landed on
type Region uint8

const (
	RegionNone Region = iota
	RegionThrust
	RegionBrake
)

// Pad is the on-screen control pad for pointer and touch input
type Pad struct {
	Thrust Rect
	Brake  Rect
}

// DefaultPad places the thrust and brake buttons in the bottom-right corner
// of a screen of the given size.
func DefaultPad(screenW, screenH float64) Pad {
	const size, gap, margin = 90.0, 12.0, 24.0
	x := screenW - margin - size
	return Pad{
		Thrust: Rect{X: x, Y: screenH - margin - 2*size - gap, W: size, H: size},
		Brake:  Rect{X: x, Y: screenH - margin - size, W: size, H: size},
	}
}

// Hit maps a screen point to a pad region
func (p Pad) Hit(x, y float64) Region {
	switch {
	case p.Thrust.Contains(x, y):
		return RegionThrust
	case p.Brake.Contains(x, y):
		return RegionBrake
	}
	return RegionNone
}

// Pointer is one active mouse button or touch
type Pointer struct {
	X, Y float64
}

// Apply folds the current pointer set and keyboard state into the cell.
// pressed lists pointers that went down this frame; any of those outside
// the pad raise the primary edge.
func (p Pad) Apply(c *Cell, keyThrust, keyBrake bool, held, pressed []Pointer) {
	thrust, brake := keyThrust, keyBrake
	for _, ptr := range held {
		switch p.Hit(ptr.X, ptr.Y) {
		case RegionThrust:
			thrust = true
		case RegionBrake:
			brake = true
		}
	}
	c.Set(thrust, brake)

	for _, ptr := range pressed {
		if p.Hit(ptr.X, ptr.Y) == RegionNone {
			c.Press()
			break
		}
	}
}
