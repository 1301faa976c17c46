package core

import (
	"image/color"
	"math"
)

// ---- Spatial ----

// Position is a world-space point (or screen-space for fixed visuals)
type Position struct {
	X, Y float64
}

func (p *Position) Type() ComponentType { return CompPosition }

// DistanceTo returns euclidean distance to another position
func (p *Position) DistanceTo(other *Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Velocity in world units per second
type Velocity struct {
	X, Y float64
}

func (v *Velocity) Type() ComponentType { return CompVelocity }

// Speed returns the magnitude of the velocity
func (v *Velocity) Speed() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// ---- Gravity ----

// Mass makes an entity an attractor without a collision body
type Mass struct {
	Mass float64
}

func (m *Mass) Type() ComponentType { return CompMass }

// Celestial is an attractor the spacecraft can crash into
type Celestial struct {
	Mass   float64
	Radius float64 // collision radius, centred on Position
}

func (c *Celestial) Type() ComponentType { return CompCelestial }

// ---- Goals ----

// EndZone is an axis-aligned box whose top-left corner is the entity Position
type EndZone struct {
	Width, Height float64
}

func (e *EndZone) Type() ComponentType { return CompEndZone }

// Contains reports whether (x, y) lies strictly inside the zone at (zx, zy)
// after shrinking it by inset on every side.
func (e *EndZone) Contains(zx, zy, inset, x, y float64) bool {
	return x > zx+inset && x < zx+e.Width-inset &&
		y > zy+inset && y < zy+e.Height-inset
}

// ---- Spacecraft ----

// Spacecraft is the piloted entity. Angle is derived from velocity each tick.
type Spacecraft struct {
	Angle        float64 // radians, atan2(vy, vx)
	Fuel         float64
	FuelCapacity float64
}

func (s *Spacecraft) Type() ComponentType { return CompSpacecraft }

// FuelRatio returns remaining fuel as a fraction of capacity, floored at 0
func (s *Spacecraft) FuelRatio() float64 {
	if s.FuelCapacity <= 0 {
		return 0
	}
	return math.Max(s.Fuel/s.FuelCapacity, 0)
}

// ---- Rendering ----

// VisualKind is the closed set of things the compositor knows how to paint
type VisualKind uint8

const (
	VisualCircle VisualKind = iota
	VisualRect
	VisualText
	VisualSprite
)

func (k VisualKind) String() string {
	switch k {
	case VisualCircle:
		return "circle"
	case VisualRect:
		return "rect"
	case VisualText:
		return "text"
	case VisualSprite:
		return "sprite"
	}
	return "unknown"
}

// Visual describes how an entity is painted. Only the fields relevant to Kind
// are read.
type Visual struct {
	Kind    VisualKind
	Z       int  // draw layer, ascending
	Fixed   bool // screen space, ignores the camera
	OffsetX float64
	OffsetY float64

	Color  color.NRGBA // circle, rect, text
	Radius float64     // circle
	Width  float64     // rect
	Height float64     // rect
	Text   string      // text
	Font   string      // text, e.g. "15pt Tsoonami"
	Sprite string      // sprite asset id
}

func (v *Visual) Type() ComponentType { return CompVisual }

// CircleVisual returns a filled circle visual
func CircleVisual(radius float64, c color.NRGBA) *Visual {
	return &Visual{Kind: VisualCircle, Radius: radius, Color: c}
}

// RectVisual returns a filled rectangle visual
func RectVisual(w, h float64, c color.NRGBA) *Visual {
	return &Visual{Kind: VisualRect, Width: w, Height: h, Color: c}
}

// TextVisual returns a text visual drawn from its baseline
func TextVisual(text string, c color.NRGBA, font string) *Visual {
	return &Visual{Kind: VisualText, Text: text, Color: c, Font: font}
}

// SpriteVisual returns an image visual resolved through the asset cache
func SpriteVisual(id string) *Visual {
	return &Visual{Kind: VisualSprite, Sprite: id}
}

// FuelGauge marks the HUD rect that mirrors the spacecraft's fuel
type FuelGauge struct {
	BaseY     float64 // y of the gauge top when full
	MaxHeight float64
}

func (f *FuelGauge) Type() ComponentType { return CompFuelGauge }

// ---- Singletons ----

// Camera is the scroll offset applied to world-space visuals
type Camera struct {
	OffsetX, OffsetY float64
}

func (c *Camera) Type() ComponentType { return CompCamera }

// RunState tracks the outcome of the current attempt at a level
type RunState struct {
	Finished bool
	Crashed  bool
}

func (r *RunState) Type() ComponentType { return CompRunState }

// Succeeded reports a finished, non-crashed run
func (r *RunState) Succeeded() bool {
	return r.Finished && !r.Crashed
}
