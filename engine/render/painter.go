package render

import (
	"image"
	"image/color"
)

// Asset is a decoded image handle. Both image.Image and *ebiten.Image
// satisfy it, so front-ends choose their own representation.
type Asset interface {
	Bounds() image.Rectangle
}

// AssetResolver looks up a decoded asset by id
type AssetResolver interface {
	Resolve(id string) (Asset, error)
}

// Painter is the drawing surface the compositor paints onto. Coordinates are
// screen pixels.
type Painter interface {
	FillCircle(cx, cy, r float64, c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	// Text draws s with its baseline starting at (x, y)
	Text(s string, x, y float64, font FontSpec, c color.Color)
	// Image draws a with its top-left corner at (x, y)
	Image(a Asset, x, y float64)
	// ImageRotated draws a centred on (cx, cy), rotated clockwise by angle radians
	ImageRotated(a Asset, cx, cy, angle float64)
}
