package desktop

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/orbital-bus/engine/render"
)

// Painter draws compositor output onto an ebiten screen image
type Painter struct {
	Screen *ebiten.Image
	Fonts  *FontCache
}

func (p *Painter) FillCircle(cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(p.Screen, float32(cx), float32(cy), float32(r), c, true)
}

func (p *Painter) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(p.Screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (p *Painter) Text(s string, x, y float64, spec render.FontSpec, c color.Color) {
	face := p.Fonts.Face(spec)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	// text/v2 anchors at the top of the line box; move up to the baseline
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(p.Screen, s, face, op)
}

func (p *Painter) Image(a render.Asset, x, y float64) {
	img := asImage(a)
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	p.Screen.DrawImage(img, op)
}

func (p *Painter) ImageRotated(a render.Asset, cx, cy, angle float64) {
	img := asImage(a)
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	p.Screen.DrawImage(img, op)
}

// ToImage uploads a decoded image; used as the asset cache's convert hook
func ToImage(img image.Image) render.Asset {
	return ebiten.NewImageFromImage(img)
}

func asImage(a render.Asset) *ebiten.Image {
	switch v := a.(type) {
	case *ebiten.Image:
		return v
	case image.Image:
		return ebiten.NewImageFromImage(v)
	}
	return nil
}
