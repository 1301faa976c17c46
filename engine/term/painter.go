package term

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/orbital-bus/engine/render"
)

// Thumb is a sprite pre-scaled to one pixel per terminal cell. Bounds still
// reports the source size so layout matches the desktop build.
type Thumb struct {
	Src   image.Rectangle
	Cells *image.RGBA
}

func (t *Thumb) Bounds() image.Rectangle { return t.Src }

// Sampler scales decoded sprites down to cell resolution
type Sampler struct {
	CellW, CellH int
}

// Convert is the asset cache's convert hook for terminal play
func (s Sampler) Convert(img image.Image) render.Asset {
	b := img.Bounds()
	w := max(1, (b.Dx()+s.CellW-1)/s.CellW)
	h := max(1, (b.Dy()+s.CellH-1)/s.CellH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return &Thumb{Src: b, Cells: dst}
}

// arrows are indexed by heading in eighths of a turn, clockwise from east
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Painter maps the compositor's pixel space onto a cell grid
type Painter struct {
	Grid         *Grid
	CellW, CellH float64
	ShipColor    color.Color
}

func (p *Painter) cell(x, y float64) (int, int) {
	return int(math.Floor(x / p.CellW)), int(math.Floor(y / p.CellH))
}

func (p *Painter) FillCircle(cx, cy, r float64, c color.Color) {
	x0, y0 := p.cell(cx-r, cy-r)
	x1, y1 := p.cell(cx+r, cy+r)
	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x)+0.5)*p.CellW - cx
			dy := (float64(y)+0.5)*p.CellH - cy
			if dx*dx+dy*dy <= r*r {
				p.Grid.BlendBg(x, y, c)
				hit = true
			}
		}
	}
	// smaller than a cell: still show something
	if !hit {
		x, y := p.cell(cx, cy)
		p.Grid.BlendBg(x, y, c)
	}
}

func (p *Painter) FillRect(x, y, w, h float64, c color.Color) {
	x0, y0 := p.cell(x, y)
	x1 := max(x0+1, int(math.Ceil((x+w)/p.CellW)))
	y1 := max(y0+1, int(math.Ceil((y+h)/p.CellH)))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			p.Grid.BlendBg(cx, cy, c)
		}
	}
}

// Text puts one rune per cell on the row through the middle of the glyphs
func (p *Painter) Text(s string, x, y float64, font render.FontSpec, c color.Color) {
	col, row := p.cell(x, y-font.Size/2)
	for _, r := range s {
		p.Grid.SetGlyph(col, row, r, c)
		col++
	}
}

func (p *Painter) Image(a render.Asset, x, y float64) {
	t := p.thumb(a)
	if t == nil {
		return
	}
	col, row := p.cell(x, y)
	b := t.Cells.Bounds()
	for j := b.Min.Y; j < b.Max.Y; j++ {
		for i := b.Min.X; i < b.Max.X; i++ {
			px := t.Cells.RGBAAt(i, j)
			if px.A == 0 {
				continue
			}
			p.Grid.BlendBg(col+i-b.Min.X, row+j-b.Min.Y, px)
		}
	}
}

// ImageRotated draws the craft as an arrow glyph along its heading. The
// sprite is nose-down, so the heading is a quarter turn past angle.
func (p *Painter) ImageRotated(_ render.Asset, cx, cy, angle float64) {
	x, y := p.cell(cx, cy)
	c := p.ShipColor
	if c == nil {
		c = color.White
	}
	p.Grid.SetGlyph(x, y, Arrow(angle+math.Pi/2), c)
}

// Arrow picks the glyph closest to heading, in screen radians clockwise from
// east
func Arrow(heading float64) rune {
	i := int(math.Round(heading / (math.Pi / 4)))
	return arrows[((i%8)+8)%8]
}

func (p *Painter) thumb(a render.Asset) *Thumb {
	switch v := a.(type) {
	case *Thumb:
		return v
	case image.Image:
		t, _ := Sampler{CellW: int(p.CellW), CellH: int(p.CellH)}.Convert(v).(*Thumb)
		return t
	}
	return nil
}
