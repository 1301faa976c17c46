package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Cell is one terminal character: a glyph over a background colour
type Cell struct {
	Rune rune
	Fg   color.RGBA
	Bg   color.RGBA
}

// Grid is an off-screen cell buffer. Painting blends into it and Flush copies
// the finished frame to the screen in one pass.
type Grid struct {
	cells  []Cell
	width  int
	height int
}

// NewGrid creates a grid of the given size in cells
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Resize(width, height)
	return g
}

// Resize adjusts the grid, reallocating only when it grows
func (g *Grid) Resize(width, height int) {
	size := width * height
	if cap(g.cells) < size {
		g.cells = make([]Cell, size)
	} else {
		g.cells = g.cells[:size]
	}
	g.width, g.height = width, height
}

// Size returns the grid dimensions in cells
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// Clear fills every cell with a blank on bg
func (g *Grid) Clear(bg color.RGBA) {
	if len(g.cells) == 0 {
		return
	}
	g.cells[0] = Cell{Rune: ' ', Bg: bg}
	for filled := 1; filled < len(g.cells); filled *= 2 {
		copy(g.cells[filled:], g.cells[:filled])
	}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y); out of range reads return the zero cell
func (g *Grid) At(x, y int) Cell {
	if !g.inBounds(x, y) {
		return Cell{}
	}
	return g.cells[y*g.width+x]
}

// BlendBg alpha-blends c over the background of (x, y). A fully covered cell
// loses its glyph.
func (g *Grid) BlendBg(x, y int, c color.Color) {
	if !g.inBounds(x, y) {
		return
	}
	cell := &g.cells[y*g.width+x]
	src := color.NRGBAModel.Convert(c).(color.NRGBA)
	cell.Bg = blend(cell.Bg, src)
	if src.A == 0xff {
		cell.Rune = ' '
	}
}

// SetGlyph writes r in colour c, keeping the background
func (g *Grid) SetGlyph(x, y int, r rune, c color.Color) {
	if !g.inBounds(x, y) {
		return
	}
	cell := &g.cells[y*g.width+x]
	src := color.NRGBAModel.Convert(c).(color.NRGBA)
	cell.Rune = r
	cell.Fg = blend(cell.Bg, src)
}

// Flush copies the grid to the screen. The caller still calls Show.
func (g *Grid) Flush(s tcell.Screen) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			style := tcell.StyleDefault.
				Foreground(rgb(c.Fg)).
				Background(rgb(c.Bg))
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			s.SetContent(x, y, r, nil, style)
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// blend composites src over an opaque dst
func blend(dst color.RGBA, src color.NRGBA) color.RGBA {
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a) + 127) / 255)
	}
	return color.RGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: 0xff,
	}
}
