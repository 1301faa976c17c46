package desktop

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/orbital-bus/engine/render"
)

// MenuButton represents a clickable menu button
type MenuButton struct {
	X, Y, W, H int
	Level       int
	Text        string
	Disabled    bool
}

func (b MenuButton) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// LevelSelect is the grid of levels shown between runs. Levels past the
// highest unlocked one are greyed out.
type LevelSelect struct {
	ScreenW  int
	ScreenH  int
	Tick     float64
	Levels   []int
	Unlocked func(level int) bool

	OnSelect func(level int)

	hoverIdx int
}

var (
	menuBG      = color.RGBA{8, 8, 16, 255}
	menuAccent  = color.RGBA{250, 126, 55, 255}
	menuBtnNorm = color.RGBA{25, 35, 55, 240}
	menuBtnHov  = color.RGBA{35, 55, 90, 255}
	menuBtnDis  = color.RGBA{20, 20, 30, 200}
	menuText    = color.RGBA{200, 220, 255, 255}
	menuTextDim = color.RGBA{100, 120, 150, 255}

	titleFont  = render.FontSpec{Size: 40, Family: "Tsoonami"}
	buttonFont = render.FontSpec{Size: 20, Family: "Tsoonami"}
	hintFont   = render.FontSpec{Size: 14, Family: render.DefaultFamily}
)

func NewLevelSelect(screenW, screenH int, levels []int, unlocked func(int) bool) *LevelSelect {
	return &LevelSelect{
		ScreenW:  screenW,
		ScreenH:  screenH,
		Levels:   levels,
		Unlocked: unlocked,
		hoverIdx: -1,
	}
}

func (m *LevelSelect) buttons() []MenuButton {
	const cols, bw, bh, gap = 3, 160, 110, 24
	rows := (len(m.Levels) + cols - 1) / cols
	gridW := cols*bw + (cols-1)*gap
	x0 := (m.ScreenW - gridW) / 2
	y0 := (m.ScreenH-rows*bh-(rows-1)*gap)/2 + 40

	buttons := make([]MenuButton, len(m.Levels))
	for i, lvl := range m.Levels {
		buttons[i] = MenuButton{
			X: x0 + (i%cols)*(bw+gap), Y: y0 + (i/cols)*(bh+gap),
			W: bw, H: bh,
			Level:    lvl,
			Text:     fmt.Sprintf("%d", lvl),
			Disabled: m.Unlocked != nil && !m.Unlocked(lvl),
		}
	}
	return buttons
}

// Update tracks hover and fires OnSelect for a click on an unlocked level
func (m *LevelSelect) Update(dt float64, mx, my int, clicked bool) {
	m.Tick += dt
	m.hoverIdx = -1
	for i, b := range m.buttons() {
		if b.contains(mx, my) && !b.Disabled {
			m.hoverIdx = i
		}
	}
	if clicked && m.hoverIdx >= 0 && m.OnSelect != nil {
		m.OnSelect(m.Levels[m.hoverIdx])
	}
}

func (m *LevelSelect) Draw(screen *ebiten.Image, p *Painter) {
	screen.Fill(menuBG)
	m.drawStars(screen)

	title := "ORBITAL BUS"
	p.Text(title, float64(m.ScreenW)/2-float64(len(title))*14, 150, titleFont, menuText)
	vector.DrawFilledRect(screen, float32(m.ScreenW/2-140), 170, 280, 2, menuAccent, false)

	for i, b := range m.buttons() {
		fill := menuBtnNorm
		switch {
		case b.Disabled:
			fill = menuBtnDis
		case i == m.hoverIdx:
			fill = menuBtnHov
		}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fill, false)
		border := menuAccent
		txt := menuText
		if b.Disabled {
			border = color.RGBA{40, 40, 60, 255}
			txt = menuTextDim
		}
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, border, false)
		p.Text(b.Text, float64(b.X+b.W/2-6*len(b.Text)), float64(b.Y+b.H/2+8), buttonFont, txt)
	}

	p.Text("Click a level to launch", float64(m.ScreenW)/2-80, float64(m.ScreenH-40), hintFont, menuTextDim)
}

// Slowly drifting star field behind the grid
func (m *LevelSelect) drawStars(screen *ebiten.Image) {
	t := m.Tick
	for i := 0; i < 60; i++ {
		px := float32(math.Mod(float64(i)*97.3+t*6+float64(i*i)*0.7, float64(m.ScreenW)))
		py := float32(math.Mod(float64(i)*53.9+float64(i)*2.3, float64(m.ScreenH)))
		alpha := uint8(90 + 80*math.Sin(t*1.5+float64(i)))
		vector.DrawFilledCircle(screen, px, py, 1.2, color.RGBA{220, 230, 255, alpha}, false)
	}
}
