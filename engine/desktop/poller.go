package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/orbital-bus/engine/input"
)

// Poller samples keyboard, mouse and touch state once per frame and folds
// it into the controls cell through the on-screen pad.
type Poller struct {
	MouseX, MouseY   int
	LeftPressed      bool
	LeftJustPressed  bool
	LeftJustReleased bool

	touches    []ebiten.TouchID
	newTouches []ebiten.TouchID
}

func NewPoller() *Poller {
	return &Poller{}
}

// Update should be called every frame
func (s *Poller) Update() {
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.LeftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	s.touches = ebiten.AppendTouchIDs(s.touches[:0])
	s.newTouches = inpututil.AppendJustPressedTouchIDs(s.newTouches[:0])
}

// Apply writes this frame's state into cell
func (s *Poller) Apply(cell *input.Cell, pad input.Pad) {
	keyThrust := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp)
	keyBrake := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown)

	var held, pressed []input.Pointer
	mouse := input.Pointer{X: float64(s.MouseX), Y: float64(s.MouseY)}
	if s.LeftPressed {
		held = append(held, mouse)
	}
	if s.LeftJustPressed {
		pressed = append(pressed, mouse)
	}
	for _, id := range s.touches {
		x, y := ebiten.TouchPosition(id)
		held = append(held, input.Pointer{X: float64(x), Y: float64(y)})
	}
	for _, id := range s.newTouches {
		x, y := ebiten.TouchPosition(id)
		pressed = append(pressed, input.Pointer{X: float64(x), Y: float64(y)})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		cell.Press()
	}
	pad.Apply(cell, keyThrust, keyBrake, held, pressed)
}

// Tapped reports a click or new touch this frame and where it landed
func (s *Poller) Tapped() (x, y int, ok bool) {
	if s.LeftJustPressed {
		return s.MouseX, s.MouseY, true
	}
	if len(s.newTouches) > 0 {
		x, y := ebiten.TouchPosition(s.newTouches[0])
		return x, y, true
	}
	return 0, 0, false
}
