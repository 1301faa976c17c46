package systems

import (
	"github.com/1siamBot/orbital-bus/engine/core"
)

// DefaultCameraMargin keeps the spacecraft this far from every screen edge
const DefaultCameraMargin = 100.0

// CameraSystem scrolls the view so the spacecraft stays inside the margin
// box. The offset snaps straight to the boundary; there is no easing.
type CameraSystem struct {
	ViewW  float64
	ViewH  float64
	Margin float64
}

func (s *CameraSystem) Priority() int { return 50 }

func (s *CameraSystem) Update(w *core.World, dt float64) {
	_, cam, ok := core.First[*core.Camera](w)
	if !ok {
		return
	}
	craftID, _, ok := core.First[*core.Spacecraft](w)
	if !ok {
		return
	}
	pos, ok := core.Get[*core.Position](w, craftID)
	if !ok {
		return
	}

	cam.OffsetX = clampOffset(cam.OffsetX, pos.X, s.ViewW, s.Margin)
	cam.OffsetY = clampOffset(cam.OffsetY, pos.Y, s.ViewH, s.Margin)
}

func clampOffset(offset, p, view, margin float64) float64 {
	screen := p + offset
	switch {
	case screen < margin:
		return margin - p
	case screen > view-margin:
		return view - margin - p
	}
	return offset
}
