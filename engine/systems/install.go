package systems

import (
	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/input"
)

// Deps carries what the pipeline needs from outside the world
type Deps struct {
	Controls     *input.Cell
	Bus          *core.EventBus
	ScreenW      float64
	ScreenH      float64
	CameraMargin float64
}

// Install registers the per-tick pipeline on w: thrust, gravity, collision,
// HUD, camera. Rendering happens outside the tick.
func Install(w *core.World, d Deps) {
	margin := d.CameraMargin
	if margin <= 0 {
		margin = DefaultCameraMargin
	}
	w.AddSystem(&ThrustSystem{Controls: d.Controls, Bus: d.Bus})
	w.AddSystem(&GravitySystem{})
	w.AddSystem(&CollisionSystem{Bus: d.Bus, ScreenW: d.ScreenW, ScreenH: d.ScreenH})
	w.AddSystem(&HUDSystem{})
	w.AddSystem(&CameraSystem{ViewW: d.ScreenW, ViewH: d.ScreenH, Margin: margin})
}
