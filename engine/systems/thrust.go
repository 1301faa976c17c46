package systems

import (
	"math"

	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/input"
)

// Flight tuning, in world units per second
const (
	MaxSpeed       = 1000.0
	ThrustAccel    = 1000.0
	BrakeDecel     = 600.0
	FuelBurnPerSec = 10.0
)

// ThrustSystem turns the held controls into velocity changes and fuel burn
// for the spacecraft.
type ThrustSystem struct {
	Controls *input.Cell
	Bus      *core.EventBus
}

func (s *ThrustSystem) Priority() int { return 10 }

func (s *ThrustSystem) Update(w *core.World, dt float64) {
	if frozen(w) {
		return
	}
	var ctl input.Controls
	if s.Controls != nil {
		ctl = s.Controls.Snapshot()
	}

	for _, id := range w.Query(core.CompSpacecraft, core.CompVelocity) {
		craft, _ := core.Get[*core.Spacecraft](w, id)
		vel, _ := core.Get[*core.Velocity](w, id)

		craft.Angle = math.Atan2(vel.Y, vel.X)
		if craft.Fuel <= 0 {
			continue
		}

		cos, sin := math.Cos(craft.Angle), math.Sin(craft.Angle)
		vx, vy := vel.X, vel.Y
		before := craft.Fuel
		if ctl.Thrust {
			vx += ThrustAccel * dt * cos
			vy += ThrustAccel * dt * sin
			craft.Fuel -= FuelBurnPerSec * dt
		}
		if ctl.Brake {
			vx -= BrakeDecel * dt * cos
			vy -= BrakeDecel * dt * sin
			craft.Fuel -= FuelBurnPerSec * dt
		}

		// Over the cap the attempt is rejected but the fuel stays spent.
		if math.Hypot(vx, vy) < MaxSpeed {
			vel.X, vel.Y = vx, vy
		}

		if before > 0 && craft.Fuel <= 0 {
			s.Bus.Emit(core.Event{Type: core.EvtFuelEmpty, Tick: w.TickCount, Payload: id})
		}
	}
}
