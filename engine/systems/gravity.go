package systems

import (
	"github.com/1siamBot/orbital-bus/engine/core"
)

// GravitySystem pulls every mover toward every attractor, then integrates
// positions. The pull is proportional to displacement times the attractor's
// mass; there is no separate gravitational constant.
type GravitySystem struct{}

func (s *GravitySystem) Priority() int { return 20 }

type attractor struct {
	id   core.EntityID
	x, y float64
	mass float64
}

func (s *GravitySystem) Update(w *core.World, dt float64) {
	if frozen(w) {
		return
	}

	// Snapshot attractors first so every mover sees start-of-tick positions.
	var attractors []attractor
	for _, id := range w.Query(core.CompPosition) {
		m, ok := attractorMass(w, id)
		if !ok {
			continue
		}
		pos, _ := core.Get[*core.Position](w, id)
		attractors = append(attractors, attractor{id: id, x: pos.X, y: pos.Y, mass: m})
	}

	movers := w.Query(core.CompPosition, core.CompVelocity)
	for _, id := range movers {
		pos, _ := core.Get[*core.Position](w, id)
		vel, _ := core.Get[*core.Velocity](w, id)
		for _, a := range attractors {
			if a.id == id {
				continue
			}
			vel.X += (a.x - pos.X) * dt * a.mass
			vel.Y += (a.y - pos.Y) * dt * a.mass
		}
	}
	for _, id := range movers {
		pos, _ := core.Get[*core.Position](w, id)
		vel, _ := core.Get[*core.Velocity](w, id)
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}
}

// attractorMass returns the gravitational mass of id. A Celestial body's own
// mass wins over a bare Mass component.
func attractorMass(w *core.World, id core.EntityID) (float64, bool) {
	if c, ok := core.Get[*core.Celestial](w, id); ok {
		return c.Mass, true
	}
	if m, ok := core.Get[*core.Mass](w, id); ok {
		return m.Mass, true
	}
	return 0, false
}

// frozen reports whether the current run has finished. Motion systems stop
// once the outcome is decided.
func frozen(w *core.World) bool {
	_, rs, ok := core.First[*core.RunState](w)
	return ok && rs.Finished
}
