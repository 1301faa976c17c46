package systems

import (
	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/ui"
)

// EndZoneInset shrinks every end zone before the containment test so the
// craft must be well inside it.
const EndZoneInset = 20.0

// CollisionSystem decides the run outcome: crashing into a celestial body or
// reaching an end zone. Crash is checked first and wins a tie.
type CollisionSystem struct {
	Bus     *core.EventBus
	ScreenW float64
	ScreenH float64
}

func (s *CollisionSystem) Priority() int { return 30 }

func (s *CollisionSystem) Update(w *core.World, dt float64) {
	_, rs, ok := core.First[*core.RunState](w)
	if !ok || rs.Finished {
		return
	}
	craftID, _, ok := core.First[*core.Spacecraft](w)
	if !ok {
		return
	}
	craftPos, ok := core.Get[*core.Position](w, craftID)
	if !ok {
		return
	}

	for _, id := range w.Query(core.CompPosition, core.CompCelestial) {
		pos, _ := core.Get[*core.Position](w, id)
		body, _ := core.Get[*core.Celestial](w, id)
		if craftPos.DistanceTo(pos) < body.Radius {
			rs.Crashed = true
			break
		}
	}
	if rs.Crashed {
		rs.Finished = true
		s.finish(w, true)
		return
	}

	for _, id := range w.Query(core.CompPosition, core.CompEndZone) {
		pos, _ := core.Get[*core.Position](w, id)
		zone, _ := core.Get[*core.EndZone](w, id)
		if zone.Contains(pos.X, pos.Y, EndZoneInset, craftPos.X, craftPos.Y) {
			rs.Finished = true
			s.finish(w, false)
			return
		}
	}
}

func (s *CollisionSystem) finish(w *core.World, crashed bool) {
	ui.Banner(w, s.ScreenW, s.ScreenH, crashed)
	evt := core.EvtLevelComplete
	if crashed {
		evt = core.EvtCrashed
	}
	s.Bus.Emit(core.Event{Type: evt, Tick: w.TickCount})
}
