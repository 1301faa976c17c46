package systems

import (
	"github.com/1siamBot/orbital-bus/engine/core"
)

// HUDSystem shrinks the fuel gauge from the top as fuel burns
type HUDSystem struct{}

func (s *HUDSystem) Priority() int { return 40 }

func (s *HUDSystem) Update(w *core.World, dt float64) {
	_, craft, ok := core.First[*core.Spacecraft](w)
	if !ok {
		return
	}
	ratio := craft.FuelRatio()

	for _, id := range w.Query(core.CompFuelGauge, core.CompPosition, core.CompVisual) {
		gauge, _ := core.Get[*core.FuelGauge](w, id)
		pos, _ := core.Get[*core.Position](w, id)
		vis, _ := core.Get[*core.Visual](w, id)

		h := gauge.MaxHeight * ratio
		vis.Height = h
		pos.Y = gauge.BaseY + (gauge.MaxHeight - h)
	}
}
