package level

import (
	"fmt"

	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/input"
	"github.com/1siamBot/orbital-bus/engine/render"
	"github.com/1siamBot/orbital-bus/engine/ui"
)

// Sprites and geometry shared by every level
const (
	BackgroundSprite = "space.png"
	ShipSprite       = "spaceship.png"
	EndZoneSize      = 100.0
	ZBackground      = -100
	ZLabel           = 10
)

// DefaultOrbitVY is the launch velocity of an orbiting planet that does not
// set its own
const DefaultOrbitVY = 400.0

var endZoneColor, _ = render.ParseColor("rgba(250, 126, 55, 0.7)")

// Requester starts loading assets ahead of the first frame
type Requester interface {
	Request(ids ...string)
}

// Build creates a fresh world for level id. Every sprite the level uses is
// requested from assets.
func (c *Catalog) Build(id int, assets Requester, pad input.Pad) (*core.World, error) {
	wd, ok := c.worlds[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, id)
	}

	w := core.NewWorld()
	var sprites []string

	if wd.Background {
		bg := core.SpriteVisual(BackgroundSprite)
		bg.Z, bg.Fixed = ZBackground, true
		w.Spawn(&core.Position{}, bg)
		sprites = append(sprites, BackgroundSprite)
	}

	for _, pl := range wd.Planets {
		def := c.planets[pl.Ref]
		spawnPlanet(w, def, pl)
		sprites = append(sprites, def.Sprite)
	}

	for _, t := range wd.Texts {
		col, err := render.ParseColor(t.Color)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", id, err)
		}
		v := core.TextVisual(t.Text, col, t.Font)
		v.Z, v.Fixed = ZLabel, true
		w.Spawn(&core.Position{X: t.X, Y: t.Y}, v)
	}

	s := wd.Spaceship
	w.Spawn(
		&core.Position{X: s.X, Y: s.Y},
		&core.Velocity{X: s.VX, Y: s.VY},
		&core.Spacecraft{Fuel: s.Fuel, FuelCapacity: s.Fuel},
		core.SpriteVisual(ShipSprite),
	)
	sprites = append(sprites, ShipSprite)

	w.Spawn(
		&core.Position{X: wd.End.X - EndZoneSize/2, Y: wd.End.Y - EndZoneSize/2},
		&core.EndZone{Width: EndZoneSize, Height: EndZoneSize},
		core.RectVisual(EndZoneSize, EndZoneSize, endZoneColor),
	)

	w.Spawn(&core.Camera{})
	w.Spawn(&core.RunState{})
	ui.HUD(w, pad)

	if assets != nil {
		assets.Request(sprites...)
	}
	return w, nil
}

func spawnPlanet(w *core.World, def *PlanetDef, pl PlanetPlacement) {
	v := core.SpriteVisual(def.Sprite)
	v.OffsetX, v.OffsetY = -def.Radius, -def.Radius

	bundle := []core.Component{&core.Position{X: pl.X, Y: pl.Y}, v}
	if def.Passable {
		bundle = append(bundle, &core.Mass{Mass: def.Mass})
	} else {
		bundle = append(bundle, &core.Celestial{Mass: def.Mass, Radius: def.Radius})
	}
	if !def.Fixed {
		vel := &core.Velocity{Y: DefaultOrbitVY}
		if pl.VX != nil {
			vel.X = *pl.VX
		}
		if pl.VY != nil {
			vel.Y = *pl.VY
		}
		bundle = append(bundle, vel)
	}
	w.Spawn(bundle...)
}
