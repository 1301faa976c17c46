package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/input"
)

type requests []string

func (r *requests) Request(ids ...string) { *r = append(*r, ids...) }

var pad = input.DefaultPad(1280, 800)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, c.IDs())
	assert.True(t, c.Has(3))
	assert.False(t, c.Has(7))

	next, ok := c.Next(1)
	assert.True(t, ok)
	assert.Equal(t, 2, next)
	_, ok = c.Next(6)
	assert.False(t, ok)
}

func TestBuildFirstLevel(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	var req requests
	w, err := c.Build(1, &req, pad)
	require.NoError(t, err)

	bodies := w.Query(core.CompCelestial)
	require.Len(t, bodies, 1)
	pos, _ := core.Get[*core.Position](w, bodies[0])
	body, _ := core.Get[*core.Celestial](w, bodies[0])
	assert.Equal(t, core.Position{X: 650, Y: 400}, *pos)
	assert.Equal(t, core.Celestial{Mass: 5, Radius: 100}, *body)
	assert.False(t, w.Has(bodies[0], core.CompVelocity), "fixed planets do not move")

	shipID, craft, ok := core.First[*core.Spacecraft](w)
	require.True(t, ok)
	assert.Equal(t, 25.0, craft.Fuel)
	assert.Equal(t, 25.0, craft.FuelCapacity)
	vel, _ := core.Get[*core.Velocity](w, shipID)
	assert.Equal(t, core.Velocity{X: 0, Y: 300}, *vel)

	zoneID, zone, ok := core.First[*core.EndZone](w)
	require.True(t, ok)
	zonePos, _ := core.Get[*core.Position](w, zoneID)
	assert.Equal(t, core.Position{X: 1050, Y: 350}, *zonePos)
	assert.Equal(t, 100.0, zone.Width)

	_, _, ok = core.First[*core.Camera](w)
	assert.True(t, ok)
	_, rs, ok := core.First[*core.RunState](w)
	require.True(t, ok)
	assert.False(t, rs.Finished)
	_, _, ok = core.First[*core.FuelGauge](w)
	assert.True(t, ok)

	var labels []string
	for _, id := range w.Query(core.CompVisual) {
		v, _ := core.Get[*core.Visual](w, id)
		if v.Kind == core.VisualText && v.Z == ZLabel {
			labels = append(labels, v.Text)
			assert.True(t, v.Fixed)
		}
	}
	assert.Len(t, labels, 4)
	assert.Equal(t, "Welcome to Orbital Bus", labels[0])

	assert.ElementsMatch(t, []string{BackgroundSprite, "earth.png", ShipSprite}, req)
}

func TestBuildPassableAndOrbitingPlanets(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	w, err := c.Build(2, nil, pad)
	require.NoError(t, err)
	assert.Empty(t, w.Query(core.CompCelestial))
	require.Len(t, w.Query(core.CompMass), 1)

	w, err = c.Build(5, nil, pad)
	require.NoError(t, err)
	orbiting := w.Query(core.CompCelestial, core.CompVelocity)
	require.Len(t, orbiting, 1)
	vel, _ := core.Get[*core.Velocity](w, orbiting[0])
	assert.Equal(t, core.Velocity{X: 0, Y: 670}, *vel)
}

func TestOrbitDefaultVelocity(t *testing.T) {
	c, err := Parse([]byte(`{
		"planets": [{"id": "m", "sprite": "moon.png", "radius": 10, "mass": 1, "fixed": false}],
		"worlds": [{"id": 1, "planets": [{"ref": "m", "x": 1, "y": 2}],
			"spaceship": {"x": 0, "y": 0, "vx": 0, "vy": 0, "fuel": 1}, "end": {"x": 0, "y": 0}}]
	}`))
	require.NoError(t, err)
	w, err := c.Build(1, nil, pad)
	require.NoError(t, err)

	id := w.Query(core.CompCelestial)[0]
	vel, _ := core.Get[*core.Velocity](w, id)
	assert.Equal(t, core.Velocity{Y: DefaultOrbitVY}, *vel)
	vis, _ := core.Get[*core.Visual](w, id)
	assert.Equal(t, -10.0, vis.OffsetX)
}

func TestBuildUnknownLevel(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	_, err = c.Build(42, nil, pad)
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"worlds": [`))
	require.Error(t, err)

	_, err = Parse([]byte(`{
		"planets": [{"id": "p", "sprite": "", "radius": -1, "mass": 0}],
		"worlds": [
			{"id": 1, "planets": [{"ref": "ghost"}], "end": {"x": 0, "y": 0},
			 "texts": [{"text": "hi", "color": "bluish", "font": "12pt x"}]},
			{"id": 1, "spaceship": {"fuel": 1}}
		]
	}`))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{
		`planet "p" has no sprite`,
		`planet "p": mass must be positive`,
		`planet "p": radius must not be negative`,
		`world 1: unknown planet "ghost"`,
		`world 1: missing spaceship`,
		`world 1 text #0: unrecognised colour "bluish"`,
		`world 1 defined twice`,
		`world 1: missing end zone`,
	}, verr.Problems)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.json")
	require.NoError(t, os.WriteFile(path, builtin, 0o644))
	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.IDs(), 6)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
