package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/orbital-bus/engine/core"
)

type recorder struct {
	ops []string
}

func (r *recorder) FillCircle(cx, cy, rad float64, _ color.Color) {
	r.ops = append(r.ops, fmt.Sprintf("circle %.0f,%.0f r%.0f", cx, cy, rad))
}

func (r *recorder) FillRect(x, y, w, h float64, _ color.Color) {
	r.ops = append(r.ops, fmt.Sprintf("rect %.0f,%.0f %.0fx%.0f", x, y, w, h))
}

func (r *recorder) Text(s string, x, y float64, font FontSpec, _ color.Color) {
	r.ops = append(r.ops, fmt.Sprintf("text %s %.0f,%.0f %s", s, x, y, font.Family))
}

func (r *recorder) Image(a Asset, x, y float64) {
	r.ops = append(r.ops, fmt.Sprintf("image %dx%d %.0f,%.0f", a.Bounds().Dx(), a.Bounds().Dy(), x, y))
}

func (r *recorder) ImageRotated(a Asset, cx, cy, angle float64) {
	r.ops = append(r.ops, fmt.Sprintf("rotated %dx%d %.0f,%.0f %.2f", a.Bounds().Dx(), a.Bounds().Dy(), cx, cy, angle))
}

type mapAssets map[string]Asset

func (m mapAssets) Resolve(id string) (Asset, error) {
	if a, ok := m[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
}

func withZ(v *core.Visual, z int) *core.Visual {
	v.Z = z
	return v
}

func TestComposeOrder(t *testing.T) {
	w := core.NewWorld()
	ship := core.SpriteVisual("ship")
	w.Spawn(&core.Position{X: 100, Y: 100}, &core.Velocity{}, &core.Spacecraft{Angle: 0}, ship)
	w.Spawn(&core.Position{X: 1, Y: 1}, withZ(core.RectVisual(10, 10, color.NRGBA{}), 5))
	w.Spawn(&core.Position{X: 2, Y: 2}, withZ(core.CircleVisual(5, color.NRGBA{}), -1))
	w.Spawn(&core.Position{X: 3, Y: 3}, withZ(core.RectVisual(20, 20, color.NRGBA{}), 5))
	w.Spawn(&core.Camera{OffsetX: 10, OffsetY: -10})

	rec := &recorder{}
	err := Compose(w, rec, mapAssets{"ship": image.Rect(0, 0, 16, 32)})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"circle 12,-8 r5",
		"rect 11,-9 10x10",
		"rect 13,-7 20x20",
		fmt.Sprintf("rotated 16x32 110,90 %.2f", -math.Pi/2),
	}, rec.ops)
}

func TestComposeFixedIgnoresCamera(t *testing.T) {
	w := core.NewWorld()
	hud := core.TextVisual("FUEL", color.NRGBA{}, "12pt Tsoonami")
	hud.Fixed = true
	w.Spawn(&core.Position{X: 30, Y: 770}, hud)
	planet := core.SpriteVisual("earth")
	planet.OffsetX, planet.OffsetY = -100, -100
	w.Spawn(&core.Position{X: 650, Y: 400}, planet)
	w.Spawn(&core.Camera{OffsetX: -50, OffsetY: 0})

	rec := &recorder{}
	require.NoError(t, Compose(w, rec, mapAssets{"earth": image.Rect(0, 0, 200, 200)}))
	assert.Equal(t, []string{
		"text FUEL 30,770 Tsoonami",
		"image 200x200 500,300",
	}, rec.ops)
}

func TestComposeReportsUnresolvedAssets(t *testing.T) {
	w := core.NewWorld()
	w.Spawn(&core.Position{}, core.SpriteVisual("missing.png"))
	w.Spawn(&core.Position{X: 5, Y: 5}, core.RectVisual(1, 1, color.NRGBA{}))
	w.Spawn(&core.Position{}, &core.Spacecraft{}, core.SpriteVisual("ship.png"))

	rec := &recorder{}
	err := Compose(w, rec, mapAssets{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAssetNotFound))
	assert.Contains(t, err.Error(), "missing.png")
	assert.Contains(t, err.Error(), "ship.png")
	assert.Equal(t, []string{"rect 5,5 1x1"}, rec.ops, "the rest of the frame still draws")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"white", color.NRGBA{255, 255, 255, 255}, false},
		{" Orange ", color.NRGBA{255, 165, 0, 255}, false},
		{"#fff", color.NRGBA{255, 255, 255, 255}, false},
		{"#0a1B2c", color.NRGBA{10, 27, 44, 255}, false},
		{"#00000080", color.NRGBA{0, 0, 0, 128}, false},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 255}, false},
		{"rgba(250, 126, 55, 0.7)", color.NRGBA{250, 126, 55, 179}, false},
		{"rgba(0,0,0,0.8)", color.NRGBA{0, 0, 0, 204}, false},
		{"rgb(256, 0, 0)", color.NRGBA{}, true},
		{"rgba(0, 0, 0, 2)", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, true},
		{"chartreuse-ish", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFont(t *testing.T) {
	f, err := ParseFont("15pt Tsoonami")
	require.NoError(t, err)
	assert.Equal(t, "Tsoonami", f.Family)
	assert.InDelta(t, 20, f.Size, 1e-9)

	f, err = ParseFont("18px")
	require.NoError(t, err)
	assert.Equal(t, FontSpec{Size: 18, Family: DefaultFamily}, f)

	for _, bad := range []string{"", "Tsoonami", "0pt x", "abcpt x"} {
		_, err := ParseFont(bad)
		assert.Error(t, err, bad)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestAssetCache(t *testing.T) {
	fsys := fstest.MapFS{
		"earth.png":  {Data: pngBytes(t, 200, 200)},
		"broken.png": {Data: []byte("not a png")},
	}
	converted := 0
	cache := NewAssetCache(fsys, func(img image.Image) Asset {
		converted++
		return img
	})

	cache.Request("earth.png", "broken.png", "nope.png")
	cache.Wait()

	a, err := cache.Resolve("earth.png")
	require.NoError(t, err)
	assert.Equal(t, 200, a.Bounds().Dx())
	_, err = cache.Resolve("earth.png")
	require.NoError(t, err)
	assert.Equal(t, 1, converted, "conversion happens once")

	_, err = cache.Resolve("broken.png")
	assert.ErrorIs(t, err, ErrAssetNotFound)
	_, err = cache.Resolve("nope.png")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestAssetCacheResolveRequestsLazily(t *testing.T) {
	cache := NewAssetCache(fstest.MapFS{"a.png": {Data: pngBytes(t, 4, 4)}}, nil)

	_, err := cache.Resolve("a.png")
	if err != nil {
		assert.ErrorIs(t, err, ErrAssetPending)
	}
	cache.Wait()
	a, err := cache.Resolve("a.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), a.Bounds())
}
