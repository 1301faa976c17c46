package ui

import (
	"image/color"

	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/input"
)

// HUD layers sit above the world; the banner sits above the HUD
const (
	ZHud    = 50
	ZBanner = 100
)

// Fuel gauge geometry
const (
	GaugeX         = 30.0
	GaugeBaseY     = 653.0
	GaugeWidth     = 24.0
	GaugeMaxHeight = 96.0
)

// Banner geometry, shared by the crash and success overlays
const (
	BannerWidth  = 520.0
	BannerHeight = 180.0
)

var (
	hudFrame    = color.NRGBA{255, 255, 255, 60}
	hudFuel     = color.NRGBA{250, 126, 55, 230}
	hudText     = color.NRGBA{255, 255, 255, 255}
	padFill     = color.NRGBA{30, 40, 70, 170}
	bannerPanel = color.NRGBA{0, 0, 0, 200}
	crashRed    = color.NRGBA{230, 60, 60, 255}
	winGreen    = color.NRGBA{80, 220, 110, 255}
)

// HUD spawns the fixed-screen elements every level carries: the fuel gauge
// and the on-screen control pad.
func HUD(w *core.World, pad input.Pad) {
	w.Spawn(
		&core.Position{X: GaugeX - 3, Y: GaugeBaseY - 3},
		fixed(core.RectVisual(GaugeWidth+6, GaugeMaxHeight+6, hudFrame), ZHud),
	)
	w.Spawn(
		&core.Position{X: GaugeX, Y: GaugeBaseY},
		fixed(core.RectVisual(GaugeWidth, GaugeMaxHeight, hudFuel), ZHud+1),
		&core.FuelGauge{BaseY: GaugeBaseY, MaxHeight: GaugeMaxHeight},
	)
	w.Spawn(
		&core.Position{X: GaugeX - 6, Y: GaugeBaseY + GaugeMaxHeight + 22},
		fixed(core.TextVisual("FUEL", hudText, "12pt sans"), ZHud),
	)

	button(w, pad.Thrust, "THRUST")
	button(w, pad.Brake, "BRAKE")
}

func button(w *core.World, r input.Rect, label string) {
	w.Spawn(
		&core.Position{X: r.X, Y: r.Y},
		fixed(core.RectVisual(r.W, r.H, padFill), ZHud),
	)
	w.Spawn(
		&core.Position{X: r.X + 12, Y: r.Y + r.H/2 + 6},
		fixed(core.TextVisual(label, hudText, "12pt sans"), ZHud+1),
	)
}

// Banner spawns the one-shot end-of-run overlay centred on a screen of the
// given size. Crash and success differ only in their text.
func Banner(w *core.World, screenW, screenH float64, crashed bool) {
	headline, prompt, accent := "Level complete!", "Click to continue", winGreen
	if crashed {
		headline, prompt, accent = "You crashed!", "Click to try again", crashRed
	}

	x := (screenW - BannerWidth) / 2
	y := (screenH - BannerHeight) / 2
	w.Spawn(
		&core.Position{X: x, Y: y},
		fixed(core.RectVisual(BannerWidth, BannerHeight, bannerPanel), ZBanner),
	)
	w.Spawn(
		&core.Position{X: x + 40, Y: y + 75},
		fixed(core.TextVisual(headline, accent, "28pt Tsoonami"), ZBanner+1),
	)
	w.Spawn(
		&core.Position{X: x + 40, Y: y + 130},
		fixed(core.TextVisual(prompt, hudText, "15pt Tsoonami"), ZBanner+1),
	)
}

func fixed(v *core.Visual, z int) *core.Visual {
	v.Fixed = true
	v.Z = z
	return v
}
