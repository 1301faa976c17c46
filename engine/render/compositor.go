package render

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/1siamBot/orbital-bus/engine/core"
)

// Compose paints every visual entity in w onto p. Entities are drawn in
// ascending Z, ties in spawn order; the spacecraft is always drawn last.
// World-space visuals are shifted by the camera offset, fixed ones are not.
//
// A visual that cannot be painted (asset still loading, bad font) is skipped
// and reported in the returned error; the rest of the frame is still drawn.
func Compose(w *core.World, p Painter, assets AssetResolver) error {
	var camX, camY float64
	if _, cam, ok := core.First[*core.Camera](w); ok {
		camX, camY = cam.OffsetX, cam.OffsetY
	}

	ids := w.Select(core.Filter{
		With:    []core.ComponentType{core.CompPosition, core.CompVisual},
		Without: []core.ComponentType{core.CompSpacecraft},
	})
	visuals := make([]*core.Visual, len(ids))
	for i, id := range ids {
		visuals[i], _ = core.Get[*core.Visual](w, id)
	}
	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return visuals[order[a]].Z < visuals[order[b]].Z
	})

	var errs []error
	for _, i := range order {
		pos, _ := core.Get[*core.Position](w, ids[i])
		v := visuals[i]
		x, y := pos.X+v.OffsetX, pos.Y+v.OffsetY
		if !v.Fixed {
			x += camX
			y += camY
		}
		if err := paint(p, assets, v, x, y); err != nil {
			errs = append(errs, fmt.Errorf("entity %d: %w", ids[i], err))
		}
	}

	for _, id := range w.Query(core.CompSpacecraft, core.CompPosition, core.CompVisual) {
		pos, _ := core.Get[*core.Position](w, id)
		v, _ := core.Get[*core.Visual](w, id)
		craft, _ := core.Get[*core.Spacecraft](w, id)
		x, y := pos.X+camX, pos.Y+camY
		if err := paintCraft(p, assets, v, craft, x, y); err != nil {
			errs = append(errs, fmt.Errorf("spacecraft %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func paint(p Painter, assets AssetResolver, v *core.Visual, x, y float64) error {
	switch v.Kind {
	case core.VisualCircle:
		p.FillCircle(x, y, v.Radius, v.Color)
	case core.VisualRect:
		p.FillRect(x, y, v.Width, v.Height, v.Color)
	case core.VisualText:
		font, err := ParseFont(v.Font)
		if err != nil {
			return err
		}
		p.Text(v.Text, x, y, font, v.Color)
	case core.VisualSprite:
		a, err := resolve(assets, v.Sprite)
		if err != nil {
			return err
		}
		p.Image(a, x, y)
	default:
		return fmt.Errorf("unknown visual kind %s", v.Kind)
	}
	return nil
}

// The craft is centre-anchored. Its sprite is drawn nose-down, so a quarter
// turn back from the heading points the nose along the velocity.
func paintCraft(p Painter, assets AssetResolver, v *core.Visual, craft *core.Spacecraft, x, y float64) error {
	if v.Kind != core.VisualSprite {
		return paint(p, assets, v, x+v.OffsetX, y+v.OffsetY)
	}
	a, err := resolve(assets, v.Sprite)
	if err != nil {
		return err
	}
	p.ImageRotated(a, x, y, craft.Angle-math.Pi/2)
	return nil
}

func resolve(assets AssetResolver, id string) (Asset, error) {
	if assets == nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	return assets.Resolve(id)
}
