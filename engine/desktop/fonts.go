package desktop

import (
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/1siamBot/orbital-bus/engine/logger"
	"github.com/1siamBot/orbital-bus/engine/render"
)

type faceKey struct {
	family string
	size   float64
}

// FontCache turns font descriptors into ebiten faces. Families without a
// bundled font map onto the Go fonts.
type FontCache struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]text.Face
}

func NewFontCache() *FontCache {
	return &FontCache{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]text.Face),
	}
}

func fontData(family string) (string, []byte) {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "mono"):
		return "mono", gomono.TTF
	case strings.Contains(f, "bold"), strings.Contains(f, "tsoonami"):
		return "bold", gobold.TTF
	}
	return "regular", goregular.TTF
}

// Face returns a face for spec, or nil if the font could not be loaded
func (c *FontCache) Face(spec render.FontSpec) text.Face {
	name, data := fontData(spec.Family)
	key := faceKey{family: name, size: spec.Size}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[key]; ok {
		return f
	}

	otf, ok := c.fonts[name]
	if !ok {
		var err error
		otf, err = opentype.Parse(data)
		if err != nil {
			logger.Component("desktop").WithError(err).WithField("font", name).Error("parse font")
			return nil
		}
		c.fonts[name] = otf
	}
	xf, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		logger.Component("desktop").WithError(err).WithField("font", name).Error("create face")
		return nil
	}
	face := text.NewGoXFace(xf)
	c.faces[key] = face
	return face
}
