package render

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultFamily is used when a font descriptor names only a size
const DefaultFamily = "sans"

// FontSpec is a parsed font descriptor such as "20pt Tsoonami"
type FontSpec struct {
	Size   float64 // pixels
	Family string
}

// ParseFont parses "<size><pt|px> [family]". Points convert at 96 dpi.
func ParseFont(desc string) (FontSpec, error) {
	fields := strings.Fields(desc)
	if len(fields) == 0 {
		return FontSpec{}, fmt.Errorf("empty font descriptor")
	}

	size := fields[0]
	scale := 1.0
	switch {
	case strings.HasSuffix(size, "pt"):
		size = strings.TrimSuffix(size, "pt")
		scale = 96.0 / 72.0
	case strings.HasSuffix(size, "px"):
		size = strings.TrimSuffix(size, "px")
	default:
		return FontSpec{}, fmt.Errorf("font %q: size needs a pt or px unit", desc)
	}
	n, err := strconv.ParseFloat(size, 64)
	if err != nil || n <= 0 {
		return FontSpec{}, fmt.Errorf("font %q: bad size", desc)
	}

	family := DefaultFamily
	if len(fields) > 1 {
		family = strings.Join(fields[1:], " ")
	}
	return FontSpec{Size: n * scale, Family: family}, nil
}
