package main

import (
	"image"
	"image/color"
	"math"
)

// ==================== LIGHTING ====================

// light comes from the upper left, slightly towards the viewer
var lightDir = vec3{-0.6, -0.5, 0.62}

type vec3 struct{ x, y, z float64 }

func (v vec3) normalize() vec3 {
	l := math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
	if l == 0 {
		return vec3{0, 0, 1}
	}
	return vec3{v.x / l, v.y / l, v.z / l}
}

func (v vec3) dot(o vec3) float64 { return v.x*o.x + v.y*o.y + v.z*o.z }

// Material describes how a surface answers the light
type Material struct {
	BaseColor color.RGBA
	Roughness float64
}

func shade(mat Material, normal vec3) color.RGBA {
	light := lightDir.normalize()
	n := normal.normalize()
	diffuse := math.Max(0, n.dot(light))
	half := vec3{light.x, light.y, light.z + 1}.normalize()
	specular := math.Pow(math.Max(0, n.dot(half)), 2+(1-mat.Roughness)*60) * (1 - mat.Roughness) * 0.6
	lit := 0.08 + diffuse*0.92
	r := clampF64(float64(mat.BaseColor.R)/255*lit+specular, 0, 1)
	g := clampF64(float64(mat.BaseColor.G)/255*lit+specular*0.95, 0, 1)
	b := clampF64(float64(mat.BaseColor.B)/255*lit+specular*0.9, 0, 1)
	return color.RGBA{cu8(r * 255), cu8(g * 255), cu8(b * 255), mat.BaseColor.A}
}

// sphereNormal returns the surface normal of a unit sphere seen head-on at
// (u, v) in [-1, 1], and false outside the disc
func sphereNormal(u, v float64) (vec3, bool) {
	d := u*u + v*v
	if d > 1 {
		return vec3{}, false
	}
	return vec3{u, v, math.Sqrt(1 - d)}, true
}

// ==================== NOISE ====================

func fbm(x, y float64, octaves int, persistence, seed float64) float64 {
	total, amp, freq, maxV := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += valueNoise(x*freq+seed*17.3, y*freq+seed*31.7) * amp
		maxV += amp
		amp *= persistence
		freq *= 2.0
	}
	return total / maxV
}

func valueNoise(x, y float64) float64 {
	ix, iy := int(math.Floor(x)), int(math.Floor(y))
	fx, fy := x-math.Floor(x), y-math.Floor(y)
	fx = fx * fx * (3.0 - 2.0*fx)
	fy = fy * fy * (3.0 - 2.0*fy)
	return lerp64(
		lerp64(hashF(ix, iy), hashF(ix+1, iy), fx),
		lerp64(hashF(ix, iy+1), hashF(ix+1, iy+1), fx),
		fy,
	)
}

func hashF(x, y int) float64 {
	h := x*374761393 + y*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h = h ^ (h >> 16)
	return float64(h&0x7FFFFFFF) / float64(0x7FFFFFFF)
}

// worley is the distance to the nearest jittered cell point, used for craters
func worley(x, y, scale float64, seed int) float64 {
	px, py := x/scale, y/scale
	ix, iy := int(math.Floor(px)), int(math.Floor(py))
	minDist := 999.0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			cx := float64(ix+dx) + hashF(ix+dx+seed, iy+dy+seed*3)
			cy := float64(iy+dy) + hashF(ix+dx+seed*7, iy+dy+seed*11)
			d := math.Hypot(px-cx, py-cy)
			if d < minDist {
				minDist = d
			}
		}
	}
	return clampF64(minDist, 0, 1)
}

// ==================== UTILITIES ====================

func lerp64(a, b, t float64) float64 { return a*(1-t) + b*t }

func cu8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampF64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = clampF64(t, 0, 1)
	return color.RGBA{
		cu8(float64(a.R)*(1-t) + float64(b.R)*t),
		cu8(float64(a.G)*(1-t) + float64(b.G)*t),
		cu8(float64(a.B)*(1-t) + float64(b.B)*t),
		cu8(float64(a.A)*(1-t) + float64(b.A)*t),
	}
}

// blendPixel composites a straight-alpha colour over the premultiplied image
func blendPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{x, y}.In(img.Bounds())) || c.A == 0 {
		return
	}
	ex := img.RGBAAt(x, y)
	a := float64(c.A) / 255
	img.SetRGBA(x, y, color.RGBA{
		cu8(float64(ex.R)*(1-a) + float64(c.R)*a),
		cu8(float64(ex.G)*(1-a) + float64(c.G)*a),
		cu8(float64(ex.B)*(1-a) + float64(c.B)*a),
		cu8(float64(ex.A)*(1-a) + 255*a),
	})
}
