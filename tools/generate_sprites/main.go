package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Sprite sizes match the planet radii in the built-in levels
const (
	spaceW, spaceH = 1280, 800
	earthSize      = 200
	marsSize       = 120
	moonSize       = 60
	shipW, shipH   = 40, 56
)

func main() {
	out := flag.String("out", "assets", "output directory")
	ss := flag.Int("ss", 3, "supersampling factor for sprites")
	flag.Parse()

	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// the backdrop is noise and points; no need to supersample it
	space := image.NewRGBA(image.Rect(0, 0, spaceW, spaceH))
	spaceBackground(space)
	savePNG(filepath.Join(*out, "space.png"), space)

	generateSprite(*out, "earth", earthSize, earthSize, *ss, earthPixel)
	generateSprite(*out, "mars", marsSize, marsSize, *ss, marsPixel)
	generateSprite(*out, "moon", moonSize, moonSize, *ss, moonPixel)
	generateSprite(*out, "spaceship", shipW, shipH, *ss, shipPixel)

	fmt.Println("✅ All sprites generated in", *out)
}

// pixelFunc colours one point of a sprite given in [-1, 1] on both axes
type pixelFunc func(u, v float64) color.RGBA

// generateSprite renders fn at ss times the target size and filters it down
func generateSprite(dir, name string, w, h, ss int, fn pixelFunc) {
	big := image.NewRGBA(image.Rect(0, 0, w*ss, h*ss))
	bw, bh := float64(w*ss), float64(h*ss)
	for y := 0; y < h*ss; y++ {
		for x := 0; x < w*ss; x++ {
			u := (float64(x)+0.5)/bw*2 - 1
			v := (float64(y)+0.5)/bh*2 - 1
			blendPixel(big, x, y, fn(u, v))
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(img, img.Bounds(), big, big.Bounds(), xdraw.Src, nil)
	savePNG(filepath.Join(dir, name+".png"), img)
}

func savePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
	fmt.Println("  →", path)
}

// ==================== BACKGROUND ====================

func spaceBackground(img *image.RGBA) {
	top := color.RGBA{6, 8, 22, 255}
	bottom := color.RGBA{14, 10, 30, 255}
	nebula := color.RGBA{70, 40, 110, 255}
	for y := 0; y < spaceH; y++ {
		row := lerpColor(top, bottom, float64(y)/spaceH)
		for x := 0; x < spaceW; x++ {
			n := fbm(float64(x)/260, float64(y)/260, 5, 0.55, 4.2)
			t := clampF64((n-0.55)*2.2, 0, 0.45)
			img.SetRGBA(x, y, lerpColor(row, nebula, t))
		}
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 900; i++ {
		x, y := rng.Intn(spaceW), rng.Intn(spaceH)
		b := 120 + rng.Intn(136)
		star := color.RGBA{uint8(b), uint8(b), uint8(min(255, b+20)), 255}
		blendPixel(img, x, y, star)
		// a few bright ones get a small cross
		if b > 240 {
			halo := star
			halo.A = 90
			blendPixel(img, x-1, y, halo)
			blendPixel(img, x+1, y, halo)
			blendPixel(img, x, y-1, halo)
			blendPixel(img, x, y+1, halo)
		}
	}
}

// ==================== PLANETS ====================

func earthPixel(u, v float64) color.RGBA {
	n, ok := sphereNormal(u, v)
	if !ok {
		return color.RGBA{}
	}
	land := fbm(u*2.6+3, v*2.6+1, 5, 0.5, 1)
	base := color.RGBA{30, 80, 170, 255}
	rough := 0.35
	if land > 0.55 {
		base = lerpColor(color.RGBA{60, 140, 60, 255}, color.RGBA{150, 130, 80, 255}, (land-0.55)*4)
		rough = 0.9
	}
	if math.Abs(v) > 0.86 {
		base = color.RGBA{235, 240, 250, 255}
	}
	c := shade(Material{BaseColor: base, Roughness: rough}, n)

	clouds := fbm(u*3.5, v*5, 4, 0.6, 9)
	c = lerpColor(c, shade(Material{BaseColor: color.RGBA{250, 250, 255, 255}, Roughness: 1}, n), clampF64((clouds-0.58)*3, 0, 0.8))

	// thin atmosphere at the limb
	rim := math.Pow(1-n.z, 3)
	return lerpColor(c, color.RGBA{120, 180, 255, 255}, rim*0.7)
}

func marsPixel(u, v float64) color.RGBA {
	n, ok := sphereNormal(u, v)
	if !ok {
		return color.RGBA{}
	}
	t := fbm(u*3+7, v*3, 5, 0.55, 2)
	base := lerpColor(color.RGBA{190, 90, 45, 255}, color.RGBA{120, 50, 30, 255}, (t-0.4)*2)
	crater := worley(u+1, v+1, 0.35, 5)
	if crater < 0.18 {
		base = lerpColor(base, color.RGBA{90, 40, 25, 255}, 0.5)
	}
	return shade(Material{BaseColor: base, Roughness: 0.95}, n)
}

func moonPixel(u, v float64) color.RGBA {
	n, ok := sphereNormal(u, v)
	if !ok {
		return color.RGBA{}
	}
	t := fbm(u*3, v*3, 4, 0.5, 3)
	base := lerpColor(color.RGBA{190, 190, 195, 255}, color.RGBA{120, 120, 128, 255}, t)
	crater := worley(u+1, v+1, 0.4, 11)
	switch {
	case crater < 0.15:
		base = lerpColor(base, color.RGBA{80, 80, 88, 255}, 0.6)
	case crater < 0.2:
		base = lerpColor(base, color.RGBA{230, 230, 235, 255}, 0.4)
	}
	return shade(Material{BaseColor: base, Roughness: 1}, n)
}

// ==================== SPACECRAFT ====================

// shipPixel draws the bus nose-down: the nose sits at v = 1 and the fins at
// the top
func shipPixel(u, v float64) color.RGBA {
	// fins
	if v < -0.35 && v > -0.98 {
		half := 0.95 - 1.0*(v+0.98)
		if math.Abs(u) < half && math.Abs(u) > 0.25 {
			return shade(Material{BaseColor: color.RGBA{170, 40, 40, 255}, Roughness: 0.6}, vec3{u * 0.3, -0.2, 1})
		}
	}

	// hull: a capsule that narrows into the nose
	half := 0.48
	if v > 0.25 {
		half *= math.Sqrt(math.Max(0, 1-math.Pow((v-0.25)/0.75, 2)))
	}
	if v < -0.92 || math.Abs(u) >= half {
		return color.RGBA{}
	}
	nx := u / half
	normal := vec3{nx, 0, math.Sqrt(math.Max(0, 1-nx*nx))}
	base := color.RGBA{245, 196, 40, 255}

	// passenger windows down the spine, cockpit in the nose
	for _, wy := range []float64{-0.45, -0.15, 0.15} {
		if math.Hypot(u, (v-wy)*0.9) < 0.15 {
			base = color.RGBA{40, 70, 120, 255}
		}
	}
	if v > 0.5 && v < 0.8 && math.Abs(u) < half*0.55 {
		base = color.RGBA{120, 200, 240, 255}
	}
	// engine bell
	if v < -0.78 {
		base = color.RGBA{90, 90, 100, 255}
	}
	return shade(Material{BaseColor: base, Roughness: 0.4}, normal)
}
