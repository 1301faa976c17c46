package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// target is a sprite slot the game loads, at the size the levels expect
type target struct {
	name string
	w, h int
}

var targets = []target{
	{"space", 1280, 800},
	{"earth", 200, 200},
	{"mars", 120, 120},
	{"moon", 60, 60},
	{"spaceship", 40, 56},
}

// resizeImage loads a PNG or WebP, resizes to target dimensions, and saves
// it as PNG
func resizeImage(src, dst string, tw, th int) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	srcImg, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	dstImg := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), xdraw.Over, nil)

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, dstImg)
}

// findSource looks for <name>.png, then <name>.webp
func findSource(dir, name string) (string, bool) {
	for _, ext := range []string{".png", ".webp"} {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func main() {
	srcDir := flag.String("src", "", "directory with replacement art named after the sprites (earth.png, moon.webp, ...)")
	outDir := flag.String("out", "assets", "assets directory to write into")
	flag.Parse()
	if *srcDir == "" {
		fmt.Fprintln(os.Stderr, "usage: import_assets -src <dir> [-out assets]")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	imported := 0
	for _, t := range targets {
		src, ok := findSource(*srcDir, t.name)
		if !ok {
			fmt.Printf("  ⚠ Missing: %s (keeping the generated sprite)\n", t.name)
			continue
		}
		dst := filepath.Join(*outDir, t.name+".png")
		if err := resizeImage(src, dst, t.w, t.h); err != nil {
			fmt.Printf("  ✗ %s: %v\n", dst, err)
			continue
		}
		fmt.Printf("  → %s (%dx%d)\n", dst, t.w, t.h)
		imported++
	}
	fmt.Printf("✅ Imported %d of %d sprites\n", imported, len(targets))
}
