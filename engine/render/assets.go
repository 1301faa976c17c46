package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	_ "golang.org/x/image/webp"
)

var (
	// ErrAssetPending means the asset was requested but is still decoding
	ErrAssetPending = errors.New("asset not loaded yet")
	// ErrAssetNotFound means the asset could not be read or decoded
	ErrAssetNotFound = errors.New("asset not found")
)

// AssetCache decodes images in the background on first reference. Resolve
// never blocks: until the decode finishes it reports ErrAssetPending.
type AssetCache struct {
	fsys    fs.FS
	convert func(image.Image) Asset

	mu      sync.Mutex
	entries map[string]*assetEntry
	wg      sync.WaitGroup
}

type assetEntry struct {
	done   bool
	img    image.Image
	handle Asset
	err    error
}

// NewAssetCache reads assets from fsys. convert turns a decoded image into the
// front-end's handle type and runs on the caller of Resolve, so GPU uploads
// stay on the render thread. A nil convert keeps the image.Image itself.
func NewAssetCache(fsys fs.FS, convert func(image.Image) Asset) *AssetCache {
	if convert == nil {
		convert = func(img image.Image) Asset { return img }
	}
	return &AssetCache{
		fsys:    fsys,
		convert: convert,
		entries: make(map[string]*assetEntry),
	}
}

// Request starts loading id if it is not already known
func (c *AssetCache) Request(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.requestLocked(id)
	}
}

func (c *AssetCache) requestLocked(id string) *assetEntry {
	if e, ok := c.entries[id]; ok {
		return e
	}
	e := &assetEntry{}
	c.entries[id] = e
	c.wg.Add(1)
	go c.load(id, e)
	return e
}

func (c *AssetCache) load(id string, e *assetEntry) {
	defer c.wg.Done()
	img, err := c.decode(id)

	c.mu.Lock()
	e.img, e.err, e.done = img, err, true
	c.mu.Unlock()
}

func (c *AssetCache) decode(id string) (image.Image, error) {
	f, err := c.fsys.Open(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetNotFound, id, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode %s: %v", ErrAssetNotFound, id, err)
	}
	return img, nil
}

// Resolve returns the handle for id, requesting it on first use
func (c *AssetCache) Resolve(id string) (Asset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.requestLocked(id)
	switch {
	case !e.done:
		return nil, fmt.Errorf("%w: %s", ErrAssetPending, id)
	case e.err != nil:
		return nil, e.err
	}
	if e.handle == nil {
		e.handle = c.convert(e.img)
		e.img = nil
	}
	return e.handle, nil
}

// Wait blocks until every requested asset has finished loading
func (c *AssetCache) Wait() {
	c.wg.Wait()
}

// AssetsDir locates the assets directory: next to the executable, then the
// source tree, then the working directory.
func AssetsDir() string {
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "assets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return "assets"
}
