package level

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/1siamBot/orbital-bus/engine/render"
)

//go:embed levels.json
var builtin []byte

// ErrUnknownLevel is returned when a level id is not in the catalog
var ErrUnknownLevel = errors.New("unknown level")

// PlanetDef is a reusable planet kind referenced by placements
type PlanetDef struct {
	ID       string  `json:"id"`
	Sprite   string  `json:"sprite"`
	Radius   float64 `json:"radius"`
	Mass     float64 `json:"mass"`
	Fixed    bool    `json:"fixed"`
	Passable bool    `json:"passable"` // pulls but cannot be crashed into
}

// PlanetPlacement puts a planet definition into a world. Orbiting planets may
// override their launch velocity.
type PlanetPlacement struct {
	Ref string   `json:"ref"`
	X   float64  `json:"x"`
	Y   float64  `json:"y"`
	VX  *float64 `json:"vx,omitempty"`
	VY  *float64 `json:"vy,omitempty"`
}

// TextDef is a fixed-screen label
type TextDef struct {
	Text  string  `json:"text"`
	Color string  `json:"color"`
	Font  string  `json:"font"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// ShipDef is the spacecraft's starting state
type ShipDef struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Fuel float64 `json:"fuel"`
}

// EndDef is the centre of the end zone
type EndDef struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WorldDef describes one level
type WorldDef struct {
	ID         int               `json:"id"`
	Background bool              `json:"background"`
	Planets    []PlanetPlacement `json:"planets"`
	Texts      []TextDef         `json:"texts,omitempty"`
	Spaceship  *ShipDef          `json:"spaceship"`
	End        *EndDef           `json:"end"`
}

// Catalog is the full level configuration
type Catalog struct {
	Planets []PlanetDef `json:"planets"`
	Worlds  []WorldDef  `json:"worlds"`

	planets map[string]*PlanetDef
	worlds  map[int]*WorldDef
}

// ValidationError lists every problem found in a catalog
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid level catalog: " + strings.Join(e.Problems, "; ")
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// LoadFile reads a catalog from disk
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode level catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	c.planets = make(map[string]*PlanetDef, len(c.Planets))
	for i := range c.Planets {
		p := &c.Planets[i]
		switch {
		case p.ID == "":
			add("planet #%d has no id", i)
			continue
		case c.planets[p.ID] != nil:
			add("planet %q defined twice", p.ID)
		}
		if p.Sprite == "" {
			add("planet %q has no sprite", p.ID)
		}
		if p.Mass <= 0 {
			add("planet %q: mass must be positive", p.ID)
		}
		if p.Radius < 0 {
			add("planet %q: radius must not be negative", p.ID)
		}
		c.planets[p.ID] = p
	}

	c.worlds = make(map[int]*WorldDef, len(c.Worlds))
	for i := range c.Worlds {
		wd := &c.Worlds[i]
		if wd.ID <= 0 {
			add("world #%d: id must be positive", i)
			continue
		}
		if c.worlds[wd.ID] != nil {
			add("world %d defined twice", wd.ID)
		}
		c.worlds[wd.ID] = wd

		for _, pl := range wd.Planets {
			if c.planets[pl.Ref] == nil {
				add("world %d: unknown planet %q", wd.ID, pl.Ref)
			}
		}
		if wd.Spaceship == nil {
			add("world %d: missing spaceship", wd.ID)
		} else if wd.Spaceship.Fuel < 0 {
			add("world %d: negative fuel", wd.ID)
		}
		if wd.End == nil {
			add("world %d: missing end zone", wd.ID)
		}
		for j, t := range wd.Texts {
			if _, err := render.ParseColor(t.Color); err != nil {
				add("world %d text #%d: %v", wd.ID, j, err)
			}
			if _, err := render.ParseFont(t.Font); err != nil {
				add("world %d text #%d: %v", wd.ID, j, err)
			}
		}
	}
	if len(c.worlds) == 0 && len(problems) == 0 {
		add("no worlds")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// IDs returns the level ids in ascending order
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.worlds))
	for id := range c.worlds {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Has reports whether id names a level
func (c *Catalog) Has(id int) bool {
	_, ok := c.worlds[id]
	return ok
}

// Next returns the level after id, or false if id is the last one
func (c *Catalog) Next(id int) (int, bool) {
	for _, n := range c.IDs() {
		if n > id {
			return n, true
		}
	}
	return 0, false
}
