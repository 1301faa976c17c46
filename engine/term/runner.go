package term

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/game"
	"github.com/1siamBot/orbital-bus/engine/input"
	"github.com/1siamBot/orbital-bus/engine/level"
	"github.com/1siamBot/orbital-bus/engine/logger"
	"github.com/1siamBot/orbital-bus/engine/render"
)

// FrameInterval is the terminal refresh period, about 60 FPS
const FrameInterval = 16 * time.Millisecond

var (
	spaceBg   = color.RGBA{4, 6, 16, 255}
	statusBg  = color.NRGBA{20, 24, 40, 255}
	statusFg  = color.NRGBA{200, 200, 210, 255}
	shipGlyph = color.NRGBA{255, 240, 120, 255}
)

// Runner plays a session inside a terminal. There is no level select: a
// finished level moves on to the next one and a crash retries.
type Runner struct {
	Screen  tcell.Screen
	Session *game.Session
	Catalog *level.Catalog
	Assets  render.AssetResolver
	Now     func() time.Time

	grid    *Grid
	painter *Painter
	latch   Latch

	mouseDown bool
	mouse     input.Pointer
	pressed   []input.Pointer

	log *logrus.Entry
}

// NewRunner sizes the cell grid from the screen. Each cell stands for
// cellW x cellH pixels of the play field.
func NewRunner(screen tcell.Screen, catalog *level.Catalog, assets render.AssetResolver, cellW, cellH int) *Runner {
	w, h := screen.Size()
	grid := NewGrid(w, h)
	return &Runner{
		Screen:  screen,
		Catalog: catalog,
		Assets:  assets,
		Now:     time.Now,
		grid:    grid,
		painter: &Painter{
			Grid:      grid,
			CellW:     float64(cellW),
			CellH:     float64(cellH),
			ShipColor: shipGlyph,
		},
		log: logger.Component("term"),
	}
}

// Attach connects the session the runner drives
func (r *Runner) Attach(s *game.Session) {
	r.Session = s
}

// ShowLevelSelect advances to the next level, wrapping to the first
func (r *Runner) ShowLevelSelect() {
	next, ok := r.Catalog.Next(r.Session.Level)
	if !ok {
		next = r.Catalog.IDs()[0]
	}
	if err := r.Session.Start(next); err != nil {
		r.log.WithError(err).WithField("level", next).Error("cannot start level")
	}
	r.latch.Reset()
}

// ReloadLevel retries the current level
func (r *Runner) ReloadLevel() {
	if err := r.Session.Restart(); err != nil {
		r.log.WithError(err).Error("cannot restart level")
	}
	r.latch.Reset()
}

// Run polls terminal events and drives frames until the player quits or ctx
// is cancelled
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.Screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !r.Handle(ev) {
				return nil
			}
		case <-ticker.C:
			r.Frame()
		}
	}
}

// Handle applies one terminal event and reports whether to keep running
func (r *Runner) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch a := Classify(ev); a {
		case ActThrust, ActBrake:
			r.latch.Press(a, r.Now())
		case ActPrimary:
			r.Session.Controls.Press()
		case ActRestart:
			r.ReloadLevel()
		case ActQuit:
			return false
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		p := input.Pointer{
			X: (float64(x) + 0.5) * r.painter.CellW,
			Y: (float64(y) + 0.5) * r.painter.CellH,
		}
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !r.mouseDown {
			r.pressed = append(r.pressed, p)
		}
		r.mouseDown, r.mouse = down, p
	case *tcell.EventResize:
		r.grid.Resize(r.Screen.Size())
		r.Screen.Sync()
	}
	return true
}

// Frame feeds input to the session, ticks it and redraws
func (r *Runner) Frame() {
	if r.Session == nil {
		return
	}
	var held []input.Pointer
	if r.mouseDown {
		held = []input.Pointer{r.mouse}
	}
	r.latch.Apply(r.Session.Controls, r.Session.Pad, r.Now(), held, r.pressed)
	r.pressed = r.pressed[:0]

	r.Session.Frame()
	r.Draw()
}

// Draw paints the world and the status line, then shows the screen
func (r *Runner) Draw() {
	r.grid.Clear(spaceBg)
	// skipped visuals are logged by the session
	_ = r.Session.Draw(r.painter, r.Assets)
	r.drawStatus()
	r.grid.Flush(r.Screen)
	r.Screen.Show()
}

func (r *Runner) drawStatus() {
	w, h := r.grid.Size()
	if h == 0 {
		return
	}
	fuel := 0.0
	if r.Session.World != nil {
		if _, craft, ok := core.First[*core.Spacecraft](r.Session.World); ok {
			fuel = craft.FuelRatio() * 100
		}
	}
	line := fmt.Sprintf(" level %d  fuel %3.0f%%  w/↑ thrust  s/↓ brake  space continue  r restart  q quit",
		r.Session.Level, fuel)

	row := h - 1
	for x := 0; x < w; x++ {
		r.grid.BlendBg(x, row, statusBg)
	}
	x := 0
	for _, ch := range line {
		if x >= w {
			break
		}
		r.grid.SetGlyph(x, row, ch, statusFg)
		x++
	}
}
