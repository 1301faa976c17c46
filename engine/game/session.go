package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/input"
	"github.com/1siamBot/orbital-bus/engine/level"
	"github.com/1siamBot/orbital-bus/engine/logger"
	"github.com/1siamBot/orbital-bus/engine/progress"
	"github.com/1siamBot/orbital-bus/engine/render"
	"github.com/1siamBot/orbital-bus/engine/systems"
)

// Navigator is what the session asks for once a run is over and the player
// clicks through the banner.
type Navigator interface {
	ShowLevelSelect()
	ReloadLevel()
}

// TickObserver sees every simulated tick with the controls it ran on
type TickObserver interface {
	ObserveTick(level int, tick uint64, dt float64, c input.Controls)
}

// Options sizes the play field and injects the clock
type Options struct {
	ScreenW      float64
	ScreenH      float64
	CameraMargin float64
	Clock        func() time.Time // nil means time.Now
}

// Session drives one level at a time: it owns the world, its frame loop, the
// event bus and the input cell, and routes the post-run click.
type Session struct {
	RunID    uuid.UUID
	Level    int
	World    *core.World
	Loop     *core.GameLoop
	Bus      *core.EventBus
	Controls *input.Cell
	Pad      input.Pad
	Observer TickObserver // optional

	opts     Options
	catalog  *level.Catalog
	assets   level.Requester
	tracker  *progress.Tracker
	nav      Navigator
	log      *logrus.Entry
	drawWarn *logger.Throttle
}

// NewSession wires a session; nothing is loaded until Start
func NewSession(opts Options, catalog *level.Catalog, assets level.Requester, tracker *progress.Tracker, nav Navigator) *Session {
	s := &Session{
		Bus:      core.NewEventBus(),
		Controls: input.NewCell(),
		Pad:      input.DefaultPad(opts.ScreenW, opts.ScreenH),
		opts:     opts,
		catalog:  catalog,
		assets:   assets,
		tracker:  tracker,
		nav:      nav,
		log:      logger.Component("session"),
		drawWarn: logger.NewThrottle(2*time.Second, 3),
	}
	for _, t := range []core.EventType{core.EvtLevelLoaded, core.EvtCrashed, core.EvtLevelComplete, core.EvtFuelEmpty} {
		s.Bus.On(t, s.logEvent)
	}
	return s
}

// Start loads level id into a fresh world and starts its clock
func (s *Session) Start(id int) error {
	w, err := s.catalog.Build(id, s.assets, s.Pad)
	if err != nil {
		return fmt.Errorf("load level %d: %w", id, err)
	}
	systems.Install(w, systems.Deps{
		Controls:     s.Controls,
		Bus:          s.Bus,
		ScreenW:      s.opts.ScreenW,
		ScreenH:      s.opts.ScreenH,
		CameraMargin: s.opts.CameraMargin,
	})

	s.Level = id
	s.World = w
	s.RunID = uuid.New()
	s.Loop = core.NewGameLoop(w, s.opts.Clock)
	s.Loop.Play()
	s.Controls.Set(false, false)
	s.Controls.TakePrimary()

	if s.tracker != nil && s.tracker.Unlocked(id) {
		if err := s.tracker.Select(context.Background(), id); err != nil {
			s.log.WithError(err).Warn("could not save current level")
		}
	}

	s.Bus.Clear()
	s.Bus.Emit(core.Event{Type: core.EvtLevelLoaded, Payload: id})
	s.Bus.Dispatch()
	return nil
}

// Restart reloads the current level from scratch
func (s *Session) Restart() error {
	return s.Start(s.Level)
}

// Frame runs one host frame against the wall clock
func (s *Session) Frame() {
	if s.Loop == nil {
		return
	}
	c := s.Controls.Snapshot()
	// a skipped frame leaves any click pending for the next real tick
	if s.Loop.Update() {
		s.observe(c)
		s.afterTick()
	}
}

// Advance runs one tick with a fixed dt
func (s *Session) Advance(dt float64) {
	if s.Loop == nil {
		return
	}
	c := s.Controls.Snapshot()
	s.Loop.Step(dt)
	s.observe(c)
	s.afterTick()
}

func (s *Session) observe(c input.Controls) {
	if s.Observer != nil {
		s.Observer.ObserveTick(s.Level, s.Loop.CurrentTick(), s.Loop.LastDt, c)
	}
}

func (s *Session) afterTick() {
	s.Bus.Dispatch()

	clicked := s.Controls.TakePrimary()
	rs := s.RunState()
	if rs == nil || !rs.Finished || !clicked {
		return
	}

	if rs.Crashed {
		s.nav.ReloadLevel()
		return
	}
	// the last level has nothing left to unlock
	if _, more := s.catalog.Next(s.Level); more && s.tracker != nil {
		if err := s.tracker.Complete(context.Background()); err != nil {
			s.log.WithError(err).Error("could not save progress")
		}
	}
	s.nav.ShowLevelSelect()
}

// RunState returns the current attempt's outcome flags
func (s *Session) RunState() *core.RunState {
	if s.World == nil {
		return nil
	}
	_, rs, _ := core.First[*core.RunState](s.World)
	return rs
}

// Draw paints the current world. Visuals that cannot be painted yet are
// skipped; the error is logged at a throttled rate and returned.
func (s *Session) Draw(p render.Painter, assets render.AssetResolver) error {
	if s.World == nil {
		return nil
	}
	err := render.Compose(s.World, p, assets)
	if err != nil {
		s.drawWarn.Warn(s.log.WithError(err), "some visuals were skipped")
	}
	return err
}

func (s *Session) logEvent(e core.Event) {
	s.log.WithFields(logrus.Fields{
		"event":  e.Type.String(),
		"level":  s.Level,
		"run_id": s.RunID.String(),
		"tick":   e.Tick,
	}).Info("game event")
}
