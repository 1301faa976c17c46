package core

import "time"

// MaxFrameStep is the stutter guard: a frame this long (or longer) is
// skipped instead of simulated, e.g. after the window was backgrounded.
const MaxFrameStep = 100 * time.Millisecond

// GameState represents the overall loop state
type GameState uint8

const (
	StatePaused GameState = iota
	StatePlaying
)

// GameLoop is the frame driver. Every host frame it measures the elapsed
// time and runs the world's systems once with that variable timestep.
type GameLoop struct {
	World    *World
	State    GameState
	Skipped  uint64  // frames dropped by the stutter guard
	LastDt   float64 // timestep of the most recent tick
	now      func() time.Time
	lastTime time.Time
}

// NewGameLoop creates a paused loop over w. A nil clock uses time.Now, whose
// readings carry a monotonic component.
func NewGameLoop(w *World, clock func() time.Time) *GameLoop {
	if clock == nil {
		clock = time.Now
	}
	return &GameLoop{
		World:    w,
		now:      clock,
		lastTime: clock(),
	}
}

// Update should be called once per host frame. It reports whether the
// pipeline ran.
func (gl *GameLoop) Update() bool {
	now := gl.now()
	frameTime := now.Sub(gl.lastTime)
	gl.lastTime = now

	if gl.State != StatePlaying {
		return false
	}
	if frameTime >= MaxFrameStep || frameTime < 0 {
		gl.Skipped++
		return false
	}

	gl.LastDt = frameTime.Seconds()
	gl.World.Tick(gl.LastDt)
	return true
}

// Step runs the pipeline once with a fixed dt, bypassing the clock.
// Scripted runs and tests use it.
func (gl *GameLoop) Step(dt float64) {
	gl.LastDt = dt
	gl.World.Tick(dt)
}

// Play starts or resumes the game
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = gl.now()
}

// Pause pauses the game
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
