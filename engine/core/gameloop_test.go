package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type dtRecorder struct {
	dts []float64
}

func (r *dtRecorder) Priority() int { return 0 }

func (r *dtRecorder) Update(_ *World, dt float64) { r.dts = append(r.dts, dt) }

func TestGameLoopRunsWithElapsedTime(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	w := NewWorld()
	rec := &dtRecorder{}
	w.AddSystem(rec)

	gl := NewGameLoop(w, clock.now)
	gl.Play()

	clock.advance(16 * time.Millisecond)
	assert.True(t, gl.Update())
	clock.advance(20 * time.Millisecond)
	assert.True(t, gl.Update())

	assert.InDeltaSlice(t, []float64{0.016, 0.020}, rec.dts, 1e-12)
	assert.InDelta(t, 0.020, gl.LastDt, 1e-12)
	assert.Equal(t, uint64(2), gl.CurrentTick())
}

func TestGameLoopStutterGuard(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	w := NewWorld()
	rec := &dtRecorder{}
	w.AddSystem(rec)

	gl := NewGameLoop(w, clock.now)
	gl.Play()

	clock.advance(MaxFrameStep)
	assert.False(t, gl.Update(), "a 100ms frame must be skipped")
	clock.advance(5 * time.Second)
	assert.False(t, gl.Update())

	// the next normal frame measures from the skipped frame, not from before it
	clock.advance(10 * time.Millisecond)
	assert.True(t, gl.Update())

	assert.Equal(t, uint64(2), gl.Skipped)
	assert.InDeltaSlice(t, []float64{0.010}, rec.dts, 1e-12)
}

func TestGameLoopPaused(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	w := NewWorld()
	gl := NewGameLoop(w, clock.now)

	clock.advance(10 * time.Millisecond)
	assert.False(t, gl.Update())
	assert.Equal(t, uint64(0), gl.CurrentTick())

	gl.Play()
	gl.Pause()
	clock.advance(10 * time.Millisecond)
	assert.False(t, gl.Update())
}

func TestEventBusDispatch(t *testing.T) {
	bus := NewEventBus()
	var got []EventType
	bus.On(EvtCrashed, func(e Event) { got = append(got, e.Type) })

	bus.Emit(Event{Type: EvtCrashed})
	bus.Emit(Event{Type: EvtLevelComplete})
	assert.Equal(t, 2, bus.Pending())
	assert.Empty(t, got)

	bus.Dispatch()
	assert.Equal(t, []EventType{EvtCrashed}, got)
	assert.Equal(t, 0, bus.Pending())

	var nilBus *EventBus
	assert.NotPanics(t, func() { nilBus.Emit(Event{Type: EvtCrashed}) })
}
