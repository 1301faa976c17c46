package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellLastWriteWins(t *testing.T) {
	c := NewCell()
	c.SetThrust(true)
	c.SetThrust(false)
	c.SetThrust(true)
	c.SetBrake(true)

	got := c.Snapshot()
	assert.True(t, got.Thrust)
	assert.True(t, got.Brake)
	assert.False(t, got.Primary)
}

func TestPrimaryEdgeConsumedOnce(t *testing.T) {
	c := NewCell()
	c.Press()
	c.Press()

	assert.True(t, c.Snapshot().Primary, "snapshot must not consume the edge")
	assert.True(t, c.TakePrimary())
	assert.False(t, c.TakePrimary())
}

func TestCellConcurrentWriter(t *testing.T) {
	c := NewCell()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			c.Set(i%2 == 0, i%3 == 0)
		}
	}()
	for i := 0; i < 1000; i++ {
		_ = c.Snapshot()
	}
	wg.Wait()

	// i = 999: odd, divisible by 3
	assert.Equal(t, Controls{Thrust: false, Brake: true}, c.Snapshot())
}

func TestPadApply(t *testing.T) {
	pad := DefaultPad(1280, 800)
	thrustCentre := Pointer{X: pad.Thrust.X + 10, Y: pad.Thrust.Y + 10}
	brakeCentre := Pointer{X: pad.Brake.X + 10, Y: pad.Brake.Y + 10}
	elsewhere := Pointer{X: 200, Y: 200}

	tests := []struct {
		name      string
		keyThrust bool
		keyBrake  bool
		held      []Pointer
		pressed   []Pointer
		want      Controls
	}{
		{"nothing", false, false, nil, nil, Controls{}},
		{"keyboard only", true, false, nil, nil, Controls{Thrust: true}},
		{"touch thrust", false, false, []Pointer{thrustCentre}, nil, Controls{Thrust: true}},
		{"touch both", false, false, []Pointer{thrustCentre, brakeCentre}, nil, Controls{Thrust: true, Brake: true}},
		{"tap on pad is not primary", false, false, []Pointer{brakeCentre}, []Pointer{brakeCentre}, Controls{Brake: true}},
		{"click elsewhere", false, false, []Pointer{elsewhere}, []Pointer{elsewhere}, Controls{Primary: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCell()
			pad.Apply(c, tt.keyThrust, tt.keyBrake, tt.held, tt.pressed)
			assert.Equal(t, tt.want, c.Snapshot())
		})
	}
}

func TestPadHitEdges(t *testing.T) {
	pad := Pad{Thrust: Rect{X: 10, Y: 10, W: 10, H: 10}}
	assert.Equal(t, RegionThrust, pad.Hit(10, 10))
	assert.Equal(t, RegionNone, pad.Hit(20, 10), "right edge is exclusive")
	assert.Equal(t, RegionNone, pad.Hit(0, 0))
}
