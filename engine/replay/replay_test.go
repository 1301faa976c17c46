package replay

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/game"
	"github.com/1siamBot/orbital-bus/engine/input"
	"github.com/1siamBot/orbital-bus/engine/level"
	"github.com/1siamBot/orbital-bus/engine/progress"
)

type navCounter struct {
	selects, reloads int
}

func (n *navCounter) ShowLevelSelect() { n.selects++ }
func (n *navCounter) ReloadLevel()     { n.reloads++ }

func newSession(t *testing.T) (*game.Session, *navCounter) {
	t.Helper()
	catalog, err := level.Default()
	require.NoError(t, err)
	tr, err := progress.Load(context.Background(), progress.NewMemoryKV())
	require.NoError(t, err)
	nav := &navCounter{}
	return game.NewSession(game.Options{ScreenW: 1280, ScreenH: 800}, catalog, nil, tr, nav), nav
}

func craft(t *testing.T, s *game.Session) core.Position {
	t.Helper()
	id, _, ok := core.First[*core.Spacecraft](s.World)
	require.True(t, ok)
	pos, _ := core.Get[*core.Position](s.World, id)
	return *pos
}

func TestFrameStream(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	require.NoError(t, err)
	rec.ObserveTick(3, 1, 0.016, input.Controls{Thrust: true})
	rec.ObserveTick(3, 2, 0.017, input.Controls{Brake: true, Primary: true})
	require.NoError(t, rec.Close())
	assert.Equal(t, 2, rec.Frames())

	rp, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []Frame{
		{Level: 3, Tick: 1, Dt: 0.016, Thrust: true},
		{Level: 3, Tick: 2, Dt: 0.017, Brake: true, Primary: true},
	}, rp.Frames)
	assert.Equal(t, 3, rp.Level())

	// cut the last frame short
	_, err = Read(bytes.NewReader(buf.Bytes()[:buf.Len()-3]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Read(bytes.NewReader([]byte("PNG\x00\x01")))
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestRecordAndPlayBack(t *testing.T) {
	live, liveNav := newSession(t)
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	require.NoError(t, err)
	live.Observer = rec

	require.NoError(t, live.Start(1))
	for i := 0; i < 180; i++ {
		live.Controls.SetThrust(i >= 47)
		live.Advance(1.0 / 60)
	}
	live.Controls.Press()
	live.Advance(1.0 / 60)
	require.NoError(t, rec.Close())
	require.True(t, live.RunState().Succeeded())
	require.Equal(t, 1, liveNav.selects)

	rp, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, rp.Frames, 181)
	assert.True(t, rp.Frames[180].Primary)

	ghost, ghostNav := newSession(t)
	require.NoError(t, Play(ghost, rp))
	assert.True(t, ghost.RunState().Succeeded())
	assert.Equal(t, craft(t, live), craft(t, ghost))
	assert.Equal(t, 1, ghostNav.selects)
}

func TestPlayFollowsRestart(t *testing.T) {
	live, _ := newSession(t)
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	require.NoError(t, err)
	live.Observer = rec

	require.NoError(t, live.Start(1))
	for i := 0; i < 30; i++ {
		live.Controls.SetThrust(true)
		live.Advance(1.0 / 60)
	}
	require.NoError(t, live.Restart())
	for i := 0; i < 180; i++ {
		live.Controls.SetThrust(i >= 47)
		live.Advance(1.0 / 60)
	}
	require.NoError(t, rec.Close())

	rp, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, rp.Frames, 210)
	assert.Equal(t, uint64(1), rp.Frames[30].Tick)

	ghost, _ := newSession(t)
	require.NoError(t, Play(ghost, rp))
	assert.Equal(t, craft(t, live), craft(t, ghost))
	assert.Equal(t, live.RunState().Succeeded(), ghost.RunState().Succeeded())
}

func TestPlayDetectsDivergence(t *testing.T) {
	s, _ := newSession(t)
	rp := &Replay{Frames: []Frame{
		{Level: 1, Tick: 1, Dt: 0.016},
		{Level: 2, Tick: 2, Dt: 0.016},
	}}
	assert.ErrorIs(t, Play(s, rp), ErrDiverged)

	s, _ = newSession(t)
	rp = &Replay{Frames: []Frame{
		{Level: 1, Tick: 1, Dt: 0.016},
		{Level: 1, Tick: 3, Dt: 0.016},
	}}
	assert.ErrorIs(t, Play(s, rp), ErrDiverged)

	assert.NoError(t, Play(s, &Replay{}))
}
