package replay

import (
	"errors"
	"fmt"

	"github.com/1siamBot/orbital-bus/engine/game"
)

// ErrDiverged means playback reached a frame recorded on another level or
// tick than the one the session is on
var ErrDiverged = errors.New("replay diverged")

// Play starts s on the recording's first level and feeds it every frame with
// its recorded timestep. The session's navigator moves between levels just
// as it did live, so a frame for a different level or out of tick order means
// the run diverged. A frame back at tick 1 of the current level restarts it.
func Play(s *game.Session, rp *Replay) error {
	if len(rp.Frames) == 0 {
		return nil
	}
	if err := s.Start(rp.Level()); err != nil {
		return err
	}
	for i, f := range rp.Frames {
		// tick 1 on a running level is a restart the navigator never saw
		if f.Tick == 1 && f.Level == s.Level && s.Loop.CurrentTick() > 0 {
			if err := s.Restart(); err != nil {
				return err
			}
		}
		if f.Level != s.Level {
			return fmt.Errorf("%w: frame %d is on level %d, session is on %d", ErrDiverged, i, f.Level, s.Level)
		}
		if want := s.Loop.CurrentTick() + 1; f.Tick != want {
			return fmt.Errorf("%w: frame %d is tick %d, session is at tick %d", ErrDiverged, i, f.Tick, want)
		}
		s.Controls.Set(f.Thrust, f.Brake)
		if f.Primary {
			s.Controls.Press()
		}
		s.Advance(f.Dt)
	}
	return nil
}
