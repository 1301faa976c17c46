package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/1siamBot/orbital-bus/engine/input"
)

// DefaultHold keeps a key "down" long enough to bridge the terminal's
// auto-repeat delay
const DefaultHold = 350 * time.Millisecond

// Latch turns key presses into held state. Terminals report no key-up, so a
// control counts as held until Hold passes without another press.
type Latch struct {
	Hold time.Duration

	thrustUntil time.Time
	brakeUntil  time.Time
}

// Action is what a key event asks the runner to do
type Action uint8

const (
	ActNone Action = iota
	ActThrust
	ActBrake
	ActPrimary
	ActRestart
	ActQuit
)

// Classify maps a key event to an action
func Classify(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActThrust
	case tcell.KeyDown:
		return ActBrake
	case tcell.KeyEnter:
		return ActPrimary
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return ActThrust
		case 's', 'S':
			return ActBrake
		case ' ':
			return ActPrimary
		case 'r', 'R':
			return ActRestart
		case 'q', 'Q':
			return ActQuit
		}
	}
	return ActNone
}

// Press records a thrust or brake press at now
func (l *Latch) Press(a Action, now time.Time) {
	hold := l.Hold
	if hold <= 0 {
		hold = DefaultHold
	}
	switch a {
	case ActThrust:
		l.thrustUntil = now.Add(hold)
	case ActBrake:
		l.brakeUntil = now.Add(hold)
	}
}

// Held reports which controls are still latched at now
func (l *Latch) Held(now time.Time) (thrust, brake bool) {
	return now.Before(l.thrustUntil), now.Before(l.brakeUntil)
}

// Reset releases both controls
func (l *Latch) Reset() {
	l.thrustUntil, l.brakeUntil = time.Time{}, time.Time{}
}

// Apply folds the latched keys and pointer state into the controls cell
func (l *Latch) Apply(c *input.Cell, pad input.Pad, now time.Time, held, pressed []input.Pointer) {
	thrust, brake := l.Held(now)
	pad.Apply(c, thrust, brake, held, pressed)
}
