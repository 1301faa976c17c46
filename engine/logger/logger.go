package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/1siamBot/orbital-bus/engine/config"
)

// Log is the process-wide logger. It is usable before Init with logrus
// defaults.
var Log = logrus.New()

// Init configures Log from cfg. A nil out writes to stdout; the terminal
// front-end passes a file so log lines do not scribble over the screen.
func Init(cfg config.LoggingConfig, out io.Writer) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(cfg.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   out == nil,
		})
	}

	if out == nil {
		out = os.Stdout
	}
	Log.SetOutput(out)
}

// Component returns an entry tagged with the calling subsystem
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

// Throttle rate-limits a log site that may fire every frame. Suppressed
// messages are counted and reported with the next one let through.
type Throttle struct {
	mu         sync.Mutex
	lim        *rate.Limiter
	suppressed int
}

// NewThrottle allows one message per interval, with the given burst
func NewThrottle(interval time.Duration, burst int) *Throttle {
	return &Throttle{lim: rate.NewLimiter(rate.Every(interval), burst)}
}

// Warn logs msg at warning level on e unless the throttle is saturated
func (t *Throttle) Warn(e *logrus.Entry, msg string) bool {
	t.mu.Lock()
	if !t.lim.Allow() {
		t.suppressed++
		t.mu.Unlock()
		return false
	}
	n := t.suppressed
	t.suppressed = 0
	t.mu.Unlock()

	if n > 0 {
		e = e.WithField("suppressed", n)
	}
	e.Warn(msg)
	return true
}
