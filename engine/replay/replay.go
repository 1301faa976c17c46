package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/1siamBot/orbital-bus/engine/input"
)

// Recorder streams every tick a session simulates. It satisfies
// game.TickObserver.
type Recorder struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	frames int
	err    error
}

// NewRecorder writes a replay to w
func NewRecorder(w io.Writer) (*Recorder, error) {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw); err != nil {
		return nil, err
	}
	return &Recorder{w: bw}, nil
}

// CreateRecorder records into a new file at path
func CreateRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := NewRecorder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// ObserveTick appends one frame. The first write error sticks and is
// returned by Close.
func (r *Recorder) ObserveTick(level int, tick uint64, dt float64, c input.Controls) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	f := Frame{Level: level, Tick: tick, Dt: dt, Thrust: c.Thrust, Brake: c.Brake, Primary: c.Primary}
	r.err = f.Encode(r.w)
	r.frames++
}

// Frames returns how many ticks were recorded
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Close flushes the stream and closes the file it was created with
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.err
	if ferr := r.w.Flush(); err == nil {
		err = ferr
	}
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Replay is a decoded recording
type Replay struct {
	Frames []Frame
}

// Read decodes a whole replay stream
func Read(r io.Reader) (*Replay, error) {
	br := bufio.NewReader(r)
	if err := readHeader(br); err != nil {
		return nil, err
	}
	rp := &Replay{}
	for {
		var f Frame
		err := f.Decode(br)
		if errors.Is(err, io.EOF) {
			return rp, nil
		}
		if err != nil {
			return rp, fmt.Errorf("frame %d: %w", len(rp.Frames), err)
		}
		rp.Frames = append(rp.Frames, f)
	}
}

// Load reads the replay file at path
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Level is the level the recording starts on, or 0 if it is empty
func (rp *Replay) Level() int {
	if len(rp.Frames) == 0 {
		return 0
	}
	return rp.Frames[0].Level
}
