package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/1siamBot/orbital-bus/engine/core"
	"github.com/1siamBot/orbital-bus/engine/logger"
)

const sampleRate = beep.SampleRate(44100)

// SoundID identifies a sound effect
type SoundID string

const (
	SndCrash     SoundID = "crash"
	SndComplete  SoundID = "complete"
	SndFuelEmpty SoundID = "fuel_empty"
	SndLevelLoad SoundID = "level_loaded"
)

type note struct {
	freq float64 // 0 is a rest
	dur  time.Duration
}

// Short synthesized cues; no sample files are shipped
var cues = map[SoundID][]note{
	SndCrash:     {{220, 90 * time.Millisecond}, {147, 90 * time.Millisecond}, {98, 220 * time.Millisecond}},
	SndComplete:  {{523, 80 * time.Millisecond}, {659, 80 * time.Millisecond}, {784, 80 * time.Millisecond}, {1047, 200 * time.Millisecond}},
	SndFuelEmpty: {{440, 60 * time.Millisecond}, {0, 40 * time.Millisecond}, {440, 60 * time.Millisecond}},
	SndLevelLoad: {{392, 70 * time.Millisecond}, {523, 120 * time.Millisecond}},
}

// AudioManager plays the game's sound cues through the system speaker
type AudioManager struct {
	MasterVolume float64
	SFXVolume    float64

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewAudioManager(volume float64) *AudioManager {
	am := &AudioManager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
		mixer:        &beep.Mixer{},
	}
	am.SetVolume(volume)
	return am
}

// Init opens the speaker. A machine without an audio device keeps running
// silently.
func (am *AudioManager) Init() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	if am.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(am.mixer)
	am.initialized = true
	return nil
}

// Close stops playback
func (am *AudioManager) Close() {
	am.mu.Lock()
	defer am.mu.Unlock()
	if !am.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	am.initialized = false
}

// Bind plays the matching cue for each game event
func (am *AudioManager) Bind(bus *core.EventBus) {
	bind := func(t core.EventType, id SoundID) {
		bus.On(t, func(core.Event) { am.PlaySFX(id) })
	}
	bind(core.EvtCrashed, SndCrash)
	bind(core.EvtLevelComplete, SndComplete)
	bind(core.EvtFuelEmpty, SndFuelEmpty)
	bind(core.EvtLevelLoaded, SndLevelLoad)
}

// PlaySFX queues a cue on the mixer
func (am *AudioManager) PlaySFX(id SoundID) {
	am.mu.Lock()
	ready := am.initialized
	am.mu.Unlock()
	if !ready {
		return
	}

	s, err := am.Cue(id)
	if err != nil {
		logger.Component("audio").WithError(err).WithField("sound", id).Warn("cannot play sound")
		return
	}
	speaker.Lock()
	am.mixer.Add(s)
	speaker.Unlock()
}

// Cue builds the streamer for id at the current volume
func (am *AudioManager) Cue(id SoundID) (beep.Streamer, error) {
	notes, ok := cues[id]
	if !ok {
		return nil, fmt.Errorf("unknown sound %q", id)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := sampleRate.N(n.dur)
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(samples, tone))
	}

	vol := am.gain()
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(math.Max(vol, 1e-6)),
		Silent:   vol == 0,
	}, nil
}

func (am *AudioManager) gain() float64 {
	am.mu.Lock()
	defer am.mu.Unlock()
	return am.MasterVolume * am.SFXVolume
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	am.mu.Lock()
	am.MasterVolume = math.Max(0, math.Min(1, v))
	am.mu.Unlock()
}
