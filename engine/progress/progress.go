package progress

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Storage keys
const (
	KeyLevel    = "orbital-bus-level"
	KeyMaxLevel = "orbital-bus-max-level"
)

// ErrNotFound is returned by a KV for a missing key
var ErrNotFound = errors.New("key not found")

// KV is the string key/value store progress lives in
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Tracker holds the current and highest unlocked level
type Tracker struct {
	kv      KV
	current int
	max     int
}

// Load reads progress from kv. Missing or unreadable values start at level 1,
// and a missing max level is written back.
func Load(ctx context.Context, kv KV) (*Tracker, error) {
	t := &Tracker{kv: kv, current: 1, max: 1}

	maxLevel, err := readLevel(ctx, kv, KeyMaxLevel)
	switch {
	case errors.Is(err, ErrNotFound):
		if err := kv.Set(ctx, KeyMaxLevel, "1"); err != nil {
			return nil, fmt.Errorf("init %s: %w", KeyMaxLevel, err)
		}
	case err != nil:
		return nil, err
	default:
		t.max = maxLevel
	}

	cur, err := readLevel(ctx, kv, KeyLevel)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		t.current = cur
	}
	if t.current > t.max {
		t.current = t.max
	}
	return t, nil
}

// A malformed stored value reads as level 1 rather than failing the game.
func readLevel(ctx context.Context, kv KV, key string) (int, error) {
	v, err := kv.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1, nil
	}
	return n, nil
}

// Current returns the level being played
func (t *Tracker) Current() int { return t.current }

// Max returns the highest unlocked level
func (t *Tracker) Max() int { return t.max }

// Unlocked reports whether level may be selected
func (t *Tracker) Unlocked(level int) bool {
	return level >= 1 && level <= t.max
}

// Select makes level the current one and stores it
func (t *Tracker) Select(ctx context.Context, level int) error {
	if !t.Unlocked(level) {
		return fmt.Errorf("level %d is locked (max %d)", level, t.max)
	}
	t.current = level
	return t.kv.Set(ctx, KeyLevel, strconv.Itoa(level))
}

// Complete records a successful run of the current level. Replaying an older
// level never moves the max forward.
func (t *Tracker) Complete(ctx context.Context) error {
	if t.current != t.max {
		return nil
	}
	t.max++
	return t.kv.Set(ctx, KeyMaxLevel, strconv.Itoa(t.max))
}
