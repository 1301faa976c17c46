package game

import (
	"context"
	"fmt"
	"io"

	"github.com/1siamBot/orbital-bus/engine/config"
	"github.com/1siamBot/orbital-bus/engine/level"
	"github.com/1siamBot/orbital-bus/engine/progress"
)

// LoadCatalog returns the configured level file, or the built-in levels
func LoadCatalog(cfg config.AssetsConfig) (*level.Catalog, error) {
	if cfg.LevelsFile == "" {
		return level.Default()
	}
	return level.LoadFile(cfg.LevelsFile)
}

// OpenTracker opens the progress store and loads the player's progress. The
// returned closer releases the store and is never nil.
func OpenTracker(ctx context.Context, cfg config.ProgressConfig) (*progress.Tracker, io.Closer, error) {
	kv, err := progress.Open(ctx, cfg)
	if err != nil {
		return nil, nopCloser{}, fmt.Errorf("open progress store: %w", err)
	}
	closer, ok := kv.(io.Closer)
	if !ok {
		closer = nopCloser{}
	}
	tr, err := progress.Load(ctx, kv)
	if err != nil {
		closer.Close()
		return nil, nopCloser{}, fmt.Errorf("load progress: %w", err)
	}
	return tr, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
