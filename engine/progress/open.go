package progress

import (
	"context"
	"fmt"

	"github.com/1siamBot/orbital-bus/engine/config"
)

// Open builds the KV named by cfg.Backend
func Open(ctx context.Context, cfg config.ProgressConfig) (KV, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryKV(), nil
	case "file":
		return OpenFileKV(cfg.File)
	case "redis":
		return ConnectRedis(ctx, cfg.RedisURL, cfg.KeyPrefix)
	}
	return nil, fmt.Errorf("unknown progress backend %q", cfg.Backend)
}
