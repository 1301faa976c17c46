package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrInvalid wraps every configuration validation failure
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Screen   ScreenConfig
	Assets   AssetsConfig
	Logging  LoggingConfig
	Progress ProgressConfig
	Audio    AudioConfig
	Term     TermConfig
}

type ScreenConfig struct {
	Width        int
	Height       int
	CameraMargin float64
}

type AssetsConfig struct {
	Dir        string
	LevelsFile string // empty means the built-in catalog
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ProgressConfig struct {
	Backend   string // file, redis or memory
	File      string
	RedisURL  string
	KeyPrefix string
}

type AudioConfig struct {
	Enabled bool
	Volume  float64
}

type TermConfig struct {
	CellWidth  int
	CellHeight int
}

// Load reads an optional .env file, then the environment, and validates the
// result.
func Load() (*Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	cfg := &Config{
		Screen: ScreenConfig{
			Width:        getInt("ORBITAL_SCREEN_WIDTH", 1280),
			Height:       getInt("ORBITAL_SCREEN_HEIGHT", 800),
			CameraMargin: getFloat("ORBITAL_CAMERA_MARGIN", 100),
		},
		Assets: AssetsConfig{
			Dir:        GetEnv("ORBITAL_ASSETS_DIR", ""),
			LevelsFile: GetEnv("ORBITAL_LEVELS_FILE", ""),
		},
		Logging: LoggingConfig{
			Level:  GetEnv("LOG_LEVEL", "info"),
			Format: GetEnv("LOG_FORMAT", "text"),
		},
		Progress: ProgressConfig{
			Backend:   strings.ToLower(GetEnv("PROGRESS_BACKEND", "file")),
			File:      GetEnv("PROGRESS_FILE", defaultProgressFile()),
			RedisURL:  GetEnv("REDIS_URL", "redis://localhost:6379/0"),
			KeyPrefix: GetEnv("REDIS_KEY_PREFIX", ""),
		},
		Audio: AudioConfig{
			Enabled: GetEnv("AUDIO_ENABLED", "true") == "true",
			Volume:  getFloat("AUDIO_VOLUME", 0.8),
		},
		Term: TermConfig{
			CellWidth:  getInt("TERM_CELL_WIDTH", 10),
			CellHeight: getInt("TERM_CELL_HEIGHT", 20),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetEnv returns the value of key, or fallback when it is unset or empty
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Malformed numbers fall back to -1 so validate reports them.
func getInt(key string, fallback int) int {
	v := GetEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := GetEnv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return -1
	}
	return f
}

func defaultProgressFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "orbital-bus-progress.json"
	}
	return filepath.Join(dir, "orbital-bus", "progress.json")
}

func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: ORBITAL_SCREEN_WIDTH and ORBITAL_SCREEN_HEIGHT must be positive integers", ErrInvalid)
	}
	if c.Screen.CameraMargin < 0 || 2*c.Screen.CameraMargin > float64(min(c.Screen.Width, c.Screen.Height)) {
		return fmt.Errorf("%w: ORBITAL_CAMERA_MARGIN must fit inside the screen", ErrInvalid)
	}
	switch c.Progress.Backend {
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("%w: PROGRESS_BACKEND must be file, redis or memory, got %q", ErrInvalid, c.Progress.Backend)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: AUDIO_VOLUME must be between 0 and 1", ErrInvalid)
	}
	if c.Term.CellWidth <= 0 || c.Term.CellHeight <= 0 {
		return fmt.Errorf("%w: TERM_CELL_WIDTH and TERM_CELL_HEIGHT must be positive integers", ErrInvalid)
	}
	return nil
}
