package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROGRESS_FILE", "/tmp/progress.json")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Screen.Width)
	assert.Equal(t, 800, cfg.Screen.Height)
	assert.Equal(t, 100.0, cfg.Screen.CameraMargin)
	assert.Equal(t, "file", cfg.Progress.Backend)
	assert.Equal(t, "/tmp/progress.json", cfg.Progress.File)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Progress.RedisURL)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.8, cfg.Audio.Volume)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ORBITAL_SCREEN_WIDTH", "1920")
	t.Setenv("PROGRESS_BACKEND", "Redis")
	t.Setenv("REDIS_KEY_PREFIX", "player42:")
	t.Setenv("AUDIO_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Screen.Width)
	assert.Equal(t, "redis", cfg.Progress.Backend)
	assert.Equal(t, "player42:", cfg.Progress.KeyPrefix)
	assert.False(t, cfg.Audio.Enabled)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ORBITAL_SCREEN_WIDTH", "wide"},
		{"ORBITAL_SCREEN_HEIGHT", "0"},
		{"ORBITAL_CAMERA_MARGIN", "500"},
		{"PROGRESS_BACKEND", "postgres"},
		{"AUDIO_VOLUME", "1.5"},
		{"TERM_CELL_WIDTH", "-3"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ORBITAL_TEST_KEY", "")
	assert.Equal(t, "fallback", GetEnv("ORBITAL_TEST_KEY", "fallback"))
	t.Setenv("ORBITAL_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("ORBITAL_TEST_KEY", "fallback"))
}
