package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/orbital-bus/engine/config"
)

func TestRunReturnsSetupErrors(t *testing.T) {
	t.Setenv("ORBITAL_SCREEN_WIDTH", "wide")
	err := run(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)

	t.Setenv("ORBITAL_SCREEN_WIDTH", "1280")
	t.Setenv("ORBITAL_LEVELS_FILE", filepath.Join(t.TempDir(), "missing.json"))
	err = run(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot load levels")
}
