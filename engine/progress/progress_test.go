package progress

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/orbital-bus/engine/config"
)

func TestLoadDefaultsWritesMax(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	tr, err := Load(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Current())
	assert.Equal(t, 1, tr.Max())

	v, err := kv.Get(ctx, KeyMaxLevel)
	require.NoError(t, err)
	assert.Equal(t, "1", v)
	_, err = kv.Get(ctx, KeyLevel)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadClampsAndToleratesGarbage(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyMaxLevel, "3"))
	require.NoError(t, kv.Set(ctx, KeyLevel, "9"))

	tr, err := Load(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Current())

	require.NoError(t, kv.Set(ctx, KeyMaxLevel, "lots"))
	tr, err = Load(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Max())
}

func TestCompleteAdvancesOnlyFromMax(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	tr, err := Load(ctx, kv)
	require.NoError(t, err)

	require.NoError(t, tr.Complete(ctx))
	assert.Equal(t, 2, tr.Max())
	require.NoError(t, tr.Select(ctx, 2))
	require.NoError(t, tr.Complete(ctx))
	assert.Equal(t, 3, tr.Max())

	// replaying level 1 does not unlock anything new
	require.NoError(t, tr.Select(ctx, 1))
	require.NoError(t, tr.Complete(ctx))
	assert.Equal(t, 3, tr.Max())

	v, _ := kv.Get(ctx, KeyMaxLevel)
	assert.Equal(t, "3", v)
	v, _ = kv.Get(ctx, KeyLevel)
	assert.Equal(t, "1", v)
}

func TestSelectLocked(t *testing.T) {
	tr, err := Load(context.Background(), NewMemoryKV())
	require.NoError(t, err)
	assert.Error(t, tr.Select(context.Background(), 2))
	assert.Error(t, tr.Select(context.Background(), 0))
	assert.Equal(t, 1, tr.Current())
}

func TestFileKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "progress.json")

	kv, err := OpenFileKV(path)
	require.NoError(t, err)
	tr, err := Load(ctx, kv)
	require.NoError(t, err)
	require.NoError(t, tr.Complete(ctx))
	require.NoError(t, tr.Select(ctx, 2))

	reopened, err := OpenFileKV(path)
	require.NoError(t, err)
	tr, err = Load(ctx, reopened)
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Current())
	assert.Equal(t, 2, tr.Max())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileKVCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := OpenFileKV(path)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	kv, err := Open(ctx, config.ProgressConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	kv, err = Open(ctx, config.ProgressConfig{Backend: "file", File: filepath.Join(t.TempDir(), "p.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	_, err = Open(ctx, config.ProgressConfig{Backend: "redis", RedisURL: "not a url"})
	assert.Error(t, err)

	_, err = Open(ctx, config.ProgressConfig{Backend: "floppy"})
	assert.Error(t, err)
}
