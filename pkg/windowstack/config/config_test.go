package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
)

func TestParseFull(t *testing.T) {
	cfg, err := Parse([]byte(`
platform = "stack"
dock_target = "left"
log_level = "debug"
log_path = "logs/stackdemo.log"
locale = "de"

[home]
instant = true
tick_interval = "250ms"

[back_button]
device = "/dev/input/event1"
codes = [158]
cooldown = "1s"
`))
	require.NoError(t, err)

	assert.Equal(t, PlatformStack, cfg.Platform)
	target, ok := cfg.Target()
	assert.True(t, ok)
	assert.Equal(t, windowstack.DockLeft, target)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "de", cfg.Locale)
	assert.True(t, cfg.HomeOptions().Instant)
	assert.Equal(t, 250*time.Millisecond, cfg.Home.TickInterval)
	assert.Equal(t, "/dev/input/event1", cfg.BackButton.Device)
	assert.Equal(t, []uint16{158}, cfg.BackButton.Codes)
	assert.Equal(t, time.Second, cfg.BackButton.Cooldown)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`platform = "flat"`))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownPlatform(t *testing.T) {
	_, err := Parse([]byte(`platform = "android"`))
	assert.ErrorContains(t, err, "unknown platform")
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`dock = "left"`))
	assert.ErrorContains(t, err, "unknown keys")
}

func TestInvalidDockTargetIsNotAnError(t *testing.T) {
	cfg, err := Parse([]byte(`dock_target = "999"`))
	require.NoError(t, err)

	_, ok := cfg.Target()
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.toml")
	require.NoError(t, os.WriteFile(path, []byte(`dock_target = "center"`), 0o644))

	loads := make(chan *Config, 16)
	w, err := Watch(path, nil, func(_, cfg *Config) {
		select {
		case loads <- cfg:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, "center", w.Current().DockTarget)

	require.NoError(t, os.WriteFile(path, []byte(`dock_target = "right"`), 0o644))

	// A truncating write can surface as several events; wait for the final content.
	deadline := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case cfg := <-loads:
			done = cfg.DockTarget == "right"
		case <-deadline:
			t.Fatal("no reload")
		}
	}
	assert.Equal(t, "right", w.Current().DockTarget)
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stack.toml")
	require.NoError(t, os.WriteFile(path, []byte(`dock_target = "left"`), 0o644))

	w, err := Watch(path, nil, nil)
	require.NoError(t, err)
	defer w.Close()

	// Replace atomically so the watcher never sees a half-written file.
	staged := filepath.Join(t.TempDir(), "staged.toml")
	require.NoError(t, os.WriteFile(staged, []byte(`platform = "nope"`), 0o644))
	require.NoError(t, os.Rename(staged, path))

	assert.Error(t, w.Reload())
	assert.Equal(t, "left", w.Current().DockTarget)
}
