package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "sqlite"

[demon]
min_delay = "2s"
max_delay = "4s"
min_delay_floor = "1s"
max_delay_floor = "2s"
padding = 3
comments = ["boo", "hiss"]

[game]
toast_duration = "1500ms"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 2*time.Second, cfg.Demon.MinDelay)
	assert.Equal(t, 4*time.Second, cfg.Demon.MaxDelay)
	assert.Equal(t, 3.0, cfg.Demon.Padding)
	assert.Equal(t, []string{"boo", "hiss"}, cfg.Demon.Comments)
	assert.Equal(t, 1500*time.Millisecond, cfg.Game.ToastDuration)
	// Untouched keys keep their defaults.
	assert.Equal(t, 50*time.Millisecond, cfg.Demon.ReductionPerWord)
	assert.Equal(t, 30*time.Second, cfg.Game.AutosaveInterval)

	sched := cfg.Demon.Scheduler()
	assert.Equal(t, 2*time.Second, sched.MinDelay)
	assert.Equal(t, []string{"boo", "hiss"}, sched.Comments)
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[storage\nbackend = ")
	_, err := Load(path)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.Path)
	assert.Contains(t, pe.Error(), path)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "tape"

[demon]
min_delay = "30s"
`)
	_, err := Load(path)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, err.Error(), "storage.backend")
	assert.Contains(t, err.Error(), "min_delay must not exceed")
}

func TestRenderRoundTrip(t *testing.T) {
	want := Defaults()
	want.Storage.Backend = "memory"
	want.Demon.Comments = []string{"again?"}
	want.Log.Level = "debug"

	data, err := Render(want)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `min_delay = '10s'`) || strings.Contains(string(data), `min_delay = "10s"`))

	path := writeConfig(t, string(data))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDirHonoursXDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "storydemon", "config.toml"), path)
}

// Feature: storydemon, Property 9: environment overrides beat the file, which
// beats the defaults.
func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	backends := []string{"file", "sqlite", "memory"}

	rapid.Check(t, func(rt *rapid.T) {
		fileBackend := rapid.SampledFrom(append([]string{""}, backends...)).Draw(rt, "file_backend")
		envBackend := rapid.SampledFrom(append([]string{""}, backends...)).Draw(rt, "env_backend")
		fileAttempts := rapid.IntRange(-1, 50).Draw(rt, "file_attempts")
		envAttempts := rapid.IntRange(-1, 50).Draw(rt, "env_attempts")

		var body strings.Builder
		body.WriteString("[storage]\n")
		if fileBackend != "" {
			body.WriteString("backend = \"" + fileBackend + "\"\n")
		}
		body.WriteString("[demon]\n")
		if fileAttempts >= 0 {
			body.WriteString("placement_attempts = " + strconv.Itoa(fileAttempts) + "\n")
		}
		path := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(path, []byte(body.String()), 0o644); err != nil {
			rt.Fatal(err)
		}

		setEnv(rt, "STORYDEMON_STORAGE_BACKEND", envBackend)
		setEnv(rt, "STORYDEMON_DEMON_PLACEMENT_ATTEMPTS", attemptsEnv(envAttempts))

		cfg, err := Load(path)
		if err != nil {
			rt.Fatalf("Load: %v", err)
		}

		wantBackend := Defaults().Storage.Backend
		if fileBackend != "" {
			wantBackend = fileBackend
		}
		if envBackend != "" {
			wantBackend = envBackend
		}
		if cfg.Storage.Backend != wantBackend {
			rt.Fatalf("backend %q, want %q", cfg.Storage.Backend, wantBackend)
		}

		wantAttempts := Defaults().Demon.PlacementAttempts
		if fileAttempts >= 0 {
			wantAttempts = fileAttempts
		}
		if envAttempts >= 0 {
			wantAttempts = envAttempts
		}
		if cfg.Demon.PlacementAttempts != wantAttempts {
			rt.Fatalf("attempts %d, want %d", cfg.Demon.PlacementAttempts, wantAttempts)
		}
	})
	os.Unsetenv("STORYDEMON_STORAGE_BACKEND")
	os.Unsetenv("STORYDEMON_DEMON_PLACEMENT_ATTEMPTS")
}

func attemptsEnv(n int) string {
	if n < 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// setEnv sets or clears key. rapid.T has no Setenv, so the outer test
// unsets the variables when it finishes.
func setEnv(t *rapid.T, key, value string) {
	var err error
	if value == "" {
		err = os.Unsetenv(key)
	} else {
		err = os.Setenv(key, value)
	}
	if err != nil {
		t.Fatal(err)
	}
}
