package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testLoader(home, work string, env map[string]string) *Loader {
	l := NewLoader(nil)
	l.homeDir = func() (string, error) { return home, nil }
	l.workDir = func() (string, error) { return work, nil }
	l.getenv = func(k string) string { return env[k] }
	return l
}

func TestLoaderPrecedence(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	work := filepath.Join(project, "sub", "dir")
	require.NoError(t, os.MkdirAll(work, 0755))

	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), "output:\n  format: json\nlog:\n  level: debug\n")
	writeFile(t, filepath.Join(project, ProjectConfigFile), "server:\n  addr: \":7000\"\n")

	t.Run("files layer over defaults", func(t *testing.T) {
		cfg, err := testLoader(home, work, nil).Load()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output.Format)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.Equal(t, 256, cfg.Server.MaxConnections)
	})

	t.Run("environment wins", func(t *testing.T) {
		env := map[string]string{EnvFormat: "env", EnvAddr: ":7100", EnvLogLevel: "warn"}
		cfg, err := testLoader(home, work, env).Load()
		require.NoError(t, err)
		assert.Equal(t, "env", cfg.Output.Format)
		assert.Equal(t, ":7100", cfg.Server.Addr)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("invalid environment fails validation", func(t *testing.T) {
		_, err := testLoader(home, work, map[string]string{EnvFormat: "xml"}).Load()
		assert.Error(t, err)
	})
}

func TestLoaderNoFiles(t *testing.T) {
	cfg, err := testLoader(t.TempDir(), t.TempDir(), nil).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoaderNoHome(t *testing.T) {
	l := testLoader("", t.TempDir(), nil)
	l.homeDir = func() (string, error) { return "", errors.New("no home") }

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Error(t, l.EnsureUserConfig())
}

func TestLoaderBrokenProjectConfig(t *testing.T) {
	work := t.TempDir()
	writeFile(t, filepath.Join(work, ProjectConfigFile), "output: [")

	_, err := testLoader(t.TempDir(), work, nil).Load()
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explicit.yaml")
	writeFile(t, path, "output:\n  format: tsv\n")

	cfg, err := testLoader(t.TempDir(), t.TempDir(), nil).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tsv", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)

	_, err = testLoader(t.TempDir(), t.TempDir(), nil).LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	l := testLoader(home, t.TempDir(), nil)

	require.NoError(t, l.EnsureUserConfig())

	path := filepath.Join(home, UserConfigDir, UserConfigFile)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// Existing files are left alone
	writeFile(t, path, "output:\n  format: csv\n")
	require.NoError(t, l.EnsureUserConfig())
	cfg, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output.Format)
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.yaml")
	writeFile(t, path, "log:\n  level: info\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 64)
	done := make(chan error, 1)
	l := testLoader(t.TempDir(), t.TempDir(), nil)
	go func() {
		done <- l.Watch(ctx, path, 20*time.Millisecond, func(c *Config) { changes <- c })
	}()

	// The watch is registered asynchronously; keep writing until it fires.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	var got *Config
	for got == nil {
		select {
		case c := <-changes:
			// A reload can observe a partially written file.
			if c.Log.Level == "debug" {
				got = c
			}
		case <-tick.C:
			writeFile(t, path, "log:\n  level: debug\n")
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
	assert.Equal(t, "debug", got.Log.Level)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	l := testLoader(t.TempDir(), t.TempDir(), nil)
	err := l.Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "config.yaml"), 0, func(*Config) {})
	assert.Error(t, err)
}

func TestLoadFileUnlimitedConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unlimited.yaml")
	writeFile(t, path, "server:\n  max_connections: 0\n")

	cfg, err := testLoader(t.TempDir(), t.TempDir(), nil).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Server.MaxConnections)
}

func TestProjectConfigOverridesMaxConnectionsWithZero(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), "server:\n  max_connections: 32\n")
	writeFile(t, filepath.Join(work, ProjectConfigFile), "server:\n  max_connections: 0\n")

	cfg, err := testLoader(home, work, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Server.MaxConnections)

	// A file that omits the key keeps the earlier layer's value
	writeFile(t, filepath.Join(work, ProjectConfigFile), "output:\n  format: json\n")
	cfg, err = testLoader(home, work, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Server.MaxConnections)
}
