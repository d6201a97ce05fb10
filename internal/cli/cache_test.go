package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Amjad50/Fyp/internal/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", root)
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(root, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(os.Stderr, log.InfoLevel)
	c.Config.Cache.Dir = "/var/cache/custom"
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/var/cache/custom" {
		t.Errorf("cacheDir() = %q, want the configured directory", dir)
	}
}

func TestCachePathCommand(t *testing.T) {
	got, err := run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(got), appName) {
		t.Errorf("cache path = %q, want a directory ending in %q", got, appName)
	}
}

func TestParseCommandFileCache(t *testing.T) {
	t.Setenv(config.EnvCache, config.BackendFile)
	crops := writeTemp(t, "crops.json", squareCrops)
	dir := filepath.Join(t.TempDir(), "cache")
	cfg := writeTemp(t, "config.toml", "[cache]\ndir = '"+dir+"'\n")

	for i := 0; i < 2; i++ {
		got, err := run(t, "--config", cfg, "parse", crops)
		if err != nil {
			t.Fatalf("parse #%d error: %v", i, err)
		}
		if got != "x^2\n" {
			t.Errorf("parse #%d = %q, want %q", i, got, "x^2\n")
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) == 0 {
		t.Error("file cache is empty after parse")
	}
}
