package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Amjad50/Fyp/pkg/errors"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvCache, "")
	t.Setenv(EnvRedisAddr, "")
	path := write(t, `
[cache]
backend = "redis"
ttl = "2h"
redis_db = 3

[latex]
simplify = false

[segment]
threshold = 100

[symbols.sizes]
"\\alpha" = { width = 40, height = 30 }
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL != 2*time.Hour || cfg.Cache.RedisDB != 3 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("unset redis_addr = %q, want default", cfg.Cache.RedisAddr)
	}
	if cfg.LaTeX.Simplify {
		t.Error("simplify = true, want false")
	}
	if cfg.Segment.Threshold != 100 || !cfg.Segment.Merge {
		t.Errorf("segment = %+v", cfg.Segment)
	}
	table := cfg.Table()
	if !table.Has(`\alpha`) || !table.Has("x") {
		t.Error("Table() lost custom or default sizes")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv(EnvCache, "")
	t.Setenv(EnvRedisAddr, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	def := Default()
	if cfg.Cache != def.Cache || cfg.LaTeX != def.LaTeX || cfg.Segment != def.Segment {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestDefault(t *testing.T) {
	def := Default()
	tests := []struct {
		name string
		ok   bool
	}{
		{"file cache in the user cache directory", def.Cache.Backend == BackendFile && def.Cache.Dir == ""},
		{"parse ttl", def.Cache.TTL > 0},
		{"simplified latex", def.LaTeX.Simplify},
		{"mid-gray threshold with merges", def.Segment.Threshold == 128 && def.Segment.Merge},
		{"english tesseract model", def.OCR.Language == "eng"},
		{"no size overrides", len(def.Symbols.Sizes) == 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.ok {
				t.Errorf("Default() = %+v", def)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvCache, "none")
	t.Setenv(EnvRedisAddr, "cache:6380")
	cfg, err := Load(write(t, "[cache]\nbackend = \"file\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != BackendNone || cfg.Cache.RedisAddr != "cache:6380" {
		t.Errorf("cache = %+v, want env overrides", cfg.Cache)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvCache, "")
	t.Setenv(EnvRedisAddr, "")
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[cache\n", errors.ErrCodeInvalidFormat},
		{"backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"threshold", "[segment]\nthreshold = 0\n", errors.ErrCodeInvalidInput},
		{"size", "[symbols.sizes]\nx = { width = 0, height = 3 }\n", errors.ErrCodeInvalidInput},
		{"label", "[symbols.sizes]\n\"a b\" = { width = 1, height = 3 }\n", errors.ErrCodeInvalidLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "fyp", "config.toml"); p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}
