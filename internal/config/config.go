// Package config loads the fyp configuration file.
//
// Settings are layered: built-in defaults, then the TOML file, then
// environment variables. Command-line flags are applied last by the CLI.
//
//	[cache]
//	backend = "file"        # file, redis or none
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//	redis_db = 0
//
//	[latex]
//	simplify = true
//
//	[segment]
//	threshold = 128
//	merge = true
//
//	[ocr]
//	language = "eng"
//
//	[symbols.sizes]
//	"\\alpha" = { width = 40, height = 30 }
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Amjad50/Fyp/pkg/cache"
	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

const appName = "fyp"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Environment variables overriding the file.
const (
	EnvCache     = "FYP_CACHE"
	EnvRedisAddr = "FYP_REDIS_ADDR"
	EnvConfig    = "FYP_CONFIG"
)

// Config is the fyp configuration, read from a TOML file and then
// overridden by the FYP_* environment variables.
type Config struct {
	Cache   CacheConfig   `toml:"cache"`
	LaTeX   LaTeXConfig   `toml:"latex"`
	Segment SegmentConfig `toml:"segment"`
	OCR     OCRConfig     `toml:"ocr"`
	Symbols SymbolsConfig `toml:"symbols"`
}

// CacheConfig selects where parse results are kept between runs.
type CacheConfig struct {
	// Backend is one of BackendFile, BackendRedis or BackendNone.
	Backend string        `toml:"backend"`
	TTL     time.Duration `toml:"ttl"`

	// Dir overrides the file cache directory. Empty means the fyp
	// directory under the user cache directory.
	Dir string `toml:"dir"`

	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
}

// LaTeXConfig controls the generated source.
type LaTeXConfig struct {
	// Simplify drops braces around single characters.
	Simplify bool `toml:"simplify"`
}

// SegmentConfig tunes how an image is cut into symbol crops.
type SegmentConfig struct {
	// Threshold is the gray level below which a pixel is ink.
	Threshold int `toml:"threshold"`
	// Merge joins the strokes of = and : and the dots of i and j.
	Merge bool `toml:"merge"`
	// MinArea drops components with fewer pixels, removing specks.
	MinArea int `toml:"min_area"`
}

// OCRConfig configures the Tesseract symbol classifier.
type OCRConfig struct {
	Language       string `toml:"language"`
	TessdataPrefix string `toml:"tessdata_prefix"`
}

// SymbolsConfig adjusts the symbol size table.
type SymbolsConfig struct {
	// Sizes adds or replaces entries of the default-size table.
	Sizes map[string]symbols.Size `toml:"sizes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:   BackendFile,
			TTL:       cache.TTLParse,
			RedisAddr: "localhost:6379",
		},
		LaTeX:   LaTeXConfig{Simplify: true},
		Segment: SegmentConfig{Threshold: 128, Merge: true},
		OCR:     OCRConfig{Language: "eng"},
	}
}

// Path returns the default configuration file location:
// $FYP_CONFIG, else $XDG_CONFIG_HOME/fyp/config.toml, else the user config
// directory.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads the configuration at path. An empty path selects [Path]; a
// missing default file is not an error, a missing explicit one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			cfg.applyEnv()
			return cfg, cfg.Validate()
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvCache); ok && v != "" {
		c.Cache.Backend = v
	}
	if v, ok := os.LookupEnv(EnvRedisAddr); ok && v != "" {
		c.Cache.RedisAddr = v
	}
}

// Validate checks value ranges and custom symbol sizes.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}
	if c.Segment.Threshold < 1 || c.Segment.Threshold > 255 {
		return errors.New(errors.ErrCodeInvalidInput, "segment threshold %d out of range 1-255", c.Segment.Threshold)
	}
	if c.Segment.MinArea < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "segment min_area cannot be negative")
	}
	for label, s := range c.Symbols.Sizes {
		if err := errors.ValidateLabel(label); err != nil {
			return err
		}
		if s.Width <= 0 || s.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "size of %q must be positive", label)
		}
	}
	return nil
}

// Table returns the default-size table extended with the configured sizes.
func (c *Config) Table() symbols.Table {
	return symbols.Default().With(c.Symbols.Sizes)
}
