// Package cli implements the fyp command-line interface.
//
// This package provides commands for parsing labeled symbol crops into
// LaTeX, segmenting and recognizing expression images, evaluating datasets
// and managing the result cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: LaTeX from a crops file
//   - tree: the symbol tree as a debug dump
//   - render: the symbol tree as DOT, SVG, PNG or PDF
//   - segment: symbol boxes of an image
//   - recognize: LaTeX from an image
//   - eval: accuracy over a dataset
//   - inspect: interactive tree browser
//   - symbols: the default-size table
//   - cache: manage the result cache
//
// # Configuration
//
// Settings come from $XDG_CONFIG_HOME/fyp/config.toml (or --config),
// environment variables and flags, in increasing priority.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Amjad50/Fyp/internal/config"
	"github.com/Amjad50/Fyp/pkg/buildinfo"
	"github.com/Amjad50/Fyp/pkg/cache"
	"github.com/Amjad50/Fyp/pkg/classify"
	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/observability"
	"github.com/Amjad50/Fyp/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "fyp"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	out        io.Writer
	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger. Command output
// goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "fyp turns images of math expressions into LaTeX",
		Long:         `fyp parses the layout of labeled math symbols into a tree of spatial relations and writes the expression as LaTeX. It can also segment and recognize the symbols of an image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
			observability.SetClassifierHooks(observability.NewLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fyp/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.segmentCommand())
	root.AddCommand(c.recognizeCommand())
	root.AddCommand(c.evalCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.symbolsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	if nc, ok := ch.(*cache.NullCache); ok {
		c.Logger.Debug("caching disabled", "reason", nc.Reason)
	}
	r := pipeline.NewRunner(ch, nil, c.Logger).WithSymbols(c.Config.Table())
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// newCache opens the configured cache backend. An unreachable Redis server
// degrades to no caching with a warning.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.Disabled("--no-cache"), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.Disabled("backend " + config.BackendNone), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:   c.Config.Cache.RedisAddr,
			DB:     c.Config.Cache.RedisDB,
			Prefix: appName + ":",
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", c.Config.Cache.RedisAddr, "error", err)
			return cache.Disabled("redis unavailable"), nil
		}
		return rc, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.Disabled("no cache directory: " + err.Error()), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newClassifier builds the glyph classifier chain: the shape heuristic for
// bars, then OCR when it is available.
func (c *CLI) newClassifier(noOCR bool) (classify.Classifier, func()) {
	chain := classify.Chain{classify.Shape{}}
	if noOCR {
		return chain, func() {}
	}
	tess, err := classify.NewTesseract(classify.TesseractOptions{
		Language:       c.Config.OCR.Language,
		TessdataPrefix: c.Config.OCR.TessdataPrefix,
	})
	if err != nil {
		c.Logger.Warn("OCR unavailable, only bars will be recognized", "error", err)
		return chain, func() {}
	}
	c.Logger.Debug("using tesseract", "version", tess.Version())
	return append(chain, tess), func() { tess.Close() }
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: the configured one, else
// $XDG_CACHE_HOME/fyp, else ~/.cache/fyp.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return cache.DefaultDir()
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, def string) []string {
	if s == "" {
		return []string{def}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// writeArtifacts writes each artifact to output, or to output with the
// format as extension when there are several. Without output, text formats
// go to the command output.
func (c *CLI) writeArtifacts(artifacts map[string][]byte, formats []string, output string) error {
	for _, f := range formats {
		data := artifacts[f]
		if output == "" {
			if !textFormat(f) {
				return errors.New(errors.ErrCodeInvalidInput, "format %s needs an output file (-o)", f)
			}
			if _, err := c.out.Write(data); err != nil {
				return err
			}
			continue
		}
		path := output
		if len(formats) > 1 {
			path = strings.TrimSuffix(output, filepath.Ext(output)) + "." + f
		}
		if err := errors.ValidatePath(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

func textFormat(f string) bool {
	switch f {
	case pipeline.FormatLaTeX, pipeline.FormatTree, pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG:
		return true
	}
	return false
}
