// Package pipeline runs the expression parser end to end.
//
// This package implements the crops → tree → LaTeX pipeline used by every
// command of the CLI. By centralizing it, caching, logging and
// observability hooks behave the same everywhere.
//
// # Architecture
//
// Parsing runs these stages:
//
//  1. Validate: labels, boxes and known default sizes
//  2. Candidates: classify the relation of every ordered pair of symbols
//  3. Spanning: minimum spanning tree of the candidate graph
//  4. Build: the symbol tree from the spanning edges
//  5. Optimize: normalize rows so every relation has one child (skipped in
//     raw mode)
//  6. Generate: LaTeX, both raw and simplified
//
// Recognition adds segmentation and glyph classification in front of
// parsing, and [Runner.Render] turns a result into artifacts (LaTeX, debug
// dump, tree JSON, DOT, SVG, PNG, PDF).
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Parse(ctx, pipeline.Options{
//	    Crops:    crops,
//	    Simplify: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.LaTeX)
//
// Evaluate a dataset with bounded concurrency:
//
//	report, err := runner.Evaluate(ctx, dataset, pipeline.BatchOptions{Limit: 8})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Amjad50/Fyp/pkg/cache"
	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/symbols"
	"github.com/Amjad50/Fyp/pkg/tree"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultGlyphSize is the side of the square glyphs are scaled to
	// before classification.
	DefaultGlyphSize = 64

	// DefaultGlyphMargin is the white border around a scaled glyph.
	DefaultGlyphMargin = 6

	// DefaultBatchLimit bounds concurrent jobs in a batch.
	DefaultBatchLimit = 4

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatLaTeX = "latex"
	FormatTree  = "tree"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatLaTeX: true,
	FormatTree:  true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
}

// Stage names reported to observability hooks.
const (
	StageValidate   = "validate"
	StageCandidates = "candidates"
	StageSpanning   = "spanning"
	StageBuild      = "build"
	StageOptimize   = "optimize"
	StageGenerate   = "generate"
	StageSegment    = "segment"
	StageClassify   = "classify"
)

// =============================================================================
// Options
// =============================================================================

// Options configures a parse.
type Options struct {
	// Crops are the labeled symbols. They are sorted by the stable key
	// before parsing; the caller's slice is not modified.
	Crops []symbols.LabeledCrop `json:"crops"`

	// Simplify selects the simplified LaTeX as [Result.LaTeX].
	Simplify bool `json:"simplify,omitempty"`

	// Raw skips tree optimization.
	Raw bool `json:"raw,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Validate checks the crops without consulting a size table.
func (o *Options) Validate() error {
	if len(o.Crops) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no symbols to parse")
	}
	for i, c := range o.Crops {
		if err := errors.ValidateLabel(c.Label); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "crop %d", i)
		}
		if err := errors.ValidateBox(c.Box.Left, c.Box.Top, c.Box.Right, c.Box.Bottom); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "crop %d (%s)", i, c.Label)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// KeyOpts returns cache key options for the parse.
func (o *Options) KeyOpts() cache.ParseKeyOpts {
	return cache.ParseKeyOpts{Simplify: o.Simplify, Raw: o.Raw}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported,
			"invalid format: %q (must be one of: latex, tree, json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a parse.
type Result struct {
	// RunID identifies the run that produced or served this result.
	RunID string `json:"run_id"`

	// LaTeX is Simplified or Raw depending on [Options.Simplify].
	LaTeX      string `json:"latex"`
	Raw        string `json:"raw"`
	Simplified string `json:"simplified"`

	// Crops are the input symbols in parse order.
	Crops []symbols.LabeledCrop `json:"crops"`

	// Nodes is the exported tree.
	Nodes []tree.NodeView `json:"tree"`

	// Weight is the total weight of the spanning tree.
	Weight float64 `json:"weight"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"-"`

	tree *tree.Tree
}

// Tree returns the parse tree, rebuilding it from [Result.Nodes] when the
// result came from the cache.
func (r *Result) Tree() (*tree.Tree, error) {
	if r.tree == nil {
		t, err := tree.FromExport(r.Nodes)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "rebuild tree")
		}
		r.tree = t
	}
	return r.tree, nil
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Symbols    int           `json:"symbols"`
	Candidates int           `json:"candidates"`
	ParseTime  time.Duration `json:"parse_time"`
}

// CacheInfo tracks whether a result came from the cache.
type CacheInfo struct {
	Hit bool
}
