package pipeline

import (
	"context"
	"encoding/json"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/Amjad50/Fyp/pkg/cache"
	"github.com/Amjad50/Fyp/pkg/classify"
	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/observability"
	"github.com/Amjad50/Fyp/pkg/segment"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, logger and size table - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Symbols symbols.Table
	// TTL overrides the default entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Symbols: symbols.Default(),
	}
}

// WithSymbols replaces the size table. A table differing from the default
// scopes the cache keys by its hash.
func (r *Runner) WithSymbols(table symbols.Table) *Runner {
	r.Symbols = table
	h, def := TableHash(table), TableHash(symbols.Default())
	if h != def {
		r.Keyer = cache.NewScopedKeyer(r.Keyer, "sizes:"+h[:12]+":")
	}
	return r
}

// TableHash returns a content hash of a size table.
func TableHash(table symbols.Table) string {
	sizes := make(map[string]symbols.Size, table.Len())
	for _, l := range table.Labels() {
		s, _ := table.Size(l)
		sizes[l] = s
	}
	h, _ := cache.HashJSON(sizes)
	return h
}

// Parse runs the parsing stages with caching.
func (r *Runner) Parse(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()

	cropsHash, err := cache.HashJSON(opts.Crops)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash crops")
	}
	key := r.Keyer.ParseKey(cropsHash, opts.KeyOpts())

	if !opts.Refresh {
		if res, ok := r.cached(ctx, "parse", key); ok {
			res.RunID = runID
			return res, nil
		}
	}

	start := time.Now()
	res, err := Parse(ctx, r.Symbols, runID, opts)
	observability.Pipeline().OnParseComplete(ctx, runID, len(opts.Crops), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("parsed expression",
		"symbols", res.Stats.Symbols,
		"candidates", res.Stats.Candidates,
		"duration", res.Stats.ParseTime)

	r.store(ctx, "parse", key, res, cache.TTLParse)
	return res, nil
}

// RecognizeOptions configures [Runner.Recognize].
type RecognizeOptions struct {
	Segment segment.Options
	Parse   Options

	// GlyphSize and GlyphMargin control glyph scaling before
	// classification.
	GlyphSize   int
	GlyphMargin int
}

func (o *RecognizeOptions) setDefaults() {
	if o.GlyphSize == 0 {
		o.GlyphSize = DefaultGlyphSize
	}
	if o.GlyphMargin == 0 {
		o.GlyphMargin = DefaultGlyphMargin
	}
}

// Recognize segments img, labels every symbol with cl and parses the
// result. Results are cached by image content.
func (r *Runner) Recognize(ctx context.Context, img image.Image, cl classify.Classifier, opts RecognizeOptions) (*Result, error) {
	opts.setDefaults()
	r.applyLogger(&opts.Parse)
	runID := uuid.NewString()

	key := r.Keyer.RecognizeKey(ImageHash(img), cache.RecognizeKeyOpts{
		Classifier: cl.Name(),
		Threshold:  int(opts.Segment.Threshold),
		Merge:      !opts.Segment.NoMerge,
		Parse:      opts.Parse.KeyOpts(),
	})
	if !opts.Parse.Refresh {
		if res, ok := r.cached(ctx, "recognize", key); ok {
			res.RunID = runID
			return res, nil
		}
	}

	crops, err := r.Label(ctx, runID, img, cl, opts)
	if err != nil {
		return nil, err
	}

	parseOpts := opts.Parse
	parseOpts.Crops = crops
	res, err := r.Parse(ctx, parseOpts)
	if err != nil {
		return nil, err
	}
	res.RunID = runID

	r.store(ctx, "recognize", key, res, cache.TTLRecognize)
	return res, nil
}

// Label segments img and classifies every glyph, returning the labeled
// crops with fraction bars resolved.
func (r *Runner) Label(ctx context.Context, runID string, img image.Image, cl classify.Classifier, opts RecognizeOptions) ([]symbols.LabeledCrop, error) {
	opts.setDefaults()
	hooks := observability.Pipeline()

	hooks.OnStageStart(ctx, runID, StageSegment)
	start := time.Now()
	seg, err := segment.Segment(img, opts.Segment)
	hooks.OnStageComplete(ctx, runID, StageSegment, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("segmented image", "symbols", len(seg.Symbols), "duration", time.Since(start))

	hooks.OnStageStart(ctx, runID, StageClassify)
	start = time.Now()
	labels, err := r.classifyGlyphs(ctx, seg, cl, opts)
	hooks.OnStageComplete(ctx, runID, StageClassify, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	crops, err := seg.LabeledCrops(labels)
	if err != nil {
		return nil, err
	}
	if n := classify.ResolveFractionBars(crops); n > 0 {
		r.Logger.Debug("resolved fraction bars", "count", n)
	}
	return crops, nil
}

func (r *Runner) classifyGlyphs(ctx context.Context, seg *segment.Result, cl classify.Classifier, opts RecognizeOptions) ([]string, error) {
	labels := make([]string, len(seg.Symbols))
	for i, s := range seg.Symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		glyph := segment.Normalize(seg.Glyph(i), opts.GlyphSize, opts.GlyphMargin)
		label, err := cl.Classify(ctx, glyph)
		if err != nil {
			if code := errors.GetCode(err); code != "" {
				return nil, errors.Wrap(code, err, "symbol %d at %s", i, s.Box)
			}
			return nil, err
		}
		if err := errors.ValidateLabel(label); err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnknownLabel, err, "symbol %d at %s", i, s.Box)
		}
		if !r.Symbols.Has(label) {
			return nil, errors.New(errors.ErrCodeUnknownLabel, "symbol %d at %s: classifier answered unknown label %q", i, s.Box, label)
		}
		labels[i] = label
	}
	return labels, nil
}

// ImageHash returns a content hash of the pixels of img.
func ImageHash(img image.Image) string {
	n := imaging.Clone(img)
	b := n.Bounds()
	header := []byte{byte(b.Dx() >> 8), byte(b.Dx()), byte(b.Dy() >> 8), byte(b.Dy())}
	return cache.Hash(append(header, n.Pix...))
}

// cached loads a result, reporting cache hits and misses to the hooks.
func (r *Runner) cached(ctx context.Context, kind, key string) (*Result, bool) {
	var res Result
	err := cache.GetJSON(ctx, r.Cache, key, &res)
	switch {
	case err == nil:
		observability.Cache().OnCacheHit(ctx, kind)
		res.CacheInfo.Hit = true
		r.Logger.Debug("cache hit", "kind", kind)
		return &res, true
	case err == cache.ErrCacheMiss:
		observability.Cache().OnCacheMiss(ctx, kind)
	default:
		r.Logger.Warn("cache read failed", "kind", kind, "error", err)
	}
	return nil, false
}

func (r *Runner) store(ctx context.Context, kind, key string, res *Result, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	data, err := json.Marshal(res)
	if err != nil {
		r.Logger.Warn("encode result for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
