package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline, cache and classifier events to a logger at
// debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnStageStart(_ context.Context, runID, stage string) {
	h.logger.Debug("stage start", "run", runID, "stage", stage)
}

func (h *LogHooks) OnStageComplete(_ context.Context, runID, stage string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed", "run", runID, "stage", stage, "duration", d, "err", err)
		return
	}
	h.logger.Debug("stage done", "run", runID, "stage", stage, "duration", d)
}

func (h *LogHooks) OnParseComplete(_ context.Context, runID string, symbols int, d time.Duration, err error) {
	h.logger.Debug("parse complete", "run", runID, "symbols", symbols, "duration", d, "ok", err == nil)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnClassify(_ context.Context, classifier, label string, d time.Duration, err error) {
	h.logger.Debug("classify", "classifier", classifier, "label", label, "duration", d, "err", err)
}

// Stats counts cache events and parse outcomes. It is safe for concurrent
// use and is how batch evaluation reports its hit rate.
type Stats struct {
	NoopPipelineHooks

	Hits, Misses, Sets atomic.Int64
	Parsed, Failed     atomic.Int64
}

func (s *Stats) OnCacheHit(context.Context, string)      { s.Hits.Add(1) }
func (s *Stats) OnCacheMiss(context.Context, string)     { s.Misses.Add(1) }
func (s *Stats) OnCacheSet(context.Context, string, int) { s.Sets.Add(1) }

func (s *Stats) OnParseComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	if err != nil {
		s.Failed.Add(1)
		return
	}
	s.Parsed.Add(1)
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s *Stats) HitRate() float64 {
	h, m := s.Hits.Load(), s.Misses.Load()
	if h+m == 0 {
		return 0
	}
	return float64(h) / float64(h+m)
}

var (
	_ PipelineHooks   = (*LogHooks)(nil)
	_ CacheHooks      = (*LogHooks)(nil)
	_ ClassifierHooks = (*LogHooks)(nil)
	_ PipelineHooks   = (*Stats)(nil)
	_ CacheHooks      = (*Stats)(nil)
)
