package o4e

import (
	"context"
	"log/slog"

	"github.com/fontlaborg/o4e/internal/backend"
	"github.com/fontlaborg/o4e/internal/batch"
	"github.com/fontlaborg/o4e/internal/fontcache"
)

// BatchJob, BatchResult, and BatchSummary expose spec.md §4.9's batch
// scheduler at the public boundary, aliasing internal/batch's types rather
// than redeclaring them.
type BatchJob = batch.Job
type BatchResult = batch.Result
type BatchSummary = batch.Summary

// CacheOptions configures the three independent cache layers (parsed
// faces, shaped runs, rasterized glyph masks) an Engine owns.
type CacheOptions = fontcache.Options

// SegmentOptions controls segmentation and the fallback chain used to bind
// a Font to runs segmentation leaves unbound.
type SegmentOptions = backend.SegmentOptions

// CacheStats reports current occupancy of each cache layer.
type CacheStats = fontcache.Stats

// EngineOptions configures New.
type EngineOptions struct {
	// Logger receives non-fatal warnings (font discovery failures, etc.).
	// A nil Logger defaults to slog.Default().
	Logger *slog.Logger
	// Cache configures the font/shape/glyph-mask cache layers.
	Cache CacheOptions
	// ForcePortable skips the platform-native backend lookup entirely and
	// always constructs Portable. The zero value (false) matches spec.md
	// §4.8's documented default: native where available, portable otherwise.
	ForcePortable bool
}

// Engine is the public entry point: spec.md §4.8's Backend facade,
// selecting a default backend per host OS at construction, exactly as
// §4.8 documents ("platform-native where available, portable otherwise").
type Engine struct {
	backend.Backend
}

// New constructs an Engine. It never fails: if a platform-native backend
// is unavailable (true of every host today, since none of this module's
// dependencies bind CoreText or DirectWrite — see DESIGN.md), it silently
// falls back to Portable.
func New(opts EngineOptions) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !opts.ForcePortable {
		if native, err := backend.NewNative(logger); err == nil {
			return &Engine{Backend: native}
		}
	}
	return &Engine{Backend: backend.NewPortable(logger, opts.Cache)}
}

// RenderBatch implements spec.md §4.9: render_batch(jobs, concurrency?) ->
// ordered results, running jobs concurrently against this Engine's backend
// (and therefore its shared font cache). concurrency <= 0 defaults to the
// host's available parallelism.
func (e *Engine) RenderBatch(ctx context.Context, jobs []BatchJob, concurrency int) ([]BatchResult, BatchSummary) {
	return batch.RenderBatch(ctx, e.Backend, jobs, concurrency)
}

// RenderStreaming implements spec.md §4.9's streaming variant: results
// arrive on the returned channel as each job completes, not in input order.
// Callers must drain the channel to avoid leaking worker goroutines.
func (e *Engine) RenderStreaming(ctx context.Context, jobs []BatchJob, concurrency int) <-chan BatchResult {
	return batch.RenderStreaming(ctx, e.Backend, jobs, concurrency)
}
