package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/cache"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
	"github.com/matzehuels/bpmnlayout/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.LayoutTTL,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, p *bpmn.Process, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{ProcessHash: ProcessHash(p)}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, p, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats = statsFor(l)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"process", p.ID,
		"shapes", result.Stats.Shapes,
		"edges", result.Stats.Edges,
		"back_edges", result.Stats.BackEdges,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, p, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, p *bpmn.Process, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}

	key := r.Keyer.LayoutKey(ProcessHash(p), opts.LayoutKeyOpts())
	if l, ok := r.cachedLayout(ctx, key, opts); ok {
		return l, true, nil
	}

	l, err := r.observeLayout(ctx, p, func() (graph.Layout, error) {
		return GenerateLayout(p, opts)
	})
	if err != nil {
		return graph.Layout{}, false, err
	}

	r.storeLayout(ctx, key, l, opts)
	return l, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, p *bpmn.Process, opts Options) (graph.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, p, opts)
	return l, err
}

// Relayout recomputes a prior layout after toggling the sub-processes in
// opts.Toggles. Results are cached by process, prior layout and toggles.
func (r *Runner) Relayout(ctx context.Context, p *bpmn.Process, prior graph.Layout, opts Options) (graph.Layout, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}

	priorData, err := graph.MarshalLayout(prior)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("serialize prior layout: %w", err)
	}
	key := r.Keyer.LayoutKey(ProcessHash(p)+":"+cache.Hash(priorData), opts.LayoutKeyOpts())
	if l, ok := r.cachedLayout(ctx, key, opts); ok {
		return l, nil
	}

	l, err := r.observeLayout(ctx, p, func() (graph.Layout, error) {
		return GenerateRelayout(p, prior, opts)
	})
	if err != nil {
		return graph.Layout{}, err
	}

	opts.Logger.Debug("relayout", "process", p.ID, "toggles", opts.Toggles)
	r.storeLayout(ctx, key, l, opts)
	return l, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, p *bpmn.Process, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	// DOT output depends on the process, not only on the geometry.
	contentHash := cache.Hash(layoutData)
	if p != nil {
		contentHash += ":" + ProcessHash(p)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
				break
			}
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Layout()
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		hooks.OnRenderStart(ctx, format)
		single := opts
		single.Formats = []string{format}
		out, err := RenderFromLayout(ctx, l, p, single)
		hooks.OnRenderComplete(ctx, format, len(out[format]), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = out[format]
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(contentHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, key, keyTypeArtifact, data, opts)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, p *bpmn.Process, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, p, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// ProcessHash is the content hash of the process JSON.
func ProcessHash(p *bpmn.Process) string {
	data, err := bpmn.MarshalProcess(p)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// =============================================================================
// Internal Helpers
// =============================================================================

func (r *Runner) observeLayout(ctx context.Context, p *bpmn.Process, fn func() (graph.Layout, error)) (graph.Layout, error) {
	elements, _ := p.Stats()
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, p.ID, elements)
	start := time.Now()
	l, err := fn()
	hooks.OnLayoutComplete(ctx, p.ID, len(l.Shapes), time.Since(start), err)
	return l, err
}

func (r *Runner) cachedLayout(ctx context.Context, key string, opts Options) (graph.Layout, bool) {
	if opts.Refresh {
		return graph.Layout{}, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return graph.Layout{}, false
	}
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		// Corrupt entry: recompute and overwrite.
		opts.Logger.Debug("discarding cached layout", "error", err)
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return graph.Layout{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeLayout)
	return l, true
}

func (r *Runner) storeLayout(ctx context.Context, key string, l graph.Layout, opts Options) {
	data, err := graph.MarshalLayout(l)
	if err != nil {
		return
	}
	r.set(ctx, key, keyTypeLayout, data, opts)
}

// set writes a cache entry, retrying transient backend failures. Cache
// write errors never fail the pipeline.
func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, opts Options) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, r.TTL)
	})
	if err != nil {
		opts.Logger.Warn("cache write failed", "key_type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
