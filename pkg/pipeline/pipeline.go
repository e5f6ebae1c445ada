// Package pipeline provides the layout → render pipeline for bpmnlayout.
//
// This package implements the complete pipeline used by the CLI and the
// HTTP API. By centralizing this logic, both entry points cache, log and
// emit observability events the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Compute geometry for a process (or re-layout a prior result)
//  2. Render: Generate output in various formats (JSON, SVG, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"json", "svg"}}
//	result, err := runner.Execute(ctx, process, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	l, err := runner.ComputeLayout(ctx, process, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, l, process, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bpmnlayout/pkg/cache"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
	"github.com/matzehuels/bpmnlayout/pkg/render/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON     = "json"     // serialized layout
	FormatSVG      = "svg"      // preview of the computed layout
	FormatDOT      = "dot"      // Graphviz source of the process graph
	FormatGraphviz = "graphviz" // Graphviz-rendered SVG of the process graph
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:     true,
	FormatSVG:      true,
	FormatDOT:      true,
	FormatGraphviz: true,
}

// DefaultFormat is the format produced when none is requested.
const DefaultFormat = FormatJSON

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
type Options struct {
	// Layout options
	Layout  layout.Options `json:"-"`
	Toggles []string       `json:"toggles,omitempty"` // sub-processes to expand/collapse on re-layout
	Refresh bool           `json:"refresh,omitempty"` // bypass the cache

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Padding  float64  `json:"padding,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // element kinds in DOT labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ProcessHash is the content hash of the input process.
	ProcessHash string

	// Layout is the computed geometry.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Shapes     int
	Edges      int
	BackEdges  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, svg, dot, graphviz)", format)
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
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero layout options with engine defaults.
func (o *Options) SetLayoutDefaults() {
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Padding == 0 {
		o.Padding = svg.DefaultPadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Padding < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "padding must not be negative")
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	l := o.Layout
	return cache.LayoutKeyOpts{
		HorizontalSpacing: l.HorizontalSpacing,
		VerticalSpacing:   l.VerticalSpacing,
		CharWidth:         l.CharWidth,
		LabelMinWidth:     l.LabelMinWidth,
		LabelHeight:       l.LabelHeight,
		LabelGap:          l.LabelGap,
		LabelTolerance:    l.LabelTolerance,
		LabelSlideSteps:   l.LabelSlideSteps,
		BackEdgeClearance: l.BackEdgeClearance,
		SubProcessPadding: l.SubProcessPadding,
		Toggles:           o.Toggles,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Style, k.Padding = "simple", o.Padding
	case FormatDOT, FormatGraphviz:
		if o.Detailed {
			k.Style = "detailed"
		}
	}
	return k
}
