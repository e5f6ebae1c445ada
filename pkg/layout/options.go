package layout

import (
	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Default layout constants.
const (
	DefaultHorizontalSpacing = 60.0
	DefaultVerticalSpacing   = 40.0
	DefaultCharWidth         = 7.0
	DefaultLabelMinWidth     = 30.0
	DefaultLabelHeight       = 14.0
	DefaultLabelGap          = 5.0
	DefaultLabelTolerance    = 1.0
	DefaultLabelSlideSteps   = 10
	DefaultBackEdgeClearance = 30.0
	DefaultSubProcessPadding = 20.0
	DefaultWorkers           = 4
)

// SizeFunc returns the shape size of an element.
type SizeFunc func(e *bpmn.Element) (w, h float64)

// Options controls spacing, label metrics and parallelism. Zero values are
// replaced by the defaults.
type Options struct {
	HorizontalSpacing float64 // gap between layer columns
	VerticalSpacing   float64 // gap between rows of one layer
	CharWidth         float64 // estimated label glyph width
	LabelMinWidth     float64
	LabelHeight       float64
	LabelGap          float64 // distance between a shape or segment and its label
	LabelTolerance    float64 // overlap allowed between label candidates and obstacles
	LabelSlideSteps   int
	BackEdgeClearance float64 // distance of back-edge loops from the node field
	SubProcessPadding float64 // inset of an expanded body inside its sub-process
	Workers           int     // concurrent sub-process bodies; 1 runs serially

	// Size overrides the default shape sizes. Expanded sub-processes with a
	// body are always sized from the body.
	Size SizeFunc
}

// DefaultOptions returns the default layout options.
func DefaultOptions() Options {
	return Options{}.WithDefaults()
}

// Validate rejects negative spacings and metrics.
func (o Options) Validate() error {
	for name, v := range map[string]float64{
		"horizontal_spacing":  o.HorizontalSpacing,
		"vertical_spacing":    o.VerticalSpacing,
		"char_width":          o.CharWidth,
		"label_min_width":     o.LabelMinWidth,
		"label_height":        o.LabelHeight,
		"label_gap":           o.LabelGap,
		"label_tolerance":     o.LabelTolerance,
		"back_edge_clearance": o.BackEdgeClearance,
		"subprocess_padding":  o.SubProcessPadding,
	} {
		if v < 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must not be negative (got %g)", name, v)
		}
	}
	if o.LabelSlideSteps < 0 || o.Workers < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "label_slide_steps and workers must not be negative")
	}
	return nil
}

// WithDefaults returns a copy with every zero field set to its default.
func (o Options) WithDefaults() Options {
	if o.HorizontalSpacing == 0 {
		o.HorizontalSpacing = DefaultHorizontalSpacing
	}
	if o.VerticalSpacing == 0 {
		o.VerticalSpacing = DefaultVerticalSpacing
	}
	if o.CharWidth == 0 {
		o.CharWidth = DefaultCharWidth
	}
	if o.LabelMinWidth == 0 {
		o.LabelMinWidth = DefaultLabelMinWidth
	}
	if o.LabelHeight == 0 {
		o.LabelHeight = DefaultLabelHeight
	}
	if o.LabelGap == 0 {
		o.LabelGap = DefaultLabelGap
	}
	if o.LabelTolerance == 0 {
		o.LabelTolerance = DefaultLabelTolerance
	}
	if o.LabelSlideSteps == 0 {
		o.LabelSlideSteps = DefaultLabelSlideSteps
	}
	if o.BackEdgeClearance == 0 {
		o.BackEdgeClearance = DefaultBackEdgeClearance
	}
	if o.SubProcessPadding == 0 {
		o.SubProcessPadding = DefaultSubProcessPadding
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Size == nil {
		o.Size = DefaultSize
	}
	return o
}

// DefaultSize sizes an element by its kind.
func DefaultSize(e *bpmn.Element) (w, h float64) {
	return e.Kind.DefaultSize()
}

// labelSize returns the box size of a label text.
func (o Options) labelSize(text string) (w, h float64) {
	w = float64(len([]rune(text))) * o.CharWidth
	if w < o.LabelMinWidth {
		w = o.LabelMinWidth
	}
	return w, o.LabelHeight
}
