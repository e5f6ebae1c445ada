package graph

import (
	"fmt"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// =============================================================================
// Diagram ↔ Layout Conversion
// =============================================================================

// FromDiagram converts engine output to its serialization format. Shapes
// and edges keep the diagram order.
func FromDiagram(processID string, d *layout.Diagram) Layout {
	ext := d.Bounds()
	out := Layout{
		ProcessID: processID,
		X:         ext.X,
		Y:         ext.Y,
		Width:     ext.Width,
		Height:    ext.Height,
		Shapes:    make([]Shape, len(d.Nodes)),
		Edges:     make([]Edge, len(d.Edges)),
	}

	for i, n := range d.Nodes {
		out.Shapes[i] = Shape{
			ID:          n.ID,
			Kind:        n.Kind.String(),
			Parent:      n.Parent,
			X:           n.Bounds.X,
			Y:           n.Bounds.Y,
			Width:       n.Bounds.Width,
			Height:      n.Bounds.Height,
			Layer:       n.Layer,
			Position:    n.Position,
			Expanded:    n.Expanded,
			Label:       n.Label,
			LabelBounds: boundsFrom(n.LabelBounds),
		}
	}

	for i, e := range d.Edges {
		pts := make([]Point, len(e.Waypoints))
		for j, p := range e.Waypoints {
			pts[j] = Point{X: p.X, Y: p.Y}
		}
		out.Edges[i] = Edge{
			ID:          e.ID,
			Source:      e.Source,
			Target:      e.Target,
			Parent:      e.Parent,
			Waypoints:   pts,
			SourcePort:  e.SourcePort.String(),
			TargetPort:  e.TargetPort.String(),
			BackEdge:    e.BackEdge,
			Label:       e.Label,
			LabelBounds: boundsFrom(e.LabelBounds),
		}
	}

	return out
}

// ToDiagram converts a serialized layout back to engine geometry, e.g. as
// the prior diagram of an incremental re-layout.
func ToDiagram(l Layout) (*layout.Diagram, error) {
	d := &layout.Diagram{
		Nodes: make([]layout.Node, len(l.Shapes)),
		Edges: make([]layout.Edge, len(l.Edges)),
	}

	for i, s := range l.Shapes {
		kind, err := bpmn.ParseKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", s.ID, err)
		}
		d.Nodes[i] = layout.Node{
			ID:          s.ID,
			Kind:        kind,
			Parent:      s.Parent,
			Bounds:      layout.Bounds{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height},
			Layer:       s.Layer,
			Position:    s.Position,
			Label:       s.Label,
			Expanded:    s.Expanded,
			LabelBounds: boundsTo(s.LabelBounds),
		}
	}

	for i, e := range l.Edges {
		pts := make([]layout.Point, len(e.Waypoints))
		for j, p := range e.Waypoints {
			pts[j] = layout.Point{X: p.X, Y: p.Y}
		}
		le := layout.Edge{
			ID:          e.ID,
			Source:      e.Source,
			Target:      e.Target,
			Parent:      e.Parent,
			Waypoints:   pts,
			Label:       e.Label,
			LabelBounds: boundsTo(e.LabelBounds),
			BackEdge:    e.BackEdge,
		}
		_ = le.SourcePort.UnmarshalText([]byte(e.SourcePort))
		_ = le.TargetPort.UnmarshalText([]byte(e.TargetPort))
		d.Edges[i] = le
	}

	return d, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func boundsFrom(b *layout.Bounds) *Bounds {
	if b == nil {
		return nil
	}
	return &Bounds{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

func boundsTo(b *Bounds) *layout.Bounds {
	if b == nil {
		return nil
	}
	return &layout.Bounds{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}
