package pipeline

import (
	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes a fresh layout and converts it to the
// serialization format.
func GenerateLayout(p *bpmn.Process, opts Options) (graph.Layout, error) {
	d, err := layout.Compute(p, opts.Layout)
	if err != nil {
		return graph.Layout{}, err
	}
	return graph.FromDiagram(p.ID, d), nil
}

// GenerateRelayout recomputes a layout after expanding or collapsing the
// sub-processes in opts.Toggles, reusing the prior geometry.
func GenerateRelayout(p *bpmn.Process, prior graph.Layout, opts Options) (graph.Layout, error) {
	var d *layout.Diagram
	if len(prior.Shapes) > 0 {
		var err error
		if d, err = graph.ToDiagram(prior); err != nil {
			return graph.Layout{}, err
		}
	}
	out, err := layout.Relayout(d, p, opts.Toggles, opts.Layout)
	if err != nil {
		return graph.Layout{}, err
	}
	return graph.FromDiagram(p.ID, out), nil
}

// statsFor counts shapes and edges of a layout.
func statsFor(l graph.Layout) Stats {
	s := Stats{Shapes: len(l.Shapes), Edges: len(l.Edges)}
	for _, e := range l.Edges {
		if e.BackEdge {
			s.BackEdges++
		}
	}
	return s
}
