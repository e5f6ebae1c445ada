package layout

import (
	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/dag"
	"github.com/matzehuels/bpmnlayout/pkg/dag/transform"
)

// MetaKind is the dag node metadata key holding the element kind.
const MetaKind = "kind"

// Build turns one scope of elements and flows into ordered layers, the
// forward graph and the list of back-edges removed from it.
//
// Every element becomes a node, isolated ones included. Flows whose source
// or target is not an element of the scope are skipped. Back-edges are
// found by depth-first search in input order (see [transform.BreakCycles]);
// the remaining forward graph is layered by longest path and each layer is
// ordered by predecessor barycenter. The result depends only on the input
// order.
func Build(elements []bpmn.Element, flows []bpmn.Flow) (Layers, *dag.DAG, []BackEdge) {
	g := dag.New(nil)
	for i := range elements {
		e := &elements[i]
		// ids are unique after validation; a duplicate keeps the first
		_ = g.AddNode(dag.Node{ID: e.ID, Meta: dag.Metadata{MetaKind: e.Kind}})
	}
	for _, f := range flows {
		if _, ok := g.Node(f.Source); !ok {
			continue
		}
		if _, ok := g.Node(f.Target); !ok {
			continue
		}
		_ = g.AddEdge(dag.Edge{ID: f.ID, From: f.Source, To: f.Target})
	}

	removed := transform.BreakCycles(g)
	backEdges := make([]BackEdge, len(removed))
	for i, e := range removed {
		backEdges[i] = BackEdge{ID: e.ID, Source: e.From, Target: e.To}
	}

	transform.AssignLayers(g)
	return Layers(transform.OrderLayers(g)), g, backEdges
}
