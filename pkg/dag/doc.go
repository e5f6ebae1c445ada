// Package dag provides the ordered directed graph that backs process layout.
//
// # Overview
//
// The layout engine places every flow node of a process into a column
// (layer) so that forward sequence flows always point to a strictly higher
// layer. This package provides the core data structure: nodes with a layer
// assignment, edges identified by their sequence flow ID, and ordered
// predecessor/successor lists.
//
// Unlike a general-purpose graph, a [DAG] remembers insertion order for
// nodes, edges and neighbour lists. Layout must be byte-for-byte
// reproducible for identical input, so every traversal in this package and
// in [transform] walks the graph in that order.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges
// with [DAG.AddEdge]:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "start"})
//	g.AddNode(dag.Node{ID: "task"})
//	g.AddEdge(dag.Edge{ID: "f1", From: "start", To: "task"})
//
// Query the graph structure with [DAG.Children], [DAG.Parents],
// [DAG.NodesInLayer], and related methods. Use [DAG.Validate] after layering
// to verify the forward graph is acyclic and layer-consistent.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count crossings between
// adjacent layers with a Fenwick tree in O(E log V). Intra-layer ordering
// uses [CountPairCrossingsWithPos] to decide whether swapping two
// neighbours helps.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Each layout scope builds
// its own graph, so independent scopes can be processed in parallel.
//
// [transform]: github.com/matzehuels/bpmnlayout/pkg/dag/transform
package dag
