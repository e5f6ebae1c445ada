package transform

import "github.com/matzehuels/bpmnlayout/pkg/dag"

// BreakCycles removes back-edges from the graph so that the remaining
// forward edges form a directed acyclic graph, and returns the removed edges
// in detection order.
//
// BreakCycles uses depth-first search with white/gray/black coloring. An
// edge that reaches a gray node (one still on the DFS stack) would close a
// cycle and is classified as a back-edge. Self-loops are always back-edges.
//
// # Traversal Order
//
// The DFS starts from every source node (in-degree 0) in insertion order,
// then visits any remaining unvisited nodes in insertion order to handle
// components that are entirely cyclic. Outgoing edges are followed in
// insertion order. The classification is therefore a pure function of the
// input order: a flow that points back to a node already on the current
// path from a start event becomes the back-edge, never the forward flow
// leading into the loop.
//
// After removal, longest-path layering via [AssignLayers] guarantees that
// every remaining edge points to a strictly higher layer.
//
// # Performance
//
// Time complexity is O(V + E). Space complexity is O(V) for the color map
// and recursion stack.
func BreakCycles(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var backEdges []dag.Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, e := range g.OutEdges(node) {
			switch color[e.To] {
			case white:
				dfs(e.To)
			case gray:
				backEdges = append(backEdges, e)
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e.ID)
	}
	return backEdges
}
