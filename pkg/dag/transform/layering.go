package transform

import "github.com/matzehuels/bpmnlayout/pkg/dag"

// AssignLayers assigns nodes to columns (layers) based on their forward
// dependency depth.
//
// AssignLayers uses a longest-path algorithm via topological sort (Kahn's
// algorithm). Each node is placed at one plus the maximum layer of any of
// its predecessors, ensuring that:
//   - Source nodes (no incoming edges) are at layer 0
//   - Every edge points to a strictly higher layer
//   - Isolated nodes stay at layer 0
//
// Existing layer assignments in the DAG are overwritten.
//
// # Cycles
//
// AssignLayers assumes the graph is acyclic. If cycles exist, nodes in the
// cycle never reach zero in-degree and remain at layer 0. Run [BreakCycles]
// first.
//
// # Performance
//
// Time complexity is O(V + E). Space complexity is O(V).
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	layers := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		layers[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if layer := layers[curr] + 1; layer > layers[child] {
				layers[child] = layer
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetLayers(layers)
}
