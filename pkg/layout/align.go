package layout

import (
	"github.com/matzehuels/bpmnlayout/pkg/dag"
)

// AlignChains straightens linear chains. For every maximal run of
// single-predecessor, single-successor activities and events, the vertical
// center of each member is set to that of the chain root. Gateways are
// never part of a chain.
//
// A move that would overlap another node of the same layer is skipped.
// Running the pass twice gives the same result as running it once.
func AlignChains(nodes []Node, g *dag.DAG) {
	idx := indexNodes(nodes)
	visited := make(map[string]bool, len(nodes))

	for i := range nodes {
		n := &nodes[i]
		if visited[n.ID] || n.Kind.IsGateway() {
			continue
		}

		root := n.ID
		for {
			parents := g.Parents(root)
			if len(parents) != 1 {
				break
			}
			p, ok := idx[parents[0]]
			if !ok || nodes[p].Kind.IsGateway() || g.OutDegree(parents[0]) > 1 {
				break
			}
			root = parents[0]
		}

		visited[root] = true
		centerY := nodes[idx[root]].Bounds.CenterY()
		for cur := root; ; {
			children := g.Children(cur)
			if len(children) != 1 {
				break
			}
			c, ok := idx[children[0]]
			if !ok || nodes[c].Kind.IsGateway() || g.InDegree(children[0]) != 1 || visited[children[0]] {
				break
			}
			visited[children[0]] = true
			moveCenterY(nodes, c, centerY)
			cur = children[0]
		}
	}
}

// AlignSplitJoin gives a split gateway and its matching join the same
// vertical center. The join of a gateway with two or more outgoing flows
// is the single gateway reached first on every branch; when the branches
// meet at none or several, nothing moves.
func AlignSplitJoin(nodes []Node, g *dag.DAG) {
	idx := indexNodes(nodes)
	isGateway := func(id string) bool {
		i, ok := idx[id]
		return ok && nodes[i].Kind.IsGateway()
	}

	for i := range nodes {
		split := &nodes[i]
		if !split.Kind.IsGateway() || g.OutDegree(split.ID) < 2 {
			continue
		}
		join, ok := commonJoin(g, g.Children(split.ID), isGateway)
		if !ok || join == split.ID {
			continue
		}
		moveCenterY(nodes, idx[join], split.Bounds.CenterY())
	}
}

// commonJoin intersects, over all branches, the gateways reachable without
// crossing another gateway first.
func commonJoin(g *dag.DAG, branches []string, isGateway func(string) bool) (string, bool) {
	var common map[string]bool
	for _, start := range branches {
		reached := firstGateways(g, start, isGateway)
		if common == nil {
			common = reached
			continue
		}
		for id := range common {
			if !reached[id] {
				delete(common, id)
			}
		}
	}
	if len(common) != 1 {
		return "", false
	}
	for id := range common {
		return id, true
	}
	return "", false
}

// firstGateways runs a breadth-first search from start that stops at every
// gateway it meets and returns those gateways.
func firstGateways(g *dag.DAG, start string, isGateway func(string) bool) map[string]bool {
	found := make(map[string]bool)
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if isGateway(id) {
			found[id] = true
			continue
		}
		for _, c := range g.Children(id) {
			if !seen[c] {
				seen[c] = true
				queue = append(queue, c)
			}
		}
	}
	return found
}

// moveCenterY moves nodes[i] vertically so its center is at y, unless the
// new box would overlap another node of its layer.
func moveCenterY(nodes []Node, i int, y float64) {
	n := &nodes[i]
	dy := y - n.Bounds.CenterY()
	if dy == 0 {
		return
	}
	moved := n.Bounds.Translate(0, dy)
	for j := range nodes {
		if j != i && nodes[j].Layer == n.Layer && nodes[j].Bounds.Overlaps(moved, 0) {
			return
		}
	}
	n.translate(0, dy)
}

func indexNodes(nodes []Node) map[string]int {
	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		idx[n.ID] = i
	}
	return idx
}
