package transform

import (
	"slices"

	"github.com/matzehuels/bpmnlayout/pkg/dag"
)

// maxSwapPasses bounds the adjacent-swap refinement per layer.
const maxSwapPasses = 4

// OrderLayers returns the node IDs of every layer, top to bottom, indexed by
// layer number. Layers must already be assigned with [AssignLayers]; since
// longest-path layering never leaves a layer empty, the result is dense.
//
// Layer 0 keeps insertion order. Every later layer is sorted stably by the
// barycenter of its predecessors' positions (insertion order breaks ties),
// then refined by swapping neighbours whenever that strictly reduces the
// crossings with the previous layer. Both steps are deterministic, so the
// same input always yields the same order.
func OrderLayers(g *dag.DAG) [][]string {
	if g.NodeCount() == 0 {
		return nil
	}

	maxLayer := g.MaxLayer()
	orders := make([][]string, maxLayer+1)
	pos := make(map[string]int, g.NodeCount())

	orders[0] = dag.NodeIDs(g.NodesInLayer(0))
	for i, id := range orders[0] {
		pos[id] = i
	}

	for layer := 1; layer <= maxLayer; layer++ {
		ids := dag.NodeIDs(g.NodesInLayer(layer))
		bary := make(map[string]float64, len(ids))
		for _, id := range ids {
			bary[id] = barycenter(g.Parents(id), pos)
		}
		slices.SortStableFunc(ids, func(a, b string) int {
			switch {
			case bary[a] < bary[b]:
				return -1
			case bary[a] > bary[b]:
				return 1
			}
			return 0
		})

		swapNeighbours(g, ids, dag.PosMap(orders[layer-1]))

		orders[layer] = ids
		for i, id := range ids {
			pos[id] = i
		}
	}
	return orders
}

func barycenter(parents []string, pos map[string]int) float64 {
	if len(parents) == 0 {
		return 0
	}
	sum := 0
	for _, p := range parents {
		sum += pos[p]
	}
	return float64(sum) / float64(len(parents))
}

func swapNeighbours(g *dag.DAG, ids []string, prevPos map[string]int) {
	for pass := 0; pass < maxSwapPasses; pass++ {
		improved := false
		for i := 0; i+1 < len(ids); i++ {
			a, b := ids[i], ids[i+1]
			if dag.CountPairCrossingsWithPos(g, b, a, prevPos, true) < dag.CountPairCrossingsWithPos(g, a, b, prevPos, true) {
				ids[i], ids[i+1] = b, a
				improved = true
			}
		}
		if !improved {
			return
		}
	}
}
