package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the total number of edge crossings for the given
// layer orderings. It sums the crossings between each pair of consecutive
// layers. Layers without entries in the map are treated as empty. Edges that
// skip layers are not counted.
func CountCrossings(g *DAG, orders map[int][]string) int {
	layers := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for i := 0; i < len(layers)-1; i++ {
		l := layers[i]
		crossings += CountLayerCrossings(g, orders[l], orders[l+1])
	}
	return crossings
}

// CountLayerCrossings counts edge crossings between two adjacent layers using
// a Fenwick tree (binary indexed tree) for O(E log V) performance where E is
// the number of edges between the layers and V is the number of nodes in the
// right layer.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// This is equivalent to counting inversions in the sequence of target
// positions when edges are sorted by source position.
func CountLayerCrossings(g *DAG, left, right []string) int {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}

	rightPos := PosMap(right)

	type edge struct{ left, right int }
	edges := make([]edge, 0, len(left)*2)
	for i, nodeID := range left {
		for _, child := range g.Children(nodeID) {
			if pos, ok := rightPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.left != b.left {
			return a.left - b.left
		}
		return a.right - b.right
	})

	fenwick := make([]int, len(right)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.right + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.right + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

// CountPairCrossingsWithPos counts how many crossings the edges of two
// neighbouring nodes produce when left is placed before right. If useParents
// is true, edges to predecessors are considered; otherwise edges to
// successors. The adjPos map holds the positions of the neighbour layer;
// neighbours missing from the map are ignored.
//
// Local search compares CountPairCrossingsWithPos(a, b) against
// CountPairCrossingsWithPos(b, a) to decide whether swapping helps.
func CountPairCrossingsWithPos(g *DAG, left, right string, adjPos map[string]int, useParents bool) int {
	var lnbr, rnbr []string
	if useParents {
		lnbr = g.Parents(left)
		rnbr = g.Parents(right)
	} else {
		lnbr = g.Children(left)
		rnbr = g.Children(right)
	}

	crossings := 0
	for _, ln := range lnbr {
		lp, ok := adjPos[ln]
		if !ok {
			continue
		}
		for _, rn := range rnbr {
			if rp, ok := adjPos[rn]; ok && lp > rp {
				crossings++
			}
		}
	}
	return crossings
}
