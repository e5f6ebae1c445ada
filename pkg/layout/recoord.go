package layout

import (
	"maps"
	"math"
	"slices"
)

// epsilon absorbs floating point noise in coordinate comparisons.
const epsilon = 1e-6

// Recoordinate re-packs the layers of one scope horizontally after shapes
// changed size. For every layer k ≥ 1, in order, the required start is the
// right edge of layer k-1 plus HorizontalSpacing; when the leftmost node of
// layer k is elsewhere, layers k and later shift by the difference. Growing
// shapes push downstream layers right, shrinking ones close the gap, and
// layers before the first change stay where they are. Nested bodies are not
// moved; the engine re-places them inside their sub-process afterwards.
func Recoordinate(nodes []Node, opts Options) {
	opts = opts.WithDefaults()
	if len(nodes) == 0 {
		return
	}

	byLayer := make(map[int][]int)
	for i, n := range nodes {
		byLayer[n.Layer] = append(byLayer[n.Layer], i)
	}
	layers := slices.Sorted(maps.Keys(byLayer))

	for k := 1; k < len(layers); k++ {
		prevRight := nodes[byLayer[layers[k-1]][0]].Bounds.Right()
		for _, i := range byLayer[layers[k-1]] {
			prevRight = max(prevRight, nodes[i].Bounds.Right())
		}
		start := nodes[byLayer[layers[k]][0]].Bounds.X
		for _, i := range byLayer[layers[k]] {
			start = min(start, nodes[i].Bounds.X)
		}

		dx := prevRight + opts.HorizontalSpacing - start
		if math.Abs(dx) < epsilon {
			continue
		}
		for _, l := range layers[k:] {
			for _, i := range byLayer[l] {
				nodes[i].translate(dx, 0)
			}
		}
	}
}
