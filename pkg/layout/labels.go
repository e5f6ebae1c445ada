package layout

import "math"

// labelFractions are the candidate positions along the longest segment,
// in the order they are tried.
var labelFractions = [...]float64{0.5, 0.25, 0.75, 0.33, 0.67}

// Obstacles returns the boxes labels must avoid: every node and every
// outside node label.
func Obstacles(nodes []Node) []Bounds {
	out := make([]Bounds, 0, len(nodes)*2)
	for _, n := range nodes {
		out = append(out, n.Bounds)
		if n.LabelBounds != nil {
			out = append(out, *n.LabelBounds)
		}
	}
	return out
}

// PlaceLabels sets the label box of every labeled edge, in slice order.
// Each placed label becomes an obstacle for the edges after it, so callers
// that want priorities must sort first.
//
// Candidates sit on the edge's longest straight segment at fixed fractions,
// on either side of it. The first one that overlaps no obstacle by more
// than LabelTolerance wins. Otherwise the box slides along the segment in
// LabelSlideSteps steps; if every step collides the label goes to the
// segment midpoint regardless.
func PlaceLabels(edges []Edge, obstacles []Bounds, opts Options) {
	opts = opts.WithDefaults()
	placed := append([]Bounds(nil), obstacles...)

	for i := range edges {
		e := &edges[i]
		e.LabelBounds = nil
		if e.Label == "" || len(e.Waypoints) < 2 {
			continue
		}
		a, b := longestSegment(e.Waypoints)
		w, h := opts.labelSize(e.Label)
		box := placeOnSegment(a, b, w, h, placed, opts)
		e.LabelBounds = &box
		placed = append(placed, box)
	}
}

func placeOnSegment(a, b Point, w, h float64, obstacles []Bounds, opts Options) Bounds {
	free := func(c Bounds) bool {
		for _, o := range obstacles {
			if c.Overlaps(o, opts.LabelTolerance) {
				return false
			}
		}
		return true
	}

	for _, f := range labelFractions {
		for _, side := range [2]bool{true, false} {
			if c := labelBox(a, b, f, side, w, h, opts.LabelGap); free(c) {
				return c
			}
		}
	}

	steps := max(opts.LabelSlideSteps, 1)
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		for _, side := range [2]bool{true, false} {
			if c := labelBox(a, b, f, side, w, h, opts.LabelGap); free(c) {
				return c
			}
		}
	}
	return labelBox(a, b, 0.5, true, w, h, opts.LabelGap)
}

// labelBox returns a w×h box anchored at fraction f of segment a→b. For a
// horizontal segment first puts it above, otherwise below; for a vertical
// one first puts it left, otherwise right.
func labelBox(a, b Point, f float64, first bool, w, h, gap float64) Bounds {
	px := a.X + (b.X-a.X)*f
	py := a.Y + (b.Y-a.Y)*f
	if a.X == b.X && a.Y != b.Y {
		box := Bounds{Y: py - h/2, Width: w, Height: h}
		if first {
			box.X = px - gap - w
		} else {
			box.X = px + gap
		}
		return box
	}
	box := Bounds{X: px - w/2, Width: w, Height: h}
	if first {
		box.Y = py - gap - h
	} else {
		box.Y = py + gap
	}
	return box
}

// longestSegment returns the first longest segment of a polyline.
func longestSegment(pts []Point) (Point, Point) {
	best, bestLen := 0, -1.0
	for i := 1; i < len(pts); i++ {
		l := math.Abs(pts[i].X-pts[i-1].X) + math.Abs(pts[i].Y-pts[i-1].Y)
		if l > bestLen {
			best, bestLen = i-1, l
		}
	}
	return pts[best], pts[best+1]
}
