package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/dag"
)

// centerTolerance is the vertical center difference under which two shapes
// count as level.
const centerTolerance = 1.0

// Route computes orthogonal waypoints for every flow of one scope, in flow
// order. Flows with an unknown source or target are skipped.
//
// Forward flows leave non-gateway sources on the right. Gateways spread
// their outgoing flows over top, right and bottom ports by target position.
// Targets are entered on the left, except gateways that are not level with
// the source, which are entered from above or below. The right-to-left
// fallback replaces the assigned route when it needs fewer bends, so a
// gateway branch whose target is level with the gateway reports the right
// port even when the gateway has an even number of outgoing flows.
//
// Back-edges loop around the node field of the scope, above or below,
// whichever is shorter.
func Route(flows []bpmn.Flow, nodes []Node, backEdges []BackEdge, g *dag.DAG, opts Options) []Edge {
	opts = opts.WithDefaults()
	r := newRouter(nodes, g, opts)

	back := make(map[string]bool, len(backEdges))
	for _, be := range backEdges {
		back[be.ID] = true
	}

	edges := make([]Edge, 0, len(flows))
	for _, f := range flows {
		s, sok := r.nodes[f.Source]
		t, tok := r.nodes[f.Target]
		if !sok || !tok {
			continue
		}
		e := Edge{ID: f.ID, Source: f.Source, Target: f.Target, Label: f.Name}
		if back[f.ID] {
			e.BackEdge = true
			e.SourcePort, e.TargetPort, e.Waypoints = r.loop(s, t)
		} else {
			e.SourcePort, e.TargetPort, e.Waypoints = r.forward(f.ID, s, t)
		}
		edges = append(edges, e)
	}
	return edges
}

type router struct {
	opts    Options
	nodes   map[string]*Node
	ports    map[string]Port // forward flow id -> assigned source port
	colLeft  map[int]float64
	colRight map[int]float64
	minY     float64 // top of the node field, labels included
	maxY     float64
}

func newRouter(nodes []Node, g *dag.DAG, opts Options) *router {
	r := &router{
		opts:     opts,
		nodes:    make(map[string]*Node, len(nodes)),
		ports:    make(map[string]Port),
		colLeft:  make(map[int]float64),
		colRight: make(map[int]float64),
		minY:     math.Inf(1),
		maxY:     math.Inf(-1),
	}
	for i := range nodes {
		n := &nodes[i]
		r.nodes[n.ID] = n
		if l, ok := r.colLeft[n.Layer]; !ok || n.Bounds.X < l {
			r.colLeft[n.Layer] = n.Bounds.X
		}
		if rt, ok := r.colRight[n.Layer]; !ok || n.Bounds.Right() > rt {
			r.colRight[n.Layer] = n.Bounds.Right()
		}
		r.minY = min(r.minY, n.Bounds.Y)
		r.maxY = max(r.maxY, n.Bounds.Bottom())
		if n.LabelBounds != nil {
			r.minY = min(r.minY, n.LabelBounds.Y)
			r.maxY = max(r.maxY, n.LabelBounds.Bottom())
		}
	}
	for i := range nodes {
		if nodes[i].Kind.IsGateway() {
			r.assignGatewayPorts(&nodes[i], g)
		}
	}
	return r
}

// assignGatewayPorts distributes the forward outgoing flows of a gateway,
// sorted by target center: a single flow or the median of an odd count
// leaves right, the upper half top and the lower half bottom.
func (r *router) assignGatewayPorts(gw *Node, g *dag.DAG) {
	out := slices.Clone(g.OutEdges(gw.ID))
	slices.SortStableFunc(out, func(a, b dag.Edge) int {
		ya, yb := r.centerY(a.To), r.centerY(b.To)
		switch {
		case ya < yb:
			return -1
		case ya > yb:
			return 1
		}
		return 0
	})

	n := len(out)
	for i, e := range out {
		switch {
		case n == 1 || (n%2 == 1 && i == n/2):
			r.ports[e.ID] = PortRight
		case i < n/2:
			r.ports[e.ID] = PortTop
		default:
			r.ports[e.ID] = PortBottom
		}
	}
}

func (r *router) centerY(id string) float64 {
	if n, ok := r.nodes[id]; ok {
		return n.Bounds.CenterY()
	}
	return 0
}

// targetPort enters gateways from above or below when they are not level
// with the source.
func targetPort(s, t *Node) Port {
	dy := t.Bounds.CenterY() - s.Bounds.CenterY()
	if !t.Kind.IsGateway() || math.Abs(dy) <= centerTolerance {
		return PortLeft
	}
	if dy > 0 {
		return PortTop
	}
	return PortBottom
}

func (r *router) forward(id string, s, t *Node) (Port, Port, []Point) {
	sp := PortRight
	if s.Kind.IsGateway() {
		if p, ok := r.ports[id]; ok {
			sp = p
		}
	}
	tp := targetPort(s, t)

	fallback := r.path(s, t, PortRight, PortLeft)
	if sp == PortRight && tp == PortLeft {
		return sp, tp, fallback
	}
	assigned := r.path(s, t, sp, tp)
	if Bends(fallback) < Bends(assigned) {
		return PortRight, PortLeft, fallback
	}
	return sp, tp, assigned
}

// channelBefore returns the x of the vertical channel left of a layer.
func (r *router) channelBefore(layer int) float64 {
	return r.colLeft[layer] - r.opts.HorizontalSpacing/2
}

// channelAfter returns the x of the vertical channel right of a layer.
func (r *router) channelAfter(layer int) float64 {
	return r.colRight[layer] + r.opts.HorizontalSpacing/2
}

// path synthesizes an orthogonal route between the given ports.
func (r *router) path(s, t *Node, sp, tp Port) []Point {
	sb, tb := s.Bounds, t.Bounds
	start, end := sp.point(sb), tp.point(tb)
	gap := r.opts.VerticalSpacing / 2

	switch sp {
	case PortRight:
		switch tp {
		case PortLeft:
			if math.Abs(start.Y-end.Y) <= centerTolerance {
				return []Point{start, {tb.X, start.Y}}
			}
			x := r.channelBefore(t.Layer)
			return []Point{start, {x, start.Y}, {x, end.Y}, end}
		case PortTop:
			if start.Y < tb.Y {
				return []Point{start, {end.X, start.Y}, end}
			}
			x, y := r.channelBefore(t.Layer), tb.Y-gap
			return []Point{start, {x, start.Y}, {x, y}, {end.X, y}, end}
		default:
			if start.Y > tb.Bottom() {
				return []Point{start, {end.X, start.Y}, end}
			}
			x, y := r.channelBefore(t.Layer), tb.Bottom()+gap
			return []Point{start, {x, start.Y}, {x, y}, {end.X, y}, end}
		}

	default: // top or bottom exit
		up := sp == PortTop
		exitY := sb.Bottom() + gap
		if up {
			exitY = sb.Y - gap
		}

		switch tp {
		case PortLeft:
			ahead := end.Y > sb.Bottom()
			if up {
				ahead = end.Y < sb.Y
			}
			if ahead && end.X > start.X {
				return []Point{start, {start.X, end.Y}, end}
			}
			x := r.channelBefore(t.Layer)
			return []Point{start, {start.X, exitY}, {x, exitY}, {x, end.Y}, end}

		case PortTop, PortBottom:
			arrivesUp := tp == PortBottom
			if up == arrivesUp {
				// exit and entry run the same way: Z through the gap
				if (up && end.Y < start.Y) || (!up && end.Y > start.Y) {
					midY := (start.Y + end.Y) / 2
					return []Point{start, {start.X, midY}, {end.X, midY}, end}
				}
			} else {
				// U over or under both shapes
				var y float64
				if up {
					y = min(start.Y, end.Y) - gap
				} else {
					y = max(start.Y, end.Y) + gap
				}
				return []Point{start, {start.X, y}, {end.X, y}, end}
			}
			x := r.channelBefore(t.Layer)
			entryY := tb.Bottom() + gap
			if !arrivesUp {
				entryY = tb.Y - gap
			}
			return []Point{start, {start.X, exitY}, {x, exitY}, {x, entryY}, {end.X, entryY}, end}
		}
	}
	return []Point{start, end}
}

// loop routes a back-edge around the node field. The above candidate
// leaves the source top, runs BackEdgeClearance above the topmost shape or
// label and drops onto the target top; the below candidate mirrors it. A
// self-loop leaves and re-enters the same side at three quarters and a
// quarter of the width.
//
// A candidate whose vertical run would pass another shape of the column
// first steps sideways through the gap next to the endpoint, into the
// channel after the source column or before the target column. Candidates
// that still cross a shape lose; otherwise the shorter wins, above on a tie.
func (r *router) loop(s, t *Node) (Port, Port, []Point) {
	sx, tx := s.Bounds.CenterX(), t.Bounds.CenterX()
	if s == t {
		sx = s.Bounds.X + s.Bounds.Width*0.75
		tx = s.Bounds.X + s.Bounds.Width*0.25
	}

	above := r.loopPath(s, t, sx, tx, true)
	below := r.loopPath(s, t, sx, tx, false)

	aboveClear, belowClear := !r.crossesNode(above), !r.crossesNode(below)
	if aboveClear != belowClear {
		if belowClear {
			return PortBottom, PortBottom, below
		}
		return PortTop, PortTop, above
	}
	if PathLength(below) < PathLength(above) {
		return PortBottom, PortBottom, below
	}
	return PortTop, PortTop, above
}

func (r *router) loopPath(s, t *Node, sx, tx float64, up bool) []Point {
	y := r.maxY + r.opts.BackEdgeClearance
	sy, ty := s.Bounds.Bottom(), t.Bounds.Bottom()
	if up {
		y = r.minY - r.opts.BackEdgeClearance
		sy, ty = s.Bounds.Y, t.Bounds.Y
	}

	pts := []Point{{sx, sy}}
	if gapY, blocked := r.gapTowards(sx, sy, y); blocked {
		x := r.channelAfter(s.Layer)
		pts = append(pts, Point{sx, gapY}, Point{x, gapY}, Point{x, y})
	} else {
		pts = append(pts, Point{sx, y})
	}
	if gapY, blocked := r.gapTowards(tx, ty, y); blocked {
		x := r.channelBefore(t.Layer)
		pts = append(pts, Point{x, y}, Point{x, gapY}, Point{tx, gapY})
	} else {
		pts = append(pts, Point{tx, y})
	}
	return append(pts, Point{tx, ty})
}

// gapTowards reports whether the vertical run at x from y0 to y1 hits a
// shape and, if so, returns the y halfway between y0 and the nearest one.
func (r *router) gapTowards(x, y0, y1 float64) (float64, bool) {
	a, b := Point{x, y0}, Point{x, y1}
	near, blocked := y1, false
	for _, n := range r.nodes {
		if !crossesBox(a, b, n.Bounds) {
			continue
		}
		blocked = true
		if y1 < y0 {
			near = max(near, n.Bounds.Bottom())
		} else {
			near = min(near, n.Bounds.Y)
		}
	}
	return (y0 + near) / 2, blocked
}

// crossesNode reports whether any segment of pts runs through a shape.
func (r *router) crossesNode(pts []Point) bool {
	for i := 1; i < len(pts); i++ {
		for _, n := range r.nodes {
			if crossesBox(pts[i-1], pts[i], n.Bounds) {
				return true
			}
		}
	}
	return false
}
