package layout

import (
	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
)

// Layers holds node ids per layer, left to right, each in top-to-bottom
// order.
type Layers [][]string

// Node is a placed flow element.
type Node struct {
	ID       string
	Kind     bpmn.Kind
	Parent   string // enclosing sub-process, empty at the top level
	Bounds   Bounds
	Layer    int
	Position int // index within the layer
	Label    string
	Expanded bool

	// LabelBounds is set only for kinds that render their label outside
	// the shape (events below, gateways above).
	LabelBounds *Bounds
}

// Edge is a routed sequence flow.
type Edge struct {
	ID          string
	Source      string
	Target      string
	Parent      string
	Waypoints   []Point
	Label       string
	LabelBounds *Bounds
	BackEdge    bool
	SourcePort  Port
	TargetPort  Port
}

// BackEdge is a cycle-closing flow excluded from the forward graph.
type BackEdge struct {
	ID     string
	Source string
	Target string
}

// Diagram is the flat output of a layout run: the nodes and edges of each
// scope, followed by those of its nested bodies.
type Diagram struct {
	Nodes []Node
	Edges []Edge
}

// Node returns the node with the given id in the given scope.
func (d *Diagram) Node(parent, id string) (*Node, bool) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id && d.Nodes[i].Parent == parent {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// Edge returns the edge with the given id in the given scope.
func (d *Diagram) Edge(parent, id string) (*Edge, bool) {
	for i := range d.Edges {
		if d.Edges[i].ID == id && d.Edges[i].Parent == parent {
			return &d.Edges[i], true
		}
	}
	return nil, false
}

// Extent returns the bounding box of every node, label and waypoint of
// the given scope. A diagram without content returns a zero box.
func (d *Diagram) Extent(parent string) Bounds {
	return extent(scopeNodes(d.Nodes, parent), scopeEdges(d.Edges, parent))
}

// Bounds returns the bounding box of the whole diagram, every scope
// included.
func (d *Diagram) Bounds() Bounds {
	return extent(d.Nodes, d.Edges)
}

func (n *Node) translate(dx, dy float64) {
	n.Bounds = n.Bounds.Translate(dx, dy)
	if n.LabelBounds != nil {
		lb := n.LabelBounds.Translate(dx, dy)
		n.LabelBounds = &lb
	}
}

func (e *Edge) translate(dx, dy float64) {
	for i := range e.Waypoints {
		e.Waypoints[i].X += dx
		e.Waypoints[i].Y += dy
	}
	if e.LabelBounds != nil {
		lb := e.LabelBounds.Translate(dx, dy)
		e.LabelBounds = &lb
	}
}

func extent(nodes []Node, edges []Edge) Bounds {
	var acc extentAcc
	for _, n := range nodes {
		acc.addBox(n.Bounds)
		if n.LabelBounds != nil {
			acc.addBox(*n.LabelBounds)
		}
	}
	for _, e := range edges {
		for _, p := range e.Waypoints {
			acc.add(p.X, p.Y)
		}
		if e.LabelBounds != nil {
			acc.addBox(*e.LabelBounds)
		}
	}
	return acc.bounds()
}

type extentAcc struct {
	set                    bool
	minX, minY, maxX, maxY float64
}

func (a *extentAcc) add(x, y float64) {
	if !a.set {
		a.minX, a.minY, a.maxX, a.maxY, a.set = x, y, x, y, true
		return
	}
	a.minX, a.maxX = min(a.minX, x), max(a.maxX, x)
	a.minY, a.maxY = min(a.minY, y), max(a.maxY, y)
}

func (a *extentAcc) addBox(b Bounds) {
	a.add(b.X, b.Y)
	a.add(b.Right(), b.Bottom())
}

func (a *extentAcc) bounds() Bounds {
	if !a.set {
		return Bounds{}
	}
	return Bounds{X: a.minX, Y: a.minY, Width: a.maxX - a.minX, Height: a.maxY - a.minY}
}

func scopeNodes(nodes []Node, parent string) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Parent == parent {
			out = append(out, n)
		}
	}
	return out
}

func scopeEdges(edges []Edge, parent string) []Edge {
	var out []Edge
	for _, e := range edges {
		if e.Parent == parent {
			out = append(out, e)
		}
	}
	return out
}
