package layout

import (
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// MaxDepth bounds sub-process nesting.
const MaxDepth = 32

// =============================================================================
// Full Layout
// =============================================================================

// Compute lays out a process from scratch.
//
// Sub-process bodies are laid out first, each as an independent scope and
// concurrently up to Options.Workers. The enclosing scope then treats every
// sub-process as one opaque shape: collapsed ones get their kind's size,
// expanded ones the extent of their body plus SubProcessPadding on each
// side. Expanded bodies are finally moved inside their sub-process; collapsed
// bodies keep their own origin.
//
// The result is deterministic: the same process always yields the same
// diagram.
func Compute(p *bpmn.Process, opts Options) (*Diagram, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	root, err := layoutScope(p.Elements, p.Flows, "", 0, opts)
	if err != nil {
		return nil, err
	}
	d := &Diagram{}
	root.flatten(d)
	return d, nil
}

// scope is the geometry of one graph scope and its nested bodies.
type scope struct {
	id     string
	nodes  []Node
	edges  []Edge
	bodies []*scope // in element order
	owner  map[string]int
}

func layoutScope(elements []bpmn.Element, flows []bpmn.Flow, id string, depth int, opts Options) (*scope, error) {
	bodies, err := layoutBodies(elements, id, depth, opts, func(e *bpmn.Element) (*scope, error) {
		return layoutScope(e.Elements, e.Flows, e.ID, depth+1, opts)
	})
	if err != nil {
		return nil, err
	}

	sc := newScope(id, bodies)
	layers, g, backEdges := Build(elements, flows)

	scoped := opts
	scoped.Size = sc.sizeFunc(opts)
	sc.nodes = Assign(layers, elements, scoped)
	for i := range sc.nodes {
		sc.nodes[i].Parent = id
	}
	AlignChains(sc.nodes, g)
	AlignSplitJoin(sc.nodes, g)

	sc.placeBodies(opts)
	sc.edges = Route(flows, sc.nodes, backEdges, g, opts)
	sc.finishEdges(opts)
	return sc, nil
}

// layoutBodies runs fn for every sub-process with a body, bounded by
// opts.Workers, and returns the results in element order.
func layoutBodies(elements []bpmn.Element, id string, depth int, opts Options, fn func(*bpmn.Element) (*scope, error)) ([]*scope, error) {
	var owners []*bpmn.Element
	for i := range elements {
		if elements[i].Kind.IsSubProcess() && elements[i].HasBody() {
			owners = append(owners, &elements[i])
		}
	}
	if len(owners) == 0 {
		return nil, nil
	}
	if depth >= MaxDepth {
		return nil, errs.New(errs.ErrCodeInvalidProcess, "sub-process %q nested deeper than %d levels", id, MaxDepth)
	}

	results := make([]*scope, len(owners))
	var g errgroup.Group
	g.SetLimit(max(opts.Workers, 1))
	for i, e := range owners {
		g.Go(func() error {
			sc, err := fn(e)
			if err != nil {
				return err
			}
			results[i] = sc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newScope(id string, bodies []*scope) *scope {
	sc := &scope{id: id, bodies: bodies, owner: make(map[string]int, len(bodies))}
	for i, b := range bodies {
		sc.owner[b.id] = i
	}
	return sc
}

func (sc *scope) body(id string) (*scope, bool) {
	i, ok := sc.owner[id]
	if !ok {
		return nil, false
	}
	return sc.bodies[i], true
}

// sizeFunc sizes expanded sub-processes from their body.
func (sc *scope) sizeFunc(opts Options) SizeFunc {
	return func(e *bpmn.Element) (float64, float64) {
		if b, ok := sc.body(e.ID); ok && e.Expanded && len(b.nodes) > 0 {
			ext := b.extent()
			return ext.Width + 2*opts.SubProcessPadding, ext.Height + 2*opts.SubProcessPadding
		}
		return opts.Size(e)
	}
}

// placeBodies moves every expanded body inside its sub-process shape.
func (sc *scope) placeBodies(opts Options) {
	for i := range sc.nodes {
		n := &sc.nodes[i]
		b, ok := sc.body(n.ID)
		if !ok || !n.Expanded || len(b.nodes) == 0 {
			continue
		}
		ext := b.extent()
		b.translate(n.Bounds.X+opts.SubProcessPadding-ext.X, n.Bounds.Y+opts.SubProcessPadding-ext.Y)
	}
}

func (sc *scope) finishEdges(opts Options) {
	for i := range sc.edges {
		sc.edges[i].Parent = sc.id
	}
	PlaceLabels(sc.edges, Obstacles(sc.nodes), opts)
}

func (sc *scope) extent() Bounds {
	return extent(sc.nodes, sc.edges)
}

// translate moves the scope and the expanded bodies drawn inside it.
func (sc *scope) translate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	for i := range sc.nodes {
		sc.nodes[i].translate(dx, dy)
	}
	for i := range sc.edges {
		sc.edges[i].translate(dx, dy)
	}
	for _, n := range sc.nodes {
		if b, ok := sc.body(n.ID); ok && n.Expanded {
			b.translate(dx, dy)
		}
	}
}

func (sc *scope) flatten(d *Diagram) {
	d.Nodes = append(d.Nodes, sc.nodes...)
	d.Edges = append(d.Edges, sc.edges...)
	for _, b := range sc.bodies {
		b.flatten(d)
	}
}

// =============================================================================
// Incremental Layout
// =============================================================================

type nodeKey struct{ parent, id string }

// Relayout recomputes a diagram after the expanded state of the given
// sub-processes flipped, keeping the prior geometry wherever the structure
// is unchanged.
//
// Toggled bodies get a full layout. Their sub-process is resized, the
// layer is restacked if the new size collides with a neighbour, and
// X-recoordination shifts the downstream layers of the scope. Edges and
// labels are recomputed everywhere. Scopes whose elements differ from the
// prior diagram are laid out from scratch.
func Relayout(prior *Diagram, p *bpmn.Process, toggles []string, opts Options) (*Diagram, error) {
	if prior == nil {
		return Compute(p, opts)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	toggled := make(map[string]bool, len(toggles))
	for _, id := range toggles {
		e, ok := p.Find(id)
		if !ok {
			return nil, errs.New(errs.ErrCodeNotFound, "sub-process %q not found", id)
		}
		if !e.Kind.IsSubProcess() {
			return nil, errs.New(errs.ErrCodeInvalidInput, "element %q is a %s, not a sub-process", id, e.Kind)
		}
		toggled[id] = true
	}

	prev := make(map[nodeKey]Node, len(prior.Nodes))
	for _, n := range prior.Nodes {
		prev[nodeKey{n.Parent, n.ID}] = n
	}

	elements := withExpansion(p.Elements, "", prev, toggled)
	root, err := relayoutScope(elements, p.Flows, "", 0, prev, toggled, opts)
	if err != nil {
		return nil, err
	}
	d := &Diagram{}
	root.flatten(d)
	return d, nil
}

// withExpansion returns a copy of elements whose expanded state follows the
// prior diagram, flipped for toggled ids.
func withExpansion(elements []bpmn.Element, parent string, prev map[nodeKey]Node, toggled map[string]bool) []bpmn.Element {
	out := make([]bpmn.Element, len(elements))
	for i, e := range elements {
		if n, ok := prev[nodeKey{parent, e.ID}]; ok {
			e.Expanded = n.Expanded
		}
		if toggled[e.ID] {
			e.Expanded = !e.Expanded
		}
		e.Elements = withExpansion(e.Elements, e.ID, prev, toggled)
		out[i] = e
	}
	return out
}

func relayoutScope(elements []bpmn.Element, flows []bpmn.Flow, id string, depth int, prev map[nodeKey]Node, toggled map[string]bool, opts Options) (*scope, error) {
	for _, e := range elements {
		if _, ok := prev[nodeKey{id, e.ID}]; !ok {
			return layoutScope(elements, flows, id, depth, opts)
		}
	}

	bodies, err := layoutBodies(elements, id, depth, opts, func(e *bpmn.Element) (*scope, error) {
		if toggled[e.ID] {
			return layoutScope(e.Elements, e.Flows, e.ID, depth+1, opts)
		}
		return relayoutScope(e.Elements, e.Flows, e.ID, depth+1, prev, toggled, opts)
	})
	if err != nil {
		return nil, err
	}

	sc := newScope(id, bodies)
	_, g, backEdges := Build(elements, flows)
	size := sc.sizeFunc(opts)

	resized := make(map[int]bool)
	sc.nodes = make([]Node, len(elements))
	for i := range elements {
		e := &elements[i]
		n := prev[nodeKey{id, e.ID}]
		n.Kind, n.Label, n.Expanded = e.Kind, e.Name, e.Expanded

		w, h := size(e)
		if math.Abs(w-n.Bounds.Width) > epsilon || math.Abs(h-n.Bounds.Height) > epsilon {
			cy := n.Bounds.CenterY()
			n.Bounds = Bounds{X: n.Bounds.X, Y: cy - h/2, Width: w, Height: h}
			resized[n.Layer] = true
		}
		n.placeLabel(opts)
		sc.nodes[i] = n
	}

	if len(resized) > 0 {
		restack(sc.nodes, resized, opts)
		Recoordinate(sc.nodes, opts)
	}

	sc.placeBodies(opts)
	sc.edges = Route(flows, sc.nodes, backEdges, g, opts)
	sc.finishEdges(opts)
	return sc, nil
}

// restack pushes nodes of the given layers down until consecutive rows are
// at least VerticalSpacing apart.
func restack(nodes []Node, layers map[int]bool, opts Options) {
	byLayer := make(map[int][]int)
	for i, n := range nodes {
		if layers[n.Layer] {
			byLayer[n.Layer] = append(byLayer[n.Layer], i)
		}
	}
	for _, idx := range byLayer {
		sortByPosition(nodes, idx)
		for k := 1; k < len(idx); k++ {
			prev, cur := &nodes[idx[k-1]], &nodes[idx[k]]
			if minY := prev.Bounds.Bottom() + opts.VerticalSpacing; cur.Bounds.Y < minY {
				cur.translate(0, minY-cur.Bounds.Y)
			}
		}
	}
}

func sortByPosition(nodes []Node, idx []int) {
	slices.SortStableFunc(idx, func(a, b int) int {
		return nodes[a].Position - nodes[b].Position
	})
}
