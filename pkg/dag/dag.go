package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the same
	// ID already exists in the graph. Node IDs must be unique within one graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidEdgeID is returned by [DAG.AddEdge] when the edge ID is empty.
	ErrInvalidEdgeID = errors.New("edge ID must not be empty")

	// ErrDuplicateEdgeID is returned by [DAG.AddEdge] when an edge with the
	// same ID already exists in the graph.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrLayerOrder is returned by [DAG.Validate] when an edge does not point
	// from a lower layer to a strictly higher one.
	ErrLayerOrder = errors.New("edges must point to a strictly higher layer")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// Cycles are detected using depth-first search with white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// Metadata maps are never nil - they are automatically initialized to empty
// maps when needed.
type Metadata map[string]any

// Node represents a vertex of the forward flow graph with an assigned layer.
//
// The zero value is not usable - ID must be set before adding to a DAG.
type Node struct {
	ID    string   // Unique identifier within one graph scope
	Layer int      // Layer assignment (0 = leftmost column)
	Meta  Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge represents a directed connection between two nodes. Every edge carries
// the ID of the sequence flow it was built from so that parallel flows between
// the same pair of nodes remain distinguishable.
type Edge struct {
	ID   string   // Sequence flow identifier
	From string   // Source node ID
	To   string   // Target node ID
	Meta Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// DAG is a directed graph of forward sequence flows organized into layers.
// Unlike a plain adjacency map it keeps insertion order for nodes, edges and
// per-node neighbour lists, so every traversal is deterministic.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string          // node IDs in insertion order
	edges    []Edge            // insertion order
	edgeIDs  map[string]bool   // for duplicate detection
	outgoing map[string][]Edge // nodeID -> outgoing edges
	incoming map[string][]Edge // nodeID -> incoming edges
	layers   map[int][]*Node   // layer -> nodes in that layer
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		edgeIDs:  make(map[string]bool),
		outgoing: make(map[string][]Edge),
		incoming: make(map[string][]Edge),
		layers:   make(map[int][]*Node),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node to the graph and indexes it by its Layer.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	d.layers[node.Layer] = append(d.layers[node.Layer], node)
	return nil
}

// SetLayers updates the layer assignments for nodes and rebuilds the layer
// index. Nodes not present in the map retain their current layer. Within a
// layer, nodes are indexed in insertion order.
func (d *DAG) SetLayers(layers map[string]int) {
	d.layers = make(map[int][]*Node)
	for _, id := range d.order {
		n := d.nodes[id]
		if l, ok := layers[id]; ok {
			n.Layer = l
		}
		d.layers[n.Layer] = append(d.layers[n.Layer], n)
	}
}

// AddEdge adds a directed edge between two existing nodes.
// Multiple edges between the same nodes are allowed as long as their IDs
// differ; self-loops are allowed here and removed by cycle breaking.
func (d *DAG) AddEdge(e Edge) error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if d.edgeIDs[e.ID] {
		return ErrDuplicateEdgeID
	}
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	d.edgeIDs[e.ID] = true
	d.outgoing[e.From] = append(d.outgoing[e.From], e)
	d.incoming[e.To] = append(d.incoming[e.To], e)
	return nil
}

// RemoveEdge removes the edge with the given ID if it exists.
// It reports whether an edge was removed.
func (d *DAG) RemoveEdge(id string) bool {
	if !d.edgeIDs[id] {
		return false
	}
	idx := slices.IndexFunc(d.edges, func(e Edge) bool { return e.ID == id })
	e := d.edges[idx]
	d.edges = slices.Delete(d.edges, idx, idx+1)
	delete(d.edgeIDs, id)
	byID := func(x Edge) bool { return x.ID == id }
	d.outgoing[e.From] = slices.DeleteFunc(d.outgoing[e.From], byID)
	d.incoming[e.To] = slices.DeleteFunc(d.incoming[e.To], byID)
	return true
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (d *DAG) NodeIDs() []string { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// OutEdges returns the outgoing edges of a node in insertion order.
// The returned slice should not be modified.
func (d *DAG) OutEdges(id string) []Edge { return d.outgoing[id] }

// InEdges returns the incoming edges of a node in insertion order.
// The returned slice should not be modified.
func (d *DAG) InEdges(id string) []Edge { return d.incoming[id] }

// Children returns the IDs of the direct successors of the node, in edge
// insertion order. A successor connected by parallel edges appears once per
// edge. Returns nil if the node has no successors or doesn't exist.
func (d *DAG) Children(id string) []string { return endpoints(d.outgoing[id], true) }

// Parents returns the IDs of the direct predecessors of the node, in edge
// insertion order. Returns nil if the node has no predecessors or doesn't exist.
func (d *DAG) Parents(id string) []string { return endpoints(d.incoming[id], false) }

func endpoints(edges []Edge, to bool) []string {
	if len(edges) == 0 {
		return nil
	}
	ids := make([]string, len(edges))
	for i, e := range edges {
		if to {
			ids[i] = e.To
		} else {
			ids[i] = e.From
		}
	}
	return ids
}

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// NodesInLayer returns all nodes assigned to the given layer in insertion
// order. Returns nil if the layer is empty.
func (d *DAG) NodesInLayer(layer int) []*Node { return d.layers[layer] }

// LayerCount returns the number of distinct layers in the graph.
func (d *DAG) LayerCount() int { return len(d.layers) }

// LayerIDs returns all layer indices in ascending order.
func (d *DAG) LayerIDs() []int {
	return slices.Sorted(maps.Keys(d.layers))
}

// MaxLayer returns the highest layer index, or 0 if the graph is empty.
func (d *DAG) MaxLayer() int {
	if len(d.layers) == 0 {
		return 0
	}
	ids := d.LayerIDs()
	return ids[len(ids)-1]
}

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in insertion order.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, id := range d.order {
		if len(d.outgoing[id]) == 0 {
			sinks = append(sinks, d.nodes[id])
		}
	}
	return sinks
}

// Validate checks graph integrity and returns nil if valid.
// It verifies two constraints:
//
//  1. All edges connect existing nodes and point to a strictly higher layer
//  2. The graph is acyclic (no directed cycles exist)
//
// Call it after layering; before layers are assigned every node sits in
// layer 0 and any edge fails the layer check.
func (d *DAG) Validate() error {
	if err := d.validateEdgeConsistency(); err != nil {
		return err
	}
	return d.detectCycles()
}

func (d *DAG) validateEdgeConsistency() error {
	for _, e := range d.edges {
		src, okS := d.nodes[e.From]
		dst, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
		if dst.Layer <= src.Layer {
			return ErrLayerOrder
		}
	}
	return nil
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, e := range d.outgoing[id] {
			switch color[e.To] {
			case white:
				dfs(e.To)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
