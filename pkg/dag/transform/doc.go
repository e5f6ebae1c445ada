// Package transform provides the graph transformations that turn a raw
// sequence-flow graph into a layered forward graph.
//
// # Overview
//
// Process models routinely contain loops: a rework flow from a review task
// back to the task that produced the work, a retry flow into an earlier
// gateway. Layered drawing needs a DAG, so the loops are broken first and
// the removed flows are routed separately as back-edges.
//
// # Cycle Breaking
//
// [BreakCycles] classifies and removes back-edges with a depth-first search
// in insertion order, starting from source nodes. It returns the removed
// edges so the router can draw them around the diagram.
//
// # Layer Assignment
//
// [AssignLayers] computes the layer of every node as one plus the maximum
// layer of its predecessors (longest path), placing source nodes and
// isolated nodes at layer 0.
//
// # Ordering
//
// [OrderLayers] fixes the top-to-bottom order inside each layer with a
// barycenter sort followed by crossing-reducing neighbour swaps.
//
// # Usage
//
//	back := transform.BreakCycles(g)
//	transform.AssignLayers(g)
//	layers := transform.OrderLayers(g)
package transform
