// Package layout computes diagram geometry for BPMN processes.
//
// The engine turns a [bpmn.Process] into a [Diagram]: a bounding box for
// every flow element, orthogonal waypoints for every sequence flow and
// collision-aware label boxes. It is a pure function of its input with no
// package state, so independent processes can be laid out concurrently.
//
// # Pipeline
//
// Each graph scope (the process itself and every sub-process body) runs
// through the same stages:
//
//  1. [Build]: forward graph, back-edges and ordered layers
//  2. [Assign]: columns per layer, stacked rows, vertical centering
//  3. [AlignChains] and [AlignSplitJoin]: straighten linear runs and
//     split/join gateway pairs
//  4. [Route]: ports and waypoints, back-edge loops
//  5. [PlaceLabels]: label boxes for named flows
//
// [Recoordinate] re-packs columns when a sub-process changes size during
// [Relayout].
//
// # Sub-processes
//
// Bodies are laid out before their parent, concurrently up to
// [Options.Workers]. The parent treats a sub-process as one shape: its
// default size when collapsed, its body extent plus padding when expanded.
// Expanded bodies are then moved inside their shape.
//
// # Usage
//
//	d, err := layout.Compute(process, layout.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	for _, n := range d.Nodes {
//	    fmt.Println(n.ID, n.Bounds)
//	}
//
// # Coordinates
//
// The origin is the top-left of the first column; y grows downward.
// Back-edge loops may run above y = 0.
package layout
