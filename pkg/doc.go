// Package pkg provides the core libraries of bpmnlayout, an automatic
// layout engine for BPMN process diagrams.
//
// # Overview
//
// A process model carries flow elements and sequence flows but no diagram
// geometry. bpmnlayout computes that geometry: a position and size for every
// element, an orthogonal route for every flow and a place for every label.
//
// # Architecture
//
// The data flow through bpmnlayout:
//
//	Process model (JSON)
//	         ↓
//	    [bpmn] package (elements, flows, validation)
//	         ↓
//	    [layout] package (layering, ordering, coordinates, routing, labels)
//	         ↓
//	    [graph] package (serializable layout)
//	         ↓
//	    [render/svg], [render/nodelink] (SVG preview, Graphviz DOT)
//
// [pipeline] ties the stages together with caching ([cache]) and
// observability hooks ([observability]). The CLI and the HTTP API ([api])
// both run the pipeline; the API can persist results in a [store].
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/bpmnlayout/pkg/bpmn"
//	    "github.com/matzehuels/bpmnlayout/pkg/layout"
//	    "github.com/matzehuels/bpmnlayout/pkg/graph"
//	    "github.com/matzehuels/bpmnlayout/pkg/render/svg"
//	)
//
//	p, _ := bpmn.ReadProcessFile("order.json")
//	d, _ := layout.Compute(p, layout.Options{})
//	l := graph.FromDiagram(p.ID, d)
//	preview := svg.Render(l)
//
// # Main Packages
//
// [bpmn] - Process model: element kinds, nested sub-process scopes, JSON
// serialization and validation.
//
// [dag] and [dag/transform] - Graph structure, cycle breaking, layering and
// crossing reduction.
//
// [layout] - The layout engine: graph building, coordinate assignment,
// alignment passes, edge routing, label placement, X-recoordination and
// incremental re-layout after expanding or collapsing sub-processes.
//
// [graph] - Serialization types for layouts.
//
// [render] - SVG preview and Graphviz DOT export.
//
// [pipeline] - Layout → render orchestration with caching.
//
// [api], [httputil] - HTTP API built on chi.
//
// [cache], [store], [config] - File and Redis caches, memory and MongoDB
// layout stores, TOML/YAML configuration.
//
// [errors], [observability], [buildinfo] - Structured errors, hooks and
// version information.
package pkg
