// Package graph provides the serialization format for computed layouts.
//
// This package defines the canonical wire format for bpmnlayout geometry,
// used for JSON files, API responses, caching and the layout store.
//
// # Architecture
//
// The package sits at the serialization boundary between the engine and
// external consumers:
//
//   - [Layout], [Shape], [Edge]: Serialization types (this package)
//   - pkg/layout.Diagram: Internal geometry produced by the engine
//
// Use [FromDiagram] and [ToDiagram] to convert between them.
//
// # Layout Serialization
//
//	{
//	  "process_id": "order",
//	  "x": 0, "y": -34, "width": 1224, "height": 234,
//	  "shapes": [
//	    {"id": "start", "kind": "startEvent", "x": 0, "y": 82, "width": 36, "height": 36}
//	  ],
//	  "edges": [
//	    {"id": "f1", "source": "start", "target": "prepare",
//	     "waypoints": [{"x": 36, "y": 100}, {"x": 96, "y": 100}]}
//	  ]
//	}
//
// X, Y, Width and Height describe the extent of everything drawn. Back-edge
// loops can make X or Y negative. An empty layout has zero extent.
//
// Common operations:
//
//	l := graph.FromDiagram("order", d)          // Diagram → Layout
//	graph.WriteLayoutFile(l, "layout.json")     // Layout → File
//	l, _ = graph.ReadLayoutFile("layout.json")  // File → Layout
//	d, _ = graph.ToDiagram(l)                   // Layout → Diagram
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
