// Package svg draws a computed layout as a static SVG preview.
//
// # Overview
//
// The renderer draws a [graph.Layout] verbatim: every shape at its bounds,
// every edge along its waypoints and every label in its label box. It never
// moves anything, so the picture shows exactly what the engine produced.
//
//	l, _ := graph.ReadLayoutFile("layout.json")
//	out := svg.Render(l, svg.WithPadding(20))
//
// # Styles
//
// A [Style] controls how shapes, edges and labels look. [Simple] draws the
// usual BPMN notation in black and white:
//
//   - events: circles, end events with a thick border
//   - gateways: diamonds with a type marker
//   - activities: rounded rectangles, collapsed sub-processes with a [+]
//   - back-edges: dashed
//
// # Empty Layouts
//
// A layout with zero extent renders as an empty <svg/> element.
//
// [graph.Layout]: github.com/matzehuels/bpmnlayout/pkg/graph.Layout
package svg
