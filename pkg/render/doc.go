// Package render groups the output renderers of bpmnlayout.
//
// # Overview
//
//   - [svg]: preview of a computed layout, drawn from [graph.Layout] alone
//   - [nodelink]: Graphviz DOT export of the process graph, optionally
//     rendered to SVG with the embedded Graphviz
//
// The SVG preview shows exactly the geometry the layout engine produced and
// is the reference for checking routes and label positions. The DOT export
// ignores that geometry; it exists to compare the engine against Graphviz.
//
//	l := graph.FromDiagram(p.ID, d)
//	preview := svg.Render(l, svg.WithPadding(10))
//
//	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: true})
//	drawing, err := nodelink.RenderSVG(ctx, dot)
//
// [svg]: github.com/matzehuels/bpmnlayout/pkg/render/svg
// [nodelink]: github.com/matzehuels/bpmnlayout/pkg/render/nodelink
// [graph.Layout]: github.com/matzehuels/bpmnlayout/pkg/graph#Layout
package render
