// Package nodelink exports processes as Graphviz node-link diagrams.
//
// # Overview
//
// The Graphviz drawing is a reference picture to compare against the
// engine's own layout: the same flow graph, ranked left to right by dot.
// Events are circles, gateways diamonds and activities rounded boxes.
// Expanded sub-processes become clusters.
//
// # Usage
//
//	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Back-edges, as classified by the engine's graph builder, are dashed and
// marked constraint=false so they do not influence ranking.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. No external Graphviz installation is needed.
package nodelink
