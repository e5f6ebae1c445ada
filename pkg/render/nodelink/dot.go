package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the element kind to node labels.
	Detailed bool
}

// ToDOT converts a process to Graphviz DOT format, left to right.
// Expanded sub-processes become clusters. Flows classified as back-edges
// by [layout.Build] are drawn dashed and excluded from ranking, so the
// Graphviz drawing ranks nodes the same way the engine layers them.
func ToDOT(p *bpmn.Process, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"sans-serif\", fontsize=11, style=filled, fillcolor=white];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	writeScope(&buf, p.Elements, p.Flows, "", "  ", opts)

	buf.WriteString("}\n")
	return buf.String()
}

func writeScope(buf *bytes.Buffer, elements []bpmn.Element, flows []bpmn.Flow, scope, indent string, opts Options) {
	for i := range elements {
		e := &elements[i]
		if e.Kind.IsSubProcess() && e.Expanded && e.HasBody() {
			fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+nodeID(scope, e.ID))
			fmt.Fprintf(buf, "%s  label=%q;\n", indent, fmtLabel(e, opts.Detailed))
			fmt.Fprintf(buf, "%s  style=rounded;\n", indent)
			writeScope(buf, e.Elements, e.Flows, nodeID(scope, e.ID), indent+"  ", opts)
			fmt.Fprintf(buf, "%s}\n", indent)
			continue
		}
		fmt.Fprintf(buf, "%s%q [%s];\n", indent, nodeID(scope, e.ID), strings.Join(fmtAttrs(e, opts.Detailed), ", "))
	}

	_, _, back := layout.Build(elements, flows)
	isBack := make(map[string]bool, len(back))
	for _, b := range back {
		isBack[b.ID] = true
	}

	ids := make(map[string]bool, len(elements))
	for _, e := range elements {
		ids[e.ID] = true
	}
	for _, f := range flows {
		if !ids[f.Source] || !ids[f.Target] {
			continue
		}
		var attrs []string
		if f.Name != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", f.Name))
		}
		if isBack[f.ID] {
			attrs = append(attrs, "style=dashed", "constraint=false")
		}
		fmt.Fprintf(buf, "%s%q -> %q", indent, endpoint(elements, scope, f.Source), endpoint(elements, scope, f.Target))
		if len(attrs) > 0 {
			fmt.Fprintf(buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}
}

// nodeID qualifies an element id with its enclosing sub-process path so
// equal ids in different scopes stay distinct.
func nodeID(scope, id string) string {
	if scope == "" {
		return id
	}
	return scope + "/" + id
}

// endpoint returns the DOT node a flow attaches to. Clusters are not
// nodes, so flows into an expanded sub-process attach to its first body
// element.
func endpoint(elements []bpmn.Element, scope, id string) string {
	for i := range elements {
		e := &elements[i]
		if e.ID != id {
			continue
		}
		if e.Kind.IsSubProcess() && e.Expanded && len(e.Elements) > 0 {
			return endpoint(e.Elements, nodeID(scope, e.ID), e.Elements[0].ID)
		}
	}
	return nodeID(scope, id)
}

func fmtLabel(e *bpmn.Element, detailed bool) string {
	label := e.Name
	if label == "" {
		label = e.ID
	}
	if detailed {
		label += "\n" + e.Kind.String()
	}
	return label
}

func fmtAttrs(e *bpmn.Element, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(e, detailed))}
	switch {
	case e.Kind.IsEvent():
		attrs = append(attrs, "shape=circle", "width=0.5", "fixedsize=true")
		if e.Kind == bpmn.EndEvent {
			attrs = append(attrs, "penwidth=3")
		}
	case e.Kind.IsGateway():
		attrs = append(attrs, "shape=diamond", "width=0.7", "height=0.7", "fixedsize=true")
	default:
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"")
		if e.Kind.IsSubProcess() {
			attrs = append(attrs, "peripheries=2")
		}
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
