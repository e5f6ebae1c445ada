package svg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
)

// Style defines the visual appearance of a rendered layout.
type Style interface {
	// RenderDefs writes SVG <defs> content (markers, filters).
	RenderDefs(buf *bytes.Buffer)
	// RenderShape writes the SVG for a single shape.
	RenderShape(buf *bytes.Buffer, s graph.Shape)
	// RenderEdge writes the SVG for a routed edge.
	RenderEdge(buf *bytes.Buffer, e graph.Edge)
	// RenderLabel writes a text label centered in the given box.
	RenderLabel(buf *bytes.Buffer, text string, b graph.Bounds)
}

// Simple is a black-and-white BPMN style.
type Simple struct{}

const (
	stroke      = "#222222"
	strokeWidth = 1.5
	fontSize    = 11.0
)

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="` + stroke + `"/>
    </marker>
  </defs>
`)
}

func (s Simple) RenderShape(buf *bytes.Buffer, sh graph.Shape) {
	kind, _ := bpmn.ParseKind(sh.Kind)
	cx, cy := sh.X+sh.Width/2, sh.Y+sh.Height/2

	switch {
	case kind.IsEvent():
		width := strokeWidth
		if kind == bpmn.EndEvent {
			width = 3
		}
		fmt.Fprintf(buf, `  <circle id="%s" cx="%.1f" cy="%.1f" r="%.1f" fill="white" stroke="%s" stroke-width="%.1f"/>`+"\n",
			EscapeXML(sh.ID), cx, cy, min(sh.Width, sh.Height)/2, stroke, width)
		if kind == bpmn.IntermediateCatchEvent || kind == bpmn.IntermediateThrowEvent || kind == bpmn.BoundaryEvent {
			fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
				cx, cy, min(sh.Width, sh.Height)/2-3, stroke)
		}

	case kind.IsGateway():
		fmt.Fprintf(buf, `  <polygon id="%s" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="white" stroke="%s" stroke-width="%.1f"/>`+"\n",
			EscapeXML(sh.ID), cx, sh.Y, sh.X+sh.Width, cy, cx, sh.Y+sh.Height, sh.X, cy, stroke, strokeWidth)
		gatewayMarker(buf, kind, cx, cy, sh.Width/5)

	default:
		fill := "white"
		if kind.IsSubProcess() && sh.Expanded {
			fill = "none"
		}
		fmt.Fprintf(buf, `  <rect id="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			EscapeXML(sh.ID), sh.X, sh.Y, sh.Width, sh.Height, fill, stroke, strokeWidth)
		if kind == bpmn.CallActivity {
			fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="none" stroke="%s" stroke-width="3"/>`+"\n",
				sh.X, sh.Y, sh.Width, sh.Height, stroke)
		}
		if kind.IsSubProcess() && !sh.Expanded {
			const m = 14.0
			mx, my := cx-m/2, sh.Y+sh.Height-m-2
			fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white" stroke="%s"/>`+"\n", mx, my, m, m, stroke)
			fmt.Fprintf(buf, `  <path d="M %.1f %.1f h %.1f M %.1f %.1f v %.1f" stroke="%s"/>`+"\n",
				mx+3, my+m/2, m-6, mx+m/2, my+3, m-6, stroke)
		}
	}
}

func gatewayMarker(buf *bytes.Buffer, kind bpmn.Kind, cx, cy, r float64) {
	switch kind {
	case bpmn.ExclusiveGateway:
		fmt.Fprintf(buf, `  <path d="M %.1f %.1f L %.1f %.1f M %.1f %.1f L %.1f %.1f" stroke="%s" stroke-width="3"/>`+"\n",
			cx-r, cy-r, cx+r, cy+r, cx+r, cy-r, cx-r, cy+r, stroke)
	case bpmn.ParallelGateway:
		fmt.Fprintf(buf, `  <path d="M %.1f %.1f L %.1f %.1f M %.1f %.1f L %.1f %.1f" stroke="%s" stroke-width="3"/>`+"\n",
			cx, cy-r*1.3, cx, cy+r*1.3, cx-r*1.3, cy, cx+r*1.3, cy, stroke)
	case bpmn.InclusiveGateway:
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="2.5"/>`+"\n", cx, cy, r*1.2, stroke)
	case bpmn.EventBasedGateway:
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s"/>`+"\n", cx, cy, r*1.4, stroke)
	case bpmn.ComplexGateway:
		fmt.Fprintf(buf, `  <path d="M %.1f %.1f L %.1f %.1f M %.1f %.1f L %.1f %.1f M %.1f %.1f L %.1f %.1f" stroke="%s" stroke-width="2.5"/>`+"\n",
			cx-r, cy-r, cx+r, cy+r, cx+r, cy-r, cx-r, cy+r, cx, cy-r*1.3, cx, cy+r*1.3, stroke)
	}
}

func (Simple) RenderEdge(buf *bytes.Buffer, e graph.Edge) {
	pts := make([]string, len(e.Waypoints))
	for i, p := range e.Waypoints {
		pts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	dash := ""
	if e.BackEdge {
		dash = ` stroke-dasharray="6 4"`
	}
	fmt.Fprintf(buf, `  <polyline id="%s" points="%s" fill="none" stroke="%s" stroke-width="%.1f"%s marker-end="url(#arrow)"/>`+"\n",
		EscapeXML(e.ID), strings.Join(pts, " "), stroke, strokeWidth, dash)
}

func (Simple) RenderLabel(buf *bytes.Buffer, text string, b graph.Bounds) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.0f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		b.X+b.Width/2, b.Y+b.Height/2, fontSize, EscapeXML(text))
}

var _ Style = Simple{}
