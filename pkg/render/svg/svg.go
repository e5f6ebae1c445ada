package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
)

// DefaultPadding is the margin around the drawing.
const DefaultPadding = 20.0

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	style   Style
	padding float64
	labels  bool
}

// WithStyle sets the visual style (default [Simple]).
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithPadding sets the margin around the drawing.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// WithoutLabels omits all label text.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// Render draws the layout. The drawing is translated so the layout extent
// starts at the padding offset; negative coordinates from back-edge loops
// stay visible.
func Render(l graph.Layout, opts ...Option) []byte {
	r := renderer{style: Simple{}, padding: DefaultPadding, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if l.IsEmpty() {
		buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="0" height="0"/>` + "\n")
		return buf.Bytes()
	}

	w, h := l.Width+2*r.padding, l.Height+2*r.padding
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", r.padding-l.X, r.padding-l.Y)

	for _, s := range l.Shapes {
		r.style.RenderShape(&buf, s)
	}
	for _, e := range l.Edges {
		r.style.RenderEdge(&buf, e)
	}
	if r.labels {
		r.renderLabels(&buf, l)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r *renderer) renderLabels(buf *bytes.Buffer, l graph.Layout) {
	for _, s := range l.Shapes {
		if s.Label == "" {
			continue
		}
		if s.LabelBounds != nil {
			r.style.RenderLabel(buf, s.Label, *s.LabelBounds)
			continue
		}
		r.style.RenderLabel(buf, TruncateLabel(s.Label, s.Width-8, fontSize), insideBox(s))
	}
	for _, e := range l.Edges {
		if e.Label != "" && e.LabelBounds != nil {
			r.style.RenderLabel(buf, e.Label, *e.LabelBounds)
		}
	}
}

// insideBox is the label area of a shape that carries its label inside:
// the whole shape, or the header strip of an expanded sub-process.
func insideBox(s graph.Shape) graph.Bounds {
	kind, _ := bpmn.ParseKind(s.Kind)
	if kind.IsSubProcess() && s.Expanded {
		return graph.Bounds{X: s.X, Y: s.Y, Width: s.Width, Height: 2 * fontSize}
	}
	return graph.Bounds{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}
