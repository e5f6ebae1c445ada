package layout

import (
	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
)

// Assign converts layers into absolute node bounds.
//
// Layer k occupies a column starting at the sum of the widths of the
// previous columns, each widened by HorizontalSpacing; nodes are centered
// horizontally in their column. Within a layer nodes stack top to bottom
// with VerticalSpacing between rows, and every layer is shifted down by
// half the difference between its span and the tallest span.
//
// Nodes are returned in element order. Elements missing from layers are
// ignored.
func Assign(layers Layers, elements []bpmn.Element, opts Options) []Node {
	opts = opts.WithDefaults()

	byID := make(map[string]*bpmn.Element, len(elements))
	for i := range elements {
		byID[elements[i].ID] = &elements[i]
	}

	placed := make(map[string]Node, len(elements))
	spans := make([]float64, len(layers))
	maxSpan := 0.0
	columnX := 0.0

	for k, ids := range layers {
		type sized struct {
			el   *bpmn.Element
			w, h float64
		}
		members := make([]sized, 0, len(ids))
		colWidth := 0.0
		for _, id := range ids {
			el, ok := byID[id]
			if !ok {
				continue
			}
			w, h := opts.Size(el)
			members = append(members, sized{el, w, h})
			colWidth = max(colWidth, w)
		}

		y := 0.0
		for pos, m := range members {
			n := Node{
				ID:       m.el.ID,
				Kind:     m.el.Kind,
				Label:    m.el.Name,
				Expanded: m.el.Expanded,
				Layer:    k,
				Position: pos,
				Bounds: Bounds{
					X:      columnX + (colWidth-m.w)/2,
					Y:      y,
					Width:  m.w,
					Height: m.h,
				},
			}
			n.placeLabel(opts)
			placed[n.ID] = n
			y += m.h + opts.VerticalSpacing
		}
		if len(members) > 0 {
			spans[k] = y - opts.VerticalSpacing
		}
		maxSpan = max(maxSpan, spans[k])
		columnX += colWidth + opts.HorizontalSpacing
	}

	nodes := make([]Node, 0, len(placed))
	for i := range elements {
		n, ok := placed[elements[i].ID]
		if !ok {
			continue
		}
		if shift := (maxSpan - spans[n.Layer]) / 2; shift > 0 {
			n.translate(0, shift)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// placeLabel sets the outside label box of events and gateways.
func (n *Node) placeLabel(opts Options) {
	n.LabelBounds = nil
	if n.Label == "" {
		return
	}
	w, h := opts.labelSize(n.Label)
	lb := Bounds{X: n.Bounds.CenterX() - w/2, Width: w, Height: h}
	switch n.Kind.LabelPlacement() {
	case bpmn.LabelBelow:
		lb.Y = n.Bounds.Bottom() + opts.LabelGap
	case bpmn.LabelAbove:
		lb.Y = n.Bounds.Y - opts.LabelGap - h
	default:
		return
	}
	n.LabelBounds = &lb
}
