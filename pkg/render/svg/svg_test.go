package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/graph"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		ProcessID: "p",
		X:         0,
		Y:         -30,
		Width:     292,
		Height:    110,
		Shapes: []graph.Shape{
			{ID: "s", Kind: "startEvent", X: 0, Y: 22, Width: 36, Height: 36, Label: "Go",
				LabelBounds: &graph.Bounds{X: 3, Y: 63, Width: 30, Height: 14}},
			{ID: "t", Kind: "userTask", X: 96, Y: 0, Width: 100, Height: 80, Label: "Review <draft>"},
			{ID: "g", Kind: "exclusiveGateway", X: 256, Y: 15, Width: 50, Height: 50},
		},
		Edges: []graph.Edge{
			{ID: "f1", Source: "s", Target: "t", Waypoints: []graph.Point{{X: 36, Y: 40}, {X: 96, Y: 40}}},
			{ID: "f2", Source: "g", Target: "t", BackEdge: true,
				Waypoints: []graph.Point{{X: 281, Y: 15}, {X: 281, Y: -30}, {X: 146, Y: -30}, {X: 146, Y: 0}},
				Label: "retry", LabelBounds: &graph.Bounds{X: 190, Y: -49, Width: 35, Height: 14}},
		},
	}
}

func TestRender(t *testing.T) {
	out := string(Render(sampleLayout()))

	checks := []struct {
		name, want string
	}{
		{"Root", `viewBox="0 0 332.0 150.0"`},
		{"Translate", `translate(20.0 50.0)`},
		{"Event", `<circle id="s"`},
		{"Task", `<rect id="t"`},
		{"Gateway", `<polygon id="g"`},
		{"Edge", `<polyline id="f1" points="36.0,40.0 96.0,40.0"`},
		{"BackEdgeDashed", `stroke-dasharray`},
		{"Escaped", `Review &lt;draft&gt;`},
		{"EdgeLabel", `>retry</text>`},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if !strings.Contains(out, c.want) {
				t.Errorf("Render() missing %q", c.want)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	out := Render(graph.Layout{})
	if !bytes.HasPrefix(out, []byte("<svg")) || bytes.Contains(out, []byte("<rect")) {
		t.Errorf("Render(empty) = %s, want bare svg", out)
	}
}

func TestRenderOptions(t *testing.T) {
	out := string(Render(sampleLayout(), WithPadding(0), WithoutLabels()))
	if strings.Contains(out, "<text") {
		t.Error("WithoutLabels() should omit text")
	}
	if !strings.Contains(out, `viewBox="0 0 292.0 110.0"`) {
		t.Error("WithPadding(0) should drop the margin")
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		width float64
		want  string
	}{
		{"Ship", 92, "Ship"},
		{"Prepare the shipment documents", 70, "Prepare .."},
		{"Approve", 1, "A.."},
	}

	for _, tt := range tests {
		if got := TruncateLabel(tt.label, tt.width, fontSize); got != tt.want {
			t.Errorf("TruncateLabel(%q, %v) = %q, want %q", tt.label, tt.width, got, tt.want)
		}
	}
}
