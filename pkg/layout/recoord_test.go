package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
)

func columnNodes() []Node {
	return []Node{
		{ID: "a", Layer: 0, Bounds: Bounds{X: 0, Y: 0, Width: 100, Height: 80}},
		{ID: "b", Layer: 1, Bounds: Bounds{X: 160, Y: 0, Width: 100, Height: 80}},
		{ID: "c", Layer: 2, Bounds: Bounds{X: 320, Y: 0, Width: 100, Height: 80},
			LabelBounds: &Bounds{X: 330, Y: 85, Width: 80, Height: 14}},
	}
}

func TestRecoordinate(t *testing.T) {
	tests := []struct {
		name   string
		widthA float64
		wantB  float64
		wantC  float64
	}{
		{"Unchanged", 100, 160, 320},
		{"Expand", 200, 260, 420},
		{"Collapse", 50, 110, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := columnNodes()
			nodes[0].Bounds.Width = tt.widthA

			Recoordinate(nodes, DefaultOptions())
			if nodes[0].Bounds.X != 0 {
				t.Errorf("a.X = %v, want 0", nodes[0].Bounds.X)
			}
			if nodes[1].Bounds.X != tt.wantB || nodes[2].Bounds.X != tt.wantC {
				t.Errorf("b.X, c.X = %v, %v, want %v, %v", nodes[1].Bounds.X, nodes[2].Bounds.X, tt.wantB, tt.wantC)
			}
			if got := nodes[2].LabelBounds.X - nodes[2].Bounds.X; got != 10 {
				t.Errorf("label offset = %v, want 10", got)
			}
		})
	}
}

func TestRecoordinate_FreshLayoutIsStable(t *testing.T) {
	elements := []bpmn.Element{
		el("s", bpmn.StartEvent), el("g", bpmn.ParallelGateway), el("a", bpmn.Task),
		el("b", bpmn.CallActivity), el("j", bpmn.ParallelGateway), el("e", bpmn.EndEvent),
	}
	flows := []bpmn.Flow{
		fl("f1", "s", "g"), fl("f2", "g", "a"), fl("f3", "g", "b"),
		fl("f4", "a", "j"), fl("f5", "b", "j"), fl("f6", "j", "e"),
	}
	layers, _, _ := Build(elements, flows)
	nodes := Assign(layers, elements, DefaultOptions())
	before := append([]Node(nil), nodes...)

	Recoordinate(nodes, DefaultOptions())
	if !reflect.DeepEqual(nodes, before) {
		t.Error("Recoordinate() moved a fresh layout")
	}
}

func TestRecoordinate_Empty(t *testing.T) {
	var nodes []Node
	Recoordinate(nodes, DefaultOptions())
	if len(nodes) != 0 {
		t.Errorf("Recoordinate(nil) produced %d nodes, want 0", len(nodes))
	}
}
