package graph

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

func loopProcess() *bpmn.Process {
	return &bpmn.Process{
		ID: "loop",
		Elements: []bpmn.Element{
			{ID: "start", Kind: bpmn.StartEvent, Name: "Begin"},
			{ID: "work", Kind: bpmn.UserTask, Name: "Work"},
			{ID: "ok", Kind: bpmn.ExclusiveGateway, Name: "Done?"},
			{ID: "end", Kind: bpmn.EndEvent},
		},
		Flows: []bpmn.Flow{
			{ID: "f1", Source: "start", Target: "work"},
			{ID: "f2", Source: "work", Target: "ok"},
			{ID: "f3", Source: "ok", Target: "end", Name: "yes"},
			{ID: "f4", Source: "ok", Target: "work", Name: "no"},
		},
	}
}

func computeLoop(t *testing.T) *layout.Diagram {
	t.Helper()
	d, err := layout.Compute(loopProcess(), layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return d
}

func TestFromDiagram(t *testing.T) {
	d := computeLoop(t)
	l := FromDiagram("loop", d)

	if l.ProcessID != "loop" {
		t.Errorf("ProcessID = %q, want loop", l.ProcessID)
	}
	if len(l.Shapes) != len(d.Nodes) || len(l.Edges) != len(d.Edges) {
		t.Fatalf("got %d shapes, %d edges, want %d, %d", len(l.Shapes), len(l.Edges), len(d.Nodes), len(d.Edges))
	}

	ext := d.Bounds()
	if l.X != ext.X || l.Y != ext.Y || l.Width != ext.Width || l.Height != ext.Height {
		t.Errorf("extent = (%v %v %v %v), want %+v", l.X, l.Y, l.Width, l.Height, ext)
	}

	s, ok := l.Shape("", "ok")
	if !ok {
		t.Fatal("Shape(ok) not found")
	}
	if s.Kind != "exclusiveGateway" {
		t.Errorf("Kind = %q, want exclusiveGateway", s.Kind)
	}
	if s.LabelBounds == nil {
		t.Error("gateway LabelBounds = nil, want outside label")
	}

	var back int
	for _, e := range l.Edges {
		if e.BackEdge {
			back++
			if e.ID != "f4" {
				t.Errorf("back-edge = %s, want f4", e.ID)
			}
		}
		if e.SourcePort == "" || e.TargetPort == "" {
			t.Errorf("edge %s ports = (%q, %q), want both set", e.ID, e.SourcePort, e.TargetPort)
		}
	}
	if back != 1 {
		t.Errorf("back-edges = %d, want 1", back)
	}
}

func TestToDiagram(t *testing.T) {
	d := computeLoop(t)
	got, err := ToDiagram(FromDiagram("loop", d))
	if err != nil {
		t.Fatalf("ToDiagram() error = %v", err)
	}
	if !reflect.DeepEqual(got, d) {
		t.Errorf("ToDiagram(FromDiagram(d)) = %+v, want %+v", got, d)
	}
}

func TestToDiagramUnknownKind(t *testing.T) {
	l := Layout{Shapes: []Shape{{ID: "x", Kind: "lane"}}}
	_, err := ToDiagram(l)
	if errs.GetCode(err) != errs.ErrCodeInvalidKind {
		t.Errorf("ToDiagram() code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidKind)
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantCode errs.Code
	}{
		{"Valid", `{"shapes":[],"edges":[{"id":"f","waypoints":[{"x":0,"y":0},{"x":10,"y":0}]}]}`, ""},
		{"Empty", `{}`, ""},
		{"Malformed", `{"shapes":`, errs.ErrCodeInvalidFormat},
		{"ShortEdge", `{"edges":[{"id":"f","waypoints":[{"x":0,"y":0}]}]}`, errs.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data))
			if got := errs.GetCode(err); got != tt.wantCode {
				t.Errorf("UnmarshalLayout() code = %q, want %q (err = %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := FromDiagram("loop", computeLoop(t))
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"back_edge": true`) {
		t.Error("written layout lacks back_edge flag")
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("ReadLayoutFile() = %+v, want %+v", got, l)
	}
}

func TestReadLayoutFileMissing(t *testing.T) {
	_, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("ReadLayoutFile() error = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
}
