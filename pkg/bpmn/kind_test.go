package bpmn

import (
	"encoding/json"
	"testing"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}

	for _, name := range []string{"", "StartEvent", "lane", "pool"} {
		_, err := ParseKind(name)
		if !errs.Is(err, errs.ErrCodeInvalidKind) {
			t.Errorf("ParseKind(%q) error = %v, want INVALID_KIND", name, err)
		}
	}
}

func TestKindClasses(t *testing.T) {
	tests := []struct {
		kind      Kind
		event     bool
		gateway   bool
		task      bool
		placement LabelPlacement
		w, h      float64
	}{
		{StartEvent, true, false, false, LabelBelow, 36, 36},
		{BoundaryEvent, true, false, false, LabelBelow, 36, 36},
		{UserTask, false, false, true, LabelInside, 100, 80},
		{CallActivity, false, false, true, LabelInside, 100, 80},
		{ExclusiveGateway, false, true, false, LabelAbove, 50, 50},
		{EventBasedGateway, false, true, false, LabelAbove, 50, 50},
		{SubProcess, false, false, false, LabelInside, 100, 80},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsEvent(); got != tt.event {
				t.Errorf("IsEvent() = %v, want %v", got, tt.event)
			}
			if got := tt.kind.IsGateway(); got != tt.gateway {
				t.Errorf("IsGateway() = %v, want %v", got, tt.gateway)
			}
			if got := tt.kind.IsTaskLike(); got != tt.task {
				t.Errorf("IsTaskLike() = %v, want %v", got, tt.task)
			}
			if got := tt.kind.LabelPlacement(); got != tt.placement {
				t.Errorf("LabelPlacement() = %v, want %v", got, tt.placement)
			}
			if w, h := tt.kind.DefaultSize(); w != tt.w || h != tt.h {
				t.Errorf("DefaultSize() = (%v, %v), want (%v, %v)", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestKindJSON(t *testing.T) {
	data, err := json.Marshal(Element{ID: "g", Kind: ParallelGateway})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"id":"g","kind":"parallelGateway"}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var e Element
	if err := json.Unmarshal([]byte(`{"id":"t","kind":"scriptTask"}`), &e); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if e.Kind != ScriptTask {
		t.Errorf("Kind = %v, want scriptTask", e.Kind)
	}

	if err := json.Unmarshal([]byte(`{"id":"t","kind":"lane"}`), &e); err == nil {
		t.Error("Unmarshal(lane) error = nil, want error")
	}
}
