package bpmn

import (
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Kind identifies the type of a flow element.
type Kind int

// Flow element kinds.
const (
	KindInvalid Kind = iota

	// Events
	StartEvent
	EndEvent
	IntermediateCatchEvent
	IntermediateThrowEvent
	BoundaryEvent

	// Task-like activities
	Task
	UserTask
	ServiceTask
	ScriptTask
	ManualTask
	SendTask
	ReceiveTask
	BusinessRuleTask
	CallActivity

	// Gateways
	ExclusiveGateway
	ParallelGateway
	InclusiveGateway
	EventBasedGateway
	ComplexGateway

	// Scopes
	SubProcess
)

var kindNames = [...]string{
	KindInvalid:            "",
	StartEvent:             "startEvent",
	EndEvent:               "endEvent",
	IntermediateCatchEvent: "intermediateCatchEvent",
	IntermediateThrowEvent: "intermediateThrowEvent",
	BoundaryEvent:          "boundaryEvent",
	Task:                   "task",
	UserTask:               "userTask",
	ServiceTask:            "serviceTask",
	ScriptTask:             "scriptTask",
	ManualTask:             "manualTask",
	SendTask:               "sendTask",
	ReceiveTask:            "receiveTask",
	BusinessRuleTask:       "businessRuleTask",
	CallActivity:           "callActivity",
	ExclusiveGateway:       "exclusiveGateway",
	ParallelGateway:        "parallelGateway",
	InclusiveGateway:       "inclusiveGateway",
	EventBasedGateway:      "eventBasedGateway",
	ComplexGateway:         "complexGateway",
	SubProcess:             "subProcess",
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for k := StartEvent; k <= SubProcess; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a BPMN local element name such as "userTask".
func ParseKind(name string) (Kind, error) {
	for k := StartEvent; k <= SubProcess; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return KindInvalid, errs.New(errs.ErrCodeInvalidKind, "unknown element kind %q", name)
}

// String returns the BPMN local name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return ""
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k >= StartEvent && k <= SubProcess }

// MarshalText encodes the kind as its BPMN local name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errs.New(errs.ErrCodeInvalidKind, "invalid element kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a BPMN local name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// IsEvent reports whether k is an event.
func (k Kind) IsEvent() bool {
	switch k {
	case StartEvent, EndEvent, IntermediateCatchEvent, IntermediateThrowEvent, BoundaryEvent:
		return true
	}
	return false
}

// IsGateway reports whether k is a gateway.
func (k Kind) IsGateway() bool {
	switch k {
	case ExclusiveGateway, ParallelGateway, InclusiveGateway, EventBasedGateway, ComplexGateway:
		return true
	}
	return false
}

// IsTaskLike reports whether k is a task or call activity.
func (k Kind) IsTaskLike() bool {
	switch k {
	case Task, UserTask, ServiceTask, ScriptTask, ManualTask, SendTask,
		ReceiveTask, BusinessRuleTask, CallActivity:
		return true
	}
	return false
}

// IsSubProcess reports whether k can own a nested body.
func (k Kind) IsSubProcess() bool { return k == SubProcess }

// =============================================================================
// Sizing and Label Placement
// =============================================================================

// LabelPlacement describes where a kind renders its text label.
type LabelPlacement int

const (
	LabelInside LabelPlacement = iota // drawn inside the shape
	LabelBelow                        // centered below the shape
	LabelAbove                        // centered above the shape
)

// LabelPlacement returns the label placement class of k.
func (k Kind) LabelPlacement() LabelPlacement {
	switch {
	case k.IsEvent():
		return LabelBelow
	case k.IsGateway():
		return LabelAbove
	default:
		return LabelInside
	}
}

// Default shape sizes.
const (
	EventSize     = 36.0
	GatewaySize   = 50.0
	TaskWidth     = 100.0
	TaskHeight    = 80.0
)

// DefaultSize returns the default width and height of a shape of kind k.
// Expanded sub-processes are sized from their body instead.
func (k Kind) DefaultSize() (w, h float64) {
	switch {
	case k.IsEvent():
		return EventSize, EventSize
	case k.IsGateway():
		return GatewaySize, GatewaySize
	default:
		return TaskWidth, TaskHeight
	}
}
