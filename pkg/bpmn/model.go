package bpmn

import (
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// Flow is a directed sequence flow between two elements of the same scope.
type Flow struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Name   string `json:"name,omitempty" bson:"name,omitempty"` // label text
}

// Element is a flow element. Sub-processes may carry a nested body in
// Elements and Flows; it forms its own id scope.
type Element struct {
	ID       string    `json:"id" bson:"id"`
	Kind     Kind      `json:"kind" bson:"kind"`
	Name     string    `json:"name,omitempty" bson:"name,omitempty"`
	Expanded bool      `json:"expanded,omitempty" bson:"expanded,omitempty"`
	Elements []Element `json:"elements,omitempty" bson:"elements,omitempty"`
	Flows    []Flow    `json:"flows,omitempty" bson:"flows,omitempty"`
}

// HasBody reports whether the element owns a nested body.
func (e *Element) HasBody() bool { return len(e.Elements) > 0 || len(e.Flows) > 0 }

// Process is the root scope of a process model.
type Process struct {
	ID       string    `json:"id" bson:"id"`
	Name     string    `json:"name,omitempty" bson:"name,omitempty"`
	Elements []Element `json:"elements" bson:"elements"`
	Flows    []Flow    `json:"flows,omitempty" bson:"flows,omitempty"`
}

// Validate checks the structural rules the layout engine relies on:
// element and flow ids are well formed and unique within their scope, kinds
// are known, and only sub-processes own nested bodies.
//
// Flows that reference unknown elements are not rejected; the engine skips
// them.
func (p *Process) Validate() error {
	return validateScope(p.Elements, p.Flows, "")
}

// Walk calls fn for every element of the process, depth first, with the id
// of the enclosing sub-process ("" at the top level). Walk stops when fn
// returns false.
func (p *Process) Walk(fn func(e *Element, parent string) bool) {
	walk(p.Elements, "", fn)
}

// Find returns the element with the given id in any scope.
func (p *Process) Find(id string) (*Element, bool) {
	var found *Element
	p.Walk(func(e *Element, _ string) bool {
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// Stats counts the elements and flows of every scope.
func (p *Process) Stats() (elements, flows int) {
	flows = len(p.Flows)
	p.Walk(func(e *Element, _ string) bool {
		elements++
		flows += len(e.Flows)
		return true
	})
	return elements, flows
}

func walk(elems []Element, parent string, fn func(*Element, string) bool) bool {
	for i := range elems {
		e := &elems[i]
		if !fn(e, parent) {
			return false
		}
		if !walk(e.Elements, e.ID, fn) {
			return false
		}
	}
	return true
}

func validateScope(elems []Element, flows []Flow, scope string) error {
	seen := make(map[string]struct{}, len(elems)+len(flows))
	for i := range elems {
		e := &elems[i]
		if err := errs.ValidateElementID(e.ID); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidProcess, err, "element %d%s", i, scopeSuffix(scope))
		}
		if _, dup := seen[e.ID]; dup {
			return errs.New(errs.ErrCodeDuplicateID, "duplicate id %q%s", e.ID, scopeSuffix(scope))
		}
		seen[e.ID] = struct{}{}

		if !e.Kind.Valid() {
			return errs.New(errs.ErrCodeInvalidKind, "element %q has no valid kind", e.ID)
		}
		if e.HasBody() && !e.Kind.IsSubProcess() {
			return errs.New(errs.ErrCodeInvalidProcess, "element %q of kind %s cannot own a nested body", e.ID, e.Kind)
		}
		if err := validateScope(e.Elements, e.Flows, e.ID); err != nil {
			return err
		}
	}
	for i, f := range flows {
		if err := errs.ValidateElementID(f.ID); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidProcess, err, "flow %d%s", i, scopeSuffix(scope))
		}
		if _, dup := seen[f.ID]; dup {
			return errs.New(errs.ErrCodeDuplicateID, "duplicate id %q%s", f.ID, scopeSuffix(scope))
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

func scopeSuffix(scope string) string {
	if scope == "" {
		return ""
	}
	return " in sub-process " + scope
}
