// Package bpmn defines the process model consumed by the layout engine.
//
// A [Process] is a flat list of flow [Element] values connected by
// sequence [Flow] values. Sub-processes carry their own nested body of
// elements and flows, which is laid out as an independent graph scope.
//
// # Element Kinds
//
// [Kind] is a closed enum covering the BPMN flow elements the engine knows
// how to size and place:
//
//	events      startEvent, endEvent, intermediateCatchEvent, ...
//	activities  task, userTask, serviceTask, ..., callActivity
//	gateways    exclusiveGateway, parallelGateway, ...
//	scopes      subProcess
//
// Each kind has a default shape size ([Kind.DefaultSize]) and a label
// placement class ([Kind.LabelPlacement]).
//
// # JSON Format
//
//	{
//	  "id": "order",
//	  "elements": [
//	    {"id": "start", "kind": "startEvent", "name": "Order received"},
//	    {"id": "check", "kind": "userTask", "name": "Check order"}
//	  ],
//	  "flows": [{"id": "f1", "source": "start", "target": "check"}]
//	}
//
// Use [ReadProcessFile], [ReadProcess] and [WriteProcess] for I/O.
package bpmn
