package dag_test

import (
	"fmt"

	"github.com/matzehuels/bpmnlayout/pkg/dag"
)

func ExampleDAG_basic() {
	// start → review → end
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "start", Layer: 0})
	_ = g.AddNode(dag.Node{ID: "review", Layer: 1})
	_ = g.AddNode(dag.Node{ID: "end", Layer: 2})
	_ = g.AddEdge(dag.Edge{ID: "f1", From: "start", To: "review"})
	_ = g.AddEdge(dag.Edge{ID: "f2", From: "review", To: "end"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Layers:", g.LayerCount())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Layers: 3
}

func ExampleDAG_traversal() {
	// A split gateway fanning out to two tasks
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "split"})
	_ = g.AddNode(dag.Node{ID: "approve"})
	_ = g.AddNode(dag.Node{ID: "reject"})
	_ = g.AddEdge(dag.Edge{ID: "f1", From: "split", To: "approve"})
	_ = g.AddEdge(dag.Edge{ID: "f2", From: "split", To: "reject"})

	fmt.Println("Children of split:", g.Children("split"))
	fmt.Println("Parents of approve:", g.Parents("approve"))
	fmt.Println("Out-degree of split:", g.OutDegree("split"))
	// Output:
	// Children of split: [approve reject]
	// Parents of approve: [split]
	// Out-degree of split: 2
}

func ExampleCountLayerCrossings() {
	// Two flows that swap sides between layers cross once.
	g := dag.New(nil)
	for _, id := range []string{"a", "b", "x", "y"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{ID: "f1", From: "a", To: "y"})
	_ = g.AddEdge(dag.Edge{ID: "f2", From: "b", To: "x"})

	fmt.Println(dag.CountLayerCrossings(g, []string{"a", "b"}, []string{"x", "y"}))
	fmt.Println(dag.CountLayerCrossings(g, []string{"a", "b"}, []string{"y", "x"}))
	// Output:
	// 1
	// 0
}
