package transform

import (
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/dag"
)

func build(nodes []string, edges [][3]string) *dag.DAG {
	g := dag.New(nil)
	for _, id := range nodes {
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{ID: e[0], From: e[1], To: e[2]})
	}
	return g
}

func TestBreakCycles_NoCycles(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][3]string{{"f1", "a", "b"}, {"f2", "b", "c"}})

	removed := BreakCycles(g)

	if len(removed) != 0 {
		t.Errorf("BreakCycles() removed %d edges, want 0", len(removed))
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBreakCycles_SimpleCycle(t *testing.T) {
	g := build([]string{"a", "b"}, [][3]string{{"f1", "a", "b"}, {"f2", "b", "a"}})

	removed := BreakCycles(g)

	if len(removed) != 1 {
		t.Fatalf("BreakCycles() removed %d edges, want 1", len(removed))
	}
	// Both nodes are on the cycle, so DFS starts at the first inserted node
	// and the flow closing the loop is the back-edge.
	if removed[0].ID != "f2" {
		t.Errorf("removed %q, want f2", removed[0].ID)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestBreakCycles_LoopBehindStart(t *testing.T) {
	// start → work → check → end, with check → work as rework loop.
	g := build(
		[]string{"start", "work", "check", "end"},
		[][3]string{
			{"f1", "start", "work"},
			{"f2", "work", "check"},
			{"f3", "check", "end"},
			{"f4", "check", "work"},
		},
	)

	removed := BreakCycles(g)

	if len(removed) != 1 || removed[0].ID != "f4" {
		t.Fatalf("BreakCycles() = %v, want [f4]", removed)
	}
	if removed[0].From != "check" || removed[0].To != "work" {
		t.Errorf("back-edge = %s→%s, want check→work", removed[0].From, removed[0].To)
	}
}

func TestBreakCycles_ParallelBackEdges(t *testing.T) {
	g := build(
		[]string{"a", "b"},
		[][3]string{{"f1", "a", "b"}, {"f2", "b", "a"}, {"f3", "b", "a"}},
	)

	removed := BreakCycles(g)

	if len(removed) != 2 {
		t.Errorf("BreakCycles() removed %d edges, want 2", len(removed))
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestBreakCycles_SelfLoop(t *testing.T) {
	g := build([]string{"a"}, [][3]string{{"f1", "a", "a"}})

	removed := BreakCycles(g)

	if len(removed) != 1 {
		t.Errorf("BreakCycles() removed %d edges, want 1", len(removed))
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestBreakCycles_DiamondNoCycle(t *testing.T) {
	//   a
	//  / \
	// b   c
	//  \ /
	//   d
	g := build(
		[]string{"a", "b", "c", "d"},
		[][3]string{{"1", "a", "b"}, {"2", "a", "c"}, {"3", "b", "d"}, {"4", "c", "d"}},
	)

	if removed := BreakCycles(g); len(removed) != 0 {
		t.Errorf("BreakCycles() removed %d edges, want 0", len(removed))
	}
}

func TestBreakCycles_ResultIsAcyclic(t *testing.T) {
	g := build(
		[]string{"a", "b", "c", "d"},
		[][3]string{{"1", "a", "b"}, {"2", "b", "c"}, {"3", "c", "d"}, {"4", "d", "b"}},
	)

	BreakCycles(g)
	AssignLayers(g)

	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles = %v", err)
	}
	if removed := BreakCycles(g); len(removed) != 0 {
		t.Errorf("graph still has cycles after BreakCycles()")
	}
}

func TestBreakCycles_EmptyGraph(t *testing.T) {
	if removed := BreakCycles(dag.New(nil)); len(removed) != 0 {
		t.Errorf("BreakCycles() removed %d edges, want 0", len(removed))
	}
}
