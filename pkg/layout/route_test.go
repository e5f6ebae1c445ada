package layout

import (
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
)

// routeScope runs the pipeline up to routing for one scope.
func routeScope(elements []bpmn.Element, flows []bpmn.Flow) ([]Node, []Edge) {
	opts := DefaultOptions()
	layers, g, back := Build(elements, flows)
	nodes := Assign(layers, elements, opts)
	AlignChains(nodes, g)
	AlignSplitJoin(nodes, g)
	return nodes, Route(flows, nodes, back, g, opts)
}

func edgeByID(t *testing.T, edges []Edge, id string) Edge {
	t.Helper()
	for _, e := range edges {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("edge %q not found", id)
	return Edge{}
}

func assertPortTouch(t *testing.T, nodes []Node, edges []Edge) {
	t.Helper()
	for _, e := range edges {
		if len(e.Waypoints) < 2 {
			t.Errorf("edge %s has %d waypoints, want >= 2", e.ID, len(e.Waypoints))
			continue
		}
		s, tg := nodeByID(t, nodes, e.Source), nodeByID(t, nodes, e.Target)
		if first := e.Waypoints[0]; !s.Bounds.OnBoundary(first, 1e-6) {
			t.Errorf("edge %s starts at %v, not on %s %+v", e.ID, first, s.ID, s.Bounds)
		}
		if last := e.Waypoints[len(e.Waypoints)-1]; !tg.Bounds.OnBoundary(last, 1e-6) {
			t.Errorf("edge %s ends at %v, not on %s %+v", e.ID, last, tg.ID, tg.Bounds)
		}
	}
}

func TestRoute_StraightChain(t *testing.T) {
	nodes, edges := routeScope(
		[]bpmn.Element{el("s", bpmn.StartEvent), el("t", bpmn.Task), el("e", bpmn.EndEvent)},
		[]bpmn.Flow{fl("f1", "s", "t"), fl("f2", "t", "e")},
	)

	f1 := edgeByID(t, edges, "f1")
	if want := []Point{{36, 40}, {96, 40}}; !reflect.DeepEqual(f1.Waypoints, want) {
		t.Errorf("f1.Waypoints = %v, want %v", f1.Waypoints, want)
	}
	for _, e := range edges {
		if Bends(e.Waypoints) != 0 || e.SourcePort != PortRight || e.TargetPort != PortLeft {
			t.Errorf("edge %s: bends=%d ports=%v/%v, want straight right->left",
				e.ID, Bends(e.Waypoints), e.SourcePort, e.TargetPort)
		}
	}
	assertPortTouch(t, nodes, edges)
}

func TestRoute_GatewayPorts(t *testing.T) {
	tests := []struct {
		name    string
		targets []string
		want    []Port
	}{
		{"One", []string{"a"}, []Port{PortRight}},
		{"Two", []string{"a", "b"}, []Port{PortTop, PortBottom}},
		{"Three", []string{"a", "b", "c"}, []Port{PortTop, PortRight, PortBottom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := []bpmn.Element{el("s", bpmn.StartEvent), el("g", bpmn.InclusiveGateway)}
			flows := []bpmn.Flow{fl("in", "s", "g")}
			for _, id := range tt.targets {
				elements = append(elements, el(id, bpmn.Task))
				flows = append(flows, fl("to-"+id, "g", id))
			}

			nodes, edges := routeScope(elements, flows)
			for i, id := range tt.targets {
				if got := edgeByID(t, edges, "to-"+id).SourcePort; got != tt.want[i] {
					t.Errorf("to-%s.SourcePort = %v, want %v", id, got, tt.want[i])
				}
			}
			assertPortTouch(t, nodes, edges)
		})
	}
}

func TestRoute_GatewayLevelBranchFallsBackToRight(t *testing.T) {
	// x below g makes layer 1 shorter than layer 2, leaving a level with g.
	nodes, edges := routeScope(
		[]bpmn.Element{
			el("s", bpmn.StartEvent), el("g", bpmn.ExclusiveGateway), el("x", bpmn.Task),
			el("a", bpmn.Task), el("b", bpmn.Task),
		},
		[]bpmn.Flow{fl("f1", "s", "g"), fl("f2", "s", "x"), fl("to-a", "g", "a"), fl("to-b", "g", "b")},
	)

	g, a := nodeByID(t, nodes, "g"), nodeByID(t, nodes, "a")
	if g.Bounds.CenterY() != a.Bounds.CenterY() {
		t.Fatalf("g center %v, a center %v, want level", g.Bounds.CenterY(), a.Bounds.CenterY())
	}
	toA := edgeByID(t, edges, "to-a")
	if toA.SourcePort != PortRight || Bends(toA.Waypoints) != 0 {
		t.Errorf("to-a = %v with %d bends, want straight from right", toA.SourcePort, Bends(toA.Waypoints))
	}
	if got := edgeByID(t, edges, "to-b").SourcePort; got != PortBottom {
		t.Errorf("to-b.SourcePort = %v, want bottom", got)
	}
	assertPortTouch(t, nodes, edges)
}

func TestRoute_GatewayTargetPort(t *testing.T) {
	nodes, edges := routeScope(
		[]bpmn.Element{
			el("g1", bpmn.ExclusiveGateway), el("a", bpmn.Task), el("b", bpmn.Task), el("g2", bpmn.ExclusiveGateway),
		},
		[]bpmn.Flow{fl("f1", "g1", "a"), fl("f2", "g1", "b"), fl("f3", "a", "g2"), fl("f4", "b", "g2")},
	)

	if got := edgeByID(t, edges, "f3").TargetPort; got != PortTop {
		t.Errorf("f3.TargetPort = %v, want top (source above)", got)
	}
	if got := edgeByID(t, edges, "f4").TargetPort; got != PortBottom {
		t.Errorf("f4.TargetPort = %v, want bottom (source below)", got)
	}
	if got := Bends(edgeByID(t, edges, "f3").Waypoints); got != 1 {
		t.Errorf("f3 bends = %d, want 1", got)
	}
	assertPortTouch(t, nodes, edges)
}

func TestRoute_BackEdgeAroundNodes(t *testing.T) {
	nodes, edges := routeScope(
		[]bpmn.Element{
			el("s", bpmn.StartEvent), el("a", bpmn.Task), el("b", bpmn.Task), el("e", bpmn.EndEvent),
		},
		[]bpmn.Flow{fl("f1", "s", "a"), fl("f2", "a", "b"), fl("retry", "b", "a"), fl("f3", "b", "e")},
	)

	retry := edgeByID(t, edges, "retry")
	if !retry.BackEdge {
		t.Fatal("retry.BackEdge = false, want true")
	}
	assertOutsideField(t, nodes, retry)
	if retry.SourcePort != PortTop {
		t.Errorf("retry.SourcePort = %v, want top on a tie", retry.SourcePort)
	}
	assertPortTouch(t, nodes, edges)
}

func TestRoute_SelfLoop(t *testing.T) {
	nodes, edges := routeScope([]bpmn.Element{el("a", bpmn.Task)}, []bpmn.Flow{fl("f", "a", "a")})

	e := edgeByID(t, edges, "f")
	if !e.BackEdge || e.SourcePort != e.TargetPort {
		t.Errorf("self-loop = %+v, want back-edge on one side", e)
	}
	first, last := e.Waypoints[0], e.Waypoints[len(e.Waypoints)-1]
	if first.X == last.X {
		t.Errorf("self-loop leaves and enters at x = %v, want distinct", first.X)
	}
	assertOutsideField(t, nodes, e)
	assertPortTouch(t, nodes, edges)
}

func TestRoute_BackEdgeAvoidsStackedNodes(t *testing.T) {
	elements := []bpmn.Element{
		el("s", bpmn.StartEvent), el("g", bpmn.ExclusiveGateway),
		el("a", bpmn.Task), el("b", bpmn.Task), el("c", bpmn.Task), el("x", bpmn.Task),
	}
	split := []bpmn.Flow{fl("f1", "s", "g"), fl("f2", "g", "a"), fl("f3", "g", "b"), fl("f4", "g", "c")}

	tests := []struct {
		name  string
		flows []bpmn.Flow
	}{
		{"FromMiddleOfLayer", append(slices.Clone(split), fl("back", "b", "g"))},
		{"IntoMiddleOfLayer", append(slices.Clone(split), fl("f5", "b", "x"), fl("back", "x", "b"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, edges := routeScope(elements, tt.flows)
			back := edgeByID(t, edges, "back")
			if !back.BackEdge {
				t.Fatal("back.BackEdge = false, want true")
			}
			a, b, c := nodeByID(t, nodes, "a"), nodeByID(t, nodes, "b"), nodeByID(t, nodes, "c")
			if !(a.Bounds.Bottom() <= b.Bounds.Y && b.Bounds.Bottom() <= c.Bounds.Y) {
				t.Fatalf("a, b, c not stacked: %+v %+v %+v", a.Bounds, b.Bounds, c.Bounds)
			}
			assertOutsideField(t, nodes, back)
			assertPortTouch(t, nodes, edges)
		})
	}
}

func TestRoute_SkipsUnknownEndpoints(t *testing.T) {
	_, edges := routeScope(
		[]bpmn.Element{el("a", bpmn.Task), el("b", bpmn.Task)},
		[]bpmn.Flow{fl("f1", "a", "b"), fl("f2", "a", "nowhere")},
	)
	if len(edges) != 1 || edges[0].ID != "f1" {
		t.Errorf("Route() = %v, want only f1", edges)
	}
}

// assertOutsideField checks that a back-edge runs its horizontal stretch
// above or below every node of its scope and that none of its segments
// passes through a node.
func assertOutsideField(t *testing.T, nodes []Node, e Edge) {
	t.Helper()
	nodes = scopeNodes(nodes, e.Parent)
	minY, maxY := nodes[0].Bounds.Y, nodes[0].Bounds.Bottom()
	for _, n := range nodes {
		minY = min(minY, n.Bounds.Y)
		maxY = max(maxY, n.Bounds.Bottom())
	}

	around := false
	for i := 1; i < len(e.Waypoints); i++ {
		a, b := e.Waypoints[i-1], e.Waypoints[i]
		if a.Y == b.Y && (a.Y < minY || a.Y > maxY) {
			around = true
		}
		for _, n := range nodes {
			if crossesBox(a, b, n.Bounds) {
				t.Errorf("back-edge %s segment %v-%v passes through node %s %+v", e.ID, a, b, n.ID, n.Bounds)
			}
		}
	}
	if !around {
		t.Errorf("back-edge %s waypoints %v never leave the node field [%v, %v]", e.ID, e.Waypoints, minY, maxY)
	}
}
