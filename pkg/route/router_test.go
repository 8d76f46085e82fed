package route

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func routeOne(t *testing.T, nodes []Node, e Edge, capacity Capacity) Result {
	t.Helper()
	set, err := RouteAll(context.Background(), nodes, []Edge{e}, capacity)
	if err != nil {
		t.Fatalf("RouteAll: %v", err)
	}
	return set.Results[0]
}

func TestRouteDiagonalNeighbour(t *testing.T) {
	nodes := []Node{{"A", 1, 1}, {"B", 2, 2}}
	res := routeOne(t, nodes, Edge{Source: "A", Target: "B"}, DefaultCapacity())
	if res.Failed {
		t.Fatalf("route failed: %s", res.Warning)
	}
	c := res.Route.Complexity
	if c.Length != 2 || c.Turns != 1 || c.LaneChanges != 0 {
		t.Errorf("complexity = %+v, want length 2, 1 turn", c)
	}
	wps := res.Route.Waypoints
	if wps[0].Coord != CellCoord(1, 1) || wps[len(wps)-1].Coord != CellCoord(2, 2) {
		t.Errorf("route %s does not join the two cell centers", Format(res.Route))
	}
	if wps[len(wps)-1].Lane != 0 {
		t.Errorf("final waypoint lane = %d, want 0", wps[len(wps)-1].Lane)
	}
}

func TestRouteAroundObstacle(t *testing.T) {
	nodes := []Node{{"A", 1, 1}, {"B", 3, 1}, {"C", 2, 1}}
	res := routeOne(t, nodes, Edge{Source: "A", Target: "B"}, DefaultCapacity())
	if res.Failed {
		t.Fatalf("route failed: %s", res.Warning)
	}
	if res.Route.Complexity.Length <= 2 {
		t.Errorf("length = %v, want a detour longer than 2", res.Route.Complexity.Length)
	}
	if res.Route.Complexity.Turns < 2 {
		t.Errorf("turns = %d, want at least 2", res.Route.Complexity.Turns)
	}
	for _, w := range res.Route.Waypoints {
		if w.Coord == CellCoord(2, 1) {
			t.Fatalf("route %s crosses the occupied cell", Format(res.Route))
		}
	}
}

func TestRouteSelf(t *testing.T) {
	res := routeOne(t, []Node{{"A", 1, 1}}, Edge{Source: "A", Target: "A"}, DefaultCapacity())
	if res.Failed {
		t.Fatalf("self route failed: %s", res.Warning)
	}
	if len(res.Route.Waypoints) != 1 || res.Route.Complexity.Total() != 0 {
		t.Errorf("self route = %s %+v, want single waypoint of zero cost", Format(res.Route), res.Route.Complexity)
	}
}

func TestRouteUnknownEndpoints(t *testing.T) {
	nodes := []Node{{"A", 1, 1}}
	tests := []struct {
		edge Edge
		want string
	}{
		{Edge{Source: "X", Target: "A"}, "Unknown source node 'X'"},
		{Edge{Source: "A", Target: "Y"}, "Unknown target node 'Y'"},
	}
	for _, tt := range tests {
		res := routeOne(t, nodes, tt.edge, DefaultCapacity())
		if !res.Failed || res.Warning != tt.want {
			t.Errorf("result = %+v, want failure %q", res, tt.want)
		}
		if res.Route != nil {
			t.Error("failed result should carry no route")
		}
	}
}

func TestRouteEmptyDiagram(t *testing.T) {
	set, err := RouteAll(context.Background(), nil, []Edge{{Source: "A", Target: "B"}}, DefaultCapacity())
	if err != nil {
		t.Fatal(err)
	}
	if !set.Results[0].Failed {
		t.Error("routing on an empty diagram should fail")
	}
}

func TestRouteCapacity(t *testing.T) {
	nodes := []Node{{"A", 1, 1}, {"B", 1, 2}}
	e := Edge{Source: "A", Target: "B"}

	res := routeOne(t, nodes, e, Capacity{Horizontal: 0, Vertical: 3})
	if res.Failed {
		t.Errorf("vertical-only capacity should still route a vertical edge: %s", res.Warning)
	}

	res = routeOne(t, nodes, e, Capacity{})
	if !res.Failed {
		t.Fatal("zero capacity should fail")
	}
	if want := "Could not find route from 'A' to 'B'"; res.Warning != want {
		t.Errorf("warning = %q, want %q", res.Warning, want)
	}
}

func TestRouteLanesInDeclarationOrder(t *testing.T) {
	nodes := []Node{{"A", 1, 1}, {"B", 2, 1}}
	edges := []Edge{
		{Source: "A", Target: "B", Label: "first"},
		{Source: "B", Target: "A", Label: "second"},
		{Source: "A", Target: "B", Label: "third"},
	}
	laneOf := func(edges []Edge) map[string]Lane {
		set, err := RouteAll(context.Background(), nodes, edges, Capacity{Horizontal: 3, Vertical: 3})
		if err != nil {
			t.Fatal(err)
		}
		out := make(map[string]Lane)
		for _, r := range set.Results {
			if r.Failed {
				t.Fatalf("%s failed: %s", r.Label, r.Warning)
			}
			if r.Route.Complexity.Length != 1 {
				t.Errorf("%s: length = %v, want the direct street", r.Label, r.Route.Complexity.Length)
			}
			out[r.Label] = r.Route.Waypoints[0].Lane
		}
		return out
	}

	got := laneOf(edges)
	want := map[string]Lane{"first": 0, "second": 1, "third": -1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lanes = %v, want %v", got, want)
	}

	reversed := []Edge{edges[2], edges[1], edges[0]}
	got = laneOf(reversed)
	if got["third"] != 0 || got["first"] == 0 {
		t.Errorf("reversed lanes = %v, want third on lane 0", got)
	}
}

func TestRouteSaturation(t *testing.T) {
	nodes := []Node{{"A", 1, 1}, {"B", 2, 1}}
	edges := []Edge{
		{Source: "A", Target: "B"},
		{Source: "A", Target: "B"},
		{Source: "A", Target: "B"},
		{Source: "A", Target: "B"},
		{Source: "B", Target: "B"},
	}
	set, err := RouteAll(context.Background(), nodes, edges, Capacity{Horizontal: 1, Vertical: 1})
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []bool{false, false, false, true, false} {
		if got := set.Results[i].Failed; got != want {
			t.Errorf("result %d failed = %v, want %v (%s)", i, got, want, set.Results[i].Warning)
		}
	}
	if got := set.Warnings(); len(got) != 1 || got[0] != "Could not find route from 'A' to 'B'" {
		t.Errorf("warnings = %q", got)
	}

	// The lane table never holds more than one lane per segment.
	seen := make(map[SegmentID]int)
	for _, r := range set.Results {
		for _, s := range r.Route.Segments() {
			if s.Lane != 0 {
				t.Errorf("lane %d used with capacity 1", s.Lane)
			}
			seen[s.Segment]++
		}
	}
	for seg, n := range seen {
		if n > 1 {
			t.Errorf("segment %s used by %d routes", seg, n)
		}
	}
}

func TestRouteDeterministic(t *testing.T) {
	nodes := []Node{{"A", 1, 1}, {"B", 3, 1}, {"C", 2, 2}, {"D", 1, 3}, {"E", 3, 3}}
	edges := []Edge{
		{Source: "A", Target: "E"},
		{Source: "B", Target: "D"},
		{Source: "C", Target: "A"},
		{Source: "C", Target: "B"},
		{Source: "D", Target: "E"},
		{Source: "A", Target: "E"},
	}
	render := func() []string {
		set, err := RouteAll(context.Background(), nodes, edges, Capacity{Horizontal: 2, Vertical: 2})
		if err != nil {
			t.Fatal(err)
		}
		var out []string
		for _, r := range set.Results {
			out = append(out, Format(r.Route)+"|"+r.Warning)
		}
		return out
	}
	first := render()
	for i := 0; i < 10; i++ {
		if got := render(); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n%v\n%v", i, got, first)
		}
	}
}

func TestRouteNeverEntersForeignCells(t *testing.T) {
	nodes := []Node{{"A", 1, 1}, {"B", 3, 3}, {"C", 2, 2}, {"D", 2, 1}, {"E", 1, 2}}
	set, err := RouteAll(context.Background(), nodes, []Edge{{Source: "A", Target: "B"}}, DefaultCapacity())
	if err != nil {
		t.Fatal(err)
	}
	res := set.Results[0]
	if res.Failed {
		t.Fatalf("route failed: %s", res.Warning)
	}
	g := BuildGraph(nodes, DefaultCapacity())
	wps := res.Route.Waypoints
	for _, w := range wps[1 : len(wps)-1] {
		if g.Occupied(w.Coord) {
			t.Errorf("route %s passes through cell %s", Format(res.Route), w.Coord)
		}
	}
}

func TestRouteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	nodes := []Node{{"A", 1, 1}, {"B", 2, 2}}
	set, err := RouteAll(ctx, nodes, []Edge{{Source: "A", Target: "B"}, {Source: "B", Target: "A"}}, DefaultCapacity())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(set.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(set.Results))
	}
	for _, r := range set.Results {
		if !r.Failed {
			t.Errorf("result %d should be failed after cancellation", r.Index)
		}
	}
}

func TestCapacityFor(t *testing.T) {
	b := Bounds{MinCol: 1, MaxCol: 4, MinRow: 1, MaxRow: 3}

	wide := CapacityFor(1920, 1080, b)
	if wide.Horizontal < wide.Vertical || wide.Vertical < 1 {
		t.Errorf("landscape capacity = %v, want horizontal >= vertical >= 1", wide)
	}
	tall := CapacityFor(1080, 1920, b)
	if tall.Vertical < tall.Horizontal || tall.Horizontal < 1 {
		t.Errorf("portrait capacity = %v, want vertical >= horizontal >= 1", tall)
	}
	tiny := CapacityFor(10, 10, Bounds{MinCol: 1, MaxCol: 50, MinRow: 1, MaxRow: 50})
	if tiny != (Capacity{1, 1}) {
		t.Errorf("tiny canvas capacity = %v, want 1h/1v", tiny)
	}
	if got := CapacityFor(0, 100, b); got != DefaultCapacity() {
		t.Errorf("unknown canvas capacity = %v, want default", got)
	}
	if huge := CapacityFor(100000, 1000, b); huge.Horizontal > MaxLanes {
		t.Errorf("capacity %v exceeds MaxLanes", huge)
	}
}

func TestBuildGraph(t *testing.T) {
	g := BuildGraph([]Node{{"A", 1, 1}, {"B", 2, 2}}, DefaultCapacity())
	if got, want := g.NodeCount(), 25; got != want {
		t.Errorf("NodeCount() = %d, want %d", got, want)
	}
	if !g.Contains(Coord{1, 1}) || !g.Contains(Coord{5, 5}) {
		t.Error("boundary streets should be part of the graph")
	}
	if g.Contains(Coord{0, 2}) || g.Contains(Coord{6, 2}) {
		t.Error("graph extends beyond the boundary streets")
	}
	if got := len(g.Neighbors(Coord{1, 1})); got != 2 {
		t.Errorf("corner has %d neighbours, want 2", got)
	}
	if got := len(g.Neighbors(Coord{3, 3})); got != 4 {
		t.Errorf("inner intersection has %d neighbours, want 4", got)
	}
	if !g.Occupied(CellCoord(2, 2)) || g.Occupied(CellCoord(1, 2)) {
		t.Error("occupied cells not tracked")
	}
}
