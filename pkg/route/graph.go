package route

// Graph is the routing graph of a placed diagram.
//
// Every doubled coordinate inside the grid bounds, boundary streets
// included, is a node, and each node is joined to its four axis neighbours.
// Because the node set is a full rectangle the graph stores only its bounds,
// the occupied cell centers and the lane capacities; adjacency is derived.
type Graph struct {
	bounds   Bounds
	empty    bool
	occupied map[Coord]string
	capacity Capacity
}

// BuildGraph returns the routing graph for nodes with the given lane
// capacities. Nodes with duplicate names keep the last position seen.
func BuildGraph(nodes []Node, capacity Capacity) *Graph {
	g := &Graph{
		occupied: make(map[Coord]string, len(nodes)),
		capacity: capacity,
	}
	b, ok := BoundsOf(nodes)
	g.bounds, g.empty = b, !ok
	for _, n := range nodes {
		g.occupied[CellCoord(n.Col, n.Row)] = n.Name
	}
	return g
}

// Bounds returns the cell extent of the graph.
func (g *Graph) Bounds() Bounds { return g.bounds }

// Capacity returns the lane capacities of the graph.
func (g *Graph) Capacity() Capacity { return g.capacity }

// Contains reports whether c is a node of the graph.
func (g *Graph) Contains(c Coord) bool {
	return !g.empty && g.bounds.Contains(c)
}

// Occupied reports whether c is the center of a cell holding a component.
func (g *Graph) Occupied(c Coord) bool {
	_, ok := g.occupied[c]
	return ok
}

// Neighbors returns the nodes adjacent to c in [Directions] order.
func (g *Graph) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range Directions {
		if n := c.Step(d); g.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// SegmentCapacity returns the lane count of the segment from a to b.
func (g *Graph) SegmentCapacity(a, b Coord) int {
	return g.capacity.For(NewSegmentID(a, b))
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	if g.empty {
		return 0
	}
	return (2*g.bounds.Cols() + 1) * (2*g.bounds.Rows() + 1)
}
