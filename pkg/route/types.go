package route

import "fmt"

// Node is a placed component as seen by the router: a unique name on an
// integer grid cell.
type Node struct {
	Name string
	Col  int
	Row  int
}

// Edge is a relationship to route between two named nodes. Label is carried
// through to the [Result] unchanged.
type Edge struct {
	Source string
	Target string
	Label  string
}

// Bounds is the inclusive cell extent of a placed diagram.
type Bounds struct {
	MinCol int `json:"min_col"`
	MaxCol int `json:"max_col"`
	MinRow int `json:"min_row"`
	MaxRow int `json:"max_row"`
}

// BoundsOf returns the bounds enclosing every node. The second result is
// false when nodes is empty.
func BoundsOf(nodes []Node) (Bounds, bool) {
	if len(nodes) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinCol: nodes[0].Col, MaxCol: nodes[0].Col,
		MinRow: nodes[0].Row, MaxRow: nodes[0].Row,
	}
	for _, n := range nodes[1:] {
		b.MinCol = min(b.MinCol, n.Col)
		b.MaxCol = max(b.MaxCol, n.Col)
		b.MinRow = min(b.MinRow, n.Row)
		b.MaxRow = max(b.MaxRow, n.Row)
	}
	return b, true
}

// Cols returns the number of grid columns.
func (b Bounds) Cols() int { return b.MaxCol - b.MinCol + 1 }

// Rows returns the number of grid rows.
func (b Bounds) Rows() int { return b.MaxRow - b.MinRow + 1 }

// Contains reports whether c lies inside the bounds, boundary streets
// included.
func (b Bounds) Contains(c Coord) bool {
	return c.Col2 >= 2*b.MinCol-1 && c.Col2 <= 2*b.MaxCol+1 &&
		c.Row2 >= 2*b.MinRow-1 && c.Row2 <= 2*b.MaxRow+1
}

// SegmentID identifies the half-unit segment between two adjacent nodes.
// The lesser coordinate (by [Coord.Compare]) is always stored in From, so
// both travel directions share one identity.
type SegmentID struct {
	From Coord
	To   Coord
}

// NewSegmentID returns the canonical segment joining a and b.
func NewSegmentID(a, b Coord) SegmentID {
	if b.Compare(a) < 0 {
		a, b = b, a
	}
	return SegmentID{From: a, To: b}
}

// Horizontal reports whether the segment runs east-west.
func (s SegmentID) Horizontal() bool { return s.From.Row2 == s.To.Row2 }

func (s SegmentID) String() string {
	return s.From.String() + "-" + s.To.String()
}

// Lane is a signed parallel track within a segment. Lane 0 is the center;
// positive and negative lanes sit on either side of it.
type Lane int

// Waypoint is a route vertex. Lane is the lane of the segment leaving the
// waypoint; the final waypoint of a route always has lane 0.
type Waypoint struct {
	Coord Coord
	Lane  Lane
}

func (w Waypoint) String() string {
	return fmt.Sprintf("%s@L%d", w.Coord, w.Lane)
}

// Route is a path from a source cell center to a target cell center.
type Route struct {
	Waypoints  []Waypoint
	Complexity Complexity
}

// Segments returns the segment and lane traversed between each consecutive
// pair of waypoints.
func (r *Route) Segments() []SegmentLane {
	if r == nil || len(r.Waypoints) < 2 {
		return nil
	}
	out := make([]SegmentLane, 0, len(r.Waypoints)-1)
	for i := 0; i+1 < len(r.Waypoints); i++ {
		out = append(out, SegmentLane{
			Segment: NewSegmentID(r.Waypoints[i].Coord, r.Waypoints[i+1].Coord),
			Lane:    r.Waypoints[i].Lane,
		})
	}
	return out
}

// SegmentLane pairs a segment with one of its lanes.
type SegmentLane struct {
	Segment SegmentID
	Lane    Lane
}

// compareWaypoints orders waypoint sequences lexicographically by column,
// row, then lane of each waypoint, shorter sequences first on a common prefix.
func compareWaypoints(a, b []Waypoint) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		x, y := a[i], b[i]
		switch {
		case x.Coord.Col2 != y.Coord.Col2:
			return sign(x.Coord.Col2 - y.Coord.Col2)
		case x.Coord.Row2 != y.Coord.Row2:
			return sign(x.Coord.Row2 - y.Coord.Row2)
		case x.Lane != y.Lane:
			return sign(int(x.Lane - y.Lane))
		}
	}
	return sign(len(a) - len(b))
}

// Result is the outcome of routing one relationship.
//
// Exactly one of Route and Warning is set: Failed results carry a warning
// naming the relationship's endpoints and no route.
type Result struct {
	Index   int
	Source  string
	Target  string
	Label   string
	Route   *Route
	Failed  bool
	Warning string
}

// RouteSet is the full output of a routing pass: resolved node positions,
// the capacities used, and one [Result] per relationship in declaration
// order.
type RouteSet struct {
	Nodes    []Node
	Bounds   Bounds
	Capacity Capacity
	Results  []Result
}

// Failures returns the failed results in declaration order.
func (s *RouteSet) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Failed {
			out = append(out, r)
		}
	}
	return out
}

// Warnings returns the warning of every failed result.
func (s *RouteSet) Warnings() []string {
	var out []string
	for _, r := range s.Results {
		if r.Failed {
			out = append(out, r.Warning)
		}
	}
	return out
}
