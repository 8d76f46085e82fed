package route

import "fmt"

// Complexity is the cost breakdown of a route.
//
// Length is measured in grid units (each half-unit step adds 0.5). A turn is
// a change between horizontal and vertical travel at an intermediate
// waypoint; departing the source and arriving at the target are never turns.
// A lane change is a change of lane at an intermediate waypoint where the
// route does not also turn.
type Complexity struct {
	Length      float64 `json:"length"`
	Turns       int     `json:"turns"`
	LaneChanges int     `json:"lane_changes"`
}

// Total returns length + turns + lane changes.
func (c Complexity) Total() float64 {
	return c.Length + float64(c.Turns) + float64(c.LaneChanges)
}

// Compare orders complexities by total, then length, turns and lane changes.
// It returns -1, 0 or 1.
func (c Complexity) Compare(o Complexity) int {
	if r := compareFloat(c.Total(), o.Total()); r != 0 {
		return r
	}
	if r := compareFloat(c.Length, o.Length); r != 0 {
		return r
	}
	if c.Turns != o.Turns {
		return sign(c.Turns - o.Turns)
	}
	return sign(c.LaneChanges - o.LaneChanges)
}

func (c Complexity) String() string {
	return fmt.Sprintf("%g (length %g, turns %d, lane changes %d)",
		c.Total(), c.Length, c.Turns, c.LaneChanges)
}

// ComputeComplexity derives the cost breakdown of a waypoint sequence.
// Consecutive waypoints must be axis-aligned; sequences with fewer than two
// waypoints have zero complexity.
func ComputeComplexity(waypoints []Waypoint) Complexity {
	var c Complexity
	if len(waypoints) < 2 {
		return c
	}
	halfSteps := 0
	for i := 1; i < len(waypoints); i++ {
		halfSteps += waypoints[i-1].Coord.Distance(waypoints[i].Coord)
		if i < 2 {
			continue
		}
		a, b, cur := waypoints[i-2], waypoints[i-1], waypoints[i]
		turned := directionBetween(a.Coord, b.Coord).Turns(directionBetween(b.Coord, cur.Coord))
		if turned {
			c.Turns++
		} else if a.Lane != b.Lane {
			c.LaneChanges++
		}
	}
	c.Length = float64(halfSteps) / 2
	return c
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
