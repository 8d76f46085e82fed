// Package route builds the routing graph of a diagram grid and finds
// collision-aware orthogonal paths for its relationships.
//
// # Coordinates
//
// Components sit on integer grid cells. Streets run between cells, half a
// unit away from each cell center, and a ring of boundary streets surrounds
// the outermost cells. To keep every point of interest on an integer lattice
// the package works in doubled coordinates ([Coord]): a grid position
// (1.5, 2) is stored as Coord{Col2: 3, Row2: 4}.
//
//   - Cell center: both components even
//   - Junction (where a cell's internal road meets a street): exactly one odd
//   - Street intersection: both odd
//
// # Graph and lanes
//
// [BuildGraph] creates a node for every doubled coordinate inside the grid
// bounds (plus the boundary streets) and joins axis-adjacent nodes with
// half-unit segments. Each segment carries a lane capacity taken from a
// [Capacity]; lanes are signed integers indexed outward from the center
// lane 0 and are handed out in spiral order 0, 1, -1, 2, -2, ... (see
// [SpiralLanes]).
//
// Occupied cells (cells holding a component) block their internal roads for
// every route that neither starts nor ends in that cell.
//
// # Routing
//
// A [Router] routes relationships one at a time in declaration order. Each
// relationship is searched with A* over (node, direction, lane) states,
// once per initial departure direction, with the four searches running
// concurrently against a read-only view of the current [Occupancy]. The
// cheapest route wins, judged by its [Complexity]:
//
//	total = length + turns + lane changes
//
// Its lanes are then claimed before the next relationship is searched, so
// earlier relationships get first choice of lanes.
//
// Relationships that cannot be routed produce a failed [Result] carrying a
// warning; they never abort the pass.
//
// # Routing language
//
// [Format] and [Parse] convert routes to and from a compact text form:
//
//	(1,1)-L0-(1.5,1)-L0-(2,1)
//
// Coordinates are grid positions, and each "L<n>" names the lane of the
// segment between the waypoints on either side of it.
package route
