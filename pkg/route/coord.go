package route

import (
	"fmt"
	"strconv"
)

// Coord is a point of the routing graph in doubled grid coordinates.
//
// Doubling lets junctions and street intersections, which lie on half-unit
// positions, be represented exactly with integers. Use [CellCoord] to convert
// an integer grid cell and [Coord.Col] / [Coord.Row] to read grid positions.
type Coord struct {
	Col2 int
	Row2 int
}

// CellCoord returns the coordinate of the center of grid cell (col, row).
func CellCoord(col, row int) Coord {
	return Coord{Col2: col * 2, Row2: row * 2}
}

// GridCoord returns the coordinate for a grid position that is a multiple of
// one half. Other fractions are truncated toward the nearest half below.
func GridCoord(col, row float64) Coord {
	return Coord{Col2: halves(col), Row2: halves(row)}
}

func halves(v float64) int {
	h := v * 2
	if h < 0 {
		return int(h - 0.5)
	}
	return int(h + 0.5)
}

// Col returns the grid column, which may be a half value.
func (c Coord) Col() float64 { return float64(c.Col2) / 2 }

// Row returns the grid row, which may be a half value.
func (c Coord) Row() float64 { return float64(c.Row2) / 2 }

// IsCellCenter reports whether c is the center of a grid cell.
func (c Coord) IsCellCenter() bool {
	return even(c.Col2) && even(c.Row2)
}

// IsJunction reports whether c is where a cell's internal road meets a street.
func (c Coord) IsJunction() bool {
	return even(c.Col2) != even(c.Row2)
}

// IsStreetIntersection reports whether c is where two streets cross.
func (c Coord) IsStreetIntersection() bool {
	return !even(c.Col2) && !even(c.Row2)
}

// Step returns the neighbouring coordinate half a unit away in direction d.
func (c Coord) Step(d Direction) Coord {
	switch d {
	case North:
		return Coord{c.Col2, c.Row2 - 1}
	case South:
		return Coord{c.Col2, c.Row2 + 1}
	case East:
		return Coord{c.Col2 + 1, c.Row2}
	case West:
		return Coord{c.Col2 - 1, c.Row2}
	}
	return c
}

// Distance returns the Manhattan distance to o in doubled units.
func (c Coord) Distance(o Coord) int {
	return abs(c.Col2-o.Col2) + abs(c.Row2-o.Row2)
}

// Compare orders coordinates by row, then column. It returns -1, 0 or 1.
func (c Coord) Compare(o Coord) int {
	switch {
	case c.Row2 != o.Row2:
		return sign(c.Row2 - o.Row2)
	default:
		return sign(c.Col2 - o.Col2)
	}
}

// String formats c as a grid position, e.g. "(1.5,2)".
func (c Coord) String() string {
	return fmt.Sprintf("(%s,%s)", formatHalf(c.Col2), formatHalf(c.Row2))
}

// formatHalf prints a doubled value as a grid number without a trailing ".0".
func formatHalf(v2 int) string {
	if even(v2) {
		return strconv.Itoa(v2 / 2)
	}
	return strconv.FormatFloat(float64(v2)/2, 'f', 1, 64)
}

// Direction is one of the four compass directions a route can travel.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in search order.
var Directions = [4]Direction{North, East, South, West}

// Horizontal reports whether d runs east or west.
func (d Direction) Horizontal() bool { return d == East || d == West }

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// Turns reports whether moving from d to next changes axis.
func (d Direction) Turns(next Direction) bool {
	return d.Horizontal() != next.Horizontal()
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// directionBetween returns the direction of travel from a to b, which must
// differ on exactly one axis.
func directionBetween(a, b Coord) Direction {
	switch {
	case b.Col2 > a.Col2:
		return East
	case b.Col2 < a.Col2:
		return West
	case b.Row2 > a.Row2:
		return South
	default:
		return North
	}
}

func even(v int) bool { return v%2 == 0 }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
