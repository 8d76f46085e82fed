package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/deckroute/pkg/diagram"
	errs "github.com/matzehuels/deckroute/pkg/errors"
	"github.com/matzehuels/deckroute/pkg/route"
)

var (
	// ErrMixedPositions is returned when some components have explicit
	// positions and others do not.
	ErrMixedPositions = errors.New("mixed explicit and automatic positions")

	// ErrCellCollision is returned when two components are placed on the
	// same cell.
	ErrCellCollision = errors.New("two components share a cell")
)

// Cell is a component's resolved grid position.
type Cell struct {
	ID  string `json:"id"`
	Col int    `json:"col"`
	Row int    `json:"row"`
}

// Placement is the resolved position of every component, in declaration
// order.
type Placement struct {
	Cells  []Cell       `json:"cells"`
	Bounds route.Bounds `json:"bounds"`
	Shape  Shape        `json:"shape"`
	Auto   bool         `json:"auto"`
}

// Position returns the cell of the component with the given id.
func (p *Placement) Position(id string) (Cell, bool) {
	for _, c := range p.Cells {
		if c.ID == id {
			return c, true
		}
	}
	return Cell{}, false
}

// Nodes converts the placement to router input.
func (p *Placement) Nodes() []route.Node {
	out := make([]route.Node, len(p.Cells))
	for i, c := range p.Cells {
		out[i] = route.Node{Name: c.ID, Col: c.Col, Row: c.Row}
	}
	return out
}

// Place resolves a grid position for every component of d.
//
// When every component has an explicit position the positions are used as
// given. When none has, positions are computed from the diagram's shape (see
// [Classify]): a single component goes to (1,1), a simple path is laid out
// left to right on row 1, and anything else gets a layered top-down layout.
//
// A diagram that mixes explicit and implicit positions, or whose explicit
// positions collide, is rejected with an INVALID_PLACEMENT error. Callers
// that want to ignore explicit positions can place
// [diagram.Diagram.WithoutPositions] instead.
func Place(d *diagram.Diagram) (*Placement, error) {
	shape := Classify(d)
	all, none := d.Positioned()

	var (
		cells []Cell
		auto  bool
	)
	switch {
	case all:
		cells = explicitCells(d)
	case none:
		cells, auto = autoCells(d, shape), true
	default:
		return nil, errs.Wrap(errs.ErrCodeInvalidPlacement, ErrMixedPositions,
			"%d of %d components have explicit positions", countPositioned(d), d.Len())
	}

	seen := make(map[[2]int]string, len(cells))
	for _, c := range cells {
		key := [2]int{c.Col, c.Row}
		if other, ok := seen[key]; ok {
			return nil, errs.Wrap(errs.ErrCodeInvalidPlacement, ErrCellCollision,
				"%q and %q are both at (%d,%d)", other, c.ID, c.Col, c.Row)
		}
		seen[key] = c.ID
	}

	p := &Placement{Cells: cells, Shape: shape, Auto: auto}
	if b, ok := route.BoundsOf(p.Nodes()); ok {
		p.Bounds = b
	}
	return p, nil
}

func explicitCells(d *diagram.Diagram) []Cell {
	comps := d.Components()
	cells := make([]Cell, len(comps))
	for i, c := range comps {
		cells[i] = Cell{ID: c.ID, Col: c.Pos.Col, Row: c.Pos.Row}
	}
	return cells
}

func countPositioned(d *diagram.Diagram) int {
	n := 0
	for _, c := range d.Components() {
		if c.Pos != nil {
			n++
		}
	}
	return n
}

func autoCells(d *diagram.Diagram, shape Shape) []Cell {
	g := newGraph(d)
	switch shape {
	case ShapeEmpty:
		return nil
	case ShapeSingle:
		return []Cell{{ID: g.ids[0], Col: 1, Row: 1}}
	case ShapePath:
		return placePath(g)
	default:
		return placeHierarchy(g)
	}
}

func (c Cell) String() string { return fmt.Sprintf("%s(%d,%d)", c.ID, c.Col, c.Row) }
