package layout

import (
	"fmt"
	"slices"

	"github.com/matzehuels/deckroute/pkg/diagram"
)

// Shape classifies a diagram's relationship graph for automatic layout.
type Shape int

const (
	// ShapeEmpty is a diagram without components.
	ShapeEmpty Shape = iota
	// ShapeSingle is a diagram with exactly one component.
	ShapeSingle
	// ShapePath is a connected chain: every component has at most two
	// neighbours and exactly two components have one.
	ShapePath
	// ShapeHierarchy is everything else: trees, DAGs, cycles and
	// disconnected diagrams.
	ShapeHierarchy
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeSingle:
		return "single"
	case ShapePath:
		return "path"
	case ShapeHierarchy:
		return "hierarchy"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// MarshalText encodes the shape by name.
func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a shape name.
func (s *Shape) UnmarshalText(b []byte) error {
	for _, v := range []Shape{ShapeEmpty, ShapeSingle, ShapePath, ShapeHierarchy} {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown shape %q", b)
}

// Classify returns the shape of d. Self-loops and repeated relationships
// between the same pair of components are ignored.
func Classify(d *diagram.Diagram) Shape {
	switch d.Len() {
	case 0:
		return ShapeEmpty
	case 1:
		return ShapeSingle
	}
	g := newGraph(d)
	if len(g.components()) != 1 {
		return ShapeHierarchy
	}
	endpoints := 0
	for _, nbrs := range g.adj {
		switch len(nbrs) {
		case 1:
			endpoints++
		case 2:
		default:
			return ShapeHierarchy
		}
	}
	if endpoints != 2 {
		return ShapeHierarchy
	}
	return ShapePath
}

// graph is the relationship graph used for layout, indexed by declaration
// order. out and in hold directed edges (backward arrows reversed); adj
// holds the undirected neighbourhood. All three are free of self-loops and
// duplicates and keep relationship declaration order.
type graph struct {
	ids   []string
	index map[string]int
	out   [][]int
	in    [][]int
	adj   [][]int
}

func newGraph(d *diagram.Diagram) *graph {
	comps := d.Components()
	g := &graph{
		ids:   make([]string, len(comps)),
		index: make(map[string]int, len(comps)),
		out:   make([][]int, len(comps)),
		in:    make([][]int, len(comps)),
		adj:   make([][]int, len(comps)),
	}
	for i, c := range comps {
		g.ids[i] = c.ID
		g.index[c.ID] = i
	}

	directed := make(map[[2]int]bool)
	undirected := make(map[[2]int]bool)
	for _, r := range d.Relationships() {
		if r.SelfLoop() {
			continue
		}
		from, to := g.index[r.Source], g.index[r.Target]
		if r.Arrow == diagram.ArrowBackward {
			from, to = to, from
		}
		if !directed[[2]int{from, to}] {
			directed[[2]int{from, to}] = true
			g.out[from] = append(g.out[from], to)
			g.in[to] = append(g.in[to], from)
		}
		pair := [2]int{min(from, to), max(from, to)}
		if !undirected[pair] {
			undirected[pair] = true
			g.adj[from] = append(g.adj[from], to)
			g.adj[to] = append(g.adj[to], from)
		}
	}
	return g
}

// components returns the connected components, each listed in declaration
// order, ordered by their first-declared member.
func (g *graph) components() [][]int {
	seen := make([]bool, len(g.ids))
	var out [][]int
	for start := range g.ids {
		if seen[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, n)
			for _, m := range g.adj[n] {
				if !seen[m] {
					seen[m] = true
					stack = append(stack, m)
				}
			}
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	return out
}
