package layout

// placePath lays a chain out left to right on row 1. The walk starts at the
// endpoint without incoming edges, or the first-declared endpoint when both
// or neither have one.
func placePath(g *graph) []Cell {
	var ends []int
	for n, nbrs := range g.adj {
		if len(nbrs) == 1 {
			ends = append(ends, n)
		}
	}
	start := ends[0]
	if len(g.in[ends[0]]) > 0 && len(g.in[ends[1]]) == 0 {
		start = ends[1]
	}

	cells := make([]Cell, len(g.ids))
	prev, cur := -1, start
	for col := 1; cur >= 0; col++ {
		cells[cur] = Cell{ID: g.ids[cur], Col: col, Row: 1}
		next := -1
		for _, m := range g.adj[cur] {
			if m != prev {
				next = m
				break
			}
		}
		prev, cur = cur, next
	}
	return cells
}

// placeHierarchy lays each connected component out as layers of BFS depth,
// one layer per row, centering each layer against the component's widest
// layer. Components are stacked top to bottom in declaration order.
func placeHierarchy(g *graph) []Cell {
	cells := make([]Cell, len(g.ids))
	rowOffset := 0
	for _, comp := range g.components() {
		levels := g.levels(comp)
		widest := 0
		for _, level := range levels {
			widest = max(widest, len(level))
		}
		for depth, level := range levels {
			offset := (widest - len(level)) / 2
			for i, n := range level {
				cells[n] = Cell{ID: g.ids[n], Col: offset + i + 1, Row: rowOffset + depth + 1}
			}
		}
		rowOffset += len(levels)
	}
	return cells
}

// levels groups the nodes of comp by BFS depth from its roots.
//
// Roots are the nodes without incoming edges; if there are none (the
// component is a cycle) the first-declared node with the fewest incoming
// edges is used. A node keeps the depth at which it is first discovered, so
// edges closing a cycle never pull a node upward. Nodes unreachable from the
// roots seed further passes at depth 0.
func (g *graph) levels(comp []int) [][]int {
	depth := make(map[int]int, len(comp))
	var levels [][]int

	visit := func(roots []int) {
		queue := make([]int, 0, len(comp))
		for _, r := range roots {
			if _, ok := depth[r]; ok {
				continue
			}
			depth[r] = 0
			queue = append(queue, r)
		}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			d := depth[n]
			if d == len(levels) {
				levels = append(levels, nil)
			}
			levels[d] = append(levels[d], n)
			for _, child := range g.out[n] {
				if _, ok := depth[child]; ok {
					continue
				}
				depth[child] = d + 1
				queue = append(queue, child)
			}
		}
	}

	var roots []int
	for _, n := range comp {
		if len(g.in[n]) == 0 {
			roots = append(roots, n)
		}
	}
	if len(roots) == 0 {
		roots = []int{g.fewestIncoming(comp, depth)}
	}
	visit(roots)

	for len(depth) < len(comp) {
		visit([]int{g.fewestIncoming(comp, depth)})
	}
	return levels
}

// fewestIncoming returns the first-declared unvisited node of comp with the
// fewest incoming edges.
func (g *graph) fewestIncoming(comp []int, visited map[int]int) int {
	best := -1
	for _, n := range comp {
		if _, ok := visited[n]; ok {
			continue
		}
		if best < 0 || len(g.in[n]) < len(g.in[best]) {
			best = n
		}
	}
	return best
}
