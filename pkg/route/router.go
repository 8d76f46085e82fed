package route

import (
	"context"
	"fmt"
)

// Router routes relationships over one placed diagram.
//
// A Router owns the lane occupancy of a single routing pass: every
// successful [Router.Route] claims the lanes of its route, so later calls
// see fewer free lanes. Create a new Router for each diagram. A Router is
// not safe for concurrent use; the concurrency lives inside each search.
type Router struct {
	graph     *Graph
	occ       *Occupancy
	positions map[string]Coord
	nodes     []Node
	next      int
}

// NewRouter returns a router for nodes with the given lane capacities.
func NewRouter(nodes []Node, capacity Capacity) *Router {
	positions := make(map[string]Coord, len(nodes))
	for _, n := range nodes {
		positions[n.Name] = CellCoord(n.Col, n.Row)
	}
	return &Router{
		graph:     BuildGraph(nodes, capacity),
		occ:       NewOccupancy(),
		positions: positions,
		nodes:     nodes,
	}
}

// Graph returns the routing graph.
func (r *Router) Graph() *Graph { return r.graph }

// Occupancy returns the lanes claimed so far. Callers must not claim lanes
// on it while routing is in progress.
func (r *Router) Occupancy() *Occupancy { return r.occ }

// Route finds and commits the route for e.
//
// Failures (unknown endpoints, no free path) are reported in the returned
// [Result]; the error is non-nil only when ctx is done, in which case the
// result is also marked failed and nothing is claimed.
func (r *Router) Route(ctx context.Context, e Edge) (Result, error) {
	res := Result{Index: r.next, Source: e.Source, Target: e.Target, Label: e.Label}
	r.next++

	src, ok := r.positions[e.Source]
	if !ok {
		return fail(res, fmt.Sprintf("Unknown source node '%s'", e.Source)), nil
	}
	dst, ok := r.positions[e.Target]
	if !ok {
		return fail(res, fmt.Sprintf("Unknown target node '%s'", e.Target)), nil
	}
	if err := ctx.Err(); err != nil {
		return fail(res, cancelWarning(e, err)), err
	}

	if src == dst {
		res.Route = &Route{Waypoints: []Waypoint{{Coord: src}}}
		return res, nil
	}

	s := &search{graph: r.graph, occ: r.occ, src: src, dst: dst}
	found, err := s.run(ctx)
	if err != nil {
		return fail(res, cancelWarning(e, err)), err
	}
	if found == nil {
		return fail(res, fmt.Sprintf("Could not find route from '%s' to '%s'", e.Source, e.Target)), nil
	}
	if err := r.occ.ClaimRoute(found, res.Index); err != nil {
		return Result{}, fmt.Errorf("claim route %d: %w", res.Index, err)
	}
	res.Route = found
	return res, nil
}

// RouteAll routes edges in order and returns the complete [RouteSet].
//
// Routing stops early only when ctx is done; every remaining relationship is
// then reported as failed and ctx's error is returned alongside the set.
func (r *Router) RouteAll(ctx context.Context, edges []Edge) (*RouteSet, error) {
	set := &RouteSet{
		Nodes:    r.nodes,
		Bounds:   r.graph.Bounds(),
		Capacity: r.graph.Capacity(),
		Results:  make([]Result, 0, len(edges)),
	}
	var ctxErr error
	for _, e := range edges {
		if ctxErr != nil {
			set.Results = append(set.Results, fail(Result{
				Index: r.next, Source: e.Source, Target: e.Target, Label: e.Label,
			}, cancelWarning(e, ctxErr)))
			r.next++
			continue
		}
		res, err := r.Route(ctx, e)
		if err != nil && ctx.Err() == nil {
			return nil, err
		}
		ctxErr = err
		set.Results = append(set.Results, res)
	}
	return set, ctxErr
}

// RouteAll is a convenience that builds a [Router] for nodes and routes
// edges over it.
func RouteAll(ctx context.Context, nodes []Node, edges []Edge, capacity Capacity) (*RouteSet, error) {
	return NewRouter(nodes, capacity).RouteAll(ctx, edges)
}

func fail(res Result, warning string) Result {
	res.Failed = true
	res.Route = nil
	res.Warning = warning
	return res
}

func cancelWarning(e Edge, err error) string {
	return fmt.Sprintf("Routing from '%s' to '%s' cancelled: %v", e.Source, e.Target, err)
}
