package route

import (
	"container/heap"
	"context"

	"golang.org/x/sync/errgroup"
)

// Search costs are kept in half units so that every cost is an integer:
// a half-unit step costs 1, a turn or lane change costs 2.
const (
	stepCost       = 1
	turnCost       = 2
	laneChangeCost = 2

	// cancelCheckInterval is the number of heap pops between context checks.
	cancelCheckInterval = 256
)

type stateKey struct {
	coord Coord
	lane  Lane
	dir   Direction
}

// searchState is one entry of the search arena. parent is the arena index of
// the previous state, or -1 for a state adjacent to the source.
type searchState struct {
	stateKey
	g, f        int
	halfSteps   int
	turns       int
	laneChanges int
	parent      int
}

// search holds the inputs shared by the four direction workers. Workers only
// read from it.
type search struct {
	graph    *Graph
	occ      *Occupancy
	src, dst Coord
}

// run searches once per departure direction and returns the best route, or
// nil when no direction reaches the target.
func (s *search) run(ctx context.Context) (*Route, error) {
	var found [len(Directions)]*Route

	g, gctx := errgroup.WithContext(ctx)
	for i, dir := range Directions {
		g.Go(func() error {
			r, err := s.fromDirection(gctx, dir)
			found[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *Route
	for _, r := range found {
		if r != nil && (best == nil || better(r, best)) {
			best = r
		}
	}
	return best, nil
}

// better reports whether a beats b: lower complexity first, then the
// lexicographically smaller waypoint sequence.
func better(a, b *Route) bool {
	if c := a.Complexity.Compare(b.Complexity); c != 0 {
		return c < 0
	}
	return compareWaypoints(a.Waypoints, b.Waypoints) < 0
}

// fromDirection runs A* for routes that leave the source heading dir.
func (s *search) fromDirection(ctx context.Context, dir Direction) (*Route, error) {
	first := s.src.Step(dir)
	if !s.graph.Contains(first) {
		return nil, nil
	}

	var (
		arena []searchState
		open  = &openSet{arena: &arena}
		best  = make(map[stateKey]int)
	)
	push := func(st searchState) {
		arena = append(arena, st)
		heap.Push(open, len(arena)-1)
	}

	seg := NewSegmentID(s.src, first)
	for _, lane := range s.occ.Available(seg, s.graph.capacity.For(seg)) {
		key := stateKey{coord: first, lane: lane, dir: dir}
		best[key] = stepCost
		push(searchState{
			stateKey:  key,
			g:         stepCost,
			f:         stepCost + first.Distance(s.dst),
			halfSteps: 1,
			parent:    -1,
		})
	}

	for pops := 0; open.Len() > 0; pops++ {
		if pops%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		idx := heap.Pop(open).(int)
		cur := arena[idx]

		if cur.coord == s.dst {
			return s.reconstruct(arena, idx), nil
		}
		if cur.g > best[cur.stateKey] {
			continue
		}

		for _, d := range Directions {
			if d == cur.dir.Opposite() {
				continue
			}
			next := cur.coord.Step(d)
			if !s.graph.Contains(next) || next == s.src {
				continue
			}
			if next != s.dst && s.graph.Occupied(next) {
				continue
			}
			seg := NewSegmentID(cur.coord, next)
			turned := cur.dir.Turns(d)
			for _, lane := range s.occ.Available(seg, s.graph.capacity.For(seg)) {
				st := searchState{
					stateKey:    stateKey{coord: next, lane: lane, dir: d},
					g:           cur.g + stepCost,
					halfSteps:   cur.halfSteps + 1,
					turns:       cur.turns,
					laneChanges: cur.laneChanges,
					parent:      idx,
				}
				if turned {
					st.g += turnCost
					st.turns++
				} else if lane != cur.lane {
					st.g += laneChangeCost
					st.laneChanges++
				}
				if old, ok := best[st.stateKey]; ok && old <= st.g {
					continue
				}
				best[st.stateKey] = st.g
				st.f = st.g + next.Distance(s.dst)
				push(st)
			}
		}
	}
	return nil, nil
}

// reconstruct walks parent links back from the goal state. Each waypoint
// takes the lane of the segment leaving it; the target's lane is 0.
func (s *search) reconstruct(arena []searchState, goal int) *Route {
	var chain []int
	for i := goal; i >= 0; i = arena[i].parent {
		chain = append(chain, i)
	}

	wps := make([]Waypoint, 0, len(chain)+1)
	wps = append(wps, Waypoint{Coord: s.src, Lane: arena[chain[len(chain)-1]].lane})
	for k := len(chain) - 1; k >= 0; k-- {
		lane := Lane(0)
		if k > 0 {
			lane = arena[chain[k-1]].lane
		}
		wps = append(wps, Waypoint{Coord: arena[chain[k]].coord, Lane: lane})
	}

	st := arena[goal]
	return &Route{
		Waypoints: wps,
		Complexity: Complexity{
			Length:      float64(st.halfSteps) / 2,
			Turns:       st.turns,
			LaneChanges: st.laneChanges,
		},
	}
}

// openSet is a min-heap of arena indices. Ties on f break on g, then
// coordinate, then spiral lane order, then direction, so pops are
// deterministic.
type openSet struct {
	arena *[]searchState
	items []int
}

func (o *openSet) Len() int { return len(o.items) }

func (o *openSet) Less(i, j int) bool {
	a, b := &(*o.arena)[o.items[i]], &(*o.arena)[o.items[j]]
	switch {
	case a.f != b.f:
		return a.f < b.f
	case a.g != b.g:
		return a.g < b.g
	case a.coord != b.coord:
		return a.coord.Compare(b.coord) < 0
	case a.lane != b.lane:
		return spiralIndex(a.lane) < spiralIndex(b.lane)
	default:
		return a.dir < b.dir
	}
}

func (o *openSet) Swap(i, j int) { o.items[i], o.items[j] = o.items[j], o.items[i] }

func (o *openSet) Push(x any) { o.items = append(o.items, x.(int)) }

func (o *openSet) Pop() any {
	n := len(o.items)
	x := o.items[n-1]
	o.items = o.items[:n-1]
	return x
}
