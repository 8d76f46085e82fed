package route

import "errors"

// ErrLaneTaken is returned when claiming a lane that already has an owner.
var ErrLaneTaken = errors.New("lane already claimed")

// SpiralLanes returns the lanes of a segment with the given capacity in the
// order they are handed out: 0, 1, -1, 2, -2, ... A capacity of zero or less
// yields no lanes.
func SpiralLanes(capacity int) []Lane {
	if capacity <= 0 {
		return nil
	}
	lanes := make([]Lane, 0, capacity)
	lanes = append(lanes, 0)
	for k := 1; len(lanes) < capacity; k++ {
		lanes = append(lanes, Lane(k))
		if len(lanes) < capacity {
			lanes = append(lanes, Lane(-k))
		}
	}
	return lanes
}

// spiralIndex returns the position of l in spiral order.
func spiralIndex(l Lane) int {
	switch {
	case l == 0:
		return 0
	case l > 0:
		return 2*int(l) - 1
	default:
		return -2 * int(l)
	}
}

// Occupancy records which relationship owns each (segment, lane) pair.
//
// An Occupancy is owned by a single routing pass. Claims are never released.
// Concurrent readers are safe as long as no claim is made at the same time;
// the [Router] only claims between searches.
type Occupancy struct {
	claims map[SegmentID]map[Lane]int
}

// NewOccupancy returns an empty occupancy table.
func NewOccupancy() *Occupancy {
	return &Occupancy{claims: make(map[SegmentID]map[Lane]int)}
}

// Owner returns the index of the relationship holding lane on seg.
func (o *Occupancy) Owner(seg SegmentID, lane Lane) (int, bool) {
	owner, ok := o.claims[seg][lane]
	return owner, ok
}

// Free reports whether lane on seg is unclaimed.
func (o *Occupancy) Free(seg SegmentID, lane Lane) bool {
	_, taken := o.claims[seg][lane]
	return !taken
}

// Claimed returns the number of claimed lanes on seg.
func (o *Occupancy) Claimed(seg SegmentID) int {
	return len(o.claims[seg])
}

// Available returns the free lanes of seg, in spiral order, among the first
// capacity lanes.
func (o *Occupancy) Available(seg SegmentID, capacity int) []Lane {
	all := SpiralLanes(capacity)
	taken := o.claims[seg]
	if len(taken) == 0 {
		return all
	}
	free := all[:0]
	for _, l := range all {
		if _, ok := taken[l]; !ok {
			free = append(free, l)
		}
	}
	return free
}

// Claim assigns lane on seg to owner.
func (o *Occupancy) Claim(seg SegmentID, lane Lane, owner int) error {
	lanes := o.claims[seg]
	if lanes == nil {
		lanes = make(map[Lane]int)
		o.claims[seg] = lanes
	}
	if _, ok := lanes[lane]; ok {
		return ErrLaneTaken
	}
	lanes[lane] = owner
	return nil
}

// ClaimRoute claims every (segment, lane) pair traversed by r for owner.
// Nothing is claimed if any pair is already taken.
func (o *Occupancy) ClaimRoute(r *Route, owner int) error {
	segs := r.Segments()
	for _, s := range segs {
		if !o.Free(s.Segment, s.Lane) {
			return ErrLaneTaken
		}
	}
	for _, s := range segs {
		if err := o.Claim(s.Segment, s.Lane, owner); err != nil {
			return err
		}
	}
	return nil
}
