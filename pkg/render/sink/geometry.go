package sink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/deckroute/pkg/route"
)

type point struct{ x, y float64 }

func (p point) add(o point) point { return point{p.x + o.x, p.y + o.y} }

// frame maps grid coordinates to canvas pixels.
type frame struct {
	minCol, minRow int
	unitW, unitH   float64
	boxW, boxH     float64
	// pitchH offsets lanes of horizontal segments, pitchV of vertical ones.
	pitchH, pitchV float64
}

func newFrame(b route.Bounds, c route.Capacity, width, height float64) frame {
	unitW := width / float64(max(b.Cols(), 1)+1)
	unitH := height / float64(max(b.Rows(), 1)+1)
	return frame{
		minCol: b.MinCol,
		minRow: b.MinRow,
		unitW:  unitW,
		unitH:  unitH,
		boxW:   unitW * (1 - route.StreetShare),
		boxH:   unitH * (1 - route.StreetShare),
		pitchH: lanePitch(unitH, c.Horizontal),
		pitchV: lanePitch(unitW, c.Vertical),
	}
}

func lanePitch(unit float64, lanes int) float64 {
	if lanes <= 0 {
		return route.LanePitch
	}
	return min(route.LanePitch, unit*route.StreetShare/float64(lanes))
}

func (f frame) point(c route.Coord) point {
	return point{
		x: (c.Col() - float64(f.minCol) + 1) * f.unitW,
		y: (c.Row() - float64(f.minRow) + 1) * f.unitH,
	}
}

type segment struct {
	a, b       point
	horizontal bool
	off        point
}

// polyline converts a route into canvas points. Every segment is shifted by
// its lane; turns meet at the crossing of the two shifted lines, and a lane
// change on a straight run becomes a short jog. The ends are clipped to the
// component boxes.
func (f frame) polyline(rt *route.Route) []point {
	wps := rt.Waypoints
	segs := make([]segment, 0, len(wps)-1)
	for i := 0; i+1 < len(wps); i++ {
		s := segment{
			a:          f.point(wps[i].Coord),
			b:          f.point(wps[i+1].Coord),
			horizontal: wps[i].Coord.Row2 == wps[i+1].Coord.Row2,
		}
		lane := float64(wps[i].Lane)
		if s.horizontal {
			s.off = point{0, lane * f.pitchH}
		} else {
			s.off = point{lane * f.pitchV, 0}
		}
		segs = append(segs, s)
	}

	pts := []point{segs[0].a.add(segs[0].off)}
	for i := 1; i < len(segs); i++ {
		prev, cur := segs[i-1], segs[i]
		switch {
		case prev.horizontal != cur.horizontal:
			pts = append(pts, cur.a.add(prev.off).add(cur.off))
		case prev.off != cur.off:
			pts = append(pts, cur.a.add(prev.off), cur.a.add(cur.off))
		}
	}
	last := segs[len(segs)-1]
	pts = append(pts, last.b.add(last.off))

	first := segs[0]
	if first.horizontal {
		pts[0].x = first.a.x + sign(first.b.x-first.a.x)*f.boxW/2
	} else {
		pts[0].y = first.a.y + sign(first.b.y-first.a.y)*f.boxH/2
	}
	end := len(pts) - 1
	if last.horizontal {
		pts[end].x = last.b.x - sign(last.b.x-last.a.x)*f.boxW/2
	} else {
		pts[end].y = last.b.y - sign(last.b.y-last.a.y)*f.boxH/2
	}
	return pts
}

// selfLoop draws a small arc on the top right corner of the box at c.
func (f frame) selfLoop(c route.Coord) string {
	p := f.point(c)
	r := min(f.boxW, f.boxH) / 4
	return fmt.Sprintf("M %.1f %.1f A %.1f %.1f 0 1 1 %.1f %.1f",
		p.x+f.boxW/4, p.y-f.boxH/2, r, r, p.x+f.boxW/2, p.y-f.boxH/4)
}

func pathData(pts []point) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			fmt.Fprintf(&b, "M %.1f %.1f", p.x, p.y)
			continue
		}
		fmt.Fprintf(&b, " L %.1f %.1f", p.x, p.y)
	}
	return b.String()
}

// labelAnchor returns the midpoint of the longest leg of pts.
func labelAnchor(pts []point) (x, y float64) {
	best := -1.0
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		length := abs(b.x-a.x) + abs(b.y-a.y)
		if length > best {
			best = length
			x, y = (a.x+b.x)/2, (a.y+b.y)/2
		}
	}
	return x, y
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
