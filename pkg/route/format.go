package route

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by every error returned from [Parse].
var ErrSyntax = errors.New("invalid route syntax")

// Format renders r in the routing language:
//
//	(1,1)-L0-(1.5,1)-L-1-(2,1)
//
// Whole grid positions are printed without decimals.
func Format(r *Route) string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for i, w := range r.Waypoints {
		b.WriteString(w.Coord.String())
		if i < len(r.Waypoints)-1 {
			fmt.Fprintf(&b, "-L%d-", w.Lane)
		}
	}
	return b.String()
}

// Parse reads a route written in the routing language. At least two
// waypoints are required, consecutive waypoints must share a row or column,
// and coordinates must be multiples of one half. The complexity of the
// parsed route is recomputed from its waypoints.
func Parse(s string) (*Route, error) {
	p := &routeParser{src: strings.TrimSpace(s)}
	var wps []Waypoint
	for {
		c, err := p.coord()
		if err != nil {
			return nil, err
		}
		if p.done() {
			wps = append(wps, Waypoint{Coord: c})
			break
		}
		lane, err := p.lane()
		if err != nil {
			return nil, err
		}
		wps = append(wps, Waypoint{Coord: c, Lane: lane})
	}
	if len(wps) < 2 {
		return nil, fmt.Errorf("%w: need at least two waypoints", ErrSyntax)
	}
	for i := 1; i < len(wps); i++ {
		a, b := wps[i-1].Coord, wps[i].Coord
		if a == b || (a.Col2 != b.Col2 && a.Row2 != b.Row2) {
			return nil, fmt.Errorf("%w: %s to %s is not an axis-aligned step", ErrSyntax, a, b)
		}
	}
	return &Route{Waypoints: wps, Complexity: ComputeComplexity(wps)}, nil
}

type routeParser struct {
	src string
	pos int
}

func (p *routeParser) done() bool { return p.pos >= len(p.src) }

func (p *routeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *routeParser) expect(tok string) error {
	if !strings.HasPrefix(p.src[p.pos:], tok) {
		return p.errorf("expected %q", tok)
	}
	p.pos += len(tok)
	return nil
}

// coord reads "(col,row)".
func (p *routeParser) coord() (Coord, error) {
	if err := p.expect("("); err != nil {
		return Coord{}, err
	}
	end := strings.IndexByte(p.src[p.pos:], ')')
	if end < 0 {
		return Coord{}, p.errorf("unterminated coordinate")
	}
	body := p.src[p.pos : p.pos+end]
	colText, rowText, ok := strings.Cut(body, ",")
	if !ok {
		return Coord{}, p.errorf("coordinate %q needs two components", body)
	}
	col, err := parseHalf(colText)
	if err != nil {
		return Coord{}, p.errorf("column: %v", err)
	}
	row, err := parseHalf(rowText)
	if err != nil {
		return Coord{}, p.errorf("row: %v", err)
	}
	p.pos += end + 1
	return Coord{Col2: col, Row2: row}, nil
}

// lane reads "-L<int>-", where the integer may itself be negative.
func (p *routeParser) lane() (Lane, error) {
	if err := p.expect("-L"); err != nil {
		return 0, err
	}
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("lane %q is not an integer", p.src[start:p.pos])
	}
	if err := p.expect("-"); err != nil {
		return 0, err
	}
	return Lane(n), nil
}

// parseHalf parses a grid number and returns it doubled.
func parseHalf(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	doubled := v * 2
	if doubled != math.Trunc(doubled) || math.IsInf(doubled, 0) {
		return 0, fmt.Errorf("%s is not a multiple of 0.5", s)
	}
	return int(doubled), nil
}
