package route

import "fmt"

const (
	// LanePitch is the pixel distance reserved between adjacent lanes.
	LanePitch = 12.0

	// StreetShare is the fraction of a cell's pixel extent given to the
	// streets around it.
	StreetShare = 0.25

	// MaxLanes caps the lanes of any segment.
	MaxLanes = 7

	// DefaultLanes is used on both axes when no canvas size is known.
	DefaultLanes = 3
)

// Capacity holds the lane count of horizontal and vertical segments.
// A zero count disables routing along that axis.
type Capacity struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
}

// DefaultCapacity returns DefaultLanes on both axes.
func DefaultCapacity() Capacity {
	return Capacity{Horizontal: DefaultLanes, Vertical: DefaultLanes}
}

// For returns the capacity of seg.
func (c Capacity) For(seg SegmentID) int {
	if seg.Horizontal() {
		return c.Horizontal
	}
	return c.Vertical
}

// Validate rejects negative lane counts.
func (c Capacity) Validate() error {
	if c.Horizontal < 0 || c.Vertical < 0 {
		return fmt.Errorf("lane capacity must not be negative: %d horizontal, %d vertical", c.Horizontal, c.Vertical)
	}
	return nil
}

func (c Capacity) String() string {
	return fmt.Sprintf("%dh/%dv", c.Horizontal, c.Vertical)
}

// CapacityFor derives lane capacities from the canvas size in pixels and
// the grid extent.
//
// The base lane count is the pixel share of the smaller cell side given to
// streets, divided by [LanePitch], clamped to [1, MaxLanes]. Segments
// parallel to the wider canvas dimension get the base count scaled by the
// aspect ratio, never fewer than the base. A non-positive width or height
// yields [DefaultCapacity].
func CapacityFor(width, height float64, b Bounds) Capacity {
	if width <= 0 || height <= 0 {
		return DefaultCapacity()
	}
	cellW := width / float64(max(b.Cols(), 1))
	cellH := height / float64(max(b.Rows(), 1))
	base := clampLanes(int(min(cellW, cellH) * StreetShare / LanePitch))

	aspect := max(width, height) / min(width, height)
	wide := max(base, clampLanes(int(float64(base)*aspect)))

	if width >= height {
		return Capacity{Horizontal: wide, Vertical: base}
	}
	return Capacity{Horizontal: base, Vertical: wide}
}

func clampLanes(n int) int {
	return min(max(n, 1), MaxLanes)
}
