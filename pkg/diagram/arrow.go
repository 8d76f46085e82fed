package diagram

import "fmt"

// Arrow is the line and head style of a relationship.
type Arrow string

const (
	ArrowForward       Arrow = "solid-forward"
	ArrowBackward      Arrow = "solid-backward"
	ArrowBidirectional Arrow = "solid-bidirectional"
	ArrowUndirected    Arrow = "dashed-undirected"
	ArrowDashedForward Arrow = "dashed-forward"

	DefaultArrow = ArrowForward
)

var arrowSymbols = map[string]Arrow{
	"->":  ArrowForward,
	"<-":  ArrowBackward,
	"<->": ArrowBidirectional,
	"--":  ArrowUndirected,
	"-->": ArrowDashedForward,
}

// ParseArrow accepts either an arrow name ("solid-forward") or its symbol
// ("->").
func ParseArrow(s string) (Arrow, error) {
	if a, ok := arrowSymbols[s]; ok {
		return a, nil
	}
	switch a := Arrow(s); a {
	case ArrowForward, ArrowBackward, ArrowBidirectional, ArrowUndirected, ArrowDashedForward:
		return a, nil
	}
	return "", fmt.Errorf("unknown arrow %q", s)
}

// Symbol returns the short form of the arrow.
func (a Arrow) Symbol() string {
	for sym, v := range arrowSymbols {
		if v == a {
			return sym
		}
	}
	return string(a)
}

// Dashed reports whether the line is drawn dashed.
func (a Arrow) Dashed() bool {
	return a == ArrowUndirected || a == ArrowDashedForward
}

// HeadAtTarget reports whether an arrowhead is drawn at the target end.
func (a Arrow) HeadAtTarget() bool {
	return a == ArrowForward || a == ArrowBidirectional || a == ArrowDashedForward
}

// HeadAtSource reports whether an arrowhead is drawn at the source end.
func (a Arrow) HeadAtSource() bool {
	return a == ArrowBackward || a == ArrowBidirectional
}

// Directed reports whether the arrow has a direction for layout purposes.
// Backward arrows point from target to source.
func (a Arrow) Directed() bool {
	return a != ArrowUndirected && a != ArrowBidirectional
}
