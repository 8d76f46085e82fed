// Package nodelink renders routed diagrams as Graphviz node-link diagrams.
//
// # Overview
//
// The node-link view is a comparison rendering: components keep the grid
// cells chosen by the layout engine (they are pinned with neato's "pos"
// attribute), but edges are drawn by Graphviz itself with orthogonal
// splines instead of the lanes computed by the router. Relationships the
// router could not place are still drawn, dotted and in red, so a failed
// routing pass is easy to spot.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// SVG is rendered in-process with [github.com/goccy/go-graphviz]; the
// pipeline converts it to PNG or PDF with [render.Convert].
//
// [render.Convert]: github.com/matzehuels/deckroute/pkg/render#Convert
package nodelink
