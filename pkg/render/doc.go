// Package render provides the reference renderers for routed diagrams.
//
// # Overview
//
// The layout and routing engine stops at grid coordinates and lanes. This
// package and its subpackages turn a routed [graph.Document] into files:
//
//   - [sink]: SVG drawn directly from the computed routes and lanes
//   - [nodelink]: a Graphviz rendering with components pinned to their cells
//   - [Convert]: SVG to PNG or PDF through rsvg-convert (librsvg)
//
//	svg, err := sink.RenderSVG(doc)
//	png, err := render.Convert(ctx, svg, "png", 2)
//
// [sink]: github.com/matzehuels/deckroute/pkg/render/sink
// [nodelink]: github.com/matzehuels/deckroute/pkg/render/nodelink
package render
