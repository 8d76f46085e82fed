// Package sink renders routed diagrams to SVG.
//
// # Overview
//
// [RenderSVG] draws a [graph.Document] on a fixed pixel canvas. Every grid
// unit maps to an equal share of the canvas, with half a unit of margin
// around the outermost streets. Components are drawn as rounded boxes that
// leave [route.StreetShare] of each cell free for streets, and every routed
// relationship becomes an orthogonal polyline.
//
// # Lanes
//
// Lanes are drawn as parallel offsets from the street center line: lane k
// is shifted k lane pitches to the right of a horizontal street's center
// (downwards on screen) or of a vertical one (to the right). The pitch
// shrinks below [route.LanePitch] when the street is too narrow to hold all
// of its lanes, so parallel routes never overlap.
//
// # Reveal steps
//
// Components and relationships with a positive reveal step carry a
// data-reveal-step attribute so that a presentation runtime can show them
// progressively. [WithStep] instead renders a static snapshot that leaves
// out everything revealed after the given step.
//
// Basic usage:
//
//	svg, err := sink.RenderSVG(doc,
//	    sink.WithSize(1280, 720),
//	    sink.WithStep(2),
//	)
package sink
