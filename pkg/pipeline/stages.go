package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckroute/pkg/diagram"
	errs "github.com/matzehuels/deckroute/pkg/errors"
	"github.com/matzehuels/deckroute/pkg/graph"
	"github.com/matzehuels/deckroute/pkg/layout"
	"github.com/matzehuels/deckroute/pkg/observability"
	"github.com/matzehuels/deckroute/pkg/render"
	"github.com/matzehuels/deckroute/pkg/render/nodelink"
	"github.com/matzehuels/deckroute/pkg/render/sink"
	"github.com/matzehuels/deckroute/pkg/route"
)

// pngScale is the resolution multiplier for PNG output.
const pngScale = 2.0

// =============================================================================
// Parse
// =============================================================================

// Parse decodes and validates the diagram in opts.Source. With AutoLayout
// set, explicit positions are discarded.
func Parse(ctx context.Context, opts Options) (*diagram.Diagram, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnParseStart(ctx, opts.Format)

	d, err := diagram.Parse([]byte(opts.Source), diagram.Format(opts.Format))
	if err != nil {
		hooks.OnParseComplete(ctx, opts.Format, 0, time.Since(start), err)
		return nil, err
	}
	if opts.AutoLayout {
		d = d.WithoutPositions()
	}
	hooks.OnParseComplete(ctx, opts.Format, d.Len(), time.Since(start), nil)
	return d, nil
}

// =============================================================================
// Layout
// =============================================================================

// Place assigns a grid cell to every component of d.
func Place(ctx context.Context, d *diagram.Diagram) (*layout.Placement, error) {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, d.Len())

	p, err := layout.Place(d)
	if err != nil {
		hooks.OnLayoutComplete(ctx, "", time.Since(start), err)
		return nil, err
	}
	hooks.OnLayoutComplete(ctx, p.Shape.String(), time.Since(start), nil)
	return p, nil
}

// =============================================================================
// Route
// =============================================================================

// Edges converts the relationships of d into routing edges, in declaration
// order.
func Edges(d *diagram.Diagram) []route.Edge {
	rels := d.Relationships()
	edges := make([]route.Edge, len(rels))
	for i, r := range rels {
		edges[i] = route.Edge{Source: r.Source, Target: r.Target, Label: r.Label}
	}
	return edges
}

// Route routes every relationship of d over placement p. Unroutable
// relationships are reported in the returned set and logged at warn level;
// the error is non-nil only when ctx is done.
func Route(ctx context.Context, d *diagram.Diagram, p *layout.Placement, opts Options) (*route.RouteSet, error) {
	hooks := observability.Pipeline()
	edges := Edges(d)
	capacity := opts.Capacity(p.Bounds)
	start := time.Now()
	hooks.OnRouteStart(ctx, len(edges))

	set, err := route.RouteAll(ctx, p.Nodes(), edges, capacity)
	if set == nil {
		hooks.OnRouteComplete(ctx, len(edges), len(edges), time.Since(start), err)
		return nil, err
	}

	for _, res := range set.Results {
		hooks.OnRelationshipRouted(ctx, res.Index, res.Source, res.Target, res.Failed)
	}
	logFailures(opts.Logger, set)
	hooks.OnRouteComplete(ctx, len(edges), len(set.Failures()), time.Since(start), err)
	if err != nil {
		return set, errs.Wrap(errs.ErrCodeCancelled, err, "routing cancelled")
	}
	return set, nil
}

// logFailures logs every unrouted relationship at warn level.
func logFailures(logger *log.Logger, set *route.RouteSet) {
	if logger == nil {
		return
	}
	for _, res := range set.Failures() {
		logger.Warn("relationship not routed",
			"index", res.Index,
			"from", res.Source,
			"to", res.Target,
			"warning", res.Warning)
	}
}

// =============================================================================
// Render
// =============================================================================

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, doc *graph.Document, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte, len(opts.Formats))

	// PNG and PDF are converted from the SVG, which is rendered once.
	var svg []byte
	svgOf := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = renderSVG(ctx, doc, opts)
		return svg, err
	}

	for _, format := range opts.Formats {
		start := time.Now()
		hooks.OnRenderStart(ctx, format)

		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data, err = svgOf()
		case FormatPNG:
			if data, err = svgOf(); err == nil {
				data, err = render.Convert(ctx, data, FormatPNG, pngScale)
			}
		case FormatPDF:
			if data, err = svgOf(); err == nil {
				data, err = render.Convert(ctx, data, FormatPDF, 0)
			}
		case FormatDOT:
			data = []byte(nodelink.ToDOT(doc, nodelink.Options{}))
		case FormatJSON:
			data, err = graph.MarshalDocument(doc)
		default:
			err = errs.New(errs.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(ctx context.Context, doc *graph.Document, opts Options) ([]byte, error) {
	if opts.IsNodelink() {
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(doc, nodelink.Options{}))
	}
	return sink.RenderSVG(doc, sink.WithSize(opts.Width, opts.Height), sink.WithStep(opts.Step))
}

// RenderFromDocumentData renders output from serialized document data.
// This is useful when routing was done elsewhere (e.g., cached or written
// by the route command).
func RenderFromDocumentData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	doc, err := graph.UnmarshalDocument(data)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse routes document")
	}
	return Render(ctx, doc, opts)
}
