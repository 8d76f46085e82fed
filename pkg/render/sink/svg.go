package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/deckroute/pkg/diagram"
	"github.com/matzehuels/deckroute/pkg/graph"
	"github.com/matzehuels/deckroute/pkg/route"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 1280.0
	DefaultHeight = 720.0
)

const fontFamily = `'Inter', 'Helvetica Neue', Arial, sans-serif`

const edgeCSS = `
    .component rect { stroke-width: 2; }
    .component text { font-family: ` + fontFamily + `; dominant-baseline: central; text-anchor: middle; }
    .relationship path { fill: none; stroke-width: 2; stroke-linejoin: round; }
    .relationship text { font-family: ` + fontFamily + `; font-size: 12px; text-anchor: middle; fill: #374151; }`

type palette struct{ fill, stroke, text string }

var styleColors = map[diagram.Style]palette{
	diagram.StylePrimary:   {fill: "#e8f0fe", stroke: "#1a56db", text: "#111827"},
	diagram.StyleSecondary: {fill: "#f3f4f6", stroke: "#4b5563", text: "#111827"},
	diagram.StyleMuted:     {fill: "#ffffff", stroke: "#9ca3af", text: "#6b7280"},
}

const edgeColor = "#374151"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	step          int
}

// WithSize sets the canvas size in pixels. Non-positive values keep the
// defaults.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithStep renders the diagram as it looks after reveal step n: components
// and relationships with a later reveal step are left out. n <= 0 renders
// everything.
func WithStep(n int) SVGOption { return func(r *svgRenderer) { r.step = n } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) visible(step int) bool {
	return r.step <= 0 || step <= r.step
}

// RenderSVG draws doc. Routes are parsed from the document, so a document
// with a malformed route is reported as an error.
func RenderSVG(doc *graph.Document, opts ...SVGOption) ([]byte, error) {
	set, err := doc.RouteSet()
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	r := newSVGRenderer(opts...)
	f := newFrame(doc.Bounds, doc.Capacity, r.width, r.height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" data-steps="%d">`+"\n",
		r.width, r.height, r.width, r.height, doc.Steps)
	renderDefs(&buf)

	buf.WriteString("  <g class=\"relationships\">\n")
	cells := make(map[string]route.Coord, len(doc.Components))
	for _, c := range doc.Components {
		cells[c.ID] = route.CellCoord(c.Col, c.Row)
	}
	for i, rel := range doc.Relationships {
		res := set.Results[i]
		if res.Failed || !r.visible(rel.RevealStep) {
			continue
		}
		renderRelationship(&buf, f, i, rel, res.Route, cells[rel.From])
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("  <g class=\"components\">\n")
	for _, c := range doc.Components {
		if !r.visible(c.RevealStep) {
			continue
		}
		renderComponent(&buf, f, c)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse">`+
		`<path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`+"\n", edgeColor)
	buf.WriteString("  </defs>\n")
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", edgeCSS)
}

func renderComponent(buf *bytes.Buffer, f frame, c graph.Component) {
	colors, ok := styleColors[c.Style]
	if !ok {
		colors = styleColors[diagram.DefaultStyle]
	}
	center := f.point(route.CellCoord(c.Col, c.Row))
	cx, cy := center.x, center.y
	x, y := cx-f.boxW/2, cy-f.boxH/2

	fmt.Fprintf(buf, `    <g class="component" id="component-%s" data-icon="%s"%s>`+"\n",
		EscapeXML(c.ID), EscapeXML(c.Icon), revealAttr(c.RevealStep))
	fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8" fill="%s" stroke="%s"/>`+"\n",
		x, y, f.boxW, f.boxH, colors.fill, colors.stroke)
	label := TruncateLabel(c.Label, f.boxW, f.boxH)
	fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
		cx, cy, FontSize(label, f.boxW, f.boxH), colors.text, EscapeXML(label))
	buf.WriteString("    </g>\n")
}

func renderRelationship(buf *bytes.Buffer, f frame, index int, rel graph.Relationship, rt *route.Route, from route.Coord) {
	var d string
	var pts []point
	if rt == nil || len(rt.Waypoints) < 2 {
		d = f.selfLoop(from)
	} else {
		pts = f.polyline(rt)
		d = pathData(pts)
	}

	attrs := fmt.Sprintf(`stroke="%s"`, edgeColor)
	if rel.Arrow.Dashed() {
		attrs += ` stroke-dasharray="6 4"`
	}
	if rel.Arrow.HeadAtTarget() {
		attrs += ` marker-end="url(#arrow)"`
	}
	if rel.Arrow.HeadAtSource() {
		attrs += ` marker-start="url(#arrow)"`
	}

	fmt.Fprintf(buf, `    <g class="relationship" id="relationship-%d" data-from="%s" data-to="%s"%s>`+"\n",
		index, EscapeXML(rel.From), EscapeXML(rel.To), revealAttr(rel.RevealStep))
	fmt.Fprintf(buf, `      <path d="%s" %s/>`+"\n", d, attrs)
	if rel.Label != "" && len(pts) >= 2 {
		x, y := labelAnchor(pts)
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f">%s</text>`+"\n", x, y-4, EscapeXML(rel.Label))
	}
	buf.WriteString("    </g>\n")
}

func revealAttr(step int) string {
	if step <= 0 {
		return ""
	}
	return fmt.Sprintf(` data-reveal-step="%d"`, step)
}
