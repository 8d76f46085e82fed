package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/deckroute/pkg/diagram"
	"github.com/matzehuels/deckroute/pkg/graph"
)

// DefaultSpacing is the distance between adjacent grid cells in inches.
const DefaultSpacing = 2.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends the grid cell to every node label.
	Detailed bool

	// Spacing is the distance between adjacent cells in inches.
	// Zero uses DefaultSpacing.
	Spacing float64
}

var nodeColors = map[diagram.Style][2]string{
	diagram.StylePrimary:   {"#e8f0fe", "#1a56db"},
	diagram.StyleSecondary: {"#f3f4f6", "#4b5563"},
	diagram.StyleMuted:     {"#ffffff", "#9ca3af"},
}

// ToDOT converts a routed document to Graphviz DOT source for the neato
// engine. Rows grow downwards, so they are negated on the y axis.
func ToDOT(doc *graph.Document, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = DefaultSpacing
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=ortho;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=18, width=1.4, height=0.8, fixedsize=true];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("\n")

	for _, c := range doc.Components {
		attrs := fmtNodeAttrs(c, fmtLabel(c, opts.Detailed), spacing)
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range doc.Relationships {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", r.From, r.To, strings.Join(fmtEdgeAttrs(r), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c graph.Component, detailed bool) string {
	if !detailed {
		return c.Label
	}
	return fmt.Sprintf("%s\n(%d,%d)", c.Label, c.Col, c.Row)
}

func fmtNodeAttrs(c graph.Component, label string, spacing float64) []string {
	colors, ok := nodeColors[c.Style]
	if !ok {
		colors = nodeColors[diagram.DefaultStyle]
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%g,%g!\"", float64(c.Col)*spacing, -float64(c.Row)*spacing),
		fmt.Sprintf("fillcolor=%q", colors[0]),
		fmt.Sprintf("color=%q", colors[1]),
	}
	if c.Style == diagram.StyleMuted {
		attrs = append(attrs, "fontcolor=\"#6b7280\"")
	}
	return attrs
}

func fmtEdgeAttrs(r graph.Relationship) []string {
	var attrs []string
	switch {
	case r.Arrow.HeadAtTarget() && r.Arrow.HeadAtSource():
		attrs = append(attrs, "dir=both")
	case r.Arrow.HeadAtSource():
		attrs = append(attrs, "dir=back")
	case !r.Arrow.Directed():
		attrs = append(attrs, "dir=none")
	}
	switch {
	case r.Failed:
		attrs = append(attrs, "style=dotted", "color=\"#dc2626\"")
	case r.Arrow.Dashed():
		attrs = append(attrs, "style=dashed")
	}
	if r.Label != "" {
		attrs = append(attrs, fmt.Sprintf("xlabel=%q", r.Label))
	}
	if r.Warning != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", r.Warning))
	}
	if len(attrs) == 0 {
		attrs = append(attrs, "dir=forward")
	}
	return attrs
}

// RenderSVG lays out and renders DOT source to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg element, which carries point
// units, with a plain pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
