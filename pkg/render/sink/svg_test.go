package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/deckroute/pkg/diagram"
	"github.com/matzehuels/deckroute/pkg/graph"
	"github.com/matzehuels/deckroute/pkg/route"
)

func mustParse(t *testing.T, s string) *route.Route {
	t.Helper()
	r, err := route.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return r
}

func TestPolyline(t *testing.T) {
	tests := []struct {
		name   string
		bounds route.Bounds
		route  string
		want   string
	}{
		{
			name:   "straight",
			bounds: route.Bounds{MinCol: 1, MaxCol: 2, MinRow: 1, MaxRow: 2},
			route:  "(1,1)-L0-(1.5,1)-L0-(2,1)",
			want:   "M 137.5 100.0 L 162.5 100.0",
		},
		{
			name:   "second lane",
			bounds: route.Bounds{MinCol: 1, MaxCol: 2, MinRow: 1, MaxRow: 2},
			route:  "(1,1)-L1-(1.5,1)-L1-(2,1)",
			want:   "M 137.5 108.3 L 162.5 108.3",
		},
		{
			name:   "turns",
			bounds: route.Bounds{MinCol: 1, MaxCol: 2, MinRow: 1, MaxRow: 2},
			route:  "(1,1)-L0-(1.5,1)-L1-(1.5,1.5)-L1-(1.5,2)-L0-(2,2)",
			want:   "M 137.5 100.0 L 158.3 100.0 L 158.3 200.0 L 162.5 200.0",
		},
		{
			name:   "lane change jog",
			bounds: route.Bounds{MinCol: 1, MaxCol: 2, MinRow: 1, MaxRow: 2},
			route:  "(1,1)-L0-(1.5,1)-L-1-(2,1)",
			want:   "M 137.5 100.0 L 150.0 100.0 L 150.0 91.7 L 162.5 91.7",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFrame(tt.bounds, route.Capacity{Horizontal: 3, Vertical: 3}, 300, 300)
			if got := pathData(f.polyline(mustParse(t, tt.route))); got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLanePitch(t *testing.T) {
	if got := lanePitch(1000, 3); got != route.LanePitch {
		t.Errorf("wide street pitch = %v, want %v", got, route.LanePitch)
	}
	if got := lanePitch(100, 5); got != 5 {
		t.Errorf("narrow street pitch = %v, want 5", got)
	}
	if got := lanePitch(100, 0); got != route.LanePitch {
		t.Errorf("zero lanes pitch = %v, want %v", got, route.LanePitch)
	}
}

func testDocument() *graph.Document {
	return &graph.Document{
		ID:       "doc",
		Bounds:   route.Bounds{MinCol: 1, MaxCol: 2, MinRow: 1, MaxRow: 1},
		Capacity: route.Capacity{Horizontal: 2, Vertical: 2},
		Steps:    1,
		Components: []graph.Component{
			{ID: "web", Label: "<web>", Icon: "globe", Style: diagram.StylePrimary, Col: 1, Row: 1},
			{ID: "db", Label: "db", Icon: "database", Style: diagram.StyleMuted, Col: 2, Row: 1, RevealStep: 1},
		},
		Relationships: []graph.Relationship{
			{From: "web", To: "db", Arrow: diagram.ArrowForward, Label: "sql", Route: "(1,1)-L0-(1.5,1)-L0-(2,1)"},
			{From: "db", To: "web", Arrow: diagram.ArrowUndirected, RevealStep: 1, Route: "(2,1)-L1-(1.5,1)-L1-(1,1)"},
			{From: "web", To: "web", Arrow: diagram.ArrowBidirectional},
			{From: "db", To: "web", Failed: true, Warning: "Could not find route from 'db' to 'web'"},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(testDocument(), WithSize(400, 200))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)

	for _, want := range []string{
		`viewBox="0 0 400.0 200.0"`,
		`data-steps="1"`,
		`id="component-web" data-icon="globe"`,
		`&lt;web&gt;`,
		`id="relationship-0" data-from="web" data-to="db"`,
		`marker-end="url(#arrow)"`,
		`stroke-dasharray="6 4"`,
		`data-reveal-step="1"`,
		`id="relationship-2"`,
		`marker-start="url(#arrow)"`,
		`>sql</text>`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(s, `id="relationship-3"`) {
		t.Error("failed relationship should not be drawn")
	}
}

func TestRenderSVGStep(t *testing.T) {
	svg, err := RenderSVG(testDocument(), WithStep(0))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), `id="component-db"`) {
		t.Error("step 0 should render everything")
	}

	doc := testDocument()
	doc.Steps = 2
	doc.Components[1].RevealStep = 2
	svg, err = RenderSVG(doc, WithStep(1))
	if err != nil {
		t.Fatal(err)
	}
	s := string(svg)
	if strings.Contains(s, `id="component-db"`) {
		t.Error("component revealed at step 2 should be hidden at step 1")
	}
	if !strings.Contains(s, `id="relationship-1"`) {
		t.Error("relationship revealed at step 1 should be shown at step 1")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	first, err := RenderSVG(testDocument())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, _ := RenderSVG(testDocument())
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d produced different output", i)
		}
	}
}

func TestRenderSVGBadRoute(t *testing.T) {
	doc := testDocument()
	doc.Relationships[0].Route = "(1,1)"
	if _, err := RenderSVG(doc); err == nil {
		t.Error("expected an error for a malformed route")
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := TruncateLabel("api", 200, 100); got != "api" {
		t.Errorf("short label = %q", got)
	}
	got := TruncateLabel("a-very-long-component-label", 40, 40)
	if !strings.HasSuffix(got, "..") || len(got) >= len("a-very-long-component-label") {
		t.Errorf("long label = %q, want a truncated label", got)
	}
}
