package sink_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/deckroute/pkg/diagram"
	"github.com/matzehuels/deckroute/pkg/graph"
	"github.com/matzehuels/deckroute/pkg/layout"
	"github.com/matzehuels/deckroute/pkg/render/sink"
	"github.com/matzehuels/deckroute/pkg/route"
)

func ExampleRenderSVG() {
	d, _ := diagram.New(
		[]diagram.Component{{ID: "api"}, {ID: "db", Icon: "database"}},
		[]diagram.Relationship{{Source: "api", Target: "db", Label: "reads"}},
	)
	p, _ := layout.Place(d)
	set, _ := route.RouteAll(context.Background(), p.Nodes(),
		[]route.Edge{{Source: "api", Target: "db", Label: "reads"}}, route.DefaultCapacity())
	doc, _ := graph.NewDocument("example", d, p, set)

	svg, err := sink.RenderSVG(doc, sink.WithSize(640, 360))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("SVG starts with:", string(svg[:4]))
	fmt.Println("Has route:", strings.Contains(string(svg), `data-from="api" data-to="db"`))
	// Output:
	// SVG starts with: <svg
	// Has route: true
}
