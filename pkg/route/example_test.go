package route_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/deckroute/pkg/route"
)

func Example() {
	nodes := []route.Node{
		{Name: "api", Col: 1, Row: 1},
		{Name: "db", Col: 2, Row: 1},
	}
	edges := []route.Edge{
		{Source: "api", Target: "db", Label: "reads"},
		{Source: "api", Target: "db", Label: "writes"},
	}

	set, err := route.RouteAll(context.Background(), nodes, edges, route.DefaultCapacity())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range set.Results {
		fmt.Printf("%s: %s cost %g\n", r.Label, route.Format(r.Route), r.Route.Complexity.Total())
	}
	// Output:
	// reads: (1,1)-L0-(1.5,1)-L0-(2,1) cost 1
	// writes: (1,1)-L1-(1.5,1)-L1-(2,1) cost 1
}

func ExampleParse() {
	r, err := route.Parse("(1,1)-L0-(1.5,1)-L0-(1.5,1.5)-L0-(1.5,2)-L0-(2,2)")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(r.Complexity)
	// Output:
	// 4 (length 2, turns 2, lane changes 0)
}

func ExampleSpiralLanes() {
	fmt.Println(route.SpiralLanes(5))
	// Output:
	// [0 1 -1 2 -2]
}
