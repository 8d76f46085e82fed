package diagram_test

import (
	"fmt"

	"github.com/matzehuels/deckroute/pkg/diagram"
)

func ExampleNew() {
	d, err := diagram.New(
		[]diagram.Component{
			{ID: "web", Icon: "browser"},
			{ID: "api", RevealStep: 1},
			{ID: "db", Icon: "database", RevealStep: 2},
		},
		[]diagram.Relationship{
			{Source: "web", Target: "api", Arrow: "->"},
			{Source: "api", Target: "db", Arrow: "<->", Label: "sql"},
		},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, c := range d.Components() {
		fmt.Printf("%s icon=%s style=%s\n", c.ID, c.Icon, c.Style)
	}
	for _, r := range d.Relationships() {
		fmt.Printf("%s %s %s\n", r.Source, r.Arrow.Symbol(), r.Target)
	}
	fmt.Println("steps:", d.Steps())
	// Output:
	// web icon=browser style=primary
	// api icon=box style=primary
	// db icon=database style=primary
	// web -> api
	// api <-> db
	// steps: 2
}
