// Package pkg provides the core libraries for deckroute diagram layout and
// edge routing.
//
// # Overview
//
// Deckroute places the components of an architecture diagram on a grid and
// routes every relationship through the streets between the cells. Streets
// hold a fixed number of lanes; relationships that share a street get
// distinct lanes so they never overlap. The pkg directory is organized as:
//
//  1. [diagram] - The input model: components, relationships, arrows, styles
//  2. [layout] - Grid placement (explicit positions or automatic layout)
//  3. [route] - Street graph, lane occupancy and the edge router
//  4. [graph] - Serialization of layouts and routed documents
//  5. [render] - SVG, DOT, PNG and PDF output
//  6. [pipeline] - Orchestration (parse → layout → route → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	diagram.toml
//	     ↓
//	[diagram] parse and validate
//	     ↓
//	[layout] assign a cell to every component
//	     ↓
//	[route] route relationships in declaration order, claiming lanes
//	     ↓
//	[graph] routed document (routes in the compact routing language)
//	     ↓
//	[render] SVG/PNG/PDF/DOT/JSON
//
// # Quick Start
//
//	d, _ := diagram.ReadFile("arch.toml")
//	p, _ := layout.Place(d)
//	set, _ := route.RouteAll(ctx, p.Nodes(), edges, route.CapacityFor(1280, 720, p.Bounds))
//	doc, _ := graph.NewDocument("arch", d, p, set)
//	svg, _ := sink.RenderSVG(doc)
//
// Or let the pipeline do all of it, with caching:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Source: src, Formats: []string{"svg"}})
//
// # Supporting Packages
//
// [cache] - Result caches (file, redis, null) and cache key derivation.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/diagram
// [layout]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/layout
// [route]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/route
// [graph]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/deckroute/pkg/buildinfo
package pkg
