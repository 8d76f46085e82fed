// Package diagram holds the validated model of a slide diagram: named
// components on an optional grid position and the ordered relationships
// between them.
//
// # Building a diagram
//
// Construct a [Diagram] with [New] or read one from disk with [ReadFile].
// Both validate the input and fill defaults (icon "box", label = id, style
// "primary", arrow "solid-forward"); invalid input yields an error with the
// INVALID_DIAGRAM code from the errors package.
//
//	d, err := diagram.New(
//	    []diagram.Component{{ID: "api"}, {ID: "db"}},
//	    []diagram.Relationship{{Source: "api", Target: "db", Arrow: "->"}},
//	)
//
// # Files
//
// Diagrams are stored as TOML (arrays of [[component]] and [[relationship]]
// tables) or JSON with the same fields. [Encode] writes either format back.
//
// # Reveal steps
//
// Components and relationships may carry a reveal step for incremental
// presentation. The model only records steps; [Diagram.Steps] reports how
// many distinct steps are in use.
package diagram
