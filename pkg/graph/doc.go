// Package graph provides the JSON wire format for placements and routing
// results.
//
// This package sits at the serialization boundary used by the CLI output
// files, the HTTP API and the result cache:
//
//   - [Layout]: the resolved cell of every component
//   - [Document]: a diagram together with its placement and routes
//
// # Routes document
//
// Routes are written in the compact routing language of the route package,
// next to their complexity:
//
//	{
//	  "id": "5b1c0e0e-...",
//	  "components": [{"id": "api", "col": 1, "row": 1, ...}],
//	  "relationships": [{
//	    "from": "api", "to": "db", "arrow": "solid-forward",
//	    "route": "(1,1)-L0-(1.5,1)-L0-(2,1)",
//	    "complexity": {"length": 1, "turns": 0, "lane_changes": 0}
//	  }]
//	}
//
// Failed relationships carry "failed": true and a "warning" instead of a
// route.
//
// # Identity
//
// Every document has an ID derived from its diagram's content with
// [DiagramID] (a name-based SHA-1 UUID), so the same diagram always yields
// the same ID across runs and machines.
package graph
