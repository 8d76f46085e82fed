package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/deckroute/pkg/diagram"
	"github.com/matzehuels/deckroute/pkg/layout"
	"github.com/matzehuels/deckroute/pkg/route"
)

// =============================================================================
// Document - Routed Diagram Format
// =============================================================================

// Document is a fully routed diagram: every component with its resolved
// cell and every relationship with its route or failure.
type Document struct {
	ID            string         `json:"id"`
	Shape         layout.Shape   `json:"shape"`
	Bounds        route.Bounds   `json:"bounds"`
	Capacity      route.Capacity `json:"capacity"`
	Steps         int            `json:"steps"`
	Components    []Component    `json:"components"`
	Relationships []Relationship `json:"relationships"`
}

// Component is a placed component.
type Component struct {
	ID         string        `json:"id"`
	Label      string        `json:"label"`
	Icon       string        `json:"icon"`
	Style      diagram.Style `json:"style"`
	Col        int           `json:"col"`
	Row        int           `json:"row"`
	RevealStep int           `json:"reveal_step,omitempty"`
}

// Relationship is a relationship with its routing outcome.
type Relationship struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Arrow      diagram.Arrow     `json:"arrow"`
	Label      string            `json:"label,omitempty"`
	RevealStep int               `json:"reveal_step,omitempty"`
	Route      string            `json:"route,omitempty"`
	Complexity *route.Complexity `json:"complexity,omitempty"`
	Failed     bool              `json:"failed,omitempty"`
	Warning    string            `json:"warning,omitempty"`
}

// NewDocument assembles a document from a diagram, its placement and its
// routing result. set.Results must be in the diagram's relationship order.
func NewDocument(id string, d *diagram.Diagram, p *layout.Placement, set *route.RouteSet) (*Document, error) {
	rels := d.Relationships()
	if len(set.Results) != len(rels) {
		return nil, fmt.Errorf("got %d routing results for %d relationships", len(set.Results), len(rels))
	}

	doc := &Document{
		ID:            id,
		Shape:         p.Shape,
		Bounds:        set.Bounds,
		Capacity:      set.Capacity,
		Steps:         d.Steps(),
		Components:    make([]Component, 0, d.Len()),
		Relationships: make([]Relationship, 0, len(rels)),
	}
	for _, c := range d.Components() {
		cell, ok := p.Position(c.ID)
		if !ok {
			return nil, fmt.Errorf("component %q has no cell", c.ID)
		}
		doc.Components = append(doc.Components, Component{
			ID: c.ID, Label: c.Label, Icon: c.Icon, Style: c.Style,
			Col: cell.Col, Row: cell.Row, RevealStep: c.RevealStep,
		})
	}
	for i, r := range rels {
		res := set.Results[i]
		out := Relationship{
			From: r.Source, To: r.Target, Arrow: r.Arrow,
			Label: r.Label, RevealStep: r.RevealStep,
			Failed: res.Failed, Warning: res.Warning,
		}
		if res.Route != nil {
			out.Route = route.Format(res.Route)
			c := res.Route.Complexity
			out.Complexity = &c
		}
		doc.Relationships = append(doc.Relationships, out)
	}
	return doc, nil
}

// Diagram rebuilds the validated diagram, with every component pinned to its
// cell.
func (doc *Document) Diagram() (*diagram.Diagram, error) {
	comps := make([]diagram.Component, len(doc.Components))
	for i, c := range doc.Components {
		comps[i] = diagram.Component{
			ID: c.ID, Label: c.Label, Icon: c.Icon, Style: c.Style,
			Pos: &diagram.Pos{Col: c.Col, Row: c.Row}, RevealStep: c.RevealStep,
		}
	}
	rels := make([]diagram.Relationship, len(doc.Relationships))
	for i, r := range doc.Relationships {
		rels[i] = diagram.Relationship{
			Source: r.From, Target: r.To, Arrow: r.Arrow,
			Label: r.Label, RevealStep: r.RevealStep,
		}
	}
	return diagram.New(comps, rels)
}

// RouteSet parses the routes back into a [route.RouteSet]. Self-relationship
// routes, which have a single waypoint, are rebuilt from the component cell.
func (doc *Document) RouteSet() (*route.RouteSet, error) {
	set := &route.RouteSet{
		Bounds:   doc.Bounds,
		Capacity: doc.Capacity,
		Nodes:    make([]route.Node, len(doc.Components)),
		Results:  make([]route.Result, len(doc.Relationships)),
	}
	cells := make(map[string]route.Coord, len(doc.Components))
	for i, c := range doc.Components {
		set.Nodes[i] = route.Node{Name: c.ID, Col: c.Col, Row: c.Row}
		cells[c.ID] = route.CellCoord(c.Col, c.Row)
	}
	for i, r := range doc.Relationships {
		res := route.Result{
			Index: i, Source: r.From, Target: r.To, Label: r.Label,
			Failed: r.Failed, Warning: r.Warning,
		}
		if !r.Failed {
			rt, err := parseRoute(r, cells)
			if err != nil {
				return nil, fmt.Errorf("relationship %d (%s to %s): %w", i, r.From, r.To, err)
			}
			res.Route = rt
		}
		set.Results[i] = res
	}
	return set, nil
}

func parseRoute(r Relationship, cells map[string]route.Coord) (*route.Route, error) {
	if r.From == r.To {
		c, ok := cells[r.From]
		if !ok {
			return nil, fmt.Errorf("unknown component %q", r.From)
		}
		return &route.Route{Waypoints: []route.Waypoint{{Coord: c}}}, nil
	}
	return route.Parse(r.Route)
}

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument serializes a Document to pretty-printed JSON bytes.
func MarshalDocument(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes a Document as JSON to w.
func WriteDocument(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// UnmarshalDocument deserializes JSON bytes into a Document and checks that
// its routes parse.
func UnmarshalDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if _, err := doc.RouteSet(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteDocumentFile writes a Document to a JSON file.
func WriteDocumentFile(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(doc, f)
}

// ReadDocumentFile reads a Document from a JSON file.
func ReadDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDocument(data)
}
