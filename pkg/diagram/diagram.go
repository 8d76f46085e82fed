package diagram

import (
	"fmt"
	"slices"

	errs "github.com/matzehuels/deckroute/pkg/errors"
)

// Default values applied by [New] to omitted component fields.
const (
	DefaultIcon  = "box"
	DefaultStyle = StylePrimary
)

// Style is the visual emphasis of a component.
type Style string

const (
	StylePrimary   Style = "primary"
	StyleSecondary Style = "secondary"
	StyleMuted     Style = "muted"
)

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	switch s {
	case StylePrimary, StyleSecondary, StyleMuted:
		return true
	}
	return false
}

// Pos is an explicit grid position. Columns and rows start at 1.
type Pos struct {
	Col int `json:"col" toml:"col"`
	Row int `json:"row" toml:"row"`
}

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.Col, p.Row) }

// Component is a named box on the diagram grid.
type Component struct {
	ID         string `json:"id" toml:"id"`
	Icon       string `json:"icon,omitempty" toml:"icon"`
	Label      string `json:"label,omitempty" toml:"label"`
	Pos        *Pos   `json:"pos,omitempty" toml:"pos"`
	Style      Style  `json:"style,omitempty" toml:"style"`
	RevealStep int    `json:"reveal_step,omitempty" toml:"reveal_step"`
}

// Relationship is a connection between two components. Declaration order is
// significant: earlier relationships are routed first.
type Relationship struct {
	Source     string `json:"from" toml:"from"`
	Target     string `json:"to" toml:"to"`
	Arrow      Arrow  `json:"arrow,omitempty" toml:"arrow"`
	Label      string `json:"label,omitempty" toml:"label"`
	RevealStep int    `json:"reveal_step,omitempty" toml:"reveal_step"`
}

// SelfLoop reports whether the relationship starts and ends at one component.
func (r Relationship) SelfLoop() bool { return r.Source == r.Target }

// Diagram is a validated, immutable set of components and relationships.
//
// Use [New] to construct one; accessors return copies so callers cannot
// mutate the diagram.
type Diagram struct {
	components    []Component
	relationships []Relationship
	index         map[string]int
}

// New validates components and relationships, fills defaults and returns the
// diagram. All validation failures carry the INVALID_DIAGRAM code; the first
// problem found is reported.
//
// Validation rules:
//   - Component ids are non-empty, unique and pass [errs.ValidateID]
//   - Explicit positions have Col and Row of at least 1
//   - Styles and arrows are known values
//   - Reveal steps are not negative
//   - Relationship endpoints name existing components
func New(components []Component, relationships []Relationship) (*Diagram, error) {
	d := &Diagram{
		components:    make([]Component, 0, len(components)),
		relationships: make([]Relationship, 0, len(relationships)),
		index:         make(map[string]int, len(components)),
	}

	for _, c := range components {
		if err := errs.ValidateID(c.ID); err != nil {
			return nil, err
		}
		if _, dup := d.index[c.ID]; dup {
			return nil, errs.New(errs.ErrCodeInvalidDiagram, "duplicate component id %q", c.ID)
		}
		if c.Icon == "" {
			c.Icon = DefaultIcon
		}
		if c.Label == "" {
			c.Label = c.ID
		}
		if c.Style == "" {
			c.Style = DefaultStyle
		}
		if !c.Style.Valid() {
			return nil, errs.New(errs.ErrCodeInvalidDiagram, "component %q: unknown style %q", c.ID, c.Style)
		}
		if c.RevealStep < 0 {
			return nil, errs.New(errs.ErrCodeInvalidDiagram, "component %q: negative reveal step %d", c.ID, c.RevealStep)
		}
		if c.Pos != nil {
			if c.Pos.Col < 1 || c.Pos.Row < 1 {
				return nil, errs.New(errs.ErrCodeInvalidDiagram, "component %q: position %s must be at least (1,1)", c.ID, c.Pos)
			}
			p := *c.Pos
			c.Pos = &p
		}
		d.index[c.ID] = len(d.components)
		d.components = append(d.components, c)
	}

	for i, r := range relationships {
		if _, ok := d.index[r.Source]; !ok {
			return nil, errs.New(errs.ErrCodeInvalidDiagram, "relationship %d: unknown source component %q", i, r.Source)
		}
		if _, ok := d.index[r.Target]; !ok {
			return nil, errs.New(errs.ErrCodeInvalidDiagram, "relationship %d: unknown target component %q", i, r.Target)
		}
		if r.Arrow == "" {
			r.Arrow = DefaultArrow
		}
		arrow, err := ParseArrow(string(r.Arrow))
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDiagram, err, "relationship %d (%s to %s)", i, r.Source, r.Target)
		}
		r.Arrow = arrow
		if r.RevealStep < 0 {
			return nil, errs.New(errs.ErrCodeInvalidDiagram, "relationship %d: negative reveal step %d", i, r.RevealStep)
		}
		d.relationships = append(d.relationships, r)
	}

	return d, nil
}

// Components returns the components in declaration order.
func (d *Diagram) Components() []Component {
	out := make([]Component, len(d.components))
	for i, c := range d.components {
		if c.Pos != nil {
			p := *c.Pos
			c.Pos = &p
		}
		out[i] = c
	}
	return out
}

// Relationships returns the relationships in declaration order.
func (d *Diagram) Relationships() []Relationship {
	return slices.Clone(d.relationships)
}

// Component returns the component with the given id.
func (d *Diagram) Component(id string) (Component, bool) {
	i, ok := d.index[id]
	if !ok {
		return Component{}, false
	}
	c := d.components[i]
	if c.Pos != nil {
		p := *c.Pos
		c.Pos = &p
	}
	return c, true
}

// Len returns the number of components.
func (d *Diagram) Len() int { return len(d.components) }

// Positioned reports whether every component has an explicit position
// (all) and whether none has (none). An empty diagram is both.
func (d *Diagram) Positioned() (all, none bool) {
	all, none = true, true
	for _, c := range d.components {
		if c.Pos != nil {
			none = false
		} else {
			all = false
		}
	}
	return all, none
}

// Steps returns the number of distinct reveal steps used by components and
// relationships. Step 0 (always visible) is not counted.
func (d *Diagram) Steps() int {
	seen := make(map[int]struct{})
	for _, c := range d.components {
		if c.RevealStep > 0 {
			seen[c.RevealStep] = struct{}{}
		}
	}
	for _, r := range d.relationships {
		if r.RevealStep > 0 {
			seen[r.RevealStep] = struct{}{}
		}
	}
	return len(seen)
}

// WithoutPositions returns a copy of d with every explicit position removed,
// so that the whole diagram is laid out automatically.
func (d *Diagram) WithoutPositions() *Diagram {
	out := &Diagram{
		components:    d.Components(),
		relationships: d.Relationships(),
		index:         d.index,
	}
	for i := range out.components {
		out.components[i].Pos = nil
	}
	return out
}
