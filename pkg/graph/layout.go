package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/deckroute/pkg/layout"
	"github.com/matzehuels/deckroute/pkg/route"
)

// =============================================================================
// Layout - Placement Format
// =============================================================================

// Layout is the serialization format of a [layout.Placement].
type Layout struct {
	ID     string        `json:"id,omitempty"`
	Shape  layout.Shape  `json:"shape"`
	Auto   bool          `json:"auto"`
	Bounds route.Bounds  `json:"bounds"`
	Cells  []layout.Cell `json:"cells"`
}

// FromPlacement converts a placement for serialization.
func FromPlacement(id string, p *layout.Placement) Layout {
	cells := p.Cells
	if cells == nil {
		cells = []layout.Cell{}
	}
	return Layout{ID: id, Shape: p.Shape, Auto: p.Auto, Bounds: p.Bounds, Cells: cells}
}

// Placement converts back to a [layout.Placement].
func (l Layout) Placement() *layout.Placement {
	return &layout.Placement{Cells: l.Cells, Bounds: l.Bounds, Shape: l.Shape, Auto: l.Auto}
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Cells must carry an id and a position of at least (1,1).
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	for _, c := range l.Cells {
		if c.ID == "" || c.Col < 1 || c.Row < 1 {
			return Layout{}, fmt.Errorf("layout cell %v is invalid", c)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
