package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/deckroute/pkg/errors"
)

// Format is a diagram file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from a file extension. Unknown
// extensions default to TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// File is the on-disk shape of a diagram.
//
// In TOML, components and relationships are arrays of tables:
//
//	[[component]]
//	id = "api"
//	pos = { col = 1, row = 1 }
//
//	[[relationship]]
//	from = "api"
//	to = "db"
//	arrow = "->"
type File struct {
	Components    []Component    `json:"components" toml:"component"`
	Relationships []Relationship `json:"relationships" toml:"relationship"`
}

// Diagram validates the file contents.
func (f *File) Diagram() (*Diagram, error) {
	return New(f.Components, f.Relationships)
}

// FileOf returns the file form of d.
func FileOf(d *Diagram) *File {
	return &File{Components: d.Components(), Relationships: d.Relationships()}
}

// Decode reads and validates a diagram in the given format.
func Decode(r io.Reader, format Format) (*Diagram, error) {
	var f File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json diagram")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml diagram")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown key %q in toml diagram", undecoded[0].String())
		}
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported diagram format %q", format)
	}
	return f.Diagram()
}

// Parse decodes a diagram held in memory.
func Parse(data []byte, format Format) (*Diagram, error) {
	return Decode(bytes.NewReader(data), format)
}

// ReadFile reads a diagram file, choosing the format from its extension.
func ReadFile(path string) (*Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "diagram file %s", path)
		}
		return nil, fmt.Errorf("read diagram: %w", err)
	}
	d, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Encode writes d in the given format.
func Encode(w io.Writer, d *Diagram, format Format) error {
	f := FileOf(d)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	}
	return errs.New(errs.ErrCodeUnsupported, "unsupported diagram format %q", format)
}
