// Package pipeline runs the complete diagram pipeline for deckroute.
//
// This package implements the parse → layout → route → render pipeline
// shared by the CLI and the HTTP server. Centralizing it keeps defaults,
// validation and caching identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Decode and validate a diagram file (TOML or JSON)
//  2. Layout: Assign a grid cell to every component
//  3. Route: Route every relationship over the street grid
//  4. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  string(data),
//	    Format:  "toml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Relationships that cannot be routed do not fail the pipeline: they are
// reported in [Result.Routes], logged at warn level, and left out of the
// rendered routes.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckroute/pkg/cache"
	"github.com/matzehuels/deckroute/pkg/diagram"
	errs "github.com/matzehuels/deckroute/pkg/errors"
	"github.com/matzehuels/deckroute/pkg/graph"
	"github.com/matzehuels/deckroute/pkg/layout"
	"github.com/matzehuels/deckroute/pkg/render/sink"
	"github.com/matzehuels/deckroute/pkg/route"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = sink.DefaultHeight

	// DefaultFormat is the default diagram source encoding.
	DefaultFormat = string(diagram.FormatTOML)
)

// Visualization types.
const (
	// VizRoutes draws the computed routes and lanes.
	VizRoutes = "routes"

	// VizNodelink draws the placed components with Graphviz edges.
	VizNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizRoutes

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizRoutes:   true,
	VizNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Source string `json:"source"`           // Diagram file contents
	Format string `json:"format,omitempty"` // "toml" or "json"

	// Layout options
	AutoLayout bool `json:"auto_layout,omitempty"` // Discard explicit positions

	// Route options. A nil lane count is derived from the canvas size.
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	LanesHorizontal *int    `json:"lanes_horizontal,omitempty"`
	LanesVertical   *int    `json:"lanes_vertical,omitempty"`

	// Render options
	VizType string   `json:"viz_type,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Step    int      `json:"step,omitempty"` // Reveal step snapshot; 0 renders everything

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the diagram content (see [graph.DiagramID]).
	ID string

	// DiagramHash is the content hash of the validated diagram.
	DiagramHash string

	// Diagram is the validated diagram as laid out (without explicit
	// positions when AutoLayout was requested).
	Diagram *diagram.Diagram

	// Placement holds the grid cell of every component.
	Placement *layout.Placement

	// Routes holds the routing result of every relationship.
	Routes *route.RouteSet

	// Document is the serializable form of the routed diagram.
	Document *graph.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Components    int
	Relationships int
	Failed        int
	ParseTime     time.Duration
	LayoutTime    time.Duration
	RouteTime     time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the placement came from cache
	RouteHit  bool // Whether the routes came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errs.New(errs.ErrCodeInvalidInput, "invalid viz_type: %q (must be one of: routes, nodelink)", vizType)
	}
	return nil
}

// ValidateSourceFormat checks that a diagram source encoding is valid.
func ValidateSourceFormat(format string) error {
	switch diagram.Format(format) {
	case diagram.FormatTOML, diagram.FormatJSON:
		return nil
	}
	return errs.New(errs.ErrCodeInvalidInput, "invalid format: %q (must be one of: toml, json)", format)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRoute(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Source == "" {
		return errs.New(errs.ErrCodeInvalidInput, "source is required")
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateSourceFormat(o.Format)
}

// SetRouteDefaults sets default values for routing.
func (o *Options) SetRouteDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRoute validates and sets defaults for routing.
func (o *Options) ValidateForRoute() error {
	o.SetRouteDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "canvas size must not be negative: %gx%g", o.Width, o.Height)
	}
	if (o.LanesHorizontal != nil && *o.LanesHorizontal < 0) || (o.LanesVertical != nil && *o.LanesVertical < 0) {
		return errs.New(errs.ErrCodeInvalidInput, "lane counts must not be negative")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRouteDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.Step < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "step must not be negative: %d", o.Step)
	}
	return ValidateFormats(o.Formats)
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizNodelink
}

// Capacity resolves the lane capacity for a placement's bounds: explicit
// lane counts win, missing ones are derived from the canvas size.
func (o *Options) Capacity(b route.Bounds) route.Capacity {
	c := route.CapacityFor(o.Width, o.Height, b)
	if o.LanesHorizontal != nil {
		c.Horizontal = *o.LanesHorizontal
	}
	if o.LanesVertical != nil {
		c.Vertical = *o.LanesVertical
	}
	return c
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{AutoLayout: o.AutoLayout}
}

// RouteKeyOpts returns cache key options for routing.
func (o *Options) RouteKeyOpts(c route.Capacity) cache.RouteKeyOpts {
	return cache.RouteKeyOpts{Horizontal: c.Horizontal, Vertical: c.Vertical}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType: o.VizType,
		Format:  format,
		Width:   o.Width,
		Height:  o.Height,
		Step:    o.Step,
	}
}

// Lanes returns a pointer to n, for setting the optional lane counts.
func Lanes(n int) *int { return &n }
