package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckroute/pkg/cache"
	"github.com/matzehuels/deckroute/pkg/diagram"
	"github.com/matzehuels/deckroute/pkg/graph"
	"github.com/matzehuels/deckroute/pkg/layout"
	"github.com/matzehuels/deckroute/pkg/observability"
	"github.com/matzehuels/deckroute/pkg/route"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeRoutes   = "routes"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → route → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result, err := r.Prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	p, layoutHit, err := r.LayoutWithCacheInfo(ctx, result.Diagram, result.DiagramHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Placement = p
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"shape", p.Shape,
		"cells", len(p.Cells),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Route
	routeStart := time.Now()
	doc, set, routeHit, err := r.RouteWithCacheInfo(ctx, result.ID, result.Diagram, result.DiagramHash, p, opts)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	result.Document = doc
	result.Routes = set
	result.Stats.Failed = len(set.Failures())
	result.Stats.RouteTime = time.Since(routeStart)
	result.CacheInfo.RouteHit = routeHit

	r.Logger.Info("routed relationships",
		"relationships", len(set.Results),
		"failed", result.Stats.Failed,
		"capacity", set.Capacity,
		"duration", result.Stats.RouteTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Prepare runs the parse stage and fills the identity fields of a result:
// the validated diagram, its content hash and its ID.
func (r *Runner) Prepare(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	parseStart := time.Now()
	d, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	hash, canonical, err := hashDiagram(d)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:          graph.DiagramID(canonical).String(),
		DiagramHash: hash,
		Diagram:     d,
		Artifacts:   make(map[string][]byte),
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Components = d.Len()
	result.Stats.Relationships = len(d.Relationships())

	r.Logger.Info("parsed diagram",
		"components", result.Stats.Components,
		"relationships", result.Stats.Relationships,
		"steps", d.Steps(),
		"duration", result.Stats.ParseTime)
	return result, nil
}

// LayoutWithCacheInfo places d with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d *diagram.Diagram, diagramHash string, opts Options) (*layout.Placement, bool, error) {
	cacheKey := r.Keyer.LayoutKey(diagramHash, opts.LayoutKeyOpts())

	if data, hit := r.get(ctx, cacheKey, keyTypeLayout); hit {
		if cached, err := graph.UnmarshalLayout(data); err == nil {
			return cached.Placement(), true, nil
		}
		// If deserialization fails, fall through to recompute
	}

	p, err := Place(ctx, d)
	if err != nil {
		return nil, false, err
	}

	if data, err := graph.MarshalLayout(graph.FromPlacement(diagramHash, p)); err == nil {
		r.set(ctx, cacheKey, keyTypeLayout, data, cache.TTLLayout)
	}
	return p, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d *diagram.Diagram, diagramHash string, opts Options) (*layout.Placement, error) {
	p, _, err := r.LayoutWithCacheInfo(ctx, d, diagramHash, opts)
	return p, err
}

// RouteWithCacheInfo routes the relationships of d over p with caching and
// returns the document, the route set and cache hit info. A cancelled pass
// is never cached.
func (r *Runner) RouteWithCacheInfo(ctx context.Context, id string, d *diagram.Diagram, diagramHash string, p *layout.Placement, opts Options) (*graph.Document, *route.RouteSet, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRoute(); err != nil {
		return nil, nil, false, err
	}

	// Routes depend on the relationships as well as the cells, so the key
	// covers both.
	layoutData, err := graph.MarshalLayout(graph.FromPlacement("", p))
	if err != nil {
		return nil, nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	capacity := opts.Capacity(p.Bounds)
	cacheKey := r.Keyer.RouteKey(cache.Hash(append([]byte(diagramHash), layoutData...)), opts.RouteKeyOpts(capacity))

	if data, hit := r.get(ctx, cacheKey, keyTypeRoutes); hit {
		if doc, err := graph.UnmarshalDocument(data); err == nil {
			if set, err := doc.RouteSet(); err == nil {
				logFailures(opts.Logger, set)
				return doc, set, true, nil
			}
		}
	}

	set, err := Route(ctx, d, p, opts)
	if err != nil {
		return nil, nil, false, err
	}
	doc, err := graph.NewDocument(id, d, p, set)
	if err != nil {
		return nil, nil, false, err
	}

	if data, err := graph.MarshalDocument(doc); err == nil {
		r.set(ctx, cacheKey, keyTypeRoutes, data, cache.TTLRoutes)
	}
	return doc, set, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *graph.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	docData, err := graph.MarshalDocument(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize routes for cache key: %w", err)
	}
	docHash := cache.Hash(docData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		data, hit := r.get(ctx, r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format)), keyTypeArtifact)
		if !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, doc, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format)), keyTypeArtifact, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads a cache entry. Backend errors count as misses.
func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set. It
// must run before validation, which installs a discarding logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashDiagram returns the content hash of d and the canonical JSON it was
// computed from, independent of the source encoding.
func hashDiagram(d *diagram.Diagram) (string, []byte, error) {
	var buf bytes.Buffer
	if err := diagram.Encode(&buf, d, diagram.FormatJSON); err != nil {
		return "", nil, fmt.Errorf("encode diagram: %w", err)
	}
	return cache.Hash(buf.Bytes()), buf.Bytes(), nil
}
