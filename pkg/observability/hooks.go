// Package observability lets the CLI and the HTTP server watch the pipeline
// without the layout and routing packages depending on any backend.
//
// The pipeline emits events through three small interfaces. Each has a no-op
// default that main can replace at startup:
//
//	observability.SetPipelineHooks(myHooks)
//
//	// inside the pipeline
//	observability.Pipeline().OnRouteStart(ctx, len(edges))
//	observability.Pipeline().OnRelationshipRouted(ctx, i, "api", "db", false)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives stage events. OnRelationshipRouted fires once per
// relationship in routing order; cached stages emit no events.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, format string)
	OnParseComplete(ctx context.Context, format string, components int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, components int)
	OnLayoutComplete(ctx context.Context, shape string, duration time.Duration, err error)

	OnRouteStart(ctx context.Context, relationships int)
	OnRelationshipRouted(ctx context.Context, index int, source, target string, failed bool)
	OnRouteComplete(ctx context.Context, relationships, failed int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is the pipeline
// stage: "layout", "routes" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives one request and one response event per API call.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                  {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)      {}
func (NoopPipelineHooks) OnRouteStart(context.Context, int)                                   {}
func (NoopPipelineHooks) OnRelationshipRouted(context.Context, int, string, string, bool)     {}
func (NoopPipelineHooks) OnRouteComplete(context.Context, int, int, time.Duration, error)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registry holds the current hooks of one kind. Reads are lock-free since
// every pipeline event goes through them.
type registry[H any] struct {
	p   atomic.Pointer[H]
	def H
}

func (r *registry[H]) get() H {
	if h := r.p.Load(); h != nil {
		return *h
	}
	return r.def
}

func (r *registry[H]) set(h H) { r.p.Store(&h) }

func (r *registry[H]) reset() { r.p.Store(nil) }

var (
	pipelineHooks = registry[PipelineHooks]{def: NoopPipelineHooks{}}
	cacheHooks    = registry[CacheHooks]{def: NoopCacheHooks{}}
	httpHooks     = registry[HTTPHooks]{def: NoopHTTPHooks{}}
)

// SetPipelineHooks replaces the pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.set(h)
	}
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// SetHTTPHooks replaces the HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.set(h)
	}
}

func Pipeline() PipelineHooks { return pipelineHooks.get() }
func Cache() CacheHooks       { return cacheHooks.get() }
func HTTP() HTTPHooks         { return httpHooks.get() }

// Reset restores the no-op hooks. Tests call it to undo their hooks.
func Reset() {
	pipelineHooks.reset()
	cacheHooks.reset()
	httpHooks.reset()
}
