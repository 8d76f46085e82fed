package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingHooks struct {
	NoopPipelineHooks
	mu     sync.Mutex
	routed []string
}

func (h *countingHooks) OnRelationshipRouted(_ context.Context, _ int, source, target string, _ bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routed = append(h.routed, source+">"+target)
}

func TestDefaults(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	ctx := context.Background()
	Pipeline().OnRouteComplete(ctx, 3, 1, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "routes", 512)
	HTTP().OnResponse(ctx, "POST", "/v1/route", 200, time.Millisecond)
}

func TestSetAndReset(t *testing.T) {
	Reset()
	defer Reset()

	h := &countingHooks{}
	SetPipelineHooks(h)
	SetPipelineHooks(nil)
	if Pipeline() != h {
		t.Fatal("SetPipelineHooks(nil) should keep the current hooks")
	}

	Pipeline().OnRelationshipRouted(context.Background(), 0, "api", "db", false)
	if len(h.routed) != 1 || h.routed[0] != "api>db" {
		t.Errorf("routed = %v", h.routed)
	}

	Reset()
	if Pipeline() == h {
		t.Error("Reset should restore the no-op hooks")
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	h := &countingHooks{}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetPipelineHooks(h)
			Pipeline().OnRelationshipRouted(context.Background(), i, "a", "b", false)
		}()
	}
	wg.Wait()
	if Pipeline() != h {
		t.Error("hooks should be set")
	}
}
