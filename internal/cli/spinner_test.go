package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/deckroute/pkg/observability"
)

// lockedBuffer is a bytes.Buffer safe for the spinner goroutine and the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func quietSpinner(ctx context.Context, message string) (*Spinner, *lockedBuffer) {
	var buf lockedBuffer
	s := newSpinner(ctx, message)
	s.out = &buf
	return s, &buf
}

func TestSpinnerStop(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Computing layout...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
	if !strings.Contains(buf.String(), "Computing layout...") {
		t.Errorf("spinner output = %q, want the message", buf.String())
	}
}

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 10*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()
			s, _ := quietSpinner(ctx, "Routing relationships...")
			s.Start()
			<-ctx.Done()
			s.Stop()
			if !s.Cancelled() {
				t.Error("spinner should report cancellation by its context")
			}
		})
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Routing relationships...")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.SetMessage("Routing api → db (1/2)...")
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	if !strings.Contains(buf.String(), "api → db (1/2)") {
		t.Errorf("spinner output = %q, want the updated message", buf.String())
	}
}

func TestTrackRouting(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	inner := &recordingHooks{}
	observability.SetPipelineHooks(inner)

	s, _ := quietSpinner(context.Background(), "Routing relationships...")
	restore := trackRouting(s)

	ctx := context.Background()
	hooks := observability.Pipeline()
	hooks.OnRouteStart(ctx, 2)
	hooks.OnRelationshipRouted(ctx, 0, "web", "api", false)
	hooks.OnRelationshipRouted(ctx, 1, "api", "db", true)

	s.mu.Lock()
	msg := s.message
	s.mu.Unlock()
	if msg != "Routing api → db (2/2)..." {
		t.Errorf("message = %q", msg)
	}
	if inner.routed != 2 {
		t.Errorf("wrapped hooks saw %d relationships, want 2", inner.routed)
	}

	restore()
	if observability.Pipeline() != inner {
		t.Error("restore should reinstate the previous hooks")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	routed int
}

func (h *recordingHooks) OnRelationshipRouted(context.Context, int, string, string, bool) {
	h.routed++
}
