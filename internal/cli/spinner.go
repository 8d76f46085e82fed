package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/deckroute/pkg/observability"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on stderr until stopped or until its
// context is cancelled. The message can change while it runs.
type Spinner struct {
	out    io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	exited chan struct{}

	mu      sync.Mutex
	message string
	width   int // widest message drawn, for clearing
	stopped bool
}

func newSpinner(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     os.Stderr,
		ctx:     ctx,
		cancel:  cancel,
		exited:  make(chan struct{}),
		message: message,
	}
}

func (s *Spinner) Start() {
	go func() {
		defer close(s.exited)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop halts the animation and clears the line. It may be called more than
// once. Stop does not mark the spinner as cancelled.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = s.ctx.Err() == nil
		s.mu.Unlock()
		s.cancel()
		<-s.exited
	})
}

func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped && s.ctx.Err() != nil
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, len(s.message))
	pad := strings.Repeat(" ", s.width-len(s.message))
	fmt.Fprintf(s.out, "\r%s %s%s", styleIconSpinner.Render(frame), styleDim.Render(s.message), pad)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	width := max(s.width, len(s.message))
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", width+4))
}

// progressHooks reports routing progress on a spinner and forwards every
// event to the hooks it wraps.
type progressHooks struct {
	observability.PipelineHooks
	spinner *Spinner

	mu    sync.Mutex
	total int
	done  int
}

// trackRouting installs progress hooks for s and returns a function that
// restores the previous hooks.
func trackRouting(s *Spinner) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(&progressHooks{PipelineHooks: prev, spinner: s})
	return func() { observability.SetPipelineHooks(prev) }
}

func (h *progressHooks) OnRouteStart(ctx context.Context, relationships int) {
	h.PipelineHooks.OnRouteStart(ctx, relationships)
	h.mu.Lock()
	h.total, h.done = relationships, 0
	h.mu.Unlock()
}

func (h *progressHooks) OnRelationshipRouted(ctx context.Context, index int, source, target string, failed bool) {
	h.PipelineHooks.OnRelationshipRouted(ctx, index, source, target, failed)
	h.mu.Lock()
	h.done++
	msg := fmt.Sprintf("Routing %s → %s (%d/%d)...", source, target, h.done, h.total)
	h.mu.Unlock()
	h.spinner.SetMessage(msg)
}
