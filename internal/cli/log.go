package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckroute/pkg/observability"
)

// newLogger writes timestamped lines such as "14:32:01.45 INFO routed".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logHooks reports pipeline events at debug level, so -v traces every
// stage and every relationship.
type logHooks struct {
	observability.NoopPipelineHooks
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnParseComplete(_ context.Context, format string, components int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("parse done", "format", format, "components", components, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnLayoutComplete(_ context.Context, shape string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "error", err)
		return
	}
	h.logger.Debug("layout done", "shape", shape, "duration", d.Round(time.Microsecond))
}

func (h *logHooks) OnRelationshipRouted(_ context.Context, index int, source, target string, failed bool) {
	h.logger.Debug("relationship", "index", index, "from", source, "to", target, "routed", !failed)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("render done", "format", format, "bytes", size, "duration", d.Round(time.Microsecond))
}

// logCacheHooks traces cache traffic at debug level.
type logCacheHooks struct{ logger *log.Logger }

func (h logCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "stage", keyType)
}

func (h logCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "stage", keyType)
}

func (h logCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache store", "stage", keyType, "bytes", size)
}
