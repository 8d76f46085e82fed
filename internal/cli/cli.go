// Package cli implements the deckroute command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deckroute/pkg/cache"
	"github.com/matzehuels/deckroute/pkg/diagram"
	errs "github.com/matzehuels/deckroute/pkg/errors"
	"github.com/matzehuels/deckroute/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "deckroute"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configFile is the --config flag value.
	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, backed by the cache the
// configuration selects.
func (c *CLI) newRunner(ctx context.Context, cfg *Config) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the configured cache backend. A file cache that cannot be
// created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg *Config) (cache.Cache, error) {
	switch {
	case cfg.Cache.Disabled:
		return cache.NewNullCache(), nil
	case cfg.Cache.RedisURL != "":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	dir, err := cfg.cacheDirectory()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cannot create cache directory, caching disabled", "dir", dir, "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/deckroute/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// addRouteFlags registers the flags shared by every command that runs the
// pipeline. Their values reach the options through [LoadConfig], so a flag
// only overrides the config file when it is set explicitly.
func addRouteFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("width", pipeline.DefaultWidth, "canvas width in pixels")
	cmd.Flags().Float64("height", pipeline.DefaultHeight, "canvas height in pixels")
	cmd.Flags().Int("lanes-h", -1, "lanes per horizontal street (default: derived from canvas)")
	cmd.Flags().Int("lanes-v", -1, "lanes per vertical street (default: derived from canvas)")
	addCacheFlags(cmd)
}

// addCacheFlags registers the cache backend flags.
func addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-cache", false, "disable caching")
	cmd.Flags().String("cache-dir", "", "cache directory (default: ~/.cache/deckroute)")
	cmd.Flags().String("redis-url", "", "use a redis cache, e.g. redis://localhost:6379/0")
}

// readSource loads a diagram file into opts.
func readSource(path string, opts *pipeline.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "diagram file %s", path)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	opts.Source = string(data)
	opts.Format = string(diagram.FormatFromPath(path))
	return nil
}
