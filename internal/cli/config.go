package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/deckroute/internal/server"
	errs "github.com/matzehuels/deckroute/pkg/errors"
	"github.com/matzehuels/deckroute/pkg/pipeline"
)

// configFileNames are searched in the working directory, in order.
var configFileNames = []string{"deckroute.yaml", "deckroute.yml"}

// envPrefix is the prefix of configuration environment variables.
// DECKROUTE_CACHE_REDIS_URL maps to cache.redis_url.
const envPrefix = "DECKROUTE_"

// Config is the merged CLI configuration.
type Config struct {
	Width  float64     `koanf:"width"`
	Height float64     `koanf:"height"`
	Lanes  LanesConfig `koanf:"lanes"`
	Cache  CacheConfig `koanf:"cache"`
	Serve  ServeConfig `koanf:"serve"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// LanesConfig overrides the lane capacity derived from the canvas size.
// Negative values mean "derive".
type LanesConfig struct {
	Horizontal int `koanf:"horizontal"`
	Vertical   int `koanf:"vertical"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Dir      string `koanf:"dir"`
	RedisURL string `koanf:"redis_url"`
	Disabled bool   `koanf:"disabled"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `koanf:"addr"`
	Dir  string `koanf:"dir"`
}

// flagKeys maps flag names to config keys. Flags not listed here are not
// part of the configuration.
var flagKeys = map[string]string{
	"width":     "width",
	"height":    "height",
	"lanes-h":   "lanes.horizontal",
	"lanes-v":   "lanes.vertical",
	"cache-dir": "cache.dir",
	"redis-url": "cache.redis_url",
	"no-cache":  "cache.disabled",
	"addr":      "serve.addr",
	"dir":       "serve.dir",
}

func defaultConfig() map[string]any {
	return map[string]any{
		"width":            pipeline.DefaultWidth,
		"height":           pipeline.DefaultHeight,
		"lanes.horizontal": -1,
		"lanes.vertical":   -1,
		"cache.dir":        "",
		"cache.redis_url":  "",
		"cache.disabled":   false,
		"serve.addr":       server.DefaultAddr,
		"serve.dir":        "",
	}
}

// findConfigFile returns explicit if set, otherwise the first config file
// found in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadConfig merges configuration from defaults, the config file,
// environment variables and explicitly set flags, in increasing precedence.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultConfig(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config file %s", path)
		}
	}

	// DECKROUTE_LANES_HORIZONTAL -> lanes.horizontal. Only the first
	// underscore after a section name separates levels.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode config")
	}
	cfg.File = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps an environment variable name to a config key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range []string{"lanes", "cache", "serve"} {
		if rest, ok := strings.CutPrefix(s, section+"_"); ok {
			return section + "." + rest
		}
	}
	return s
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "canvas size must not be negative, got %gx%g", c.Width, c.Height)
	}
	if c.Cache.Disabled && c.Cache.RedisURL != "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_url is set but the cache is disabled")
	}
	return nil
}

// apply copies the routing settings onto opts.
func (c *Config) apply(opts *pipeline.Options) {
	opts.Width = c.Width
	opts.Height = c.Height
	if c.Lanes.Horizontal >= 0 {
		opts.LanesHorizontal = pipeline.Lanes(c.Lanes.Horizontal)
	}
	if c.Lanes.Vertical >= 0 {
		opts.LanesVertical = pipeline.Lanes(c.Lanes.Vertical)
	}
}

// cacheDirectory returns the configured cache directory or the default one.
func (c *Config) cacheDirectory() (string, error) {
	if c.Cache.Dir != "" {
		return filepath.Clean(c.Cache.Dir), nil
	}
	return cacheDir()
}
