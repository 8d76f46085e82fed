package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/deckroute/pkg/errors"
	"github.com/matzehuels/deckroute/pkg/pipeline"
)

func routeFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addRouteFlags(cmd)
	cmd.Flags().String("addr", "", "")
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deckroute.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != pipeline.DefaultWidth || cfg.Height != pipeline.DefaultHeight {
		t.Errorf("size = %gx%g, want defaults", cfg.Width, cfg.Height)
	}
	if cfg.Lanes.Horizontal != -1 || cfg.Lanes.Vertical != -1 {
		t.Errorf("lanes = %+v, want derived", cfg.Lanes)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want none", cfg.File)
	}

	var opts pipeline.Options
	cfg.apply(&opts)
	if opts.LanesHorizontal != nil || opts.LanesVertical != nil {
		t.Error("derived lanes should leave the options unset")
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := writeConfig(t, `
width: 800
height: 600
lanes:
  horizontal: 2
cache:
  dir: /tmp/from-file
serve:
  addr: ":9000"
`)
	t.Setenv("DECKROUTE_SERVE_DIR", "/srv/decks")
	t.Setenv("DECKROUTE_HEIGHT", "500")
	t.Setenv("DECKROUTE_LANES_VERTICAL", "4")
	t.Setenv("DECKROUTE_CACHE_DIR", "/tmp/from-env")

	cmd := routeFlags(t, "--lanes-h", "5", "--cache-dir", "/tmp/from-flag")
	cfg, err := LoadConfig(path, cmd.Flags())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"width from file", cfg.Width, 800.0},
		{"height from env", cfg.Height, 500.0},
		{"horizontal lanes from flag", cfg.Lanes.Horizontal, 5},
		{"vertical lanes from env", cfg.Lanes.Vertical, 4},
		{"cache dir from flag", cfg.Cache.Dir, "/tmp/from-flag"},
		{"addr from file", cfg.Serve.Addr, ":9000"},
		{"diagram dir from env", cfg.Serve.Dir, "/srv/decks"},
		{"file recorded", cfg.File, path},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	var opts pipeline.Options
	cfg.apply(&opts)
	if opts.LanesHorizontal == nil || *opts.LanesHorizontal != 5 {
		t.Errorf("LanesHorizontal = %v, want 5", opts.LanesHorizontal)
	}
}

func TestLoadConfigUnsetFlagsKeepFileValues(t *testing.T) {
	path := writeConfig(t, "width: 640\n")
	cmd := routeFlags(t)

	cfg, err := LoadConfig(path, cmd.Flags())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 640 {
		t.Errorf("Width = %g, want 640 (flag default must not override)", cfg.Width)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		code errs.Code
	}{
		{"negative width", "width: -10\n", errs.ErrCodeInvalidConfig},
		{"redis with disabled cache", "cache:\n  disabled: true\n  redis_url: redis://localhost:6379\n", errs.ErrCodeInvalidConfig},
		{"malformed yaml", "width: [\n", errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file), nil)
			if errs.GetCode(err) != tt.code {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if errs.GetCode(err) != errs.ErrCodeFileNotFound {
		t.Errorf("missing file err = %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"DECKROUTE_WIDTH":            "width",
		"DECKROUTE_LANES_HORIZONTAL": "lanes.horizontal",
		"DECKROUTE_CACHE_REDIS_URL":  "cache.redis_url",
		"DECKROUTE_SERVE_ADDR":       "serve.addr",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}
