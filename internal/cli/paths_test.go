package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join("/tmp/xdg", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestCacheDirectory(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	tests := []struct {
		dir  string
		want string
	}{
		{"", filepath.Join("/tmp/xdg", appName)},
		{"/srv/deck-cache/", "/srv/deck-cache"},
		{"cache/../routes", "routes"},
	}
	for _, tt := range tests {
		cfg := &Config{Cache: CacheConfig{Dir: tt.dir}}
		got, err := cfg.cacheDirectory()
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("cacheDirectory() with dir %q = %q, want %q", tt.dir, got, tt.want)
		}
	}
}
