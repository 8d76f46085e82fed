package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// otherStage holds entries whose key carries no stage name.
const otherStage = "other"

// FileCache stores one JSON file per entry, grouped by pipeline stage:
//
//	<dir>/layout/<sha256>.json
//	<dir>/routes/<sha256>.json
//	<dir>/artifact/<sha256>.json
//
// Expired and unreadable entries count as misses and are removed on read.
type FileCache struct {
	dir string
}

var (
	_ Cache   = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
)

type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// NewFileCache opens a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e fileEntry
	if json.Unmarshal(raw, &e) != nil || (!e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set writes the entry to a temporary file and renames it into place, so
// concurrent readers never see a partial entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every entry and the stage directories and returns the
// number of entries removed.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	count := 0
	err := c.walk(ctx, func(stage, path string) {
		if os.Remove(path) == nil {
			count++
		}
	})
	if err != nil {
		return count, err
	}
	dirs, _ := os.ReadDir(c.dir)
	for _, d := range dirs {
		if d.IsDir() {
			_ = os.Remove(filepath.Join(c.dir, d.Name()))
		}
	}
	return count, nil
}

// Entries counts the stored entries per stage.
func (c *FileCache) Entries(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	err := c.walk(ctx, func(stage, _ string) { counts[stage]++ })
	return counts, err
}

func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Close() error { return nil }

// walk calls fn for every entry file. Unreadable directories are skipped.
func (c *FileCache) walk(ctx context.Context, fn func(stage, path string)) error {
	return filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		fn(filepath.Base(filepath.Dir(path)), path)
		return nil
	})
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, keyStage(key), Hash([]byte(key))+".json")
}

// keyStage extracts the stage name from a key of the form
// [scope:]stage:hash.
func keyStage(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return otherStage
	}
	switch stage := parts[len(parts)-2]; stage {
	case "layout", "routes", "artifact":
		return stage
	}
	return otherStage
}
