package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultCacheFile is the cache location used when none is configured,
// relative to the working directory.
const DefaultCacheFile = "local_hashmem.json"

// Load reads the cache file at path. A missing file yields an empty cache.
func Load(path string) (*Cache, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewCache(), nil
		}
		return nil, fmt.Errorf("cannot read cache %s: %w", path, err)
	}
	c := NewCache()
	if err := json.Unmarshal(b, &c.entries); err != nil {
		return nil, fmt.Errorf("invalid cache JSON %s: %w", path, err)
	}
	if c.entries == nil {
		c.entries = make(map[string]Entry)
	}
	return c, nil
}

// Save writes the full cache to path using write-then-rename.
func Save(path string, c *Cache) error {
	b, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("cannot marshal cache: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create cache dir %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("cannot write cache %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot replace cache %s: %w", path, err)
	}
	return nil
}
