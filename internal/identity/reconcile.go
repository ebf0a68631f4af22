package identity

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamusis/kwfinder/internal/fingerprint"
)

// Result summarizes one reconciliation run.
type Result struct {
	// Added lists the search keys fingerprinted during this run.
	Added []string

	// Removed lists the search keys evicted because their file is gone.
	Removed []string
}

// Changed reports whether the cache differs from its state before the run.
func (r Result) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// Hasher computes the fingerprint of a file.
type Hasher func(path string) (string, error)

// Reconciler syncs a Cache against the contents of the model and lora
// directories.
type Reconciler struct {
	ModelDir string
	LoraDir  string

	// Hash defaults to fingerprint.Compute.
	Hash Hasher

	Logger *slog.Logger
}

// Reconcile adds an entry for every artifact not yet cached and evicts
// entries whose artifact is gone. Existing entries are never re-hashed, so a
// file whose content changes under the same name keeps its old fingerprint.
//
// The cache is mutated in place; persisting it is left to the caller.
func (r *Reconciler) Reconcile(c *Cache) (Result, error) {
	hash := r.Hash
	if hash == nil {
		hash = fingerprint.Compute
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var res Result
	seen := make(map[string]struct{})

	dirs := []struct {
		class Class
		dir   string
	}{
		{ClassLora, r.LoraDir},
		{ClassModel, r.ModelDir},
	}
	for _, d := range dirs {
		names, err := listArtifacts(d.dir)
		if err != nil {
			return res, err
		}
		for _, name := range names {
			key := SearchKey(d.class, name)
			seen[key] = struct{}{}
			if _, ok := c.Get(key); ok {
				continue
			}
			fp, err := hash(filepath.Join(d.dir, name))
			if err != nil {
				return res, err
			}
			c.Put(key, Entry{Fingerprint: fp, Filename: name})
			res.Added = append(res.Added, key)
			logger.Debug("cached artifact", "key", key, "fingerprint", fp, "file", name)
		}
	}

	for _, key := range c.Keys() {
		if _, ok := seen[key]; ok {
			continue
		}
		c.Delete(key)
		res.Removed = append(res.Removed, key)
		logger.Debug("evicted stale cache entry", "key", key)
	}
	return res, nil
}

// listArtifacts returns the regular files in dir, following symlinks and
// skipping sidecar files whose name contains ".txt".
func listArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.Contains(name, ".txt") {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}
