package keyword

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

var (
	// ErrStoreMissing indicates a flush target that does not exist. User
	// stores are never created implicitly.
	ErrStoreMissing = errors.New("keyword store does not exist")

	// ErrReadOnlyLayer indicates an attempt to flush a built-in layer.
	ErrReadOnlyLayer = errors.New("keyword layer is read-only")
)

// Set holds the four keyword layers loaded from one store directory.
type Set struct {
	dir     string
	layers  map[LayerID]*Layer
	digests map[LayerID]uint64
}

// NewSet returns a set of empty layers rooted at dir.
func NewSet(dir string) *Set {
	s := &Set{
		dir:     dir,
		layers:  make(map[LayerID]*Layer, len(Layers)),
		digests: make(map[LayerID]uint64, len(Layers)),
	}
	for _, id := range Layers {
		s.layers[id] = NewLayer()
		s.digests[id] = s.layers[id].Digest()
	}
	return s
}

// Load reads all four layers from dir. A missing store file is logged and
// yields an empty layer.
func Load(dir string, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := NewSet(dir)
	for _, id := range Layers {
		p := filepath.Join(dir, id.File())
		f, err := os.Open(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("failed to load keyword store", "path", p)
				continue
			}
			return nil, fmt.Errorf("cannot open keyword store %s: %w", p, err)
		}
		layer, err := Parse(f, p, logger)
		f.Close()
		if err != nil {
			return nil, err
		}
		s.layers[id] = layer
		s.digests[id] = layer.Digest()
	}
	return s, nil
}

// Dir returns the store directory.
func (s *Set) Dir() string {
	return s.dir
}

// Layer returns the layer with the given id.
func (s *Set) Layer(id LayerID) *Layer {
	return s.layers[id]
}

// Modified reports whether the layer differs from what was loaded or last
// flushed.
func (s *Set) Modified(id LayerID) bool {
	return s.layers[id].Digest() != s.digests[id]
}

// Flush writes a user layer back to its store file. It reports whether the
// file was written; an unmodified layer is left alone.
func (s *Set) Flush(id LayerID) (bool, error) {
	if !id.User() {
		return false, fmt.Errorf("%w: %s", ErrReadOnlyLayer, id)
	}
	if !s.Modified(id) {
		return false, nil
	}
	p := filepath.Join(s.dir, id.File())
	if err := WriteLayer(p, s.layers[id]); err != nil {
		return false, err
	}
	s.digests[id] = s.layers[id].Digest()
	return true, nil
}

// WriteLayer replaces the existing store file at path with the encoded layer.
func WriteLayer(path string, l *Layer) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrStoreMissing, path)
		}
		return fmt.Errorf("cannot stat keyword store %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("keyword store is not a regular file: %s", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, l.Encode(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("cannot write keyword store %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot replace keyword store %s: %w", path, err)
	}
	return nil
}
