package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// acquireRunLock serializes kwfinder runs sharing the same cache file. The
// lock lives next to the cache as <cache>.lock.
func acquireRunLock(cachePath string, timeout time.Duration) (func(), error) {
	lockPath := cachePath + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return func() {}, fmt.Errorf("cannot create lock dir: %w", err)
	}
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire run lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("another kwfinder run is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
