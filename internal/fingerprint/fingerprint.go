// Package fingerprint derives short content identifiers for model and lora
// files.
//
// Only a fixed window of the file is hashed, so multi-gigabyte checkpoints
// are identified without reading them in full. The identifier matches the
// short hash shown by the stable-diffusion web UI and used by the
// model-keyword stores.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const (
	// WindowOffset is the byte offset where the hashed window starts.
	WindowOffset = 0x100000

	// WindowSize is the maximum number of bytes hashed.
	WindowSize = 0x10000

	// Length is the number of hex characters kept from the digest.
	Length = 8
)

// NoFile is returned in place of a fingerprint when the file disappeared
// between listing and reading.
const NoFile = "NOFILE"

// Compute returns the fingerprint of the file at path.
//
// Files shorter than WindowOffset hash whatever the window yields, possibly
// nothing. A missing file yields NoFile and a nil error; other I/O failures
// are returned.
func Compute(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NoFile, nil
		}
		return "", fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	window := io.NewSectionReader(f, WindowOffset, WindowSize)
	if _, err := io.Copy(h, window); err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil))[:Length], nil
}
