package fetch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
)

// SnapshotCache persists the last successfully fetched raw payload on
// disk, snappy-compressed. Opt-in fallback: a failed fetch can reuse
// the previous session's dataset instead of showing an empty view.
// Nothing else is persisted; FilterState, Selection and layout stay
// session-only.
type SnapshotCache struct {
	Path string
}

// NewSnapshotCache creates a cache at the given file path
func NewSnapshotCache(path string) *SnapshotCache {
	return &SnapshotCache{Path: path}
}

// Store compresses and writes the payload, replacing any previous
// snapshot atomically
func (c *SnapshotCache) Store(payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	compressed := snappy.Encode(nil, payload)
	tmp := c.Path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return fmt.Errorf("writing cache snapshot: %w", err)
	}
	if err := os.Rename(tmp, c.Path); err != nil {
		return fmt.Errorf("committing cache snapshot: %w", err)
	}
	return nil
}

// Load reads and decompresses the cached payload
func (c *SnapshotCache) Load() ([]byte, error) {
	compressed, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("reading cache snapshot: %w", err)
	}
	payload, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing cache snapshot: %w", err)
	}
	return payload, nil
}

// Exists reports whether a snapshot is present
func (c *SnapshotCache) Exists() bool {
	_, err := os.Stat(c.Path)
	return err == nil
}
