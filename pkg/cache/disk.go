package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const diskLayer = "disk"

// DiskStore persists one file per offset under a cache directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a disk-backed page store rooted at dir.
// The directory is created lazily by Init or on the first Set.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// EntryPath returns the cache file path for an offset.
// Naming is deterministic so repeated runs hit the same files.
func (d *DiskStore) EntryPath(offset int) string {
	return filepath.Join(d.dir, fmt.Sprintf("page_%d.json", offset))
}

// Init ensures the cache directory exists.
func (d *DiskStore) Init(ctx context.Context) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		CacheErrors.WithLabelValues(diskLayer, "init").Inc()
		return fmt.Errorf("create cache dir %s: %w", d.dir, err)
	}
	return nil
}

// Get reads the cached payload for offset.
// Returns ErrCacheMiss when the entry file does not exist.
func (d *DiskStore) Get(ctx context.Context, offset int) ([]byte, error) {
	path := d.EntryPath(offset)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			CacheMisses.WithLabelValues(diskLayer).Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues(diskLayer, "get").Inc()
		return nil, fmt.Errorf("read cache entry %s: %w", path, err)
	}

	CacheHits.WithLabelValues(diskLayer).Inc()
	return data, nil
}

// Set writes the payload for offset, creating the directory if needed
// and overwriting any existing entry.
func (d *DiskStore) Set(ctx context.Context, offset int, data []byte) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		CacheErrors.WithLabelValues(diskLayer, "set").Inc()
		return fmt.Errorf("create cache dir %s: %w", d.dir, err)
	}

	path := d.EntryPath(offset)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		CacheErrors.WithLabelValues(diskLayer, "set").Inc()
		return fmt.Errorf("write cache entry %s: %w", path, err)
	}

	return nil
}
