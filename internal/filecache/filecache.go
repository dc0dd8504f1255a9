// Package filecache is the on-disk store for downloaded .nw/.gmap/binary
// asset files (spec §4.9, §6: "Files consumed"). It keeps the teacher's
// persist.DB constructor-plus-repo shape — a small wrapper type built once
// at startup, handed to one repo-like accessor per concern — but backs it
// with the filesystem instead of a Postgres pool, since a client library
// owns no relational store of its own.
package filecache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Cache wraps a root directory holding every file the session has
// downloaded from the server, named exactly as the server names them.
type Cache struct {
	root string
	log  *zap.Logger
}

// New builds a Cache rooted at dir, creating it if absent.
func New(dir string, log *zap.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create file cache dir: %w", err)
	}
	return &Cache{root: dir, log: log}, nil
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.root, filepath.Base(name))
}

// Has reports whether name is already cached.
func (c *Cache) Has(name string) bool {
	_, err := os.Stat(c.path(name))
	return err == nil
}

// Get reads a previously cached file's bytes.
func (c *Cache) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(c.path(name))
	if err != nil {
		return nil, fmt.Errorf("read cached file %s: %w", name, err)
	}
	return data, nil
}

// Put stores data under name, overwriting any prior copy.
func (c *Cache) Put(name string, data []byte) error {
	tmp := c.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cached file %s: %w", name, err)
	}
	if err := os.Rename(tmp, c.path(name)); err != nil {
		return fmt.Errorf("finalize cached file %s: %w", name, err)
	}
	if c.log != nil {
		c.log.Debug("file cached", zap.String("name", name), zap.Int("bytes", len(data)))
	}
	return nil
}

// ModTime reports when name was last written to the cache.
func (c *Cache) ModTime(name string) (time.Time, error) {
	info, err := os.Stat(c.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
