// Package assets locates and decodes texture rasters from GRF archives and
// plain directories.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/internal/engine/texture"
	"github.com/Faultbox/voxeltex/internal/logger"
	"github.com/Faultbox/voxeltex/pkg/grf"
)

// DefaultPatterns are tried in order to turn a raster name into a path.
var DefaultPatterns = []string{"textures/blocks/%s.png", "%s.png", "%s"}

// ErrNotFound is returned when no source holds the requested file.
var ErrNotFound = errors.New("assets: file not found")

// Manager resolves raster names against archives and directories.
// Sources are searched in reverse order (last added = highest priority),
// archives before directories.
type Manager struct {
	archives []*grf.Archive
	dirs     []string
	patterns []string
	cache    *Cache
	log      *zap.Logger
	mu       sync.RWMutex
}

// NewManager creates a manager using patterns, or DefaultPatterns if none
// are given.
func NewManager(patterns ...string) *Manager {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &Manager{
		patterns: append([]string(nil), patterns...),
		cache:    NewCache(),
		log:      logger.Named("assets"),
	}
}

// AddArchive opens a GRF archive and adds it as a source.
func (m *Manager) AddArchive(path string) error {
	archive, err := grf.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}

	m.mu.Lock()
	m.archives = append(m.archives, archive)
	m.mu.Unlock()

	m.log.Debug("archive added", zap.String("path", path), zap.Int("files", archive.Len()))
	return nil
}

// AddDir adds a directory as a source.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding directory: %s is not a directory", dir)
	}

	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
	return nil
}

// Load returns the bytes of path from the highest priority source.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.archives) - 1; i >= 0; i-- {
		data, err := m.archives[i].Read(path)
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
		if !errors.Is(err, grf.ErrNotFound) {
			return nil, err
		}
	}

	local := filepath.FromSlash(path)
	if filepath.IsLocal(local) {
		for i := len(m.dirs) - 1; i >= 0; i-- {
			data, err := os.ReadFile(filepath.Join(m.dirs[i], local))
			if err == nil {
				m.cache.Set(path, data)
				return data, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Image resolves name through the patterns and decodes the first match.
func (m *Manager) Image(ctx context.Context, name string) (image.Image, error) {
	for _, pattern := range m.patterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := fmt.Sprintf(pattern, name)
		data, err := m.Load(path)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return texture.Decode(path, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Close closes all archives and clears the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, archive := range m.archives {
		archive.Close()
	}
	m.archives = nil
	m.dirs = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded files.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
