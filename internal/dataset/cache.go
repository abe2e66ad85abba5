package dataset

import (
	"sync"

	"go.uber.org/zap"

	"github.com/chrissnell/bikedash/internal/types"
)

// Cache holds the dataset for one path for the lifetime of the process.
// The first successful load is kept; a failed load is not cached, so the next caller retries.
type Cache struct {
	path   string
	logger *zap.SugaredLogger
	load   func(string) ([]types.DailyRecord, error)

	mu      sync.Mutex
	records []types.DailyRecord
	loaded  bool
}

// NewCache creates a cache for the dataset at path. Nothing is read until Get is called.
func NewCache(path string, logger *zap.SugaredLogger) *Cache {
	return &Cache{
		path:   path,
		logger: logger,
		load:   Load,
	}
}

// Path returns the file this cache reads
func (c *Cache) Path() string {
	return c.path
}

// Get returns the cached records, loading them on first use. Callers must not modify the slice.
func (c *Cache) Get() ([]types.DailyRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.records, nil
	}

	records, err := c.load(c.path)
	if err != nil {
		c.logger.Errorw("dataset load failed", "path", c.path, "error", err)
		return nil, err
	}

	c.records = records
	c.loaded = true
	c.logger.Infow("dataset loaded", "path", c.path, "days", len(records))
	return c.records, nil
}

// Loaded reports whether a successful load has been cached
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
