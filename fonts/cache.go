package fonts

import (
	"github.com/wudi/pdfstamp/observability"
)

type cacheEntry struct {
	face *Face
	err  error
}

// Cache loads faces once per file path. Like Face it is single-context
// state, not shared across goroutines.
type Cache struct {
	entries map[string]cacheEntry
	log     observability.Logger
}

// NewCache returns an empty face cache.
func NewCache(log observability.Logger) *Cache {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Cache{entries: make(map[string]cacheEntry), log: log}
}

// Face returns the parsed face for a font file, loading it on first use.
// An empty path returns (nil, nil): the caller draws with the built-in
// fallback font and font-size metrics. Load failures are cached so a bad
// file is only read once.
func (c *Cache) Face(path string) (*Face, error) {
	if path == "" {
		return nil, nil
	}
	if entry, ok := c.entries[path]; ok {
		return entry.face, entry.err
	}
	face, err := Load(path)
	if err != nil {
		c.log.Warn("font load failed",
			observability.String("path", path),
			observability.Error("err", err))
	}
	c.entries[path] = cacheEntry{face: face, err: err}
	return face, err
}
