package stamp

import (
	"math"

	"github.com/wudi/pdfstamp/observability"
)

// Prepared caches processed stamp bytes per opacity so one stamp used at
// the same opacity across thousands of pages is processed exactly once.
// Opacities are rounded to two decimals before lookup. Not safe for
// concurrent use; each execution context owns its own instance.
type Prepared struct {
	path    string
	cache   map[float64][]byte
	hits    int
	process func(path string, opacity float64) ([]byte, error)
	log     observability.Logger
}

// NewPrepared wraps a stamp file in a per-opacity cache.
func NewPrepared(path string, log observability.Logger) *Prepared {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Prepared{
		path:    path,
		cache:   make(map[float64][]byte),
		process: Process,
		log:     log,
	}
}

// Path returns the source image path.
func (p *Prepared) Path() string {
	return p.path
}

// CacheHits reports how many Bytes calls were served from the cache.
func (p *Prepared) CacheHits() int {
	return p.hits
}

// Bytes returns the processed PNG for the given opacity. Processing errors
// are logged and cached as empty bytes so a broken stamp never aborts a
// batch and never gets re-decoded per page.
func (p *Prepared) Bytes(opacity float64) []byte {
	key := math.Round(opacity*100) / 100
	if data, ok := p.cache[key]; ok {
		p.hits++
		return data
	}
	data, err := p.process(p.path, key)
	if err != nil {
		p.log.Warn("stamp processing failed",
			observability.String("path", p.path),
			observability.Float64("opacity", key),
			observability.Error("err", err))
		data = nil
	}
	p.cache[key] = data
	return data
}
