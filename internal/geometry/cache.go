package geometry

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/jengzang/fleetmap-backend-go/internal/models"
)

// DefaultCacheSize is the number of batches a PathCache keeps
const DefaultCacheSize = 32

type cacheEntry struct {
	features []models.PipelineFeature
	report   models.ExtractionReport
	lastUsed uint64
}

// PathCache memoizes batch extraction keyed by a fingerprint of feature ids
// and raw coordinates. Safe for concurrent use.
type PathCache struct {
	extractor *Extractor
	size      int

	mu      sync.Mutex
	entries map[uint64]*cacheEntry
	tick    uint64
	hits    uint64
	misses  uint64
}

// NewPathCache creates a cache in front of extractor. size <= 0 means
// DefaultCacheSize.
func NewPathCache(extractor *Extractor, size int) *PathCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &PathCache{
		extractor: extractor,
		size:      size,
		entries:   make(map[uint64]*cacheEntry),
	}
}

// ExtractFeatures returns the cached result for an identical batch, or
// extracts and stores it. Callers must not modify the returned slices.
func (c *PathCache) ExtractFeatures(features []models.PipelineFeature) ([]models.PipelineFeature, models.ExtractionReport) {
	key := Fingerprint(features)

	c.mu.Lock()
	c.tick++
	if e, ok := c.entries[key]; ok {
		e.lastUsed = c.tick
		c.hits++
		c.mu.Unlock()
		return e.features, e.report
	}
	c.misses++
	c.mu.Unlock()

	out, report := c.extractor.ExtractFeatures(features)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.size {
		c.evictOldest()
	}
	c.tick++
	c.entries[key] = &cacheEntry{features: out, report: report, lastUsed: c.tick}
	return out, report
}

// Stats returns hit and miss counters
func (c *PathCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached batches
func (c *PathCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge drops every cached batch
func (c *PathCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]*cacheEntry)
}

func (c *PathCache) evictOldest() {
	var (
		oldestKey uint64
		oldest    uint64
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.lastUsed < oldest {
			oldestKey, oldest, found = k, e.lastUsed, true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

// Fingerprint hashes the ids and raw coordinates of a batch
func Fingerprint(features []models.PipelineFeature) uint64 {
	d := xxhash.New()
	for _, f := range features {
		_, _ = d.WriteString(f.ID)
		_, _ = d.Write([]byte{0})
		_, _ = d.Write(f.Coordinates)
		_, _ = d.Write([]byte{0xff})
	}
	return d.Sum64()
}
